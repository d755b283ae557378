package service

import (
	"context"
	"strings"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
)

type CategoryService struct {
	repo    CategoryRepository
	cache   *CacheService
	metrics *metrics.Metrics
}

func NewCategoryService(repo CategoryRepository, cache *CacheService, m *metrics.Metrics) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, metrics: m}
}

func (s *CategoryService) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, constants.CacheKeyCategoryList)
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*model.Category, error) {
	ctx = withFunction(ctx, "CreateCategory")

	if blank(req.Name, req.Image) {
		return nil, apperrors.Invalid(constants.MsgRequiredFields)
	}

	category := &model.Category{
		Name:  strings.TrimSpace(req.Name),
		Image: req.Image,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx)
	s.metrics.ObserveCatalog("category", "create")

	logger.InfoWithContext(ctx, "Category created").String("category_id", category.ID).Log()
	return category, nil
}

// GetAll returns every category, newest first. The list is cached until
// the next category write.
func (s *CategoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	ctx = withFunction(ctx, "GetAllCategories")

	var categories []model.Category
	if s.cache.GetJSON(ctx, constants.CacheKeyCategoryList, &categories) {
		return categories, nil
	}

	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if categories == nil {
		categories = []model.Category{}
	}

	s.cache.SetJSON(ctx, constants.CacheKeyCategoryList, categories, constants.CategoryListTTL)
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	ctx = withFunction(ctx, "UpdateCategory")

	if blank(req.ID) {
		return nil, apperrors.Invalid("Provide _id")
	}

	category, err := s.repo.Update(ctx, req.ID, model.CategoryPatch{Name: req.Name, Image: req.Image})
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrCategoryNotFound)
	}
	s.invalidate(ctx)
	s.metrics.ObserveCatalog("category", "update")

	logger.InfoWithContext(ctx, "Category updated").String("category_id", category.ID).Log()
	return category, nil
}

// Delete refuses while any sub category or product still points at the
// category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ctx = withFunction(ctx, "DeleteCategory")

	if blank(id) {
		return apperrors.Invalid("Provide _id")
	}

	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if refs > 0 {
		logger.InfoWithContext(ctx, "Category still referenced").
			String("category_id", id).
			Int64("references", refs).
			Log()
		return apperrors.ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, apperrors.ErrCategoryNotFound)
	}
	s.invalidate(ctx)
	s.metrics.ObserveCatalog("category", "delete")

	logger.InfoWithContext(ctx, "Category deleted").String("category_id", id).Log()
	return nil
}

// resolveCategories loads every id in ids and fails when any is unknown.
func resolveCategories(ctx context.Context, repo CategoryRepository, ids []string) ([]model.Category, error) {
	ids = uniqueIDs(ids)
	categories, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if len(categories) != len(ids) {
		return nil, apperrors.ErrInvalidReference
	}
	return categories, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
