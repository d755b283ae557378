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

type SubCategoryService struct {
	repo         SubCategoryRepository
	categoryRepo CategoryRepository
	metrics      *metrics.Metrics
}

func NewSubCategoryService(repo SubCategoryRepository, categoryRepo CategoryRepository, m *metrics.Metrics) *SubCategoryService {
	return &SubCategoryService{repo: repo, categoryRepo: categoryRepo, metrics: m}
}

func (s *SubCategoryService) Create(ctx context.Context, req *dto.CreateSubCategoryRequest) (*model.SubCategory, error) {
	ctx = withFunction(ctx, "CreateSubCategory")

	if blank(req.Name, req.Image) || len(uniqueIDs(req.Category)) == 0 {
		return nil, apperrors.Invalid(constants.MsgRequiredFields)
	}

	categories, err := resolveCategories(ctx, s.categoryRepo, req.Category)
	if err != nil {
		return nil, err
	}

	sub := &model.SubCategory{
		Name:       strings.TrimSpace(req.Name),
		Image:      req.Image,
		Categories: categories,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.metrics.ObserveCatalog("subcategory", "create")

	logger.InfoWithContext(ctx, "Sub category created").
		String("subcategory_id", sub.ID).
		Int("categories", len(categories)).
		Log()
	return sub, nil
}

func (s *SubCategoryService) GetAll(ctx context.Context) ([]model.SubCategory, error) {
	ctx = withFunction(ctx, "GetAllSubCategories")

	subs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if subs == nil {
		subs = []model.SubCategory{}
	}
	return subs, nil
}

func (s *SubCategoryService) Update(ctx context.Context, req *dto.UpdateSubCategoryRequest) (*model.SubCategory, error) {
	ctx = withFunction(ctx, "UpdateSubCategory")

	if blank(req.ID) {
		return nil, apperrors.Invalid("Provide _id")
	}

	patch := model.SubCategoryPatch{Name: req.Name, Image: req.Image}
	var categories []model.Category
	if req.Category != nil {
		ids := uniqueIDs(req.Category)
		if len(ids) == 0 {
			return nil, apperrors.Invalid(constants.MsgRequiredFields)
		}
		resolved, err := resolveCategories(ctx, s.categoryRepo, ids)
		if err != nil {
			return nil, err
		}
		patch.CategoryIDs = ids
		categories = resolved
	}

	sub, err := s.repo.Update(ctx, req.ID, patch, categories)
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrSubCategoryNotFound)
	}
	s.metrics.ObserveCatalog("subcategory", "update")

	logger.InfoWithContext(ctx, "Sub category updated").String("subcategory_id", sub.ID).Log()
	return sub, nil
}

func (s *SubCategoryService) Delete(ctx context.Context, id string) error {
	ctx = withFunction(ctx, "DeleteSubCategory")

	if blank(id) {
		return apperrors.Invalid("Provide _id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, apperrors.ErrSubCategoryNotFound)
	}
	s.metrics.ObserveCatalog("subcategory", "delete")

	logger.InfoWithContext(ctx, "Sub category deleted").String("subcategory_id", id).Log()
	return nil
}

// resolveSubCategories loads every id in ids and fails when any is unknown.
func resolveSubCategories(ctx context.Context, repo SubCategoryRepository, ids []string) ([]model.SubCategory, error) {
	ids = uniqueIDs(ids)
	subs, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if len(subs) != len(ids) {
		return nil, apperrors.ErrInvalidReference
	}
	return subs, nil
}
