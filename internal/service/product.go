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
	"golang.org/x/sync/errgroup"
)

type ProductService struct {
	repo            ProductRepository
	categoryRepo    CategoryRepository
	subCategoryRepo SubCategoryRepository
	metrics         *metrics.Metrics
}

func NewProductService(repo ProductRepository, categoryRepo CategoryRepository, subCategoryRepo SubCategoryRepository, m *metrics.Metrics) *ProductService {
	return &ProductService{
		repo:            repo,
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		metrics:         m,
	}
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	ctx = withFunction(ctx, "CreateProduct")

	images := nonEmpty(req.Image)
	if blank(req.Name, req.Unit, req.Description) ||
		len(images) == 0 ||
		len(uniqueIDs(req.Category)) == 0 ||
		len(uniqueIDs(req.SubCategory)) == 0 ||
		req.Price == nil {
		return nil, apperrors.Invalid(constants.MsgRequiredFields)
	}

	categories, err := resolveCategories(ctx, s.categoryRepo, req.Category)
	if err != nil {
		return nil, err
	}
	subCategories, err := resolveSubCategories(ctx, s.subCategoryRepo, req.SubCategory)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          strings.TrimSpace(req.Name),
		Image:         images,
		Categories:    categories,
		SubCategories: subCategories,
		Unit:          req.Unit,
		Price:         *req.Price,
		Description:   req.Description,
		MoreDetails:   req.MoreDetails,
		Publish:       true,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.metrics.ObserveCatalog("product", "create")

	logger.InfoWithContext(ctx, "Product created").String("product_id", product.ID).Log()
	return product, nil
}

// page fetches one page of products matching filter. The total count and
// the rows are read concurrently.
func (s *ProductService) page(ctx context.Context, filter model.ProductFilter, page, limit int) (*dto.ProductPage, error) {
	params := constants.NewPaginationParams(page, limit)
	filter.Offset = params.Offset
	filter.Limit = params.Limit

	var (
		total    int64
		products []model.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Count(gctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.List(gctx, filter)
		products = rows
		return err
	})
	if err := g.Wait(); err != nil {
		logger.ErrorWithContext(ctx, "Failed to list products").Err(err).Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if products == nil {
		products = []model.Product{}
	}
	return &dto.ProductPage{
		Products:   products,
		TotalCount: total,
		Page:       params.Page,
		Limit:      params.Limit,
	}, nil
}

// List pages through all products, optionally narrowed by a full-text
// search.
func (s *ProductService) List(ctx context.Context, req *dto.ListProductsRequest) (*dto.ProductPage, error) {
	ctx = withFunction(ctx, "ListProducts")

	filter := model.ProductFilter{Search: strings.TrimSpace(req.Search)}
	return s.page(ctx, filter, req.Page, req.Limit)
}

// Search is List under the search endpoint's name, kept separate so the
// two can be logged and measured apart.
func (s *ProductService) Search(ctx context.Context, req *dto.ListProductsRequest) (*dto.ProductPage, error) {
	ctx = withFunction(ctx, "SearchProducts")

	s.metrics.ObserveCatalog("product", "search")
	filter := model.ProductFilter{Search: strings.TrimSpace(req.Search)}
	return s.page(ctx, filter, req.Page, req.Limit)
}

func (s *ProductService) ByCategory(ctx context.Context, categoryID string) ([]model.Product, error) {
	ctx = withFunction(ctx, "ProductsByCategory")

	if blank(categoryID) {
		return nil, apperrors.Invalid("Provide category id")
	}

	products, err := s.repo.List(ctx, model.ProductFilter{
		CategoryID: categoryID,
		Limit:      constants.ProductsByCategoryLimit,
	})
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *ProductService) ByCategoryAndSubCategory(ctx context.Context, req *dto.ProductsByCategoryAndSubCategoryRequest) (*dto.ProductPage, error) {
	ctx = withFunction(ctx, "ProductsByCategoryAndSubCategory")

	if blank(req.CategoryID, req.SubCategoryID) {
		return nil, apperrors.Invalid("Provide categoryId and subCategoryId")
	}

	filter := model.ProductFilter{
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	}
	return s.page(ctx, filter, req.Page, req.Limit)
}

func (s *ProductService) GetDetails(ctx context.Context, productID string) (*model.Product, error) {
	ctx = withFunction(ctx, "ProductDetails")

	if blank(productID) {
		return nil, apperrors.Invalid("Provide productId")
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrProductNotFound)
	}
	return product, nil
}

// Update applies the fields present in req. Category and sub category
// lists, when given, replace the current ones and must not be empty.
func (s *ProductService) Update(ctx context.Context, req *dto.UpdateProductRequest) (*model.Product, error) {
	ctx = withFunction(ctx, "UpdateProduct")

	if blank(req.ID) {
		return nil, apperrors.Invalid("Provide product _id")
	}

	patch := req.Patch()
	if patch.Image != nil {
		patch.Image = nonEmpty(patch.Image)
		if len(patch.Image) == 0 {
			return nil, apperrors.Invalid(constants.MsgRequiredFields)
		}
	}

	var categories []model.Category
	if req.Category != nil {
		if len(uniqueIDs(req.Category)) == 0 {
			return nil, apperrors.Invalid(constants.MsgRequiredFields)
		}
		resolved, err := resolveCategories(ctx, s.categoryRepo, req.Category)
		if err != nil {
			return nil, err
		}
		categories = resolved
	}

	var subCategories []model.SubCategory
	if req.SubCategory != nil {
		if len(uniqueIDs(req.SubCategory)) == 0 {
			return nil, apperrors.Invalid(constants.MsgRequiredFields)
		}
		resolved, err := resolveSubCategories(ctx, s.subCategoryRepo, req.SubCategory)
		if err != nil {
			return nil, err
		}
		subCategories = resolved
	}

	product, err := s.repo.Update(ctx, req.ID, patch, categories, subCategories)
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrProductNotFound)
	}
	s.metrics.ObserveCatalog("product", "update")

	logger.InfoWithContext(ctx, "Product updated").
		String("product_id", product.ID).
		Int("fields", len(patch.Columns())).
		Log()
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	ctx = withFunction(ctx, "DeleteProduct")

	if blank(id) {
		return apperrors.Invalid("Provide _id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, apperrors.ErrProductNotFound)
	}
	s.metrics.ObserveCatalog("product", "delete")

	logger.InfoWithContext(ctx, "Product deleted").String("product_id", id).Log()
	return nil
}
