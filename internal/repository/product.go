package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/database"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	ctx = withFunction(ctx, "CreateProduct")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Categories.*", "SubCategories.*").Create(product).Error
	logResult(ctx, "Create product", start, err)
	return err
}

// filtered builds the WHERE part shared by List and Count.
func (r *ProductRepository) filtered(ctx context.Context, filter model.ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Search != "" {
		query = query.Where(database.ProductSearchVector+" @@ plainto_tsquery('english', ?)", filter.Search)
	}
	if filter.CategoryID != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id = ?)", filter.CategoryID)
	}
	if filter.SubCategoryID != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_sub_categories ps WHERE ps.product_id = products.id AND ps.sub_category_id = ?)", filter.SubCategoryID)
	}
	return query
}

func (r *ProductRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	ctx = withFunction(ctx, "CountProducts")

	start := time.Now()
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	logResult(ctx, "Count products", start, err)
	return total, err
}

// List returns one page, newest first, with categories and sub-categories
// preloaded.
func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	ctx = withFunction(ctx, "ListProducts")

	start := time.Now()
	var products []model.Product
	query := r.filtered(ctx, filter).
		Preload("Categories").
		Preload("SubCategories").
		Order("products.created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Find(&products).Error

	logger.DebugWithContext(ctx, "Listed products").
		String("search", filter.Search).
		String("category_id", filter.CategoryID).
		String("sub_category_id", filter.SubCategoryID).
		Int("offset", filter.Offset).
		Int("limit", filter.Limit).
		Int("returned_count", len(products)).
		Log()
	logResult(ctx, "List products", start, err)
	return products, err
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	ctx = withFunction(ctx, "GetProductByID")

	start := time.Now()
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("SubCategories").
		Where("id = ?", id).
		First(&product).Error
	logResult(ctx, "Get product by ID", start, err)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies the column patch and replaces whichever associations are
// non-nil, in one transaction.
func (r *ProductRepository) Update(ctx context.Context, id string, patch model.ProductPatch, categories []model.Category, subCategories []model.SubCategory) (*model.Product, error) {
	ctx = withFunction(ctx, "UpdateProduct")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product := model.Product{Base: model.Base{ID: id}}
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			return err
		}
		if cols := patch.Columns(); len(cols) > 0 {
			if err := tx.Model(&product).Updates(cols).Error; err != nil {
				return err
			}
		}
		if categories != nil {
			if err := tx.Model(&product).Omit("Categories.*").Association("Categories").Replace(categories); err != nil {
				return err
			}
		}
		if subCategories != nil {
			if err := tx.Model(&product).Omit("SubCategories.*").Association("SubCategories").Replace(subCategories); err != nil {
				return err
			}
		}
		return nil
	})
	logResult(ctx, "Update product", start, err)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx = withFunction(ctx, "DeleteProduct")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_categories WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_sub_categories WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ?", id).Delete(&model.Product{}))
	})
	logResult(ctx, "Delete product", start, err)
	return err
}
