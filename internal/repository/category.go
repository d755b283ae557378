package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	ctx = withFunction(ctx, "CreateCategory")

	start := time.Now()
	err := r.db.WithContext(ctx).Create(category).Error
	logResult(ctx, "Create category", start, err)
	return err
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	ctx = withFunction(ctx, "GetAllCategories")

	start := time.Now()
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&categories).Error
	logResult(ctx, "List categories", start, err)
	return categories, err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	ctx = withFunction(ctx, "GetCategoryByID")

	start := time.Now()
	var category model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	logResult(ctx, "Get category by ID", start, err)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDs returns the categories that exist among ids.
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Category, error) {
	ctx = withFunction(ctx, "FindCategoriesByIDs")

	var categories []model.Category
	if len(ids) == 0 {
		return categories, nil
	}

	start := time.Now()
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	logResult(ctx, "Find categories by IDs", start, err)
	return categories, err
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	ctx = withFunction(ctx, "UpdateCategory")

	cols := patch.Columns()
	if len(cols) > 0 {
		start := time.Now()
		err := affected(r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(cols))
		logResult(ctx, "Update category", start, err)
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// CountReferences counts sub-categories and products pointing at the category.
func (r *CategoryRepository) CountReferences(ctx context.Context, id string) (int64, error) {
	ctx = withFunction(ctx, "CountCategoryReferences")

	start := time.Now()
	var subCategories, products int64
	db := r.db.WithContext(ctx)

	if err := db.Table("sub_category_categories").Where("category_id = ?", id).Count(&subCategories).Error; err != nil {
		logResult(ctx, "Count sub category references", start, err)
		return 0, err
	}
	if err := db.Table("product_categories").Where("category_id = ?", id).Count(&products).Error; err != nil {
		logResult(ctx, "Count product references", start, err)
		return 0, err
	}

	logger.DebugWithContext(ctx, "Counted category references").
		String("category_id", id).
		Int64("sub_categories", subCategories).
		Int64("products", products).
		Duration(time.Since(start)).
		Log()
	return subCategories + products, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctx = withFunction(ctx, "DeleteCategory")

	start := time.Now()
	err := affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}))
	logResult(ctx, "Delete category", start, err)
	return err
}
