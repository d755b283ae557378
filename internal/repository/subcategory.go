package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"gorm.io/gorm"
)

type SubCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

// Create inserts the sub-category and its join rows. Categories must
// already exist; they are linked, never upserted.
func (r *SubCategoryRepository) Create(ctx context.Context, sub *model.SubCategory) error {
	ctx = withFunction(ctx, "CreateSubCategory")

	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Categories.*").Create(sub).Error
	logResult(ctx, "Create sub category", start, err)
	return err
}

func (r *SubCategoryRepository) GetAll(ctx context.Context) ([]model.SubCategory, error) {
	ctx = withFunction(ctx, "GetAllSubCategories")

	start := time.Now()
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).Preload("Categories").Order("created_at DESC").Find(&subs).Error
	logResult(ctx, "List sub categories", start, err)
	return subs, err
}

func (r *SubCategoryRepository) GetByID(ctx context.Context, id string) (*model.SubCategory, error) {
	ctx = withFunction(ctx, "GetSubCategoryByID")

	start := time.Now()
	var sub model.SubCategory
	err := r.db.WithContext(ctx).Preload("Categories").Where("id = ?", id).First(&sub).Error
	logResult(ctx, "Get sub category by ID", start, err)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]model.SubCategory, error) {
	ctx = withFunction(ctx, "FindSubCategoriesByIDs")

	var subs []model.SubCategory
	if len(ids) == 0 {
		return subs, nil
	}

	start := time.Now()
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&subs).Error
	logResult(ctx, "Find sub categories by IDs", start, err)
	return subs, err
}

// Update applies the column patch and, when categories is non-nil,
// replaces the category links. Both happen in one transaction.
func (r *SubCategoryRepository) Update(ctx context.Context, id string, patch model.SubCategoryPatch, categories []model.Category) (*model.SubCategory, error) {
	ctx = withFunction(ctx, "UpdateSubCategory")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := model.SubCategory{Base: model.Base{ID: id}}
		if err := tx.Where("id = ?", id).First(&sub).Error; err != nil {
			return err
		}
		if cols := patch.Columns(); len(cols) > 0 {
			if err := tx.Model(&sub).Updates(cols).Error; err != nil {
				return err
			}
		}
		if categories != nil {
			return tx.Model(&sub).Omit("Categories.*").Association("Categories").Replace(categories)
		}
		return nil
	})
	logResult(ctx, "Update sub category", start, err)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SubCategoryRepository) Delete(ctx context.Context, id string) error {
	ctx = withFunction(ctx, "DeleteSubCategory")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM sub_category_categories WHERE sub_category_id = ?", id).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ?", id).Delete(&model.SubCategory{}))
	})
	logResult(ctx, "Delete sub category", start, err)
	return err
}
