package dto

import "github.com/Payphone-Digital/storefront/internal/model"

type CreateProductRequest struct {
	Name        string                 `json:"name" binding:"max=200"`
	Image       []string               `json:"image"`
	Category    []string               `json:"category"`
	SubCategory []string               `json:"subCategory"`
	Unit        string                 `json:"unit" binding:"max=50"`
	Stock       *int                   `json:"stock" binding:"omitempty,gte=0"`
	Price       *float64               `json:"price" binding:"omitempty,gte=0"`
	Discount    *float64               `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Description string                 `json:"description"`
	MoreDetails map[string]interface{} `json:"more_details"`
}

type ListProductsRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search" binding:"max=200"`
}

type ProductsByCategoryRequest struct {
	ID string `json:"id"`
}

type ProductsByCategoryAndSubCategoryRequest struct {
	CategoryID    string `json:"categoryId"`
	SubCategoryID string `json:"subCategoryId"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
}

type ProductDetailsRequest struct {
	ProductID string `json:"productId"`
}

type UpdateProductRequest struct {
	ID          string                 `json:"_id"`
	Name        *string                `json:"name" binding:"omitempty,min=1,max=200"`
	Image       []string               `json:"image"`
	Category    []string               `json:"category"`
	SubCategory []string               `json:"subCategory"`
	Unit        *string                `json:"unit" binding:"omitempty,max=50"`
	Stock       *int                   `json:"stock" binding:"omitempty,gte=0"`
	Price       *float64               `json:"price" binding:"omitempty,gte=0"`
	Discount    *float64               `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Description *string                `json:"description"`
	MoreDetails map[string]interface{} `json:"more_details"`
	Publish     *bool                  `json:"publish"`
}

func (r UpdateProductRequest) Patch() model.ProductPatch {
	return model.ProductPatch{
		Name:           r.Name,
		Image:          r.Image,
		CategoryIDs:    r.Category,
		SubCategoryIDs: r.SubCategory,
		Unit:           r.Unit,
		Stock:          r.Stock,
		Price:          r.Price,
		Discount:       r.Discount,
		Description:    r.Description,
		MoreDetails:    r.MoreDetails,
		Publish:        r.Publish,
	}
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []model.Product
	TotalCount int64
	Page       int
	Limit      int
}
