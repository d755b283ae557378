package model

import "gorm.io/datatypes"

type Product struct {
	Base
	Name          string                      `gorm:"column:name;not null" json:"name"`
	Image         datatypes.JSONSlice[string] `gorm:"column:image;type:jsonb" json:"image"`
	Categories    []Category                  `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE" json:"category"`
	SubCategories []SubCategory               `gorm:"many2many:product_sub_categories;constraint:OnDelete:CASCADE" json:"subCategory"`
	Unit          string                      `gorm:"column:unit" json:"unit"`
	Stock         int                         `gorm:"column:stock;default:0" json:"stock"`
	Price         float64                     `gorm:"column:price;default:0" json:"price"`
	Discount      float64                     `gorm:"column:discount;default:0" json:"discount"`
	Description   string                      `gorm:"column:description" json:"description"`
	MoreDetails   datatypes.JSONMap           `gorm:"column:more_details;type:jsonb" json:"more_details"`
	Publish       bool                        `gorm:"column:publish;default:true" json:"publish"`
}

// ProductPatch is a partial product update. Non-nil ID slices replace the
// corresponding association.
type ProductPatch struct {
	Name           *string
	Image          []string
	CategoryIDs    []string
	SubCategoryIDs []string
	Unit           *string
	Stock          *int
	Price          *float64
	Discount       *float64
	Description    *string
	MoreDetails    map[string]interface{}
	Publish        *bool
}

func (p ProductPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Image != nil {
		cols["image"] = datatypes.JSONSlice[string](p.Image)
	}
	if p.Unit != nil {
		cols["unit"] = *p.Unit
	}
	if p.Stock != nil {
		cols["stock"] = *p.Stock
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Discount != nil {
		cols["discount"] = *p.Discount
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.MoreDetails != nil {
		cols["more_details"] = datatypes.JSONMap(p.MoreDetails)
	}
	if p.Publish != nil {
		cols["publish"] = *p.Publish
	}
	return cols
}

// ProductFilter narrows product listings. Empty fields do not filter.
type ProductFilter struct {
	Search        string
	CategoryID    string
	SubCategoryID string
	Offset        int
	Limit         int
}
