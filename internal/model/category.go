package model

type Category struct {
	Base
	Name  string `gorm:"column:name;not null" json:"name"`
	Image string `gorm:"column:image" json:"image"`
}

type CategoryPatch struct {
	Name  *string
	Image *string
}

func (p CategoryPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Image != nil {
		cols["image"] = *p.Image
	}
	return cols
}

type SubCategory struct {
	Base
	Name       string     `gorm:"column:name;not null" json:"name"`
	Image      string     `gorm:"column:image" json:"image"`
	Categories []Category `gorm:"many2many:sub_category_categories;constraint:OnDelete:CASCADE" json:"category"`
}

// SubCategoryPatch replaces the category set when CategoryIDs is non-nil.
type SubCategoryPatch struct {
	Name        *string
	Image       *string
	CategoryIDs []string
}

func (p SubCategoryPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Image != nil {
		cols["image"] = *p.Image
	}
	return cols
}
