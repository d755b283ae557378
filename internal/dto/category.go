package dto

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Image string `json:"image" binding:"max=2048"`
}

type UpdateCategoryRequest struct {
	ID    string  `json:"_id"`
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Image *string `json:"image" binding:"omitempty,min=1,max=2048"`
}

// IDRequest is the body of every delete-style endpoint.
type IDRequest struct {
	ID string `json:"_id"`
}

type CreateSubCategoryRequest struct {
	Name     string   `json:"name" binding:"max=100"`
	Image    string   `json:"image" binding:"max=2048"`
	Category []string `json:"category"`
}

type UpdateSubCategoryRequest struct {
	ID       string   `json:"_id"`
	Name     *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Image    *string  `json:"image" binding:"omitempty,min=1,max=2048"`
	Category []string `json:"category"`
}
