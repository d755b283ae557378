package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddCategory")

	var req dto.CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid add category request", err)
		return
	}

	category, err := h.categoryService.Create(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to add category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Added Category", category))
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCategories")

	categories, err := h.categoryService.GetAll(ctx)
	if err != nil {
		writeError(c, ctx, "Failed to fetch categories", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Category data", categories))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateCategory")

	var req dto.UpdateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid update category request", err)
		return
	}

	category, err := h.categoryService.Update(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to update category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Updated category successfully", category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteCategory")

	var req dto.IDRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid delete category request", err)
		return
	}

	if err := h.categoryService.Delete(ctx, req.ID); err != nil {
		writeError(c, ctx, "Failed to delete category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Deleted successfully", nil))
}
