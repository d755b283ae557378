package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
)

type SubCategoryHandler struct {
	subCategoryService *service.SubCategoryService
}

func NewSubCategoryHandler(subCategoryService *service.SubCategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{subCategoryService: subCategoryService}
}

func (h *SubCategoryHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateSubCategory")

	var req dto.CreateSubCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid create sub category request", err)
		return
	}

	sub, err := h.subCategoryService.Create(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to create sub category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Sub Category Created Successfully", sub))
}

func (h *SubCategoryHandler) GetAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetSubCategories")

	subs, err := h.subCategoryService.GetAll(ctx)
	if err != nil {
		writeError(c, ctx, "Failed to fetch sub categories", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Sub Category data", subs))
}

func (h *SubCategoryHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateSubCategory")

	var req dto.UpdateSubCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid update sub category request", err)
		return
	}

	sub, err := h.subCategoryService.Update(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to update sub category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Updated Successfully", sub))
}

func (h *SubCategoryHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteSubCategory")

	var req dto.IDRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid delete sub category request", err)
		return
	}

	if err := h.subCategoryService.Delete(ctx, req.ID); err != nil {
		writeError(c, ctx, "Failed to delete sub category", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Deleted successfully", nil))
}
