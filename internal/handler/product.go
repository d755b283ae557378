package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateProduct")

	var req dto.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid create product request", err)
		return
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Product created successfully", product))
}

// List answers with totalCount and totalNoPage.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetProducts")

	var req dto.ListProductsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid product list request", err)
		return
	}

	page, err := h.productService.List(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to list products", err)
		return
	}

	logger.DebugWithContext(ctx, "Products listed").
		Int("page", page.Page).
		Int("limit", page.Limit).
		Int64("total", page.TotalCount).
		Log()

	c.JSON(http.StatusOK, constants.BuildListResponse(
		"Product data",
		page.Products,
		page.TotalCount,
		constants.TotalPages(page.TotalCount, page.Limit),
	))
}

func (h *ProductHandler) ByCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ProductsByCategory")

	var req dto.ProductsByCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid product by category request", err)
		return
	}

	products, err := h.productService.ByCategory(ctx, req.ID)
	if err != nil {
		writeError(c, ctx, "Failed to list category products", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Category product list", products))
}

func (h *ProductHandler) ByCategoryAndSubCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ProductsByCategoryAndSubCategory")

	var req dto.ProductsByCategoryAndSubCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid product by sub category request", err)
		return
	}

	page, err := h.productService.ByCategoryAndSubCategory(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to list sub category products", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildPageResponse("Product List", page.Products, page.TotalCount, 0, page.Page, page.Limit))
}

func (h *ProductHandler) Details(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ProductDetails")

	var req dto.ProductDetailsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid product details request", err)
		return
	}

	product, err := h.productService.GetDetails(ctx, req.ProductID)
	if err != nil {
		writeError(c, ctx, "Failed to fetch product", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Product details", product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProduct")

	var req dto.UpdateProductRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid update product request", err)
		return
	}

	product, err := h.productService.Update(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Failed to update product", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Updated successfully", product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteProduct")

	var req dto.IDRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid delete product request", err)
		return
	}

	if err := h.productService.Delete(ctx, req.ID); err != nil {
		writeError(c, ctx, "Failed to delete product", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Deleted successfully", nil))
}

// Search answers with totalCount, totalPage, page and limit.
func (h *ProductHandler) Search(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SearchProducts")

	var req dto.ListProductsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid product search request", err)
		return
	}

	page, err := h.productService.Search(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Product search failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildPageResponse(
		"Product data",
		page.Products,
		page.TotalCount,
		constants.TotalPages(page.TotalCount, page.Limit),
		page.Page,
		page.Limit,
	))
}
