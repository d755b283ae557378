package router

import (
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) categoryRoutes(rg *gin.RouterGroup) {
	category := rg.Group("/category")
	{
		category.GET("/get", r.handlers.Category.GetAll)

		protected := category.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/add-category", body[dto.CreateCategoryRequest](r), r.handlers.Category.Create)
			protected.PUT("/update", body[dto.UpdateCategoryRequest](r), r.handlers.Category.Update)
			protected.DELETE("/delete", r.handlers.Category.Delete)
		}
	}
}

func (r *Router) subCategoryRoutes(rg *gin.RouterGroup) {
	sub := rg.Group("/subcategory")
	{
		sub.POST("/get", r.handlers.SubCategory.GetAll)

		protected := sub.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/create", body[dto.CreateSubCategoryRequest](r), r.handlers.SubCategory.Create)
			protected.PUT("/update", body[dto.UpdateSubCategoryRequest](r), r.handlers.SubCategory.Update)
			protected.DELETE("/delete", r.handlers.SubCategory.Delete)
		}
	}
}

func (r *Router) productRoutes(rg *gin.RouterGroup) {
	product := rg.Group("/product")
	{
		product.POST("/get", body[dto.ListProductsRequest](r), r.handlers.Product.List)
		product.POST("/get-product-by-category", r.handlers.Product.ByCategory)
		product.POST("/get-product-by-category-and-subcategory", r.handlers.Product.ByCategoryAndSubCategory)
		product.POST("/get-product-details", r.handlers.Product.Details)
		product.POST("/search-product", body[dto.ListProductsRequest](r), r.handlers.Product.Search)

		protected := product.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/create", body[dto.CreateProductRequest](r), r.handlers.Product.Create)
			protected.PUT("/update-product-details", body[dto.UpdateProductRequest](r), r.handlers.Product.Update)
			protected.DELETE("/delete-product", r.handlers.Product.Delete)
		}
	}
}

func (r *Router) addressRoutes(rg *gin.RouterGroup) {
	address := rg.Group("/address")
	address.Use(r.jwtMw.RequireAuth())
	{
		address.POST("/create", body[dto.CreateAddressRequest](r), r.handlers.Address.Create)
		address.GET("/get", r.handlers.Address.List)
		address.GET("/get/:id", r.handlers.Address.Get)
		address.PUT("/update", body[dto.UpdateAddressRequest](r), r.handlers.Address.Update)
		address.DELETE("/disable", r.handlers.Address.Disable)
	}
}
