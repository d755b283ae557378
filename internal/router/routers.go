package router

import (
	"time"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/handler"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Category    *handler.CategoryHandler
	SubCategory *handler.SubCategoryHandler
	Product     *handler.ProductHandler
	Address     *handler.AddressHandler
	Upload      *handler.UploadHandler
	Cache       *handler.CacheHandler
	Health      *handler.HealthHandler
}

type Router struct {
	handlers Handlers

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	metrics *metrics.Metrics
	Config  *config.Config
}

func NewRouter(
	handlers Handlers,
	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	m *metrics.Metrics,
	config *config.Config,
) *Router {
	return &Router{
		handlers: handlers,
		validMw:  validMw,
		jwtMw:    jwtMw,
		metrics:  m,
		Config:   config,
	}
}

// body validates the request body as T before the handler runs.
func body[T any](r *Router) gin.HandlerFunc {
	return r.validMw.ValidateRequestBody(func() interface{} { return new(T) })
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RequestResponseMiddleware())
	router.Use(middleware.SecurityLoggingMiddleware())
	router.Use(middleware.CORS(r.Config.App.FrontendURL))
	if r.metrics != nil {
		router.Use(r.metrics.Middleware())
		router.GET("/metrics", r.metrics.Handler())
	}

	api := router.Group("/api")
	{
		api.GET("/health", r.handlers.Health.HealthCheck)

		v1 := api.Group("/v1")
		v1.Use(middleware.DefaultContextMiddleware(constants.AppName, r.Config.App.Timeout)...)
		v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))
		{
			r.userRoutes(v1)
			r.categoryRoutes(v1)
			r.subCategoryRoutes(v1)
			r.productRoutes(v1)
			r.addressRoutes(v1)
			r.fileRoutes(v1)
			r.cacheRoutes(v1)
		}
	}

	return router
}

func (r *Router) fileRoutes(rg *gin.RouterGroup) {
	file := rg.Group("/file")
	file.Use(r.jwtMw.RequireAuth())
	{
		file.POST("/upload", r.handlers.Upload.UploadImage)
	}
}

func (r *Router) cacheRoutes(rg *gin.RouterGroup) {
	cache := rg.Group("/cache")
	cache.Use(r.jwtMw.RequireAuth())
	{
		cache.GET("/stats", r.handlers.Cache.GetCacheStats)
		cache.DELETE("/clear", r.handlers.Cache.ClearAllCache)
	}
}
