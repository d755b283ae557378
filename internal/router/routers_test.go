package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/handler"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/service"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
	"github.com/Payphone-Digital/storefront/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetOptimizedLogger(logger.NewNopOptimizedLogger())
	os.Exit(m.Run())
}

func newTestEngine() *gin.Engine {
	cfg := &config.Config{
		App:       config.AppConfig{FrontendURL: "http://shop.example", Timeout: time.Second},
		RateLimit: config.RateLimitConfig{Request: 1000, Duration: 60},
	}
	jwtService := service.NewJWTService(config.JWTConfig{
		AccessSecret:      "a",
		RefreshSecret:     "r",
		AccessExpiration:  time.Hour,
		RefreshExpiration: time.Hour,
	})
	cacheService := service.NewCacheService(nil, nil, nil)

	return NewRouter(
		Handlers{
			Auth:        handler.NewAuthHandler(nil, jwtService, cfg.Cookie),
			User:        handler.NewUserHandler(nil),
			Category:    handler.NewCategoryHandler(nil),
			SubCategory: handler.NewSubCategoryHandler(nil),
			Product:     handler.NewProductHandler(nil),
			Address:     handler.NewAddressHandler(nil),
			Upload:      handler.NewUploadHandler(nil),
			Cache:       handler.NewCacheHandler(cacheService),
			Health:      handler.NewHealthHandler(nil, redis.NewDisabledClient()),
		},
		middleware.NewValidationMiddleware(),
		middleware.NewJWTMiddleware(jwtService),
		metrics.New("router_test"),
		cfg,
	).SetupRoutes()
}

func TestSetupRoutes_RegistersEndpoints(t *testing.T) {
	routes := map[string]bool{}
	for _, r := range newTestEngine().Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"GET /api/health",
		"GET /metrics",
		"POST /api/v1/user/register",
		"POST /api/v1/user/verify-email",
		"POST /api/v1/user/login",
		"GET /api/v1/user/logout",
		"PUT /api/v1/user/upload-avatar",
		"PUT /api/v1/user/update-user",
		"PUT /api/v1/user/forgot-password",
		"PUT /api/v1/user/verify-forgot-password-otp",
		"PUT /api/v1/user/reset-password",
		"POST /api/v1/user/refresh-token",
		"GET /api/v1/user/user-details",
		"POST /api/v1/category/add-category",
		"GET /api/v1/category/get",
		"PUT /api/v1/category/update",
		"DELETE /api/v1/category/delete",
		"POST /api/v1/subcategory/create",
		"POST /api/v1/subcategory/get",
		"PUT /api/v1/subcategory/update",
		"DELETE /api/v1/subcategory/delete",
		"POST /api/v1/product/create",
		"POST /api/v1/product/get",
		"POST /api/v1/product/get-product-by-category",
		"POST /api/v1/product/get-product-by-category-and-subcategory",
		"POST /api/v1/product/get-product-details",
		"PUT /api/v1/product/update-product-details",
		"DELETE /api/v1/product/delete-product",
		"POST /api/v1/product/search-product",
		"POST /api/v1/address/create",
		"GET /api/v1/address/get",
		"GET /api/v1/address/get/:id",
		"PUT /api/v1/address/update",
		"DELETE /api/v1/address/disable",
		"POST /api/v1/file/upload",
		"GET /api/v1/cache/stats",
		"DELETE /api/v1/cache/clear",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route %s", route)
	}
}

func TestSetupRoutes_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine()

	protected := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/user/logout"},
		{http.MethodGet, "/api/v1/user/user-details"},
		{http.MethodPost, "/api/v1/category/add-category"},
		{http.MethodDelete, "/api/v1/subcategory/delete"},
		{http.MethodPost, "/api/v1/product/create"},
		{http.MethodGet, "/api/v1/address/get"},
		{http.MethodPost, "/api/v1/file/upload"},
		{http.MethodDelete, "/api/v1/cache/clear"},
	}
	for _, p := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestSetupRoutes_ResponseHeaders(t *testing.T) {
	r := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/user-details", nil)
	req.Header.Set("Origin", "http://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}
