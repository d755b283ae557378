package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	cacheService *service.CacheService
}

func NewCacheHandler(cacheService *service.CacheService) *CacheHandler {
	return &CacheHandler{cacheService: cacheService}
}

// GetCacheStats returns cache statistics
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CacheStats")

	stats, err := h.cacheService.GetCacheStats(ctx)
	if err != nil {
		writeError(c, ctx, "Failed to get cache stats", apperrors.WrapError(apperrors.ErrServiceUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Cache statistics", stats))
}

// ClearAllCache drops every storefront key. Requires ?confirm=true.
func (h *CacheHandler) ClearAllCache(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ClearCache")

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Please add ?confirm=true to clear all cache"))
		return
	}

	if err := h.cacheService.ClearAll(ctx); err != nil {
		writeError(c, ctx, "Failed to clear all cache", apperrors.WrapError(apperrors.ErrServiceUnavailable, err))
		return
	}

	logger.WarnWithContext(ctx, "All cache cleared").String("user_id", ctxutil.GetUserID(ctx)).Log()

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("All cache cleared successfully", nil))
}
