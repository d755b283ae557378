package middleware

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CORS allows credentialed requests from the configured frontend origins.
// Cookies only travel cross-site when the origin is echoed back exactly,
// so a wildcard is never sent.
func CORS(allowedOrigins ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if _, ok := allowed[origin]; ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
			h.Add("Vary", "Origin")
		} else if origin != "" {
			logger.GetLogger().Debug("Middleware: CORS origin not allowed",
				zap.String("origin", origin),
				zap.String("path", c.Request.URL.Path),
			)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
