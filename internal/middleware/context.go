package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/storefront/internal/constants"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextMiddleware seeds the request context with tracking values and a
// deadline, and logs request start and completion.
func ContextMiddleware(module string, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = ctxutil.WithValue(ctx, ctxutil.RequestIDKey, requestID)
		c.Header(constants.HeaderXRequestID, requestID)

		ctx = ctxutil.NewContextWithRequest(ctx, c.Request, module, c.FullPath())

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		c.Request = c.Request.WithContext(ctx)

		logger.DebugWithContext(ctx, "Request started").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			String("query", c.Request.URL.RawQuery).
			Log()

		c.Next()

		logger.DebugWithContext(ctx, "Request completed").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			StatusCode(c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}

// CorrelationMiddleware propagates X-Correlation-ID, falling back to the
// request id so every response carries one.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(constants.HeaderXCorrelationID)
		if correlationID == "" {
			correlationID = c.GetHeader(constants.HeaderXTraceID)
		}
		if correlationID == "" {
			correlationID = ctxutil.GetRequestID(c.Request.Context())
		}

		if correlationID != "" {
			ctx := ctxutil.WithValue(c.Request.Context(), ctxutil.CorrelationIDKey, correlationID)
			c.Request = c.Request.WithContext(ctx)
			c.Header(constants.HeaderXCorrelationID, correlationID)
		}

		c.Next()
	}
}

// ContextValidationMiddleware stops requests whose context is already done.
func ContextValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := ctx.Err(); err != nil {
			logger.WarnWithContext(ctx, "Context already cancelled").
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusRequestTimeout, constants.BuildErrorResponse(constants.MsgTimeout))
			return
		}

		c.Next()
	}
}

// DefaultContextMiddleware is the standard chain for API routes.
func DefaultContextMiddleware(module string, timeout time.Duration) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		ContextMiddleware(module, timeout),
		CorrelationMiddleware(),
		ContextValidationMiddleware(),
	}
}
