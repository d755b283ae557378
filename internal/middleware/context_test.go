package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Payphone-Digital/storefront/internal/constants"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextEngine(timeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(DefaultContextMiddleware("test", timeout)...)
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		_, hasDeadline := ctx.Deadline()
		c.JSON(http.StatusOK, gin.H{
			"request_id":     ctxutil.GetRequestID(ctx),
			"correlation_id": ctxutil.GetCorrelationID(ctx),
			"module":         ctxutil.GetModule(ctx),
			"deadline":       hasDeadline,
		})
	})
	return r
}

func TestContextMiddleware_GeneratesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	contextEngine(time.Second).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	requestID := w.Header().Get(constants.HeaderXRequestID)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, body["request_id"])
	assert.Equal(t, requestID, body["correlation_id"])
	assert.Equal(t, requestID, w.Header().Get(constants.HeaderXCorrelationID))
	assert.Equal(t, "test", body["module"])
	assert.Equal(t, true, body["deadline"])
}

func TestContextMiddleware_KeepsIncomingIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderXRequestID, "req-1")
	req.Header.Set(constants.HeaderXCorrelationID, "corr-1")
	w := httptest.NewRecorder()
	contextEngine(0).ServeHTTP(w, req)

	body := decode(t, w)
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, "corr-1", body["correlation_id"])
	assert.Equal(t, false, body["deadline"])
}
