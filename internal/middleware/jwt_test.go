package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService() *service.JWTService {
	return service.NewJWTService(config.JWTConfig{
		AccessSecret:      "access-secret",
		RefreshSecret:     "refresh-secret",
		AccessExpiration:  time.Hour,
		RefreshExpiration: 24 * time.Hour,
	})
}

func authEngine(jwtService *service.JWTService, mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"ctx_id":  ctxutil.GetUserID(c.Request.Context()),
		})
	})
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth_MissingToken(t *testing.T) {
	jwtService := newJWTService()
	r := authEngine(jwtService, NewJWTMiddleware(jwtService).RequireAuth())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Provide token", body["message"])
	assert.Equal(t, true, body["error"])
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	jwtService := newJWTService()
	r := authEngine(jwtService, NewJWTMiddleware(jwtService).RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, constants.MsgUnauthorized, decode(t, w)["message"])
}

func TestRequireAuth_RefreshTokenIsNotAccepted(t *testing.T) {
	jwtService := newJWTService()
	r := authEngine(jwtService, NewJWTMiddleware(jwtService).RequireAuth())

	refresh, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_CookieAndBearer(t *testing.T) {
	jwtService := newJWTService()
	r := authEngine(jwtService, NewJWTMiddleware(jwtService).RequireAuth())

	token, err := jwtService.GenerateAccessToken("user-1")
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: constants.CookieAccessToken, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "user-1", body["user_id"])
		assert.Equal(t, "user-1", body["ctx_id"])
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", decode(t, w)["user_id"])
	})
}
