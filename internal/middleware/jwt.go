package middleware

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type JWTMiddleware struct {
	jwtService *service.JWTService
}

func NewJWTMiddleware(jwtService *service.JWTService) *JWTMiddleware {
	return &JWTMiddleware{jwtService: jwtService}
}

// TokenFromRequest reads a token from the named cookie, falling back to an
// Authorization: Bearer header.
func TokenFromRequest(c *gin.Context, cookie string) string {
	if token, err := c.Cookie(cookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(authHeader, constants.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerPrefix))
	}
	return ""
}

// RequireAuth rejects the request unless it carries a valid access token,
// and exposes the caller's id to handlers and the context logger.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := TokenFromRequest(c, constants.CookieAccessToken)
		if token == "" {
			logger.WarnWithContext(ctx, "Missing access token").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Log()
			c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message))
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(token)
		if err != nil || claims.UserID == "" {
			logger.WarnWithContext(ctx, "Invalid or expired access token").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized))
			return
		}

		c.Set(constants.GinKeyUserID, claims.UserID)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(ctx, claims.UserID))

		c.Next()
	}
}

// UserID returns the id stored by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(constants.GinKeyUserID)
}
