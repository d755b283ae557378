package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves the session endpoints: registration, login, token
// refresh and password recovery.
type AuthHandler struct {
	userService *service.UserService
	cookie      config.CookieConfig
	accessTTL   int
	refreshTTL  int
}

func NewAuthHandler(userService *service.UserService, jwtService *service.JWTService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cookie:      cookie,
		accessTTL:   int(jwtService.AccessTTL().Seconds()),
		refreshTTL:  int(jwtService.RefreshTTL().Seconds()),
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid register request", err)
		return
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Registration failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("User register successfully", user))
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyEmail")

	var req dto.VerifyEmailRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid verify email request", err)
		return
	}

	if err := h.userService.VerifyEmail(ctx, req.Code); err != nil {
		writeError(c, ctx, "Email verification failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Verify email done.", nil))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid login request", err)
		return
	}

	tokens, err := h.userService.Login(ctx, &req)
	if err != nil {
		writeError(c, ctx, "Login failed", err)
		return
	}

	h.setCookie(c, constants.CookieAccessToken, tokens.AccessToken, h.accessTTL)
	h.setCookie(c, constants.CookieRefreshToken, tokens.RefreshToken, h.refreshTTL)

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Login successfully", tokens))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	if err := h.userService.Logout(ctx, middleware.UserID(c)); err != nil {
		writeError(c, ctx, "Logout failed", err)
		return
	}

	h.setCookie(c, constants.CookieAccessToken, "", -1)
	h.setCookie(c, constants.CookieRefreshToken, "", -1)

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logout successfully", nil))
}

// RefreshToken mints a new access token from the refresh token cookie or
// bearer header.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "RefreshToken")

	refreshToken := middleware.TokenFromRequest(c, constants.CookieRefreshToken)

	accessToken, err := h.userService.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		writeError(c, ctx, "Token refresh failed", err)
		return
	}

	h.setCookie(c, constants.CookieAccessToken, accessToken, h.accessTTL)

	logger.DebugWithContext(ctx, "Access token refreshed").Log()
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("New Access token generated", dto.RefreshTokenResponse{AccessToken: accessToken}))
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ForgotPassword")

	var req dto.ForgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid forgot password request", err)
		return
	}

	if err := h.userService.ForgotPassword(ctx, req.Email); err != nil {
		writeError(c, ctx, "Forgot password failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Check your email", nil))
}

func (h *AuthHandler) VerifyForgotPasswordOTP(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyForgotPasswordOTP")

	var req dto.VerifyOTPRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid verify otp request", err)
		return
	}

	if err := h.userService.VerifyForgotPasswordOTP(ctx, &req); err != nil {
		writeError(c, ctx, "OTP verification failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Verify otp successfully", nil))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid reset password request", err)
		return
	}

	if err := h.userService.ResetPassword(ctx, &req); err != nil {
		writeError(c, ctx, "Password reset failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated successfully", nil))
}
