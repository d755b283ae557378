package router

import (
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/user")
	{
		users.POST("/register", body[dto.RegisterRequest](r), r.handlers.Auth.Register)
		users.POST("/verify-email", r.handlers.Auth.VerifyEmail)
		users.POST("/login", body[dto.LoginRequest](r), r.handlers.Auth.Login)
		users.POST("/refresh-token", r.handlers.Auth.RefreshToken)
		users.PUT("/forgot-password", r.handlers.Auth.ForgotPassword)
		users.PUT("/verify-forgot-password-otp", r.handlers.Auth.VerifyForgotPasswordOTP)
		users.PUT("/reset-password", body[dto.ResetPasswordRequest](r), r.handlers.Auth.ResetPassword)

		protected := users.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.GET("/logout", r.handlers.Auth.Logout)
			protected.PUT("/upload-avatar", r.handlers.User.UploadAvatar)
			protected.PUT("/update-user", body[dto.UpdateUserRequest](r), r.handlers.User.UpdateUser)
			protected.GET("/user-details", r.handlers.User.GetDetails)
		}
	}
}
