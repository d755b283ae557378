package dto

import (
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
)

// Required-field checks live in the service so each endpoint can answer
// with its own message; binding tags here only guard format.

type RegisterRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Password string `json:"password" binding:"max=72"`
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=72"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Mobile   *string `json:"mobile" binding:"omitempty,max=20"`
	Password *string `json:"password" binding:"omitempty,min=1,max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword" binding:"max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"max=72"`
}

type AvatarResponse struct {
	ID     string `json:"_id"`
	Avatar string `json:"avatar"`
}

// UserResponse is the public view of a user; credentials, codes and OTP
// state never leave the service.
type UserResponse struct {
	ID             string     `json:"_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Avatar         string     `json:"avatar"`
	Mobile         string     `json:"mobile"`
	VerifyEmail    bool       `json:"verify_email"`
	LastLoginDate  *time.Time `json:"last_login_date"`
	Status         string     `json:"status"`
	AddressDetails []string   `json:"address_details"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func NewUserResponse(u *model.User) UserResponse {
	addresses := []string(u.AddressDetails)
	if addresses == nil {
		addresses = []string{}
	}
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Avatar:         u.Avatar,
		Mobile:         u.Mobile,
		VerifyEmail:    u.VerifyEmail,
		LastLoginDate:  u.LastLoginDate,
		Status:         string(u.Status),
		AddressDetails: addresses,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
