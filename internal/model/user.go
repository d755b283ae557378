package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusInactive  UserStatus = "Inactive"
	UserStatusSuspended UserStatus = "Suspended"
)

type User struct {
	Base
	Name                 string                      `gorm:"column:name;not null"`
	Email                string                      `gorm:"column:email;uniqueIndex;not null"`
	Password             string                      `gorm:"column:password;not null"`
	Avatar               string                      `gorm:"column:avatar"`
	Mobile               string                      `gorm:"column:mobile"`
	VerifyEmail          bool                        `gorm:"column:verify_email;default:false;not null"`
	VerifyEmailCode      string                      `gorm:"column:verify_email_code;index"`
	LastLoginDate        *time.Time                  `gorm:"column:last_login_date"`
	Status               UserStatus                  `gorm:"column:status;type:varchar(16);default:'Active';not null"`
	AddressDetails       datatypes.JSONSlice[string] `gorm:"column:address_details;type:jsonb;default:'[]'"`
	ForgotPasswordOTP    string                      `gorm:"column:forgot_password_otp"`
	ForgotPasswordExpiry *time.Time                  `gorm:"column:forgot_password_expiry"`
	RefreshToken         string                      `gorm:"column:refresh_token"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Mobile   *string
	Password *string // already hashed
	Avatar   *string
}

func (p UserPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = NormalizeEmail(*p.Email)
	}
	if p.Mobile != nil {
		cols["mobile"] = *p.Mobile
	}
	if p.Password != nil {
		cols["password"] = *p.Password
	}
	if p.Avatar != nil {
		cols["avatar"] = *p.Avatar
	}
	return cols
}
