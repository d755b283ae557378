package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = withFunction(ctx, "CreateUser")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").Err(err).Log()
		return err
	}

	start := time.Now()
	err := r.db.WithContext(ctx).Create(user).Error
	logResult(ctx, "Create user", start, err)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	ctx = withFunction(ctx, "GetUserByID")

	start := time.Now()
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	logResult(ctx, "Get user by ID", start, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = withFunction(ctx, "GetUserByEmail")

	start := time.Now()
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&user).Error
	logResult(ctx, "Get user by email", start, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByVerifyCode(ctx context.Context, code string) (*model.User, error) {
	ctx = withFunction(ctx, "GetUserByVerifyCode")

	start := time.Now()
	var user model.User
	err := r.db.WithContext(ctx).Where("verify_email_code = ?", code).First(&user).Error
	logResult(ctx, "Get user by verify code", start, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx = withFunction(ctx, "ExistsByEmail")

	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", model.NormalizeEmail(email)).
		Count(&count).Error
	logResult(ctx, "Check email exists", start, err)
	return count > 0, err
}

func (r *UserRepository) updateColumns(ctx context.Context, id string, cols map[string]interface{}) error {
	start := time.Now()
	err := affected(r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(cols))
	logResult(ctx, "Update user", start, err)
	return err
}

func (r *UserRepository) Update(ctx context.Context, id string, patch model.UserPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}
	return r.updateColumns(withFunction(ctx, "UpdateUser"), id, cols)
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id string) error {
	return r.updateColumns(withFunction(ctx, "MarkEmailVerified"), id, map[string]interface{}{
		"verify_email": true,
	})
}

// RecordLogin stores the refresh token digest and the login time together.
func (r *UserRepository) RecordLogin(ctx context.Context, id, refreshDigest string, at time.Time) error {
	return r.updateColumns(withFunction(ctx, "RecordLogin"), id, map[string]interface{}{
		"refresh_token":   refreshDigest,
		"last_login_date": at,
	})
}

// SetRefreshToken replaces the stored digest; "" signs the user out.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id, refreshDigest string) error {
	return r.updateColumns(withFunction(ctx, "SetRefreshToken"), id, map[string]interface{}{
		"refresh_token": refreshDigest,
	})
}

func (r *UserRepository) SetForgotPasswordOTP(ctx context.Context, id, otp string, expiry time.Time) error {
	return r.updateColumns(withFunction(ctx, "SetForgotPasswordOTP"), id, map[string]interface{}{
		"forgot_password_otp":    otp,
		"forgot_password_expiry": expiry,
	})
}

func (r *UserRepository) ClearForgotPasswordOTP(ctx context.Context, id string) error {
	return r.updateColumns(withFunction(ctx, "ClearForgotPasswordOTP"), id, map[string]interface{}{
		"forgot_password_otp":    "",
		"forgot_password_expiry": nil,
	})
}

// ResetPassword stores the new hash and clears the OTP in the same statement.
func (r *UserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	return r.updateColumns(withFunction(ctx, "ResetPassword"), id, map[string]interface{}{
		"password":               passwordHash,
		"forgot_password_otp":    "",
		"forgot_password_expiry": nil,
	})
}
