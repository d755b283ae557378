package database

import (
	"errors"

	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminSeed describes the account created on first boot.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// Seed creates the admin account when both email and password are set and
// no user with that email exists yet.
func Seed(db *gorm.DB, admin AdminSeed) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	email := model.NormalizeEmail(admin.Email)

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:        admin.Name,
		Email:       email,
		Password:    string(hashedPassword),
		VerifyEmail: true,
		Status:      model.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("Seeded admin account", zap.String("email", email))
	return nil
}
