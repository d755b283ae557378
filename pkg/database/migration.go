package database

import (
	"fmt"

	"github.com/Payphone-Digital/storefront/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models and then creates the
// indexes gorm tags cannot express.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.SubCategory{},
		&model.Product{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return CreateIndexes(db)
}
