package database

import (
	"fmt"

	"github.com/Payphone-Digital/storefront/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductSearchVector is the expression product search matches against.
// The GIN index below is built on the same expression so the planner can
// use it.
const ProductSearchVector = "to_tsvector('english', coalesce(name, '') || ' ' || coalesce(description, ''))"

var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_products_search_fts ON products USING GIN (" + ProductSearchVector + ");",
	"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC);",
	"CREATE INDEX IF NOT EXISTS idx_product_categories_category ON product_categories (category_id);",
	"CREATE INDEX IF NOT EXISTS idx_product_sub_categories_sub_category ON product_sub_categories (sub_category_id);",
	"CREATE INDEX IF NOT EXISTS idx_sub_category_categories_category ON sub_category_categories (category_id);",
	"CREATE INDEX IF NOT EXISTS idx_addresses_user_created ON addresses (user_id, created_at DESC);",
}

// CreateIndexes creates the search and join-table indexes. A failing
// statement is logged and skipped.
func CreateIndexes(db *gorm.DB) error {
	failed := 0
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			failed++
			logger.GetLogger().Warn("Failed to create index",
				zap.String("statement", stmt),
				zap.Error(err),
			)
		}
	}
	if failed == len(indexStatements) {
		return fmt.Errorf("no index could be created")
	}
	return nil
}
