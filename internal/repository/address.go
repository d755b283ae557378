package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
	"gorm.io/gorm"
)

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts the address and appends its id to the owner's
// address_details in a single transaction.
func (r *AddressRepository) Create(ctx context.Context, address *model.Address) error {
	ctx = withFunction(ctx, "CreateAddress")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(address).Error; err != nil {
			return err
		}
		return affected(appendAddressDetail(tx, address.UserID, address.ID))
	})
	logResult(ctx, "Create address", start, err)
	return err
}

// appendAddressDetail pushes addressID onto the user's address_details
// jsonb array, treating a NULL column as empty.
func appendAddressDetail(tx *gorm.DB, userID, addressID string) *gorm.DB {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("address_details", gorm.Expr("COALESCE(address_details, '[]'::jsonb) || jsonb_build_array(?::text)", addressID))
}

// ListByUser returns every address of the user, disabled ones included.
func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	ctx = withFunction(ctx, "ListAddresses")

	start := time.Now()
	var addresses []model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error
	logResult(ctx, "List addresses", start, err)
	return addresses, err
}

// GetByID looks an address up regardless of status, scoped to its owner.
func (r *AddressRepository) GetByID(ctx context.Context, id, userID string) (*model.Address, error) {
	ctx = withFunction(ctx, "GetAddressByID")

	start := time.Now()
	var address model.Address
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	logResult(ctx, "Get address by ID", start, err)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepository) Update(ctx context.Context, id, userID string, patch model.AddressPatch) error {
	ctx = withFunction(ctx, "UpdateAddress")

	cols := patch.Columns()
	if len(cols) == 0 {
		_, err := r.GetByID(ctx, id, userID)
		return err
	}

	start := time.Now()
	err := affected(r.db.WithContext(ctx).Model(&model.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(cols))
	logResult(ctx, "Update address", start, err)
	return err
}
