package service

import (
	"context"
	"time"

	"github.com/Payphone-Digital/storefront/internal/model"
)

// The interfaces below are satisfied by the gorm repositories. Missing rows
// are reported as gorm.ErrRecordNotFound.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByVerifyCode(ctx context.Context, code string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id string, patch model.UserPatch) error
	MarkEmailVerified(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id, refreshDigest string, at time.Time) error
	SetRefreshToken(ctx context.Context, id, refreshDigest string) error
	SetForgotPasswordOTP(ctx context.Context, id, otp string, expiry time.Time) error
	ClearForgotPasswordOTP(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Category, error)
	Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error)
	CountReferences(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type SubCategoryRepository interface {
	Create(ctx context.Context, sub *model.SubCategory) error
	GetAll(ctx context.Context) ([]model.SubCategory, error)
	GetByID(ctx context.Context, id string) (*model.SubCategory, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.SubCategory, error)
	Update(ctx context.Context, id string, patch model.SubCategoryPatch, categories []model.Category) (*model.SubCategory, error)
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Count(ctx context.Context, filter model.ProductFilter) (int64, error)
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, id string, patch model.ProductPatch, categories []model.Category, subCategories []model.SubCategory) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	ListByUser(ctx context.Context, userID string) ([]model.Address, error)
	GetByID(ctx context.Context, id, userID string) (*model.Address, error)
	Update(ctx context.Context, id, userID string, patch model.AddressPatch) error
}
