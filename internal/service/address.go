package service

import (
	"context"

	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/logger"
)

// AddressService manages a user's address book. Every operation is scoped
// to the calling user; another user's address reads as not found.
type AddressService struct {
	repo AddressRepository
}

func NewAddressService(repo AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

func (s *AddressService) Create(ctx context.Context, userID string, req *dto.CreateAddressRequest) (*model.Address, error) {
	ctx = withFunction(ctx, "CreateAddress")

	address := &model.Address{
		AddressLine: req.AddressLine,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Country:     req.Country,
		Mobile:      req.Mobile,
		Status:      true,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, mapRepoError(err, apperrors.ErrUserNotFound)
	}

	logger.InfoWithContext(ctx, "Address created").
		String("address_id", address.ID).
		String("user_id", userID).
		Log()
	return address, nil
}

// List returns active and disabled addresses, newest first.
func (s *AddressService) List(ctx context.Context, userID string) ([]model.Address, error) {
	ctx = withFunction(ctx, "ListAddresses")

	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	return addresses, nil
}

// Get finds one address by id, disabled ones included.
func (s *AddressService) Get(ctx context.Context, userID, id string) (*model.Address, error) {
	ctx = withFunction(ctx, "GetAddress")

	if blank(id) {
		return nil, apperrors.Invalid("Provide _id")
	}

	address, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrAddressNotFound)
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, userID string, req *dto.UpdateAddressRequest) (*model.Address, error) {
	ctx = withFunction(ctx, "UpdateAddress")

	if blank(req.ID) {
		return nil, apperrors.Invalid("Provide _id")
	}

	if err := s.repo.Update(ctx, req.ID, userID, req.Patch()); err != nil {
		return nil, mapRepoError(err, apperrors.ErrAddressNotFound)
	}

	logger.InfoWithContext(ctx, "Address updated").String("address_id", req.ID).Log()
	return s.Get(ctx, userID, req.ID)
}

// Disable soft deletes the address; it stays readable through Get.
func (s *AddressService) Disable(ctx context.Context, userID, id string) error {
	ctx = withFunction(ctx, "DisableAddress")

	if blank(id) {
		return apperrors.Invalid("Provide _id")
	}

	disabled := false
	if err := s.repo.Update(ctx, id, userID, model.AddressPatch{Status: &disabled}); err != nil {
		return mapRepoError(err, apperrors.ErrAddressNotFound)
	}

	logger.InfoWithContext(ctx, "Address disabled").String("address_id", id).Log()
	return nil
}
