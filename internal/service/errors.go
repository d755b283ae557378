package service

import (
	"errors"

	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"gorm.io/gorm"
)

// mapRepoError turns a missing row into notFound and anything else into
// an internal error. Domain errors pass through untouched.
func mapRepoError(err error, notFound *apperrors.DomainError) error {
	if err == nil {
		return nil
	}
	if apperrors.IsDomainError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// collaboratorError reports a mail or storage failure as 503.
func collaboratorError(err error) error {
	return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
}
