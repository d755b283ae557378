package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"duplicate email", ErrEmailExists, http.StatusBadRequest},
		{"required fields", Invalid("Provide email, password"), http.StatusBadRequest},
		{"inactive", ErrAccountInactive, http.StatusBadRequest},
		{"expired refresh", ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"unknown product", ErrProductNotFound, http.StatusNotFound},
		{"otp attempts", ErrOTPAttempts, http.StatusTooManyRequests},
		{"wrapped internal", WrapError(ErrInternal, errors.New("db down")), http.StatusInternalServerError},
		{"breaker open", WrapError(ErrServiceUnavailable, errors.New("open")), http.StatusServiceUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"fmt wrapped", fmt.Errorf("ctx: %w", ErrCategoryInUse), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestDomainError_IsComparesCode(t *testing.T) {
	wrapped := WrapError(ErrInternal, errors.New("db down"))

	assert.True(t, errors.Is(wrapped, ErrInternal))
	assert.False(t, errors.Is(wrapped, ErrEmailExists))
	assert.True(t, errors.Is(Invalid("Enter required fields"), ErrInvalidInput))
}

func TestPublicMessage(t *testing.T) {
	internal := WrapError(ErrInternal, errors.New("pq: relation missing"))

	assert.Equal(t, "Internal server error", PublicMessage(internal, false))
	assert.Contains(t, PublicMessage(internal, true), "pq: relation missing")
	assert.Equal(t, "Otp is expired", PublicMessage(ErrOTPExpired, false))
	assert.Equal(t, "Service temporarily unavailable", PublicMessage(WrapError(ErrServiceUnavailable, errors.New("x")), false))
	assert.Equal(t, "", PublicMessage(nil, true))
}
