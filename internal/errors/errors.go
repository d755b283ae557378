package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message.
// Message is what the client sees; Err carries the cause for logs.
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError with the same code, so wrapped and
// re-messaged errors still compare equal to the predefined ones.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Invalid is an INVALID_INPUT error carrying a request specific message.
func Invalid(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeUserNotRegistered   = "USER_NOT_REGISTERED"
	CodeAccountInactive     = "ACCOUNT_INACTIVE"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailNotFound       = "EMAIL_NOT_FOUND"
	CodeInvalidVerifyCode   = "INVALID_VERIFY_CODE"
	CodeOTPExpired          = "OTP_EXPIRED"
	CodeOTPInvalid          = "OTP_INVALID"
	CodeOTPAttempts         = "OTP_ATTEMPTS"
	CodePasswordMismatch    = "PASSWORD_MISMATCH"
	CodeCategoryInUse       = "CATEGORY_IN_USE"
	CodeInvalidReference    = "INVALID_REFERENCE"
	CodeInvalidUpload       = "INVALID_UPLOAD"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	CodeSubCategoryNotFound = "SUBCATEGORY_NOT_FOUND"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeAddressNotFound     = "ADDRESS_NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeInternal            = "INTERNAL_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
)

// Predefined domain errors
var (
	// Registration and profile
	ErrEmailExists        = NewDomainError(CodeEmailExists, "Aready register email")
	ErrUserNotFound       = NewDomainError(CodeUserNotFound, "User not found")
	ErrInvalidVerifyCode  = NewDomainError(CodeInvalidVerifyCode, "Invalid code")
	ErrUserNotRegistered  = NewDomainError(CodeUserNotRegistered, "User not register")
	ErrAccountInactive    = NewDomainError(CodeAccountInactive, "Contact to Admin")
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Check your password")

	// Password reset
	ErrEmailNotAvailable  = NewDomainError(CodeEmailNotFound, "Email id not available")
	ErrResetEmailNotFound = NewDomainError(CodeEmailNotFound, "Email is not available")
	ErrOTPExpired         = NewDomainError(CodeOTPExpired, "Otp is expired")
	ErrOTPInvalid         = NewDomainError(CodeOTPInvalid, "Invalid otp")
	ErrOTPAttempts        = NewDomainError(CodeOTPAttempts, "Too many otp attempts")
	ErrPasswordMismatch   = NewDomainError(CodePasswordMismatch, "New Password and Confirm Password does not match")

	// Authentication
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Provide token")
	ErrInvalidToken        = NewDomainError(CodeInvalidToken, "Invalid Token")
	ErrTokenExpired        = NewDomainError(CodeTokenExpired, "Token is expired")
	ErrInvalidRefreshToken = NewDomainError(CodeInvalidRefreshToken, "Token is expired")

	// Catalog and addresses
	ErrCategoryInUse       = NewDomainError(CodeCategoryInUse, "Category is already used")
	ErrInvalidReference    = NewDomainError(CodeInvalidReference, "Invalid category reference")
	ErrCategoryNotFound    = NewDomainError(CodeCategoryNotFound, "Category not found")
	ErrSubCategoryNotFound = NewDomainError(CodeSubCategoryNotFound, "Sub Category not found")
	ErrProductNotFound     = NewDomainError(CodeProductNotFound, "Product not found")
	ErrAddressNotFound     = NewDomainError(CodeAddressNotFound, "Address not found")

	// Validation errors
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input")
	ErrInvalidUpload = NewDomainError(CodeInvalidUpload, "Only image files are allowed")

	// System errors
	ErrInternal           = NewDomainError(CodeInternal, "Internal server error")
	ErrServiceUnavailable = NewDomainError(CodeServiceUnavailable, "Service temporarily unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case CodeInvalidInput, CodeEmailExists, CodeUserNotRegistered, CodeAccountInactive,
		CodeInvalidCredentials, CodeEmailNotFound, CodeInvalidVerifyCode, CodeOTPExpired,
		CodeOTPInvalid, CodePasswordMismatch, CodeCategoryInUse, CodeInvalidReference,
		CodeInvalidUpload:
		return http.StatusBadRequest

	// 401 Unauthorized
	case CodeUnauthorized, CodeInvalidToken, CodeTokenExpired, CodeInvalidRefreshToken:
		return http.StatusUnauthorized

	// 404 Not Found
	case CodeUserNotFound, CodeCategoryNotFound, CodeSubCategoryNotFound,
		CodeProductNotFound, CodeAddressNotFound:
		return http.StatusNotFound

	// 429 Too Many Requests
	case CodeOTPAttempts:
		return http.StatusTooManyRequests

	// 503 Service Unavailable
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}

// PublicMessage is the message written to the client. Server side failures
// only expose their cause when debug is set.
func PublicMessage(err error, debug bool) string {
	if err == nil {
		return ""
	}
	if ToHTTPStatus(err) < http.StatusInternalServerError {
		return GetErrorMessage(err)
	}
	if debug {
		return err.Error()
	}
	if domainErr := GetDomainError(err); domainErr != nil && domainErr.Code == CodeServiceUnavailable {
		return domainErr.Message
	}
	return ErrInternal.Message
}
