package constants

// Field Length Limits
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt limit, in bytes
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxEmailLength    = 255
	MaxURLLength      = 2048
)

// OTP settings
const (
	OTPLength          = 6
	DefaultOTPAttempts = 5
)

// Product queries
const (
	ProductsByCategoryLimit = 15
)
