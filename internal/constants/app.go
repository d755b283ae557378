package constants

import "time"

// Application Information
const (
	AppName    = "Storefront Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix       = "storefront:"
	CacheKeyCategory     = CacheKeyPrefix + "category:"
	CacheKeyCategoryList = CacheKeyCategory + "list"
	CacheKeySubCategory  = CacheKeyPrefix + "subcategory:"
	CacheKeyOTPAttempts  = CacheKeyPrefix + "otp:attempts:"
)

// Cache TTLs
const (
	CategoryListTTL = 10 * time.Minute
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
