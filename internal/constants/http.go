package constants

// HTTP Header Names
const (
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderUserAgent      = "User-Agent"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXTraceID       = "X-Trace-ID"
	HeaderXCorrelationID = "X-Correlation-ID"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
)

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeText      = "text/plain"
	ContentTypeHTML      = "text/html"
	ContentTypeMultipart = "multipart/form-data"
)

// Auth cookies and gin context keys
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
	GinKeyUserID       = "user_id"
	GinKeyRequest      = "validated_request"
	BearerPrefix       = "Bearer "
)

// Multipart form fields
const (
	FormFieldImage  = "image"
	FormFieldAvatar = "avatar"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized       = "Unauthorized access"
	MsgProvideToken       = "Provide token"
	MsgForbidden          = "Access forbidden"
	MsgNotFound           = "Resource not found"
	MsgBadRequest         = "Invalid request"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
	MsgRateLimited        = "Rate limit exceeded"
	MsgTimeout            = "Request timeout"
	MsgRequiredFields     = "Enter required fields"
)
