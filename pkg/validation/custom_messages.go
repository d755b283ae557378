package validation

// CustomMessage returns the per-tag overrides for a struct field name.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email is required",
			"email":    "email is not valid",
		},
		"Password": {
			"required": "password is required",
			"max":      "password must be at most 72 characters",
		},
		"NewPassword": {
			"required": "newPassword is required",
			"max":      "newPassword must be at most 72 characters",
		},
		"ConfirmPassword": {
			"required": "confirmPassword is required",
		},
		"Name": {
			"required": "name is required",
		},
		"Otp": {
			"required": "otp is required",
			"len":      "otp must be 6 digits",
			"numeric":  "otp must be 6 digits",
		},
		"Mobile": {
			"numeric": "mobile must contain digits only",
		},
		"ID": {
			"required": "_id is required",
			"uuid":     "_id is not valid",
		},
		"Price": {
			"gte": "price cannot be negative",
		},
		"Discount": {
			"gte": "discount cannot be negative",
			"lte": "discount cannot exceed 100",
		},
	}
	return customValidationMessages[field]
}
