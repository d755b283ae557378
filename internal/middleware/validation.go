package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware reads the same `binding` tags gin uses so a DTO
// validates identically here and in ShouldBindJSON.
func NewValidationMiddleware() *ValidationMiddleware {
	validate := validator.New()
	validate.SetTagName("binding")
	return &ValidationMiddleware{validate: validate}
}

// ValidateRequestBody decodes the JSON body into factory(), validates it and
// stores it under constants.GinKeyRequest. An empty body validates the zero
// value so handlers can answer missing fields with their own messages.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.GetLogger().Error("Middleware: Failed to read request body",
					zap.String("client_ip", c.ClientIP()),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		request := factory()

		if len(bytes.TrimSpace(bodyBytes)) > 0 {
			if err := json.Unmarshal(bodyBytes, request); err != nil {
				logger.GetLogger().Warn("Middleware: JSON unmarshaling failed",
					zap.String("path", c.Request.URL.Path),
					zap.Int("body_size", len(bodyBytes)),
					zap.Error(err),
				)
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest))
				return
			}
		}

		if err := m.validate.Struct(request); err != nil {
			messages := validation.Messages(err)
			if len(messages) == 0 {
				messages = []string{constants.MsgBadRequest}
			}

			logger.GetLogger().Warn("Middleware: Request validation failed",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Strings("validation_errors", messages),
			)

			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(strings.Join(messages, "; ")))
			return
		}

		c.Set(constants.GinKeyRequest, request)
		c.Next()
	}
}
