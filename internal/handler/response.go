package handler

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindJSON fills req from the body validated by ValidationMiddleware, or
// binds it directly when the route has no such middleware. An empty body
// binds the zero value.
func bindJSON[T any](c *gin.Context, req *T) error {
	if v, ok := c.Get(constants.GinKeyRequest); ok {
		if validated, ok := v.(*T); ok {
			*req = *validated
			return nil
		}
	}

	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}

	if messages := validation.Messages(err); len(messages) > 0 {
		return apperrors.Invalid(strings.Join(messages, "; "))
	}
	return apperrors.WrapError(apperrors.NewDomainError(apperrors.CodeInvalidInput, constants.MsgBadRequest), err)
}

// writeError logs err and writes the error envelope with its mapped status.
func writeError(c *gin.Context, ctx context.Context, msg string, err error) {
	status := apperrors.ToHTTPStatus(err)

	entry := logger.WarnWithContext(ctx, msg)
	if status >= 500 {
		entry = logger.ErrorWithContext(ctx, msg)
	}
	entry.StatusCode(status).Err(err).Log()

	c.JSON(status, constants.BuildErrorResponse(apperrors.PublicMessage(err, gin.IsDebugging())))
}
