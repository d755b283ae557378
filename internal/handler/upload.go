package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UploadImage")

	file, err := c.FormFile(constants.FormFieldImage)
	if err != nil {
		writeError(c, ctx, "Missing image file", apperrors.WrapError(apperrors.Invalid("Provide image"), err))
		return
	}

	stored, err := h.uploadService.UploadImage(ctx, file)
	if err != nil {
		writeError(c, ctx, "Image upload failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Uploaded Successfully", stored))
}
