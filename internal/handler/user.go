package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{userService: service}
}

func (h *UserHandler) GetDetails(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UserDetails")

	user, err := h.userService.GetDetails(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, ctx, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("user details", user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateUser")

	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid update user request", err)
		return
	}

	user, err := h.userService.UpdateUser(ctx, middleware.UserID(c), &req)
	if err != nil {
		writeError(c, ctx, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("updated user successfully", user))
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UploadAvatar")

	file, err := c.FormFile(constants.FormFieldAvatar)
	if err != nil {
		writeError(c, ctx, "Missing avatar file", apperrors.WrapError(apperrors.Invalid("Provide avatar"), err))
		return
	}

	avatar, err := h.userService.UploadAvatar(ctx, middleware.UserID(c), file)
	if err != nil {
		writeError(c, ctx, "Avatar upload failed", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Upload Profile", avatar))
}
