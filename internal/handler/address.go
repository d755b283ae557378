package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/service"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService *service.AddressService
}

func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateAddress")

	var req dto.CreateAddressRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid create address request", err)
		return
	}

	address, err := h.addressService.Create(ctx, middleware.UserID(c), &req)
	if err != nil {
		writeError(c, ctx, "Failed to create address", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Address created successfully", address))
}

func (h *AddressHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListAddresses")

	addresses, err := h.addressService.List(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, ctx, "Failed to list addresses", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("List of Address", addresses))
}

func (h *AddressHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetAddress")

	address, err := h.addressService.Get(ctx, middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, ctx, "Failed to fetch address", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Address details", address))
}

func (h *AddressHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateAddress")

	var req dto.UpdateAddressRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid update address request", err)
		return
	}

	address, err := h.addressService.Update(ctx, middleware.UserID(c), &req)
	if err != nil {
		writeError(c, ctx, "Failed to update address", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Address updated successfully", address))
}

func (h *AddressHandler) Disable(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DisableAddress")

	var req dto.IDRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, ctx, "Invalid disable address request", err)
		return
	}

	if err := h.addressService.Disable(ctx, middleware.UserID(c), req.ID); err != nil {
		writeError(c, ctx, "Failed to disable address", err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Address removed successfully", nil))
}
