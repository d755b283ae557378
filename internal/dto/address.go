package dto

import "github.com/Payphone-Digital/storefront/internal/model"

type CreateAddressRequest struct {
	AddressLine string `json:"address_line" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
	State       string `json:"state" binding:"max=100"`
	Pincode     string `json:"pincode" binding:"max=20"`
	Country     string `json:"country" binding:"max=100"`
	Mobile      string `json:"mobile" binding:"max=20"`
}

type UpdateAddressRequest struct {
	ID          string  `json:"_id"`
	AddressLine *string `json:"address_line" binding:"omitempty,max=500"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	Pincode     *string `json:"pincode" binding:"omitempty,max=20"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
	Mobile      *string `json:"mobile" binding:"omitempty,max=20"`
}

func (r UpdateAddressRequest) Patch() model.AddressPatch {
	return model.AddressPatch{
		AddressLine: r.AddressLine,
		City:        r.City,
		State:       r.State,
		Pincode:     r.Pincode,
		Country:     r.Country,
		Mobile:      r.Mobile,
	}
}
