package model

type Address struct {
	Base
	AddressLine string `gorm:"column:address_line" json:"address_line"`
	City        string `gorm:"column:city" json:"city"`
	State       string `gorm:"column:state" json:"state"`
	Pincode     string `gorm:"column:pincode" json:"pincode"`
	Country     string `gorm:"column:country" json:"country"`
	Mobile      string `gorm:"column:mobile" json:"mobile"`
	Status      bool   `gorm:"column:status;default:true;not null" json:"status"`
	UserID      string `gorm:"column:user_id;type:uuid;index;not null" json:"userId"`
}

type AddressPatch struct {
	AddressLine *string
	City        *string
	State       *string
	Pincode     *string
	Country     *string
	Mobile      *string
	Status      *bool
}

func (p AddressPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("address_line", p.AddressLine)
	set("city", p.City)
	set("state", p.State)
	set("pincode", p.Pincode)
	set("country", p.Country)
	set("mobile", p.Mobile)
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}
