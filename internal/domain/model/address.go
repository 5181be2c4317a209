package model

import "time"

type AddressType string

const (
	AddressTypeBilling  AddressType = "billing"
	AddressTypeShipping AddressType = "shipping"
)

func (t AddressType) Valid() bool {
	return t == AddressTypeBilling || t == AddressTypeShipping
}

// 顧客の住所（請求先 or 配送先）
type Address struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID    string      `gorm:"type:varchar(255);not null;index" json:"clientId"`
	AddressType AddressType `gorm:"type:varchar(20);not null" json:"addressType"`

	//番地など
	Street string `gorm:"type:varchar(255);not null" json:"street"`

	//地区（colonia）
	Neighborhood string `gorm:"type:varchar(255)" json:"neighborhood"`

	Municipality string `gorm:"type:varchar(255)" json:"municipality"`
	State        string `gorm:"type:varchar(255)" json:"state"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (a Address) Postal() PostalAddress {
	return PostalAddress{
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		Municipality: a.Municipality,
		State:        a.State,
	}
}

// 注文に焼き付ける住所のスナップショット
type PostalAddress struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
}

// 請求先の空欄は配送先で埋める（項目ごと）
func BillingWithFallback(billing *PostalAddress, shipping PostalAddress) PostalAddress {
	if billing == nil {
		return shipping
	}
	out := *billing
	if out.Street == "" {
		out.Street = shipping.Street
	}
	if out.Neighborhood == "" {
		out.Neighborhood = shipping.Neighborhood
	}
	if out.Municipality == "" {
		out.Municipality = shipping.Municipality
	}
	if out.State == "" {
		out.State = shipping.State
	}
	return out
}
