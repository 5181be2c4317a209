package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type DocumentStatus string

const (
	// 注文は保存済み、PDFはまだ
	DocumentStatusPending DocumentStatus = "PENDING"
	DocumentStatusReady   DocumentStatus = "READY"
)

// 作成後は変更しない（document_statusのみ更新）
type Order struct {
	ID              string                            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientID        string                            `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_orders_client_idem" json:"clientId"`
	BillingAddress  datatypes.JSONType[PostalAddress] `gorm:"type:jsonb;not null" json:"billingAddress"`
	ShippingAddress datatypes.JSONType[PostalAddress] `gorm:"type:jsonb;not null" json:"shippingAddress"`
	LineItems       datatypes.JSONSlice[LineItem]     `gorm:"type:jsonb;not null" json:"lineItems"`
	Total           decimal.Decimal                   `gorm:"type:numeric;not null" json:"total"`
	DocumentStatus  DocumentStatus                    `gorm:"type:varchar(20);not null;index" json:"documentStatus"`
	IdempotencyKey  *string                           `gorm:"type:varchar(255);uniqueIndex:idx_orders_client_idem" json:"-"`
	CreatedAt       time.Time                         `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                         `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (o Order) LineItemIDs() []string {
	ids := make([]string, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		ids = append(ids, li.ID)
	}
	return ids
}

func DocumentPath(orderID string) string {
	return "/orders/" + orderID
}
