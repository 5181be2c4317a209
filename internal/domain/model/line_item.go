package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文前の明細
// 登録時点の単価と金額を必ず保存。
type LineItem struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientID  string          `gorm:"type:varchar(255);not null;index" json:"clientId"`
	ProductID string          `gorm:"type:varchar(255);not null" json:"productId"`
	Quantity  decimal.Decimal `gorm:"type:numeric;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null" json:"unitPrice"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	CreatedAt time.Time       `gorm:"not null" json:"createdAt"`
}

// amount = quantity * unitPrice
func NewLineItem(id, clientID, productID string, quantity, unitPrice decimal.Decimal, now time.Time) LineItem {
	return LineItem{
		ID:        id,
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    quantity.Mul(unitPrice),
		CreatedAt: now,
	}
}
