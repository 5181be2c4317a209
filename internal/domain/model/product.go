package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品マスタ（参照のみ。価格は明細登録時にコピーする）
type Product struct {
	ID        string          `gorm:"primaryKey;type:varchar(255)" json:"id"`
	BasePrice decimal.Decimal `gorm:"type:numeric;not null" json:"basePrice"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
