package model

import "time"

const DocumentContentType = "application/pdf"

// アーカイブされたPDF
type Document struct {
	OrderID     string    `gorm:"primaryKey;type:varchar(36)"`
	ObjectKey   string    `gorm:"type:varchar(255);not null"`
	Content     []byte    `gorm:"type:bytea;not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	ReadFlag    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

func DocumentObjectKey(orderID string) string {
	return orderID + ".pdf"
}

func DocumentFileName(orderID string) string {
	return "notaventa-" + orderID + ".pdf"
}
