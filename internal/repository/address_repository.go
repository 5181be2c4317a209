package repository

import (
	"context"

	"salesnote/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//顧客の住所一覧（id昇順）
	ListByClientID(ctx context.Context, clientID string) ([]model.Address, error)
}
