package repository

import (
	"context"
	"errors"

	"salesnote/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// 一意制約違反（冪等キーの重複など）
	ErrConflict = errors.New("conflict")
)

// 商品の参照。Upsertは初期データ投入用。
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
	Upsert(ctx context.Context, p model.Product) error
}
