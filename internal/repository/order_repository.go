package repository

import (
	"context"
	"time"

	"salesnote/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	//clientIDが空なら全件
	List(ctx context.Context, clientID string) ([]model.Order, error)

	//冪等キーが重複したら ErrConflict
	Create(ctx context.Context, order model.Order) error
	UpdateDocumentStatus(ctx context.Context, orderID string, status model.DocumentStatus) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, clientID string, key string) (model.Order, bool, error)

	//PDFが未作成のまま残っている注文
	ListPendingDocuments(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error)
	ListPendingByClientID(ctx context.Context, clientID string) ([]model.Order, error)
}
