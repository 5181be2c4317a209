package repository

import (
	"context"

	"salesnote/internal/domain/model"
)

// 注文前の明細置き場
type LineItemRepository interface {
	Create(ctx context.Context, item model.LineItem) error

	//顧客の明細を登録順で返す
	ListByClientID(ctx context.Context, clientID string) ([]model.LineItem, error)

	//渡したIDだけ消す（後から追加された明細は残る）
	DeleteByIDs(ctx context.Context, clientID string, ids []string) (int64, error)
}
