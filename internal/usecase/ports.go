package usecase

import (
	"context"
	"time"

	"salesnote/internal/domain/model"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

// 注文をPDFにする（副作用なし）
type DocumentRenderer interface {
	Render(order model.Order, now time.Time) ([]byte, error)
}

// 通知はバックグラウンドで送る。呼び出し側は待たない
type Notifier interface {
	Notify(orderID, clientID string)
}

// 顧客ごとの排他
type ClientLocker interface {
	Lock(ctx context.Context, clientID string) (unlock func(), err error)
}
