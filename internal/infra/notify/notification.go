package notify

import (
	"context"

	"github.com/pkg/errors"
)

// 通知の失敗はログに出すだけで呼び出し元には返さない
var ErrDeliveryFailed = errors.New("notification delivery failed")

// 通知サービスとの取り決め（フィールド名は相手側に合わせる）
type Notification struct {
	OrderID      string `json:"notaVentaId"`
	ClientID     string `json:"clienteId"`
	DownloadLink string `json:"downloadLink"`
}

type Sender interface {
	Send(ctx context.Context, n Notification) error
}
