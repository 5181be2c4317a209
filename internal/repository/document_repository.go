package repository

import (
	"context"

	"salesnote/internal/domain/model"
)

// PDFのアーカイブ
type DocumentRepository interface {
	//同じ注文IDなら上書きし、既読フラグは false に戻す
	Store(ctx context.Context, orderID string, content []byte) error

	//取得して既読にする。wasRead は取得前のフラグ
	FetchAndMarkRead(ctx context.Context, orderID string) (doc model.Document, wasRead bool, err error)
}
