package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"salesnote/internal/domain/model"
	repo "salesnote/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	msgOrderCreated        = "Nota de venta creada y PDF generado"
	msgOrderFailed         = "Error al crear nota de venta"
	msgShippingRequired    = "El cliente debe tener una dirección de envío registrada"
	msgInvalidIdempotency  = "idempotency key inválida"
	msgListOrdersFailed    = "Error al obtener notas de venta"
	msgDownloadFailed      = "Error al descargar nota de venta"
	msgOrderNotFound       = "Nota de venta no encontrada"
	msgInvalidOrderID      = "id es requerido"
	maxIdempotencyKeyBytes = 255
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	lineItems repo.LineItemRepository
	addresses repo.AddressRepository
	documents repo.DocumentRepository
	renderer  DocumentRenderer
	notifier  Notifier
	locker    ClientLocker
	ids       IDGenerator
	clock     Clock
	apiURL    string
}

// 依存が多いので構造体で渡す
type OrderDeps struct {
	Tx        repo.TransactionManager
	Orders    repo.OrderRepository
	LineItems repo.LineItemRepository
	Addresses repo.AddressRepository
	Documents repo.DocumentRepository
	Renderer  DocumentRenderer
	Notifier  Notifier
	Locker    ClientLocker
	IDs       IDGenerator
	Clock     Clock
	APIURL    string
}

func NewOrderUsecase(d OrderDeps) *OrderUsecase {
	return &OrderUsecase{
		tx:        d.Tx,
		orders:    d.Orders,
		lineItems: d.LineItems,
		addresses: d.Addresses,
		documents: d.Documents,
		renderer:  d.Renderer,
		notifier:  d.Notifier,
		locker:    d.Locker,
		ids:       d.IDs,
		clock:     d.Clock,
		apiURL:    strings.TrimRight(d.APIURL, "/"),
	}
}

type CreateOrderInput struct {
	ClientID       string
	IdempotencyKey string
}

type CreateOrderOutput struct {
	ID          string          `json:"id"`
	Message     string          `json:"message"`
	Total       decimal.Decimal `json:"total"`
	DocumentURL string          `json:"documentUrl"`
	ClientID    string          `json:"clientId"`
}

type DocumentOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return CreateOrderOutput{}, validationError(msgInvalidClientID)
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyBytes {
		return CreateOrderOutput{}, validationError(msgInvalidIdempotency)
	}

	//同じ顧客の注文作成は直列に
	unlock, err := u.locker.Lock(ctx, clientID)
	if err != nil {
		return CreateOrderOutput{}, dependencyError(msgOrderFailed, err)
	}
	defer unlock()

	// 同じキーなら同じ結果
	if key != "" {
		existing, found, err := u.orders.FindByIdempotencyKey(ctx, clientID, key)
		if err != nil {
			return CreateOrderOutput{}, dependencyError(msgOrderFailed, err)
		}
		if found {
			return u.resume(ctx, existing)
		}
	}

	//前回失敗して残った注文があればそれを仕上げて返す
	pending, err := u.orders.ListPendingByClientID(ctx, clientID)
	if err != nil {
		return CreateOrderOutput{}, dependencyError(msgOrderFailed, err)
	}
	if len(pending) > 0 {
		return u.resume(ctx, oldest(pending))
	}

	//住所（配送先は必須）
	addrs, err := u.addresses.ListByClientID(ctx, clientID)
	if err != nil {
		return CreateOrderOutput{}, dependencyError(msgOrderFailed, err)
	}
	billing, shipping := pickAddresses(addrs)
	if shipping == nil {
		return CreateOrderOutput{}, validationError(msgShippingRequired)
	}

	items, err := u.lineItems.ListByClientID(ctx, clientID)
	if err != nil {
		return CreateOrderOutput{}, dependencyError(msgOrderFailed, err)
	}
	if items == nil {
		items = []model.LineItem{}
	}

	order := model.Order{
		ID:              u.ids.NewID(),
		ClientID:        clientID,
		BillingAddress:  datatypes.NewJSONType(model.BillingWithFallback(billing, *shipping)),
		ShippingAddress: datatypes.NewJSONType(*shipping),
		LineItems:       datatypes.NewJSONSlice(items),
		Total:           sumAmounts(items),
		DocumentStatus:  model.DocumentStatusPending,
		CreatedAt:       u.clock.Now(),
	}
	if key != "" {
		order.IdempotencyKey = &key
	}

	if err := u.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repo.ErrConflict) && key != "" {
			//競合したらもう一回検索
			existing, found, findErr := u.orders.FindByIdempotencyKey(ctx, clientID, key)
			if findErr == nil && found {
				return u.resume(ctx, existing)
			}
		}
		return CreateOrderOutput{}, dependencyError(msgOrderFailed, err)
	}

	if err := u.complete(ctx, order); err != nil {
		return CreateOrderOutput{}, err
	}
	return u.output(order), nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context, clientID string) ([]model.Order, error) {
	list, err := u.orders.List(ctx, strings.TrimSpace(clientID))
	if err != nil {
		return nil, dependencyError(msgListOrdersFailed, err)
	}
	return list, nil
}

// 取得したら既読にする。PDFが無ければ注文から作り直す
func (u *OrderUsecase) FetchDocument(ctx context.Context, orderID string) (DocumentOutput, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return DocumentOutput{}, validationError(msgInvalidOrderID)
	}

	doc, _, err := u.documents.FetchAndMarkRead(ctx, orderID)
	if err == nil {
		return toDocumentOutput(doc), nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return DocumentOutput{}, dependencyError(msgDownloadFailed, err)
	}

	if err := u.rebuildDocument(ctx, orderID); err != nil {
		return DocumentOutput{}, err
	}

	doc, _, err = u.documents.FetchAndMarkRead(ctx, orderID)
	if err != nil {
		return DocumentOutput{}, dependencyError(msgDownloadFailed, err)
	}
	return toDocumentOutput(doc), nil
}

// PDF未作成の注文を仕上げる（定期ジョブ用）。仕上げた件数を返す
func (u *OrderUsecase) ResumePendingDocuments(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	pending, err := u.orders.ListPendingDocuments(ctx, u.clock.Now().Add(-olderThan), limit)
	if err != nil {
		return 0, dependencyError(msgOrderFailed, err)
	}

	done := 0
	for _, o := range pending {
		if ctx.Err() != nil {
			return done, ctx.Err()
		}
		if err := u.finishPending(ctx, o.ClientID, o.ID); err != nil {
			log.Warn().Err(err).Str("order_id", o.ID).Msg("resume pending document failed")
			continue
		}
		done++
	}
	return done, nil
}

func (u *OrderUsecase) rebuildDocument(ctx context.Context, orderID string) error {
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundError(msgOrderNotFound)
	}
	if err != nil {
		return dependencyError(msgDownloadFailed, err)
	}

	if order.DocumentStatus == model.DocumentStatusPending {
		return u.finishPending(ctx, order.ClientID, order.ID)
	}

	//READYなのにPDFが無い場合は作り直すだけ
	return u.archive(ctx, order)
}

// ロックを取ってから状態を読み直す
func (u *OrderUsecase) finishPending(ctx context.Context, clientID, orderID string) error {
	unlock, err := u.locker.Lock(ctx, clientID)
	if err != nil {
		return dependencyError(msgOrderFailed, err)
	}
	defer unlock()

	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return dependencyError(msgOrderFailed, err)
	}
	if order.DocumentStatus != model.DocumentStatusPending {
		return nil
	}
	return u.complete(ctx, order)
}

func (u *OrderUsecase) resume(ctx context.Context, order model.Order) (CreateOrderOutput, error) {
	if order.DocumentStatus == model.DocumentStatusPending {
		if err := u.complete(ctx, order); err != nil {
			return CreateOrderOutput{}, err
		}
	}
	return u.output(order), nil
}

// PDF作成→保存→明細削除とREADY（同一トランザクション）→通知
func (u *OrderUsecase) complete(ctx context.Context, order model.Order) error {
	if err := u.archive(ctx, order); err != nil {
		return err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//集計時に読んだIDだけ消す
		if _, err := r.LineItems().DeleteByIDs(ctx, order.ClientID, order.LineItemIDs()); err != nil {
			return err
		}
		return r.Orders().UpdateDocumentStatus(ctx, order.ID, model.DocumentStatusReady)
	})
	if err != nil {
		return dependencyError(msgOrderFailed, err)
	}

	//コミット後に1回だけ
	u.notifier.Notify(order.ID, order.ClientID)
	return nil
}

func (u *OrderUsecase) archive(ctx context.Context, order model.Order) error {
	content, err := u.renderer.Render(order, u.clock.Now())
	if err != nil {
		return dependencyError(msgOrderFailed, err)
	}
	if err := u.documents.Store(ctx, order.ID, content); err != nil {
		return dependencyError(msgOrderFailed, err)
	}
	return nil
}

func oldest(orders []model.Order) model.Order {
	first := orders[0]
	for _, o := range orders[1:] {
		if o.CreatedAt.Before(first.CreatedAt) {
			first = o
		}
	}
	return first
}

func (u *OrderUsecase) output(order model.Order) CreateOrderOutput {
	return CreateOrderOutput{
		ID:          order.ID,
		Message:     msgOrderCreated,
		Total:       order.Total,
		DocumentURL: u.apiURL + model.DocumentPath(order.ID),
		ClientID:    order.ClientID,
	}
}

// 最初の請求先（任意）と最初の配送先
func pickAddresses(addrs []model.Address) (*model.PostalAddress, *model.PostalAddress) {
	var billing, shipping *model.PostalAddress
	for _, a := range addrs {
		switch a.AddressType {
		case model.AddressTypeBilling:
			if billing == nil {
				p := a.Postal()
				billing = &p
			}
		case model.AddressTypeShipping:
			if shipping == nil {
				p := a.Postal()
				shipping = &p
			}
		}
	}
	return billing, shipping
}

func sumAmounts(items []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

func toDocumentOutput(doc model.Document) DocumentOutput {
	return DocumentOutput{
		FileName:    model.DocumentFileName(doc.OrderID),
		ContentType: doc.ContentType,
		Content:     doc.Content,
	}
}
