package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"salesnote/internal/domain/model"
	repo "salesnote/internal/repository"
)

// =====================
// in-memory stores（シナリオテスト用）
// =====================

type memStore struct {
	mu        sync.Mutex
	products  map[string]model.Product
	lineItems []model.LineItem
	addresses []model.Address
	orders    map[string]model.Order
	documents map[string]model.Document
	nextAddr  int64
	txErr     error
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]model.Product{},
		orders:    map[string]model.Order{},
		documents: map[string]model.Document{},
	}
}

func (s *memStore) stagedFor(clientID string) []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.LineItem
	for _, li := range s.lineItems {
		if li.ClientID == clientID {
			out = append(out, li)
		}
	}
	return out
}

func (s *memStore) order(id string) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) documentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.documents)
}

type memProducts struct{ s *memStore }

func (r memProducts) FindByID(ctx context.Context, id string) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memProducts) Upsert(ctx context.Context, p model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

type memLineItems struct{ s *memStore }

func (r memLineItems) Create(ctx context.Context, item model.LineItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lineItems = append(r.s.lineItems, item)
	return nil
}

func (r memLineItems) ListByClientID(ctx context.Context, clientID string) ([]model.LineItem, error) {
	return r.s.stagedFor(clientID), nil
}

func (r memLineItems) DeleteByIDs(ctx context.Context, clientID string, ids []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var kept []model.LineItem
	var n int64
	for _, li := range r.s.lineItems {
		if li.ClientID == clientID && drop[li.ID] {
			n++
			continue
		}
		kept = append(kept, li)
	}
	r.s.lineItems = kept
	return n, nil
}

type memAddresses struct{ s *memStore }

func (r memAddresses) Create(ctx context.Context, a model.Address) (model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextAddr++
	a.ID = r.s.nextAddr
	r.s.addresses = append(r.s.addresses, a)
	return a, nil
}

func (r memAddresses) ListByClientID(ctx context.Context, clientID string) ([]model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Address
	for _, a := range r.s.addresses {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memOrders struct{ s *memStore }

func (r memOrders) FindByID(ctx context.Context, id string) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r memOrders) List(ctx context.Context, clientID string) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.s.orders {
		if clientID == "" || o.ClientID == clientID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memOrders) Create(ctx context.Context, o model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.IdempotencyKey != nil {
		for _, existing := range r.s.orders {
			if existing.ClientID == o.ClientID && existing.IdempotencyKey != nil && *existing.IdempotencyKey == *o.IdempotencyKey {
				return repo.ErrConflict
			}
		}
	}
	r.s.orders[o.ID] = o
	return nil
}

func (r memOrders) UpdateDocumentStatus(ctx context.Context, id string, status model.DocumentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.DocumentStatus = status
	r.s.orders[id] = o
	return nil
}

func (r memOrders) FindByIdempotencyKey(ctx context.Context, clientID, key string) (model.Order, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ClientID == clientID && o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			return o, true, nil
		}
	}
	return model.Order{}, false, nil
}

func (r memOrders) ListPendingDocuments(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Order
	for _, o := range r.s.orders {
		if o.DocumentStatus == model.DocumentStatusPending && o.CreatedAt.Before(createdBefore) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrders) ListPendingByClientID(ctx context.Context, clientID string) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Order
	for _, o := range r.s.orders {
		if o.ClientID == clientID && o.DocumentStatus == model.DocumentStatusPending {
			out = append(out, o)
		}
	}
	return out, nil
}

type memDocuments struct{ s *memStore }

func (r memDocuments) Store(ctx context.Context, orderID string, content []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.documents[orderID] = model.Document{
		OrderID:     orderID,
		ObjectKey:   model.DocumentObjectKey(orderID),
		Content:     content,
		ContentType: model.DocumentContentType,
	}
	return nil
}

func (r memDocuments) FetchAndMarkRead(ctx context.Context, orderID string) (model.Document, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[orderID]
	if !ok {
		return model.Document{}, false, repo.ErrNotFound
	}
	was := d.ReadFlag
	d.ReadFlag = true
	r.s.documents[orderID] = d
	return d, was, nil
}

type memTx struct{ s *memStore }

type memTxRepos struct{ s *memStore }

func (r memTxRepos) Orders() repo.OrderRepository       { return memOrders{r.s} }
func (r memTxRepos) LineItems() repo.LineItemRepository { return memLineItems{r.s} }

func (tm memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.s.mu.Lock()
	err := tm.s.txErr
	tm.s.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(memTxRepos{tm.s})
}

// =====================
// collaborators
// =====================

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type renderFunc func(order model.Order, now time.Time) ([]byte, error)

func (f renderFunc) Render(order model.Order, now time.Time) ([]byte, error) { return f(order, now) }

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][2]string
}

func (n *recordingNotifier) Notify(orderID, clientID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, [2]string{orderID, clientID})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type nopLocker struct{}

func (nopLocker) Lock(ctx context.Context, clientID string) (func(), error) {
	return func() {}, nil
}
