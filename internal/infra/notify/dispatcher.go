package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"salesnote/internal/domain/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Dispatcher は通知をキューに積んでワーカーが1回だけ送る。
// Notify は待たない。失敗・キュー溢れはログのみ。
type Dispatcher struct {
	sender  Sender
	apiURL  string
	timeout time.Duration
	workers int

	mu     sync.RWMutex
	closed bool
	jobs   chan Notification
	group  *errgroup.Group
}

func NewDispatcher(sender Sender, apiURL string, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		sender:  sender,
		apiURL:  strings.TrimRight(apiURL, "/"),
		timeout: timeout,
		workers: workers,
		jobs:    make(chan Notification, queueSize),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			d.work(gctx)
			return nil
		})
	}
	d.group = g
}

func (d *Dispatcher) Notify(orderID, clientID string) {
	n := Notification{
		OrderID:      orderID,
		ClientID:     clientID,
		DownloadLink: d.apiURL + model.DocumentPath(orderID),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Warn().Str("order_id", orderID).Msg("notification dropped: dispatcher stopped")
		return
	}

	select {
	case d.jobs <- n:
	default:
		log.Warn().Str("order_id", orderID).Msg("notification dropped: queue full")
	}
}

// 積まれている分を送り切ってから止まる
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	if d.group == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		_ = d.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work(ctx context.Context) {
	for n := range d.jobs {
		d.deliver(ctx, n)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, n); err != nil {
		log.Error().Err(err).
			Str("order_id", n.OrderID).
			Str("client_id", n.ClientID).
			Msg("notification failed")
		return
	}
	log.Info().Str("order_id", n.OrderID).Msg("notification sent")
}
