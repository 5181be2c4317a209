package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const sweepBatchSize = 50

// usecase.OrderUsecase が満たす
type PendingResumer interface {
	ResumePendingDocuments(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}

// PDF未作成のまま残った注文を定期的に仕上げる
type DocumentSweeper struct {
	orders   PendingResumer
	interval time.Duration
	age      time.Duration
}

func NewDocumentSweeper(orders PendingResumer, interval, age time.Duration) *DocumentSweeper {
	return &DocumentSweeper{orders: orders, interval: interval, age: age}
}

// ctxが終わるまでブロックする
func (s *DocumentSweeper) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.Sweep(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errors.Wrap(err, "register sweep job")
	}

	log.Info().Dur("interval", s.interval).Dur("pending_age", s.age).Msg("document sweeper started")
	scheduler.Start()

	<-ctx.Done()

	if err := scheduler.Shutdown(); err != nil {
		return errors.Wrap(err, "shutdown scheduler")
	}
	log.Info().Msg("document sweeper stopped")
	return nil
}

// 1回分。バッチが埋まっている間は続ける
func (s *DocumentSweeper) Sweep(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := s.orders.ResumePendingDocuments(ctx, s.age, sweepBatchSize)
		if err != nil {
			log.Error().Err(err).Msg("sweep pending documents failed")
			return total
		}
		total += n
		if n < sweepBatchSize {
			break
		}
	}
	if total > 0 {
		log.Info().Int("count", total).Msg("pending documents completed")
	}
	return total
}
