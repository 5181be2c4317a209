package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesnote/internal/config"
	"salesnote/internal/handler"
	"salesnote/internal/infra/db"
	"salesnote/internal/infra/lock"
	"salesnote/internal/infra/notify"
	infraRepo "salesnote/internal/infra/repository"
	"salesnote/internal/metrics"
	"salesnote/internal/render"
	"salesnote/internal/server"
	"salesnote/internal/usecase"
	"salesnote/internal/worker"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		return errors.Wrap(err, "migrate")
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	lineItemRepo := infraRepo.NewLineItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	documentRepo := infraRepo.NewDocumentGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	sender, closeSender, err := newSender(cfg.Notification)
	if err != nil {
		return err
	}
	defer closeSender()

	dispatcher := notify.NewDispatcher(sender, cfg.Server.APIURL,
		cfg.Notification.Workers, cfg.Notification.QueueSize, cfg.Notification.Timeout)
	dispatcher.Start(ctx)

	locker, closeLocker := newLocker(cfg.Redis)
	defer closeLocker()

	renderer := render.New(render.WithLocation(cfg.Document.Location))

	//Usecase生成
	lineItemUC := usecase.NewLineItemUsecase(productRepo, lineItemRepo, idGen, clock)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	orderUC := usecase.NewOrderUsecase(usecase.OrderDeps{
		Tx:        txm,
		Orders:    orderRepo,
		LineItems: lineItemRepo,
		Addresses: addressRepo,
		Documents: documentRepo,
		Renderer:  renderer,
		Notifier:  dispatcher,
		Locker:    locker,
		IDs:       idGen,
		Clock:     clock,
		APIURL:    cfg.Server.APIURL,
	})

	//Handler生成
	collector := metrics.NewCollector()
	srv := server.New(cfg, server.Handlers{
		LineItems: handler.NewLineItemHandler(lineItemUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Addresses: handler.NewAddressHandler(addressUC),
		Metrics:   handler.NewMetricsHandler(collector),
	}, collector)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	if cfg.Worker.SweepInterval > 0 {
		sweeper := worker.NewDocumentSweeper(orderUC, cfg.Worker.SweepInterval, cfg.Worker.PendingAge)
		g.Go(func() error { return sweeper.Run(gctx) })
	}

	//シグナルかどれかのエラーで止める
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
		//HTTPが止まってから通知キューを流し切る
		if err := dispatcher.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("notification drain incomplete")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("stopped")
	return nil
}

func newSender(cfg config.NotificationConfig) (notify.Sender, func(), error) {
	switch cfg.Transport {
	case config.TransportAMQP:
		s, err := notify.NewAMQPSender(cfg.AMQPURL, cfg.Exchange)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connect amqp")
		}
		return s, closer(s), nil
	default:
		return notify.NewHTTPSender(cfg.URL, cfg.Path, cfg.Timeout), func() {}, nil
	}
}

// Redisが有効ならプロセスをまたいで排他する
func newLocker(cfg config.RedisConfig) (usecase.ClientLocker, func()) {
	if !cfg.Enabled {
		return lock.NewLocal(), func() {}
	}
	client := lock.NewRedisClient(cfg)
	return lock.NewRedis(client, cfg.LockTTL), closer(client)
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}
