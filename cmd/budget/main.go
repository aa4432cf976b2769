package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/archive"
	"budget/internal/cache"
	"budget/internal/cli"
	"budget/internal/core"
	apphttp "budget/internal/http"
	"budget/internal/ledger"
	"budget/internal/log"
	"budget/internal/rollover"
	"budget/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	store := cli.InitStore(ctx, logger, cfg)
	defer store.Close()

	docs := storage.NewDocuments(store.Store)
	ledgerEngine := ledger.New(ctx, docs)

	archiveCache := cache.NewLRUCache[core.MonthlySnapshot](cfg.ArchiveCacheSize, cfg.ArchiveCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(archiveCache)
	archiveManager := archive.New(docs, archiveCache)

	opts := []rollover.Option{}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Rollovers still work; the archive worker catches up on startup.
			logger.ErrorContext(ctx, "Failed to initialize AMQP client, archive events disabled", log.FieldError, err)
		} else {
			defer amqpClient.Close()
			opts = append(opts, rollover.WithNotifier(amqpClient))
			logger.InfoContext(ctx, "AMQP publisher initialized",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	} else {
		logger.InfoContext(ctx, "AMQP disabled - no AMQP_URL provided")
	}

	rolloverEngine := rollover.New(ledgerEngine, archiveManager, docs, opts...)
	scheduler := rollover.NewScheduler(rolloverEngine, cfg.RolloverCheckInterval)

	ready := func(ctx context.Context) error {
		_, _, err := store.Store.Get(ctx, storage.KeyCurrentMonth)
		return err
	}
	srv := apphttp.NewServer(":"+cfg.Port, ledgerEngine, rolloverEngine, archiveManager, ready)

	logger.InfoContext(ctx, "Starting budget server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"rollover_check_interval", cfg.RolloverCheckInterval.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return scheduler.Run(gctx) })
	g.Go(func() error { return cacheManager.Run(gctx, time.Minute) })

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
