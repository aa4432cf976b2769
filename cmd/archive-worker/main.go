package main

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/archive"
	"budget/internal/cli"
	"budget/internal/config"
	"budget/internal/log"
	"budget/internal/sheets"
	gsheet "budget/internal/sheets/google"
	mem "budget/internal/sheets/memory"
	"budget/internal/storage"
	"budget/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if err := cfg.ValidateExport(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	logger.InfoContext(ctx, "Starting archive worker", "exporter", cfg.ArchiveExporter)

	store := cli.InitStore(ctx, logger, cfg)
	defer store.Close()

	// Another process writes the archive, so reads are not cached here.
	archiveManager := archive.New(storage.NewDocuments(store.Store), nil)

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize exporter", log.FieldError, err, "exporter", cfg.ArchiveExporter)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(archiveManager, exporter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Startup failures are logged per month; the consumer still runs.
		if err := exportWorker.ExportAll(gctx); err != nil {
			logger.WarnContext(gctx, "Startup export incomplete", log.FieldError, err)
		}
		return nil
	})
	g.Go(func() error {
		return amqpClient.ConsumeSnapshotArchived(gctx, exportWorker.HandleSnapshotArchived)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Archive worker error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Archive worker stopped")
}

func newExporter(ctx context.Context, cfg *config.Config) (sheets.SnapshotExporter, error) {
	if cfg.ArchiveExporter == "memory" {
		return mem.New(), nil
	}
	return gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		SheetName:          cfg.GoogleSheetName,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
	})
}
