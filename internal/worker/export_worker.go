package worker

import (
	"context"
	"errors"
	"fmt"

	"budget/internal/amqp"
	"budget/internal/archive"
	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/sheets"
)

// SnapshotSource is the read side of the archive.
type SnapshotSource interface {
	Get(ctx context.Context, month string) (core.MonthlySnapshot, error)
	List(ctx context.Context) ([]core.MonthlySnapshot, error)
}

// ExportWorker copies archived months to an external report when the
// rollover engine announces them.
type ExportWorker struct {
	archive  SnapshotSource
	exporter sheets.SnapshotExporter
	logger   *log.Logger
}

func NewExportWorker(archive SnapshotSource, exporter sheets.SnapshotExporter) *ExportWorker {
	return &ExportWorker{
		archive:  archive,
		exporter: exporter,
		logger:   log.ForComponent(log.ComponentWorker),
	}
}

// HandleSnapshotArchived exports the announced month. A month that is no
// longer archived is skipped so the message is not redelivered forever.
func (w *ExportWorker) HandleSnapshotArchived(ctx context.Context, msg *amqp.SnapshotArchivedMessage) error {
	w.logger.InfoContext(ctx, "Processing snapshot archived message",
		log.FieldMonth, msg.Month,
		"archived_at", msg.ArchivedAt)

	snap, err := w.archive.Get(ctx, msg.Month)
	if errors.Is(err, archive.ErrNotFound) {
		w.logger.WarnContext(ctx, "Archived month no longer present, skipping export", log.FieldMonth, msg.Month)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get archived month %s: %w", msg.Month, err)
	}

	if err := w.exporter.ExportSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("export month %s: %w", msg.Month, err)
	}

	w.logger.InfoContext(ctx, "Exported archived month",
		log.FieldMonth, msg.Month,
		log.FieldOperation, log.OpExport)
	return nil
}

// ExportAll re-exports every archived month. It runs once at startup to
// cover messages published while the worker was down.
func (w *ExportWorker) ExportAll(ctx context.Context) error {
	snaps, err := w.archive.List(ctx)
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}
	if len(snaps) == 0 {
		w.logger.InfoContext(ctx, "No archived months to export on startup")
		return nil
	}

	var failed int
	for _, snap := range snaps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.exporter.ExportSnapshot(ctx, snap); err != nil {
			failed++
			w.logger.ErrorContext(ctx, "Failed to export archived month during startup",
				log.FieldMonth, snap.Month,
				log.FieldError, err)
		}
	}

	w.logger.InfoContext(ctx, "Startup export completed",
		log.FieldOperation, log.OpStartup,
		log.FieldCount, len(snaps),
		"failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d archived months failed to export", failed, len(snaps))
	}
	return nil
}
