package sheets

import (
	"context"

	"budget/internal/core"
)

// SnapshotExporter writes an archived month to an external report.
// Exporting the same month twice must not duplicate it.
type SnapshotExporter interface {
	ExportSnapshot(ctx context.Context, snap core.MonthlySnapshot) error
}
