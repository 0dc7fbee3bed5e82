package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// MaintenanceService runs library-wide repairs from the command line.
type MaintenanceService interface {
	// Backfill reconciles the link index of every document
	Backfill(ctx context.Context) (*docsystem.BackfillReport, error)

	// Relink points library links at the document their label names, by
	// normalized title. With dryRun nothing is written.
	Relink(ctx context.Context, dryRun bool) (*docsystem.RelinkReport, error)
}
