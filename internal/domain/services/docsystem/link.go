package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// LinkReconciler keeps the link index of one source document consistent with its content.
type LinkReconciler interface {
	// Reconcile extracts links from markdown and applies the inserts, updates and
	// deletes needed so the stored links match. It never fails: store errors are
	// logged and counted in the result.
	Reconcile(ctx context.Context, sourceID, markdown string) *docsystem.ReconcileResult
}
