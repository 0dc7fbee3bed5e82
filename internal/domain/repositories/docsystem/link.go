package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// LinkRepository defines data access operations for the document_links relation.
// Any returned error is a store error; callers do not distinguish subtypes.
type LinkRepository interface {
	// ListBySource returns all links of a source document ordered by position.
	// No links is an empty slice, not an error.
	ListBySource(ctx context.Context, sourceID string) ([]docsystem.Link, error)

	// ListByTarget returns links pointing at a document (backlinks), ordered by creation
	ListByTarget(ctx context.Context, targetID string) ([]docsystem.Link, error)

	// Upsert updates the row identified by link.ID when it exists; otherwise it
	// inserts keyed on (source_id, target_id), updating label and position on conflict.
	// link.ID and link.CreatedAt are filled in from the stored row.
	Upsert(ctx context.Context, link *docsystem.Link) error

	// Delete removes a single link row. Deleting a missing row succeeds.
	Delete(ctx context.Context, id string) error

	// DeleteBySource removes every link row of a source document
	DeleteBySource(ctx context.Context, sourceID string) error
}
