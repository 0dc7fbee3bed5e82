package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for documents.
// Implementations perform no ownership checks; authorization is a service concern.
type DocumentRepository interface {
	// Create inserts a document and fills in ID, CreatedAt and UpdatedAt
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document by ID, wrapping domain.ErrNotFound when missing
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// Update applies the patch and always refreshes updated_at.
	// Returns the document as stored after the update.
	Update(ctx context.Context, id string, patch docsystem.DocumentPatch) (*docsystem.Document, error)

	// Delete removes a document unconditionally. Link rows owned by it cascade.
	Delete(ctx context.Context, id string) error

	// List returns one page of documents matching the options, newest first,
	// and the total number of matches
	List(ctx context.Context, opts *docsystem.ListOptions) ([]docsystem.Document, int, error)

	// ListTitles returns id/title pairs, optionally filtered by type ("" = all)
	ListTitles(ctx context.Context, docType docsystem.DocType) ([]docsystem.TitleEntry, error)
}
