package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// EditorService hosts the create/view/edit flow of the document editor surface.
type EditorService interface {
	// OpenCreate pre-creates an empty draft owned by userID so an id exists for
	// link targeting, and returns a session ready for editing it
	OpenCreate(ctx context.Context, userID string) (*docsystem.EditorSession, error)

	// OpenEdit loads a document the user owns for editing
	OpenEdit(ctx context.Context, userID, documentID string) (*docsystem.EditorSession, error)

	// OpenView renders a document read-only
	OpenView(ctx context.Context, documentID string) (*docsystem.ReadView, error)

	// Save serializes the edited body, persists title and content, then
	// reconciles links. Link sync failures never fail the save.
	Save(ctx context.Context, userID, documentID string, req *SaveRequest) (*docsystem.SaveResult, error)
}

// SaveRequest is an editor save body
type SaveRequest struct {
	Format docsystem.ContentFormat `json:"format"` // "html" (default) or "markdown"
	Body   string                  `json:"body"`
}
