package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// ReadViewService renders stored documents for display.
type ReadViewService interface {
	// RenderDocument loads a document and renders its read view
	RenderDocument(ctx context.Context, documentID string) (*docsystem.ReadView, error)

	// Render renders an already loaded document
	Render(ctx context.Context, doc *docsystem.Document) (*docsystem.ReadView, error)
}
