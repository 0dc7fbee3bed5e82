package docsystem

import (
	"context"

	"yogablocks/internal/domain/models/docsystem"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument creates a document directly (API, import) and indexes its links
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, documentID string) (*docsystem.Document, error)

	// ListDocuments lists documents with optional substring search, with previews
	ListDocuments(ctx context.Context, opts *docsystem.ListOptions) (*docsystem.ListResults, error)

	// ListTitles returns the id/title map used for link pickers and title resolution
	ListTitles(ctx context.Context, docType docsystem.DocType) ([]docsystem.TitleEntry, error)

	// UpdateDocument patches title/content; userID must own the document
	UpdateDocument(ctx context.Context, userID, documentID string, req *UpdateDocumentRequest) (*docsystem.Document, error)

	// DeleteDocument deletes a document; userID must own the document
	DeleteDocument(ctx context.Context, userID, documentID string) error

	// DuplicateDocument copies a document as "<title> (Copy)" owned by userID
	DuplicateDocument(ctx context.Context, userID, documentID string) (*docsystem.Document, error)

	// ListLinks returns the outgoing link index of a document
	ListLinks(ctx context.Context, documentID string) ([]docsystem.Link, error)

	// ListBacklinks returns links pointing at a document
	ListBacklinks(ctx context.Context, documentID string) ([]docsystem.Link, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	UserID  string            `json:"-"` // Set by handler from auth context, not from request body
	Title   string            `json:"title"`
	Content string            `json:"content"`
	DocType docsystem.DocType `json:"doc_type,omitempty"` // Default: user
}

// UpdateDocumentRequest represents a document update request.
// DeriveTitle re-derives the title from the (new or stored) content and wins over Title.
type UpdateDocumentRequest struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	DeriveTitle bool    `json:"-"`
}
