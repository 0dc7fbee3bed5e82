package docsystem

import (
	"context"
	"io/fs"
)

// ImportService handles bulk document import
type ImportService interface {
	// ImportFS imports every supported file under fsys (a directory or an
	// opened zip archive) as documents owned by userID. Existing documents
	// are matched by normalized title; with overwrite they are updated,
	// otherwise skipped.
	ImportFS(ctx context.Context, userID string, fsys fs.FS, overwrite bool) (*ImportResult, error)
}

// ImportResult represents the result of a bulk import operation
type ImportResult struct {
	Summary   ImportSummary    `json:"summary"`
	Errors    []ImportError    `json:"errors"`
	Documents []ImportDocument `json:"documents"`
}

// ImportSummary contains aggregate statistics for an import operation
type ImportSummary struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	TotalFiles int `json:"total_files"`
}

// ImportError represents an error that occurred during import
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportDocument represents a processed document
type ImportDocument struct {
	ID     string `json:"id"`
	File   string `json:"file"`
	Title  string `json:"title"`
	Action string `json:"action"` // "created", "updated", or "skipped"
}
