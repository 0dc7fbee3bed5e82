package docsystem

import (
	"fmt"
)

// Default list configuration values
const (
	DefaultListLimit  = 50
	DefaultListOffset = 0
	MaxListLimit      = 200
)

// ListOptions configures how documents are listed and searched.
// Query is a case-insensitive substring matched against title OR content.
type ListOptions struct {
	// Query is the search string; empty lists everything
	Query string

	// DocType optionally filters to a single document type
	DocType DocType

	// Pagination
	Limit  int // Number of results to return (default: 50)
	Offset int // Number of results to skip (default: 0)
}

// ApplyDefaults fills in default values for unset fields
func (opts *ListOptions) ApplyDefaults() {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = DefaultListOffset
	}
}

// Validate checks that values are reasonable
func (opts *ListOptions) Validate() error {
	if opts.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if opts.Limit > MaxListLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxListLimit, opts.Limit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	if opts.DocType != "" && !opts.DocType.Valid() {
		return fmt.Errorf("unknown doc_type: %q", opts.DocType)
	}
	return nil
}

// ListResults contains one page of documents with pagination metadata
type ListResults struct {
	Documents []Document `json:"documents"`

	// TotalCount is the total number of matches (regardless of limit/offset)
	TotalCount int `json:"total_count"`

	// HasMore is equivalent to (Offset + len(Documents)) < TotalCount
	HasMore bool `json:"has_more"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewListResults creates a ListResults with calculated HasMore flag
func NewListResults(docs []Document, totalCount int, opts *ListOptions) *ListResults {
	if docs == nil {
		docs = []Document{}
	}
	return &ListResults{
		Documents:  docs,
		TotalCount: totalCount,
		HasMore:    (opts.Offset + len(docs)) < totalCount,
		Offset:     opts.Offset,
		Limit:      opts.Limit,
	}
}
