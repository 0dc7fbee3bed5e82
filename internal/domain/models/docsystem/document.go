package docsystem

import (
	"time"
)

// DocType distinguishes catalog entries from user notes.
type DocType string

const (
	DocTypeAsana  DocType = "asana"
	DocTypeUser   DocType = "user"
	DocTypeSystem DocType = "system"
)

// UntitledTitle is used when no title can be derived from a document body.
const UntitledTitle = "Untitled"

// Valid reports whether t is a known document type.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeAsana, DocTypeUser, DocTypeSystem:
		return true
	}
	return false
}

type Document struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"` // Markdown content, may embed [label](/library/<id>) links
	DocType   DocType   `json:"doc_type" db:"doc_type"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	Preview   string    `json:"preview,omitempty"` // Computed for list views, not stored in DB
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DocumentPatch carries the mutable fields of a document. Nil means unchanged.
type DocumentPatch struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether the patch changes nothing.
func (p DocumentPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// TitleEntry is the id/title projection used for title maps and link pickers.
type TitleEntry struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	DocType DocType `json:"doc_type"`
}
