package docsystem

import "time"

// LibraryPathPrefix is the URL prefix that marks a document-to-document reference.
const LibraryPathPrefix = "/library/"

// Link is a persisted, positioned reference from one document to another.
type Link struct {
	ID        string    `json:"id" db:"id"`
	SourceID  string    `json:"source_id" db:"source_id"`
	TargetID  string    `json:"target_id" db:"target_id"` // Not enforced to exist
	Label     string    `json:"label" db:"label"`         // Link text at time of last save
	Position  int       `json:"position" db:"position"`   // Zero-based order of appearance in the source
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ExtractedLink is a reference found in markdown content, before persistence.
type ExtractedLink struct {
	Label    string `json:"label"`
	TargetID string `json:"target_id"`
	Position int    `json:"position"`
}

// ReconcileResult summarizes one link reconciliation run.
type ReconcileResult struct {
	SourceID  string `json:"source_id"`
	Inserted  int    `json:"inserted"`
	Updated   int    `json:"updated"`
	Deleted   int    `json:"deleted"`
	Unchanged int    `json:"unchanged"` // Existing rows already matching content, not rewritten
	Skipped   int    `json:"skipped"`   // Extracted references dropped by the target policy
	Failed    int    `json:"failed"`    // Store calls that returned an error
}

// OK reports whether every store call in the run succeeded.
func (r *ReconcileResult) OK() bool {
	return r.Failed == 0
}
