package docsystem

// BackfillReport summarizes a link index rebuild over every document.
type BackfillReport struct {
	Documents int               `json:"documents"`
	Failed    int               `json:"failed"` // Documents whose sync reported failures
	Results   []ReconcileResult `json:"results"`
}

// LinkRewrite is one library link whose target was corrected by title.
type LinkRewrite struct {
	DocumentID string `json:"document_id"`
	Label      string `json:"label"`
	OldID      string `json:"old_id"`
	NewID      string `json:"new_id"`
}

// RelinkReport summarizes a title-based relink run.
type RelinkReport struct {
	DryRun     bool          `json:"dry_run"`
	Documents  int           `json:"documents"`
	Changed    int           `json:"changed"`    // Documents whose content was (or would be) rewritten
	Rewrites   []LinkRewrite `json:"rewrites"`
	Unresolved []string      `json:"unresolved"` // Labels with no matching title
}
