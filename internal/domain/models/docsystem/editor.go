package docsystem

// EditorMode is the state of the document editor surface.
type EditorMode string

const (
	EditorModeCreate EditorMode = "create"
	EditorModeView   EditorMode = "view"
	EditorModeEdit   EditorMode = "edit"
)

// ContentFormat names the representation of an editor save body.
type ContentFormat string

const (
	FormatHTML     ContentFormat = "html"
	FormatMarkdown ContentFormat = "markdown"
)

// EditorSession is the per-request editor state. It is scoped to one view of
// one document and is never shared between requests.
type EditorSession struct {
	Mode       EditorMode `json:"mode"`
	DocumentID string     `json:"document_id"`
	Title      string     `json:"title"`
	HTML       string     `json:"html,omitempty"`     // Rich-text body for the WYSIWYG surface
	Markdown   string     `json:"markdown,omitempty"` // Stored body
}

// SaveResult is returned after an editor save.
type SaveResult struct {
	Document *Document       `json:"document"`
	LinkSync ReconcileResult `json:"link_sync"`
	NextMode EditorMode      `json:"next_mode"`
}
