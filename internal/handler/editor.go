package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/httputil"
)

// EditorHandler serves the create/edit/save flow of the document editor
type EditorHandler struct {
	editor docsysSvc.EditorService
	logger *slog.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(editor docsysSvc.EditorService, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{
		editor: editor,
		logger: logger,
	}
}

// CreateDraft pre-creates an empty document and opens it in create mode
// POST /api/editor/drafts
func (h *EditorHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	session, err := h.editor.OpenCreate(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// OpenEdit loads a document the caller owns for editing
// GET /api/editor/{id}
func (h *EditorHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	session, err := h.editor.OpenEdit(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// Save persists the edited body and syncs the link index
// PUT /api/editor/{id}
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req docsysSvc.SaveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBodyError(w, err)
		return
	}

	result, err := h.editor.Save(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
