package handler

import (
	"log/slog"
	"net/http"

	"yogablocks/internal/domain/models/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/httputil"
)

// DocumentHandler serves the document navigation surface
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	readView   docsysSvc.ReadViewService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, readView docsysSvc.ReadViewService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		readView:   readView,
		logger:     logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListDocuments lists documents newest first with substring search
// GET /api/documents?q=&doc_type=&limit=&offset=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit", docsystem.DefaultListLimit)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := httputil.QueryInt(r, "offset", docsystem.DefaultListOffset)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := &docsystem.ListOptions{
		Query:   r.URL.Query().Get("q"),
		DocType: docsystem.DocType(r.URL.Query().Get("doc_type")),
		Limit:   limit,
		Offset:  offset,
	}

	results, err := h.docService.ListDocuments(r.Context(), opts)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// CreateDocument creates a document owned by the caller
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBodyError(w, err)
		return
	}
	req.UserID = httputil.GetUserID(r)

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument returns a stored document
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// updateDocumentBody is the PATCH payload. A null title re-derives it from content.
type updateDocumentBody struct {
	Title   httputil.OptionalString `json:"title"`
	Content *string                 `json:"content"`
}

// UpdateDocument patches title and/or content
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body updateDocumentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		respondBodyError(w, err)
		return
	}

	req := &docsysSvc.UpdateDocumentRequest{
		Content:     body.Content,
		DeriveTitle: body.Title.IsNull(),
	}
	if body.Title.Present && body.Title.Value != nil {
		req.Title = body.Title.Value
	}

	doc, err := h.docService.UpdateDocument(r.Context(), httputil.GetUserID(r), id, req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document the caller owns
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondNoContent(w)
}

// DuplicateDocument copies a document as "<title> (Copy)"
// POST /api/documents/{id}/duplicate
func (h *DocumentHandler) DuplicateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.docService.DuplicateDocument(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ViewDocument returns the rendered read view
// GET /api/documents/{id}/view
func (h *DocumentHandler) ViewDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.readView.RenderDocument(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// ListLinks returns the outgoing link index
// GET /api/documents/{id}/links
func (h *DocumentHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	links, err := h.docService.ListLinks(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, links)
}

// ListBacklinks returns links pointing at the document
// GET /api/documents/{id}/backlinks
func (h *DocumentHandler) ListBacklinks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	links, err := h.docService.ListBacklinks(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, links)
}

// ListTitles returns the id/title map for link pickers
// GET /api/library/titles?doc_type=asana
func (h *DocumentHandler) ListTitles(w http.ResponseWriter, r *http.Request) {
	docType := docsystem.DocType(r.URL.Query().Get("doc_type"))

	titles, err := h.docService.ListTitles(r.Context(), docType)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if titles == nil {
		titles = []docsystem.TitleEntry{}
	}

	httputil.RespondJSON(w, http.StatusOK, titles)
}
