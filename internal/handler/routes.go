package handler

import "net/http"

// RegisterRoutes mounts the API on mux. Literal segments win over {id},
// so /api/editor/drafts never reaches the {id} handlers.
func RegisterRoutes(mux *http.ServeMux, docs *DocumentHandler, editor *EditorHandler) {
	mux.HandleFunc("GET /health", docs.HealthCheck)

	mux.HandleFunc("GET /api/documents", docs.ListDocuments)
	mux.HandleFunc("POST /api/documents", docs.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", docs.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docs.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docs.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/duplicate", docs.DuplicateDocument)
	mux.HandleFunc("GET /api/documents/{id}/view", docs.ViewDocument)
	mux.HandleFunc("GET /api/documents/{id}/links", docs.ListLinks)
	mux.HandleFunc("GET /api/documents/{id}/backlinks", docs.ListBacklinks)

	mux.HandleFunc("POST /api/editor/drafts", editor.CreateDraft)
	mux.HandleFunc("GET /api/editor/{id}", editor.OpenEdit)
	mux.HandleFunc("PUT /api/editor/{id}", editor.Save)

	mux.HandleFunc("GET /api/library/titles", docs.ListTitles)
}
