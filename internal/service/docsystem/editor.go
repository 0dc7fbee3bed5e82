package docsystem

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"yogablocks/internal/config"
	"yogablocks/internal/domain"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/domain/services"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/service/docsystem/converter"
)

// editorService implements the EditorService interface
type editorService struct {
	docRepo    docsysRepo.DocumentRepository
	authorizer services.DocumentAuthorizer
	reconciler docsysSvc.LinkReconciler
	converters *converter.ConverterRegistry
	renderer   docsysSvc.MarkdownRenderer
	readView   docsysSvc.ReadViewService
	logger     *slog.Logger
}

// NewEditorService creates a new editor service
func NewEditorService(
	docRepo docsysRepo.DocumentRepository,
	authorizer services.DocumentAuthorizer,
	reconciler docsysSvc.LinkReconciler,
	converters *converter.ConverterRegistry,
	renderer docsysSvc.MarkdownRenderer,
	readView docsysSvc.ReadViewService,
	logger *slog.Logger,
) docsysSvc.EditorService {
	return &editorService{
		docRepo:    docRepo,
		authorizer: authorizer,
		reconciler: reconciler,
		converters: converters,
		renderer:   renderer,
		readView:   readView,
		logger:     logger,
	}
}

// OpenCreate pre-creates an empty user draft so the new document has an id
func (s *editorService) OpenCreate(ctx context.Context, userID string) (*models.EditorSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("no user identity: %w", domain.ErrUnauthorized)
	}

	doc := &models.Document{
		Title:     models.UntitledTitle,
		Content:   "",
		DocType:   models.DocTypeUser,
		CreatedBy: userID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("draft created",
		"id", doc.ID,
		"user_id", userID,
	)

	return &models.EditorSession{
		Mode:       models.EditorModeCreate,
		DocumentID: doc.ID,
		Title:      doc.Title,
	}, nil
}

// OpenEdit loads a document for editing. The title is prepended to the body
// as a top-level heading so it survives the next save.
func (s *editorService) OpenEdit(ctx context.Context, userID, documentID string) (*models.EditorSession, error) {
	if err := s.authorizer.CanModifyDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	body, err := s.renderer.Render(doc.Content)
	if err != nil {
		return nil, err
	}

	return &models.EditorSession{
		Mode:       models.EditorModeEdit,
		DocumentID: doc.ID,
		Title:      doc.Title,
		HTML:       "<h1>" + html.EscapeString(doc.Title) + "</h1>\n" + body,
		Markdown:   "# " + doc.Title + "\n\n" + doc.Content,
	}, nil
}

// OpenView renders the read view
func (s *editorService) OpenView(ctx context.Context, documentID string) (*models.ReadView, error) {
	return s.readView.RenderDocument(ctx, documentID)
}

// Save converts the body to markdown, derives the title, persists both, then
// reconciles links. A failed reconciliation is reported in LinkSync only.
func (s *editorService) Save(ctx context.Context, userID, documentID string, req *docsysSvc.SaveRequest) (*models.SaveResult, error) {
	if err := s.authorizer.CanModifyDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Body) == "" {
		return nil, &domain.ValidationError{Message: "nothing to save: body is empty"}
	}
	if len(req.Body) > config.MaxContentLength {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("body exceeds %d bytes", config.MaxContentLength),
		}
	}

	title, markdown, err := s.serialize(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.Update(ctx, documentID, models.DocumentPatch{
		Title:   &title,
		Content: &markdown,
	})
	if err != nil {
		return nil, err
	}

	linkSync := s.reconciler.Reconcile(ctx, doc.ID, markdown)
	if !linkSync.OK() {
		s.logger.Warn("document saved with incomplete link sync",
			"id", doc.ID,
			"failed", linkSync.Failed,
		)
	}

	s.logger.Info("document saved",
		"id", doc.ID,
		"title", doc.Title,
		"format", req.Format,
	)

	return &models.SaveResult{
		Document: doc,
		LinkSync: *linkSync,
		NextMode: models.EditorModeView,
	}, nil
}

// serialize turns an editor body into (title, storage markdown)
func (s *editorService) serialize(ctx context.Context, req *docsysSvc.SaveRequest) (string, string, error) {
	format := req.Format
	if format == "" {
		format = models.FormatHTML
	}

	switch format {
	case models.FormatHTML:
		title, body, err := deriveTitleFromHTML(req.Body)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		markdown, err := s.converters.ConvertFormat(ctx, string(models.FormatHTML), []byte(body))
		if err != nil {
			return "", "", err
		}
		return title, strings.TrimSpace(markdown), nil

	case models.FormatMarkdown:
		title, body := DeriveTitle(req.Body)
		markdown, err := s.converters.ConvertFormat(ctx, string(models.FormatMarkdown), []byte(body))
		if err != nil {
			return "", "", err
		}
		return title, strings.TrimSpace(markdown), nil
	}

	return "", "", &domain.ValidationError{Message: fmt.Sprintf("unsupported format %q", format)}
}
