package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"yogablocks/internal/config"
	"yogablocks/internal/domain"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/domain/services"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// copySuffix is appended to the title of a duplicated document
const copySuffix = " (Copy)"

// documentService implements the DocumentService interface
type documentService struct {
	docRepo         docsysRepo.DocumentRepository
	linkRepo        docsysRepo.LinkRepository
	reconciler      docsysSvc.LinkReconciler
	authorizer      services.DocumentAuthorizer
	contentAnalyzer services.ContentAnalyzer
	logger          *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	linkRepo docsysRepo.LinkRepository,
	reconciler docsysSvc.LinkReconciler,
	authorizer services.DocumentAuthorizer,
	contentAnalyzer services.ContentAnalyzer,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:         docRepo,
		linkRepo:        linkRepo,
		reconciler:      reconciler,
		authorizer:      authorizer,
		contentAnalyzer: contentAnalyzer,
		logger:          logger,
	}
}

// CreateDocument creates a document and indexes its links.
// An empty title is derived from the content the same way the editor does.
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	if req.DocType == "" {
		req.DocType = models.DocTypeUser
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title, content := req.Title, req.Content
	if title == "" {
		title, content = DeriveTitle(content)
	}

	doc := &models.Document{
		Title:     title,
		Content:   content,
		DocType:   req.DocType,
		CreatedBy: req.UserID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Content) != "" {
		s.reconciler.Reconcile(ctx, doc.ID, doc.Content)
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"doc_type", doc.DocType,
		"user_id", req.UserID,
	)

	return doc, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, documentID)
}

// ListDocuments lists documents newest first, with previews
func (s *documentService) ListDocuments(ctx context.Context, opts *models.ListOptions) (*models.ListResults, error) {
	opts.Query = strings.TrimSpace(opts.Query)
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if len(opts.Query) > config.MaxSearchQueryLength {
		return nil, fmt.Errorf("%w: query exceeds %d characters", domain.ErrValidation, config.MaxSearchQueryLength)
	}

	docs, total, err := s.docRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		docs[i].Preview = s.contentAnalyzer.Preview(docs[i].Content)
	}

	return models.NewListResults(docs, total, opts), nil
}

// ListTitles returns the id/title pairs of one document type, or all when docType is empty
func (s *documentService) ListTitles(ctx context.Context, docType models.DocType) ([]models.TitleEntry, error) {
	if docType != "" && !docType.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown doc_type %q", docType)}
	}
	return s.docRepo.ListTitles(ctx, docType)
}

// UpdateDocument patches a document the user owns.
// New content is reconciled into the link index after the write.
func (s *documentService) UpdateDocument(ctx context.Context, userID, documentID string, req *docsysSvc.UpdateDocumentRequest) (*models.Document, error) {
	if req.Title == nil && req.Content == nil && !req.DeriveTitle {
		return nil, &domain.ValidationError{Message: "no fields to update"}
	}

	if err := s.authorizer.CanModifyDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var patch models.DocumentPatch
	if req.Content != nil {
		patch.Content = req.Content
	}

	switch {
	case req.DeriveTitle:
		content := ""
		if req.Content != nil {
			content = *req.Content
		} else {
			doc, err := s.docRepo.GetByID(ctx, documentID)
			if err != nil {
				return nil, err
			}
			content = doc.Content
		}
		title, _ := DeriveTitle(content)
		patch.Title = &title
	case req.Title != nil:
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}

	doc, err := s.docRepo.Update(ctx, documentID, patch)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		s.reconciler.Reconcile(ctx, doc.ID, doc.Content)
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"title", doc.Title,
		"content_changed", patch.Content != nil,
	)

	return doc, nil
}

// DeleteDocument deletes a document the user owns together with its outgoing links
func (s *documentService) DeleteDocument(ctx context.Context, userID, documentID string) error {
	if err := s.authorizer.CanModifyDocument(ctx, userID, documentID); err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, documentID); err != nil {
		return err
	}

	// Schemas cascade; this covers stores created without the foreign key
	if err := s.linkRepo.DeleteBySource(ctx, documentID); err != nil {
		s.logger.Warn("failed to delete links of deleted document",
			"source_id", documentID,
			"error", err,
		)
	}

	s.logger.Info("document deleted",
		"id", documentID,
		"user_id", userID,
	)

	return nil
}

// DuplicateDocument copies a readable document into a new one owned by userID
func (s *documentService) DuplicateDocument(ctx context.Context, userID, documentID string) (*models.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("no user identity: %w", domain.ErrUnauthorized)
	}

	src, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		Title:     CopyTitle(src.Title),
		Content:   src.Content,
		DocType:   src.DocType,
		CreatedBy: userID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Content) != "" {
		s.reconciler.Reconcile(ctx, doc.ID, doc.Content)
	}

	s.logger.Info("document duplicated",
		"id", doc.ID,
		"source_id", src.ID,
		"user_id", userID,
	)

	return doc, nil
}

// ListLinks returns the outgoing links of a document
func (s *documentService) ListLinks(ctx context.Context, documentID string) ([]models.Link, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.linkRepo.ListBySource(ctx, documentID)
}

// ListBacklinks returns links pointing at a document
func (s *documentService) ListBacklinks(ctx context.Context, documentID string) ([]models.Link, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.linkRepo.ListByTarget(ctx, documentID)
}

// CopyTitle returns the title given to a duplicate
func CopyTitle(title string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = models.UntitledTitle
	}
	limit := config.MaxTitleLength - len([]rune(copySuffix))
	return strings.TrimSpace(truncateRunes(base, limit)) + copySuffix
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required, is.UUID),
		validation.Field(&req.Title, validation.RuneLength(0, config.MaxTitleLength)),
		validation.Field(&req.Content, validation.Length(0, config.MaxContentLength)),
		validation.Field(&req.DocType, validation.In(
			models.DocTypeAsana,
			models.DocTypeUser,
			models.DocTypeSystem,
		)),
	)
}

// validateUpdateRequest validates a document update request
func (s *documentService) validateUpdateRequest(req *docsysSvc.UpdateDocumentRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.RuneLength(1, config.MaxTitleLength)),
		validation.Field(&req.Content, validation.Length(0, config.MaxContentLength)),
	)
	if err != nil {
		return err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return errors.New("title: cannot be blank")
	}
	return nil
}
