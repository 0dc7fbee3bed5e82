package docsystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"yogablocks/internal/domain"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/service/docsystem/converter"
	"yogablocks/internal/utils"
)

// importService implements the ImportService interface
type importService struct {
	docRepo    docsysRepo.DocumentRepository
	docService docsysSvc.DocumentService
	converters *converter.ConverterRegistry
	logger     *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	docRepo docsysRepo.DocumentRepository,
	docService docsysSvc.DocumentService,
	converters *converter.ConverterRegistry,
	logger *slog.Logger,
) docsysSvc.ImportService {
	return &importService{
		docRepo:    docRepo,
		docService: docService,
		converters: converters,
		logger:     logger,
	}
}

// ImportFS walks fsys in lexical order and imports each supported file
func (s *importService) ImportFS(ctx context.Context, userID string, fsys fs.FS, overwrite bool) (*docsysSvc.ImportResult, error) {
	titles, err := s.docRepo.ListTitles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get existing documents: %w", err)
	}
	index := NewTitleIndex(titles)

	result := &docsysSvc.ImportResult{
		Summary:   docsysSvc.ImportSummary{},
		Errors:    []docsysSvc.ImportError{},
		Documents: []docsysSvc.ImportDocument{},
	}

	err = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if name != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		result.Summary.TotalFiles++
		if s.converters.GetConverter(path.Ext(name)) == nil {
			s.logger.Debug("skipping unsupported file", "file", name)
			result.Summary.Skipped++
			return nil
		}

		s.importFile(ctx, userID, fsys, name, index, overwrite, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk import source: %w", err)
	}

	s.logger.Info("import complete",
		"user_id", userID,
		"created", result.Summary.Created,
		"updated", result.Summary.Updated,
		"skipped", result.Summary.Skipped,
		"failed", result.Summary.Failed,
		"total_files", result.Summary.TotalFiles,
	)

	return result, nil
}

// importFile converts one file and creates or updates its document
func (s *importService) importFile(
	ctx context.Context,
	userID string,
	fsys fs.FS,
	name string,
	index *TitleIndex,
	overwrite bool,
	result *docsysSvc.ImportResult,
) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		s.addError(result, name, fmt.Sprintf("failed to read file: %v", err))
		return
	}

	fm, body, err := utils.ParseFrontmatter(raw)
	if err != nil {
		s.addError(result, name, err.Error())
		return
	}

	markdown, err := s.converters.Convert(ctx, name, []byte(body))
	if err != nil {
		s.addError(result, name, fmt.Sprintf("failed to convert: %v", err))
		return
	}
	markdown = strings.TrimSpace(markdown)

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title, markdown = DeriveTitle(markdown)
		if title == models.UntitledTitle {
			title = strings.TrimSuffix(path.Base(name), path.Ext(name))
		}
	}

	if existingID, ok := index.Lookup(title); ok {
		if !overwrite {
			result.Summary.Skipped++
			result.Documents = append(result.Documents, docsysSvc.ImportDocument{
				ID: existingID, File: name, Title: title, Action: "skipped",
			})
			return
		}
		s.updateDocument(ctx, userID, existingID, name, markdown, result)
		return
	}

	doc, err := s.docService.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
		UserID:  userID,
		Title:   title,
		Content: markdown,
		DocType: models.DocType(fm.DocType),
	})
	if err != nil {
		s.addError(result, name, fmt.Sprintf("failed to create document: %v", err))
		return
	}
	index.Add(doc.Title, doc.ID)

	result.Summary.Created++
	result.Documents = append(result.Documents, docsysSvc.ImportDocument{
		ID: doc.ID, File: name, Title: doc.Title, Action: "created",
	})

	s.logger.Debug("document imported", "id", doc.ID, "file", name, "title", doc.Title)
}

// updateDocument replaces the content of an existing document
func (s *importService) updateDocument(ctx context.Context, userID, docID, name, content string, result *docsysSvc.ImportResult) {
	doc, err := s.docService.UpdateDocument(ctx, userID, docID, &docsysSvc.UpdateDocumentRequest{
		Content: &content,
	})
	if err != nil {
		msg := fmt.Sprintf("failed to update document: %v", err)
		if errors.Is(err, domain.ErrForbidden) {
			msg = "document exists and belongs to another user"
		}
		s.addError(result, name, msg)
		return
	}

	result.Summary.Updated++
	result.Documents = append(result.Documents, docsysSvc.ImportDocument{
		ID: doc.ID, File: name, Title: doc.Title, Action: "updated",
	})
}

// addError adds an error to the result
func (s *importService) addError(result *docsysSvc.ImportResult, file string, errorMsg string) {
	result.Summary.Failed++
	result.Errors = append(result.Errors, docsysSvc.ImportError{
		File:  file,
		Error: errorMsg,
	})

	s.logger.Warn("file processing failed",
		"file", file,
		"error", errorMsg,
	)
}
