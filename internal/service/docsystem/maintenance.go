package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// maintenanceService implements the MaintenanceService interface
type maintenanceService struct {
	docRepo    docsysRepo.DocumentRepository
	reconciler docsysSvc.LinkReconciler
	logger     *slog.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	docRepo docsysRepo.DocumentRepository,
	reconciler docsysSvc.LinkReconciler,
	logger *slog.Logger,
) docsysSvc.MaintenanceService {
	return &maintenanceService{
		docRepo:    docRepo,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Backfill reconciles every document. Unlike insert-only backfills it also
// removes stale rows, since the reconciler treats content as the truth.
func (s *maintenanceService) Backfill(ctx context.Context) (*models.BackfillReport, error) {
	titles, err := s.docRepo.ListTitles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	report := &models.BackfillReport{Results: make([]models.ReconcileResult, 0, len(titles))}
	for _, entry := range titles {
		doc, err := s.docRepo.GetByID(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.ID, err)
		}

		result := s.reconciler.Reconcile(ctx, doc.ID, doc.Content)
		report.Documents++
		if !result.OK() {
			report.Failed++
		}
		report.Results = append(report.Results, *result)
	}

	s.logger.Info("link backfill complete",
		"documents", report.Documents,
		"failed", report.Failed,
	)
	return report, nil
}

// Relink rewrites links whose label resolves to a different document id,
// then saves and reconciles each changed document.
func (s *maintenanceService) Relink(ctx context.Context, dryRun bool) (*models.RelinkReport, error) {
	titles, err := s.docRepo.ListTitles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	index := NewTitleIndex(titles)

	report := &models.RelinkReport{
		DryRun:     dryRun,
		Rewrites:   []models.LinkRewrite{},
		Unresolved: []string{},
	}
	unresolved := make(map[string]bool)

	for _, entry := range titles {
		doc, err := s.docRepo.GetByID(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.ID, err)
		}
		report.Documents++

		content, rewrites, missing := RewriteLinks(doc.Content, index)
		for _, label := range missing {
			if !unresolved[label] {
				unresolved[label] = true
				report.Unresolved = append(report.Unresolved, label)
				s.logger.Warn("no document matches link label", "label", label, "document_id", doc.ID)
			}
		}
		if len(rewrites) == 0 {
			continue
		}

		report.Changed++
		for _, rw := range rewrites {
			rw.DocumentID = doc.ID
			report.Rewrites = append(report.Rewrites, rw)
		}
		if dryRun {
			continue
		}

		if _, err := s.docRepo.Update(ctx, doc.ID, models.DocumentPatch{Content: &content}); err != nil {
			return nil, fmt.Errorf("save %s: %w", doc.ID, err)
		}
		s.reconciler.Reconcile(ctx, doc.ID, content)
	}

	s.logger.Info("relink complete",
		"dry_run", dryRun,
		"documents", report.Documents,
		"changed", report.Changed,
		"rewrites", len(report.Rewrites),
	)
	return report, nil
}

// RewriteLinks points every library link at the id its label resolves to.
// Links whose label is unknown are left alone and their labels returned.
func RewriteLinks(markdown string, index *TitleIndex) (string, []models.LinkRewrite, []string) {
	var rewrites []models.LinkRewrite
	var missing []string

	out := libraryLinkPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		m := libraryLinkPattern.FindStringSubmatch(match)
		label, oldID := m[1], m[2]

		newID, ok := index.Lookup(label)
		if !ok {
			missing = append(missing, label)
			return match
		}
		if newID == oldID {
			return match
		}

		rewrites = append(rewrites, models.LinkRewrite{Label: label, OldID: oldID, NewID: newID})
		return LibraryLink(label, newID)
	})

	return out, rewrites, missing
}
