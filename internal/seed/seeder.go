// Package seed loads the asana catalog into the document store.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"yogablocks/internal/catalog"
	models "yogablocks/internal/domain/models/docsystem"
	"yogablocks/internal/domain/repositories"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/service/docsystem"
)

// Options tunes a seeding run.
type Options struct {
	// OwnerID owns the catalog documents created by this run
	OwnerID string
	// Refresh rewrites the content of catalog documents that already existed.
	// Without it only documents inserted by this run receive content.
	Refresh bool
}

// Report summarizes a seeding run.
type Report struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Links     int `json:"links"`
	LinkFails int `json:"link_failures"`
}

// Seeder inserts catalog asanas in two passes inside one transaction:
// first every missing title, then content with resolved preparatory links.
type Seeder struct {
	txManager  repositories.TransactionManager
	docRepo    docsysRepo.DocumentRepository
	reconciler docsysSvc.LinkReconciler
	catalog    *catalog.Catalog
	logger     *slog.Logger
}

// NewSeeder creates a new catalog seeder
func NewSeeder(
	txManager repositories.TransactionManager,
	docRepo docsysRepo.DocumentRepository,
	reconciler docsysSvc.LinkReconciler,
	cat *catalog.Catalog,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		txManager:  txManager,
		docRepo:    docRepo,
		reconciler: reconciler,
		catalog:    cat,
		logger:     logger,
	}
}

// Seed runs both passes. A document store error rolls the whole run back;
// link failures are counted in the report and do not.
func (s *Seeder) Seed(ctx context.Context, opts Options) (*Report, error) {
	if opts.OwnerID == "" {
		return nil, fmt.Errorf("seed: owner id is required")
	}

	var report *Report
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		r, err := s.seed(txCtx, opts)
		report = r
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog seeded",
		"inserted", report.Inserted,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"links", report.Links,
	)
	return report, nil
}

func (s *Seeder) seed(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}

	existing, err := s.docRepo.ListTitles(ctx, models.DocTypeAsana)
	if err != nil {
		return nil, fmt.Errorf("list catalog titles: %w", err)
	}
	index := docsystem.NewTitleIndex(existing)

	// Pass 1: make sure every asana has an id
	inserted := make(map[string]bool)
	for _, asana := range s.catalog.Asanas {
		if _, ok := index.Lookup(asana.EnglishName); ok {
			continue
		}

		doc := &models.Document{
			Title:     asana.EnglishName,
			DocType:   models.DocTypeAsana,
			CreatedBy: opts.OwnerID,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return nil, fmt.Errorf("insert %q: %w", asana.EnglishName, err)
		}
		index.Add(doc.Title, doc.ID)
		inserted[doc.ID] = true
		report.Inserted++

		s.logger.Debug("asana inserted", "title", doc.Title, "id", doc.ID)
	}

	// Pass 2: write content now that every preparatory pose can resolve
	for _, asana := range s.catalog.Asanas {
		id, _ := index.Lookup(asana.EnglishName)
		if !inserted[id] && !opts.Refresh {
			report.Unchanged++
			continue
		}

		doc, err := s.docRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", asana.EnglishName, err)
		}

		content := asana.Markdown(index.Lookup)
		if doc.Content == content {
			report.Unchanged++
			continue
		}

		if _, err := s.docRepo.Update(ctx, id, models.DocumentPatch{Content: &content}); err != nil {
			return nil, fmt.Errorf("update %q: %w", asana.EnglishName, err)
		}
		if !inserted[id] {
			report.Updated++
		}

		result := s.reconciler.Reconcile(ctx, id, content)
		report.Links += result.Inserted + result.Updated + result.Unchanged
		report.LinkFails += result.Failed
	}

	return report, nil
}
