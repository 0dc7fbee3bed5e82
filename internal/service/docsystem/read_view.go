package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// readViewService implements the ReadViewService interface
type readViewService struct {
	docRepo  docsysRepo.DocumentRepository
	linkRepo docsysRepo.LinkRepository
	renderer docsysSvc.MarkdownRenderer
	logger   *slog.Logger
}

// NewReadViewService creates a new read view renderer
func NewReadViewService(
	docRepo docsysRepo.DocumentRepository,
	linkRepo docsysRepo.LinkRepository,
	renderer docsysSvc.MarkdownRenderer,
	logger *slog.Logger,
) docsysSvc.ReadViewService {
	return &readViewService{
		docRepo:  docRepo,
		linkRepo: linkRepo,
		renderer: renderer,
		logger:   logger,
	}
}

// RenderDocument loads a document and renders it
func (s *readViewService) RenderDocument(ctx context.Context, documentID string) (*models.ReadView, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.Render(ctx, doc)
}

// Render builds the structured fields, the fallback HTML and the backlinks of doc.
// Title resolution and backlink failures degrade the view instead of failing it.
func (s *readViewService) Render(ctx context.Context, doc *models.Document) (*models.ReadView, error) {
	parsed := ParseAsanaContent(doc.Content)

	view := &models.ReadView{
		ID:         doc.ID,
		Title:      doc.Title,
		DocType:    doc.DocType,
		Structured: parsed.Structured,
		Fields:     []models.ReadViewField{},
		Backlinks:  []models.Link{},
	}

	if parsed.Sanskrit != "" {
		view.Fields = append(view.Fields, models.ReadViewField{Label: LabelSanskritName, Value: parsed.Sanskrit})
	}
	if parsed.Category != "" {
		view.Fields = append(view.Fields, models.ReadViewField{Label: LabelCategory, Value: parsed.Category})
	}
	if len(parsed.Benefits) > 0 {
		view.Fields = append(view.Fields, models.ReadViewField{Label: LabelBenefits, Items: parsed.Benefits})
	}
	if len(parsed.Contraindications) > 0 {
		view.Fields = append(view.Fields, models.ReadViewField{Label: LabelContraindications, Items: parsed.Contraindications})
	}
	if len(parsed.Modifications) > 0 {
		view.Fields = append(view.Fields, models.ReadViewField{Label: LabelModifications, Items: parsed.Modifications})
	}
	if len(parsed.PreparatoryPoses) > 0 {
		view.Fields = append(view.Fields, models.ReadViewField{
			Label: LabelPreparatoryPoses,
			Poses: s.resolvePoses(ctx, doc.ID, parsed.PreparatoryPoses),
		})
	}

	if parsed.RemainingText != "" {
		html, err := s.renderer.Render(parsed.RemainingText)
		if err != nil {
			return nil, fmt.Errorf("render document %s: %w", doc.ID, err)
		}
		view.RemainingHTML = html
	}

	backlinks, err := s.linkRepo.ListByTarget(ctx, doc.ID)
	if err != nil {
		s.logger.Warn("failed to load backlinks", "doc_id", doc.ID, "error", err)
	} else {
		view.Backlinks = backlinks
	}

	return view, nil
}

// resolvePoses turns preparatory pose entries into references. An embedded
// /library link wins; otherwise the entry text is looked up by title.
func (s *readViewService) resolvePoses(ctx context.Context, docID string, entries []string) []models.PoseRef {
	poses := make([]models.PoseRef, 0, len(entries))
	var index *TitleIndex
	indexLoaded := false

	for _, entry := range entries {
		if links := ExtractLinks(entry); len(links) > 0 {
			poses = append(poses, models.PoseRef{Text: links[0].Label, TargetID: links[0].TargetID})
			continue
		}

		if !indexLoaded {
			indexLoaded = true
			titles, err := s.docRepo.ListTitles(ctx, "")
			if err != nil {
				s.logger.Warn("failed to load title index, rendering poses as text", "doc_id", docID, "error", err)
			} else {
				index = NewTitleIndex(titles)
			}
		}

		ref := models.PoseRef{Text: entry}
		if id, ok := index.Lookup(entry); ok {
			ref.TargetID = id
		}
		poses = append(poses, ref)
	}

	return poses
}
