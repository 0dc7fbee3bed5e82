package docsystem

import (
	"context"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"yogablocks/internal/config"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
)

// linkReconciler implements the LinkReconciler interface
type linkReconciler struct {
	linkRepo docsysRepo.LinkRepository
	logger   *slog.Logger
}

// NewLinkReconciler creates a reconciler writing through linkRepo
func NewLinkReconciler(linkRepo docsysRepo.LinkRepository, logger *slog.Logger) docsysSvc.LinkReconciler {
	return &linkReconciler{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

// Reconcile makes the stored links of sourceID match the references in markdown.
//
// Content is the source of truth. Every store call runs sequentially and a
// failing call is logged, counted and skipped; the run always completes.
func (r *linkReconciler) Reconcile(ctx context.Context, sourceID, markdown string) *models.ReconcileResult {
	result := &models.ReconcileResult{SourceID: sourceID}
	wanted := r.applyTargetPolicy(sourceID, ExtractLinks(markdown), result)

	existing, err := r.linkRepo.ListBySource(ctx, sourceID)
	if err != nil {
		// Degrade to inserting everything; the natural-key upsert keeps this from duplicating rows
		r.logger.Warn("failed to fetch existing links",
			"source_id", sourceID,
			"error", err,
		)
		result.Failed++
		existing = nil
	}

	wantedTargets := mapset.NewThreadUnsafeSet[string]()
	for _, l := range wanted {
		wantedTargets.Add(l.TargetID)
	}

	byTarget := make(map[string]models.Link, len(existing))
	existingTargets := mapset.NewThreadUnsafeSet[string]()
	var redundant []models.Link
	for _, row := range existing {
		if existingTargets.Contains(row.TargetID) {
			redundant = append(redundant, row)
			continue
		}
		existingTargets.Add(row.TargetID)
		byTarget[row.TargetID] = row
	}

	stale := existingTargets.Difference(wantedTargets)
	for _, row := range existing {
		if stale.Contains(row.TargetID) {
			r.deleteLink(ctx, row, result)
		}
	}
	for _, row := range redundant {
		r.deleteLink(ctx, row, result)
	}

	for _, l := range wanted {
		link := models.Link{
			SourceID: sourceID,
			TargetID: l.TargetID,
			Label:    l.Label,
			Position: l.Position,
		}

		row, found := byTarget[l.TargetID]
		if found {
			if row.Label == l.Label && row.Position == l.Position {
				result.Unchanged++
				continue
			}
			link.ID = row.ID
		}

		if err := r.linkRepo.Upsert(ctx, &link); err != nil {
			r.logger.Warn("failed to upsert link",
				"source_id", sourceID,
				"target_id", l.TargetID,
				"error", err,
			)
			result.Failed++
			continue
		}

		if found {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	r.logger.Info("links reconciled",
		"source_id", sourceID,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result
}

// applyTargetPolicy drops references whose target is not a canonical UUID and
// keeps only the first reference to each target. Kept links retain their
// extraction position. Self-references are allowed.
func (r *linkReconciler) applyTargetPolicy(sourceID string, links []models.ExtractedLink, result *models.ReconcileResult) []models.ExtractedLink {
	seen := mapset.NewThreadUnsafeSet[string]()
	kept := make([]models.ExtractedLink, 0, len(links))

	for _, l := range links {
		target, ok := canonicalID(l.TargetID)
		if !ok {
			r.logger.Warn("skipping link with malformed target",
				"source_id", sourceID,
				"target_id", l.TargetID,
				"position", l.Position,
			)
			result.Skipped++
			continue
		}

		if !seen.Add(target) {
			result.Skipped++
			continue
		}

		l.TargetID = target
		l.Label = truncateRunes(l.Label, config.MaxLabelLength)
		kept = append(kept, l)
	}

	return kept
}

// canonicalID accepts only the 36-character hyphenated UUID form and returns it lowercased
func canonicalID(id string) (string, bool) {
	if len(id) != 36 {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func (r *linkReconciler) deleteLink(ctx context.Context, row models.Link, result *models.ReconcileResult) {
	if err := r.linkRepo.Delete(ctx, row.ID); err != nil {
		r.logger.Warn("failed to delete link",
			"source_id", row.SourceID,
			"target_id", row.TargetID,
			"error", err,
		)
		result.Failed++
		return
	}
	result.Deleted++
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
