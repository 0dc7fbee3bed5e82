package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
)

const linkColumns = `id, source_id, target_id, label, position, created_at`

// LinkRepository implements the LinkRepository interface on SQLite
type LinkRepository struct {
	store *Store
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(store *Store) docsysRepo.LinkRepository {
	return &LinkRepository{store: store}
}

// ListBySource returns the links of a source document ordered by position
func (r *LinkRepository) ListBySource(ctx context.Context, sourceID string) ([]models.Link, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE source_id = ?
		ORDER BY position ASC, created_at ASC
	`, linkColumns, r.store.tables.DocumentLinks)
	return r.queryLinks(ctx, query, sourceID)
}

// ListByTarget returns links pointing at targetID
func (r *LinkRepository) ListByTarget(ctx context.Context, targetID string) ([]models.Link, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE target_id = ?
		ORDER BY created_at ASC, source_id ASC
	`, linkColumns, r.store.tables.DocumentLinks)
	return r.queryLinks(ctx, query, targetID)
}

// Upsert writes a link, keyed by id when set and by (source_id, target_id) otherwise
func (r *LinkRepository) Upsert(ctx context.Context, link *models.Link) error {
	executor := getExecutor(ctx, r.store.db)

	if link.ID != "" {
		query := fmt.Sprintf(`
			UPDATE %s SET target_id = ?, label = ?, position = ?
			WHERE id = ?
		`, r.store.tables.DocumentLinks)

		result, err := executor.ExecContext(ctx, query, link.TargetID, link.Label, link.Position, link.ID)
		if err != nil {
			return fmt.Errorf("update link %s: %w", link.ID, err)
		}
		if affected, err := result.RowsAffected(); err == nil && affected > 0 {
			return r.fill(ctx, link, `id = ?`, link.ID)
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, source_id, target_id, label, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_id, target_id)
		DO UPDATE SET label = excluded.label, position = excluded.position
	`, r.store.tables.DocumentLinks)

	if _, err := executor.ExecContext(ctx, query,
		uuid.NewString(), link.SourceID, link.TargetID, link.Label, link.Position, now(),
	); err != nil {
		return fmt.Errorf("upsert link %s -> %s: %w", link.SourceID, link.TargetID, err)
	}

	return r.fill(ctx, link, `source_id = ? AND target_id = ?`, link.SourceID, link.TargetID)
}

// fill copies the stored id and created_at into link
func (r *LinkRepository) fill(ctx context.Context, link *models.Link, where string, args ...any) error {
	query := fmt.Sprintf(`SELECT id, created_at FROM %s WHERE %s`, r.store.tables.DocumentLinks, where)
	executor := getExecutor(ctx, r.store.db)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&link.ID, &link.CreatedAt); err != nil {
		return fmt.Errorf("read back link: %w", err)
	}
	return nil
}

// Delete removes a link row. A missing row is not an error.
func (r *LinkRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.store.tables.DocumentLinks)
	if _, err := getExecutor(ctx, r.store.db).ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete link %s: %w", id, err)
	}
	return nil
}

// DeleteBySource removes every link of a source document
func (r *LinkRepository) DeleteBySource(ctx context.Context, sourceID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE source_id = ?`, r.store.tables.DocumentLinks)
	if _, err := getExecutor(ctx, r.store.db).ExecContext(ctx, query, sourceID); err != nil {
		return fmt.Errorf("delete links of %s: %w", sourceID, err)
	}
	return nil
}

func (r *LinkRepository) queryLinks(ctx context.Context, query string, id string) ([]models.Link, error) {
	rows, err := getExecutor(ctx, r.store.db).QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	links := []models.Link{}
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.ID, &link.SourceID, &link.TargetID, &link.Label, &link.Position, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}
