package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/repository"
	"yogablocks/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const linkColumns = `id, source_id, target_id, label, position, created_at`

// PostgresLinkRepository implements the LinkRepository interface
type PostgresLinkRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
	logger *slog.Logger
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(config *postgres.RepositoryConfig) docsysRepo.LinkRepository {
	return &PostgresLinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListBySource returns the links of a source document ordered by position
func (r *PostgresLinkRepository) ListBySource(ctx context.Context, sourceID string) ([]models.Link, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE source_id = $1
		ORDER BY position ASC, created_at ASC
	`, linkColumns, r.tables.DocumentLinks)

	return r.queryLinks(ctx, query, sourceID)
}

// ListByTarget returns links pointing at targetID
func (r *PostgresLinkRepository) ListByTarget(ctx context.Context, targetID string) ([]models.Link, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE target_id = $1
		ORDER BY created_at ASC, source_id ASC
	`, linkColumns, r.tables.DocumentLinks)

	return r.queryLinks(ctx, query, targetID)
}

// Upsert writes a link, keyed by id when set and by (source_id, target_id) otherwise.
// Inside a transaction the write runs in a savepoint so a failure leaves the
// transaction usable for the remaining link writes.
func (r *PostgresLinkRepository) Upsert(ctx context.Context, link *models.Link) error {
	return postgres.RunInSavepoint(ctx, r.pool, func(executor postgres.DBTX) error {
		if link.ID != "" {
			query := fmt.Sprintf(`
				UPDATE %s
				SET target_id = $2, label = $3, position = $4
				WHERE id = $1
				RETURNING id, created_at
			`, r.tables.DocumentLinks)

			err := executor.QueryRow(ctx, query, link.ID, link.TargetID, link.Label, link.Position).
				Scan(&link.ID, &link.CreatedAt)
			if err == nil {
				return nil
			}
			if !postgres.IsPgNoRowsError(err) {
				return fmt.Errorf("update link %s: %w", link.ID, err)
			}
			// Row vanished since it was listed; fall through to insert
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (source_id, target_id, label, position)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (source_id, target_id)
			DO UPDATE SET label = EXCLUDED.label, position = EXCLUDED.position
			RETURNING id, created_at
		`, r.tables.DocumentLinks)

		err := executor.QueryRow(ctx, query, link.SourceID, link.TargetID, link.Label, link.Position).
			Scan(&link.ID, &link.CreatedAt)
		if err != nil {
			return fmt.Errorf("upsert link %s -> %s: %w", link.SourceID, link.TargetID, err)
		}
		return nil
	})
}

// Delete removes a link row. A missing row is not an error.
func (r *PostgresLinkRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.DocumentLinks)

	return postgres.RunInSavepoint(ctx, r.pool, func(executor postgres.DBTX) error {
		if _, err := executor.Exec(ctx, query, id); err != nil {
			return fmt.Errorf("delete link %s: %w", id, err)
		}
		return nil
	})
}

// DeleteBySource removes every link of a source document
func (r *PostgresLinkRepository) DeleteBySource(ctx context.Context, sourceID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE source_id = $1`, r.tables.DocumentLinks)

	return postgres.RunInSavepoint(ctx, r.pool, func(executor postgres.DBTX) error {
		if _, err := executor.Exec(ctx, query, sourceID); err != nil {
			return fmt.Errorf("delete links of %s: %w", sourceID, err)
		}
		return nil
	})
}

func (r *PostgresLinkRepository) queryLinks(ctx context.Context, query string, id string) ([]models.Link, error) {
	links := []models.Link{}
	err := postgres.RunInSavepoint(ctx, r.pool, func(executor postgres.DBTX) error {
		rows, err := executor.Query(ctx, query, id)
		if err != nil {
			return fmt.Errorf("query links: %w", err)
		}

		collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Link, error) {
			var link models.Link
			err := row.Scan(&link.ID, &link.SourceID, &link.TargetID, &link.Label, &link.Position, &link.CreatedAt)
			return link, err
		})
		if err != nil {
			return fmt.Errorf("scan links: %w", err)
		}
		links = append(links, collected...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return links, nil
}
