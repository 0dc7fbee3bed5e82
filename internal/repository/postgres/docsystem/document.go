package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"yogablocks/internal/domain"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/repository"
	"yogablocks/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `id, title, content, doc_type, created_by, created_at, updated_at`

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, content, doc_type, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Title,
		doc.Content,
		string(doc.DocType),
		doc.CreatedBy,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if postgres.IsPgInvalidTextError(err) {
			return fmt.Errorf("%w: owner id %q is not a valid uuid", domain.ErrValidation, doc.CreatedBy)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, documentColumns, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// Update applies a partial update and always refreshes updated_at
func (r *PostgresDocumentRepository) Update(ctx context.Context, id string, patch models.DocumentPatch) (*models.Document, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Content != nil {
		args = append(args, *patch.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $1
		RETURNING %s
	`, r.tables.Documents, strings.Join(sets, ", "), documentColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, args...))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update document: %w", err)
	}

	return doc, nil
}

// Delete removes a document. Its link rows are removed by ON DELETE CASCADE.
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		if postgres.IsPgInvalidTextError(err) {
			return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List returns one page of documents, newest first, with substring search over title or content
func (r *PostgresDocumentRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Document, int, error) {
	var conditions []string
	var args []interface{}

	if opts.Query != "" {
		args = append(args, repository.LikePattern(opts.Query))
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\')`, n, n))
	}
	if opts.DocType != "" {
		args = append(args, string(opts.DocType))
		conditions = append(conditions, fmt.Sprintf("doc_type = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	executor := postgres.GetExecutor(ctx, r.pool)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.Documents, where)
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY updated_at DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, documentColumns, r.tables.Documents, where, len(args)-1, len(args))

	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate documents: %w", err)
	}

	return documents, total, nil
}

// ListTitles returns id/title pairs ordered by title
func (r *PostgresDocumentRepository) ListTitles(ctx context.Context, docType models.DocType) ([]models.TitleEntry, error) {
	query := fmt.Sprintf(`SELECT id, title, doc_type FROM %s`, r.tables.Documents)
	var args []interface{}
	if docType != "" {
		query += ` WHERE doc_type = $1`
		args = append(args, string(docType))
	}
	query += ` ORDER BY title ASC, created_at ASC`

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	entries := []models.TitleEntry{}
	for rows.Next() {
		var entry models.TitleEntry
		var dt string
		if err := rows.Scan(&entry.ID, &entry.Title, &dt); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		entry.DocType = models.DocType(dt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var docType string
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&docType,
		&doc.CreatedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.DocType = models.DocType(docType)
	return &doc, nil
}
