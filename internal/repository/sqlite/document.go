package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"yogablocks/internal/domain"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/repository"
)

const documentColumns = `id, title, content, doc_type, created_by, created_at, updated_at`

// DocumentRepository implements the DocumentRepository interface on SQLite
type DocumentRepository struct {
	store *Store
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(store *Store) docsysRepo.DocumentRepository {
	return &DocumentRepository{store: store}
}

// Create creates a new document with a fresh UUID
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	id := uuid.NewString()
	ts := now()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, doc_type, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.store.tables.Documents)

	executor := getExecutor(ctx, r.store.db)
	if _, err := executor.ExecContext(ctx, query,
		id, doc.Title, doc.Content, string(doc.DocType), doc.CreatedBy, ts, ts,
	); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	doc.ID = id
	doc.CreatedAt = ts
	doc.UpdatedAt = ts
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, documentColumns, r.store.tables.Documents)

	executor := getExecutor(ctx, r.store.db)
	doc, err := scanDocument(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Update applies a partial update and always refreshes updated_at
func (r *DocumentRepository) Update(ctx context.Context, id string, patch models.DocumentPatch) (*models.Document, error) {
	sets := []string{"updated_at = ?"}
	args := []any{now()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, r.store.tables.Documents, strings.Join(sets, ", "))

	executor := getExecutor(ctx, r.store.db)
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a document. Its link rows cascade.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.store.tables.Documents)

	executor := getExecutor(ctx, r.store.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns one page of documents, newest first. SQLite LIKE is
// case-insensitive for ASCII.
func (r *DocumentRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Document, int, error) {
	var conditions []string
	var args []any

	if opts.Query != "" {
		pattern := repository.LikePattern(opts.Query)
		conditions = append(conditions, `(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if opts.DocType != "" {
		conditions = append(conditions, "doc_type = ?")
		args = append(args, string(opts.DocType))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	executor := getExecutor(ctx, r.store.db)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.store.tables.Documents, where)
	if err := executor.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s %s
		ORDER BY updated_at DESC, id ASC
		LIMIT ? OFFSET ?
	`, documentColumns, r.store.tables.Documents, where)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := executor.QueryContext(ctx, query, args...)
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
func (r *DocumentRepository) ListTitles(ctx context.Context, docType models.DocType) ([]models.TitleEntry, error) {
	query := fmt.Sprintf(`SELECT id, title, doc_type FROM %s`, r.store.tables.Documents)
	var args []any
	if docType != "" {
		query += ` WHERE doc_type = ?`
		args = append(args, string(docType))
	}
	query += ` ORDER BY title ASC, created_at ASC`

	executor := getExecutor(ctx, r.store.db)
	rows, err := executor.QueryContext(ctx, query, args...)
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
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var docType string
	if err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&docType,
		&doc.CreatedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	doc.DocType = models.DocType(docType)
	return &doc, nil
}
