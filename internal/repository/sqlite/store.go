// Package sqlite is the single-file storage backend for offline use and tests.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"yogablocks/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

// Store owns the SQLite connection shared by the repositories.
type Store struct {
	db     *sql.DB
	tables *repository.TableNames
	logger *slog.Logger
}

// Open creates or opens a SQLite database at path and applies the schema.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement (link rows cascade with their source)
//
// The settings travel in the DSN so every new connection gets them.
// Open is idempotent.
func Open(path string, tables *repository.TableNames, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite has a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(tables.ExpandSchema(schemaSQL)); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{db: db, tables: tables, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// DropTables drops the link and document tables (links first).
func (s *Store) DropTables(ctx context.Context) error {
	for _, table := range []string{s.tables.DocumentLinks, s.tables.Documents} {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// EnsureSchema re-applies the embedded schema, e.g. after DropTables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.tables.ExpandSchema(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// connectionParams are applied by go-sqlite3 on every connection it opens
const connectionParams = "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"

// dataSourceName turns a file path or file: URI into a DSN carrying connectionParams.
func dataSourceName(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + connectionParams
	}
	return path + "?" + connectionParams
}

// now is the timestamp written to created_at/updated_at
func now() time.Time {
	return time.Now().UTC()
}
