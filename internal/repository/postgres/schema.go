package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"yogablocks/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the documents and document_links tables if they don't exist.
// It is idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *repository.TableNames) error {
	if _, err := pool.Exec(ctx, tables.ExpandSchema(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// DropTables drops the link and document tables (links first).
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *repository.TableNames) error {
	for _, table := range []string{tables.DocumentLinks, tables.Documents} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
