// Package storage opens the configured document store backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"yogablocks/internal/config"
	"yogablocks/internal/domain/repositories"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/repository"
	"yogablocks/internal/repository/postgres"
	postgresDocsys "yogablocks/internal/repository/postgres/docsystem"
	"yogablocks/internal/repository/sqlite"
)

// Backend bundles the repositories of one store
type Backend struct {
	Driver    string
	Documents docsysRepo.DocumentRepository
	Links     docsysRepo.LinkRepository
	TxManager repositories.TransactionManager

	ensureSchema func(ctx context.Context) error
	dropTables   func(ctx context.Context) error
	close        func()
}

// Open connects to the backend named by cfg.StoreDriver and applies the schema.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	tables := repository.NewTableNames(cfg.TablePrefix)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return openPostgres(ctx, cfg, tables, logger)
	case config.StoreDriverSQLite:
		return openSQLite(cfg, tables, logger)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)",
			cfg.StoreDriver, config.StoreDriverPostgres, config.StoreDriverSQLite)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, tables *repository.TableNames, logger *slog.Logger) (*Backend, error) {
	if cfg.SupabaseDBURL == "" {
		return nil, fmt.Errorf("SUPABASE_DB_URL is required for the postgres store")
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		return nil, err
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, err
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	logger.Info("database connected", "driver", config.StoreDriverPostgres, "table_prefix", cfg.TablePrefix)

	return &Backend{
		Driver:       config.StoreDriverPostgres,
		Documents:    postgresDocsys.NewDocumentRepository(repoConfig),
		Links:        postgresDocsys.NewLinkRepository(repoConfig),
		TxManager:    postgres.NewTransactionManager(pool, logger),
		ensureSchema: func(ctx context.Context) error { return postgres.EnsureSchema(ctx, pool, tables) },
		dropTables:   func(ctx context.Context) error { return postgres.DropTables(ctx, pool, tables) },
		close:        pool.Close,
	}, nil
}

func openSQLite(cfg *config.Config, tables *repository.TableNames, logger *slog.Logger) (*Backend, error) {
	store, err := sqlite.Open(cfg.SQLitePath, tables, logger)
	if err != nil {
		return nil, err
	}

	path, _ := filepath.Abs(cfg.SQLitePath)
	logger.Info("database connected", "driver", config.StoreDriverSQLite, "path", path)

	return &Backend{
		Driver:       config.StoreDriverSQLite,
		Documents:    sqlite.NewDocumentRepository(store),
		Links:        sqlite.NewLinkRepository(store),
		TxManager:    sqlite.NewTransactionManager(store),
		ensureSchema: store.EnsureSchema,
		dropTables:   store.DropTables,
		close:        func() { store.Close() },
	}, nil
}

// EnsureSchema re-applies the schema
func (b *Backend) EnsureSchema(ctx context.Context) error {
	return b.ensureSchema(ctx)
}

// DropTables drops the link and document tables
func (b *Backend) DropTables(ctx context.Context) error {
	return b.dropTables(ctx)
}

// Close releases the connection(s)
func (b *Backend) Close() {
	b.close()
}
