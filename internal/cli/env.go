package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"yogablocks/internal/config"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
	authsvc "yogablocks/internal/service/auth"
	"yogablocks/internal/service/docsystem"
	"yogablocks/internal/service/docsystem/converter"
	"yogablocks/internal/storage"
)

// env is the per-invocation wiring shared by store-backed commands.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	backend  *storage.Backend
	closeLog func() error
}

// openEnv loads configuration, logs to stderr and opens the store.
func openEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &env{cfg: cfg, logger: logger, backend: backend, closeLog: closeLog}, nil
}

func (e *env) Close() {
	e.backend.Close()
	e.closeLog()
}

func (e *env) reconciler() docsysSvc.LinkReconciler {
	return docsystem.NewLinkReconciler(e.backend.Links, e.logger)
}

func (e *env) documentService() docsysSvc.DocumentService {
	authorizer := authsvc.NewOwnerBasedAuthorizer(e.backend.Documents)
	return docsystem.NewDocumentService(
		e.backend.Documents,
		e.backend.Links,
		e.reconciler(),
		authorizer,
		docsystem.NewContentAnalyzer(),
		e.logger,
	)
}

func (e *env) importService() docsysSvc.ImportService {
	return docsystem.NewImportService(e.backend.Documents, e.documentService(), converter.NewConverterRegistry(), e.logger)
}

func (e *env) maintenanceService() docsysSvc.MaintenanceService {
	return docsystem.NewMaintenanceService(e.backend.Documents, e.reconciler(), e.logger)
}

// render writes v as indented JSON, or calls text for the text format.
func render(opts *RootOptions, w io.Writer, v interface{}, text func(io.Writer)) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
