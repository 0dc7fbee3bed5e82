package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type schemaResult struct {
	Driver  string `json:"driver"`
	Dropped bool   `json:"dropped"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create the document tables",
		Long: `Create the documents and document_links tables if they do not exist.

With --drop both tables are dropped first. Dropping is refused when
ENVIRONMENT=prod.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if drop {
				if e.cfg.IsProduction() {
					return fmt.Errorf("refusing to drop tables in production")
				}
				if err := e.backend.DropTables(ctx); err != nil {
					return err
				}
				e.logger.Warn("tables dropped", "table_prefix", e.cfg.TablePrefix)
			}

			if err := e.backend.EnsureSchema(ctx); err != nil {
				return err
			}

			result := schemaResult{Driver: e.backend.Driver, Dropped: drop}
			return render(rootOpts, cmd.OutOrStdout(), result, func(w io.Writer) {
				fmt.Fprintf(w, "schema ready (%s, prefix %q)\n", result.Driver, e.cfg.TablePrefix)
			})
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "drop the tables before creating them")
	return cmd
}
