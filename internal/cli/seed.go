package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"yogablocks/internal/catalog"
	"yogablocks/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		owner   string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in asana catalog",
		Long: `Insert every catalog asana missing from the library, then write its
sections with preparatory poses linked by title. Runs in one transaction and
is safe to repeat.

The owner defaults to SYSTEM_USER_ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if owner == "" {
				owner = e.cfg.SystemUserID
			}
			if owner == "" {
				return fmt.Errorf("no owner: pass --owner or set SYSTEM_USER_ID")
			}

			cat, err := catalog.Load()
			if err != nil {
				return err
			}

			seeder := seed.NewSeeder(e.backend.TxManager, e.backend.Documents, e.reconciler(), cat, e.logger)
			report, err := seeder.Seed(ctx, seed.Options{OwnerID: owner, Refresh: refresh})
			if err != nil {
				return err
			}

			return render(rootOpts, cmd.OutOrStdout(), report, func(w io.Writer) {
				fmt.Fprintf(w, "inserted %d, updated %d, unchanged %d, links %d",
					report.Inserted, report.Updated, report.Unchanged, report.Links)
				if report.LinkFails > 0 {
					fmt.Fprintf(w, ", link failures %d", report.LinkFails)
				}
				fmt.Fprintln(w)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "user id owning the catalog documents")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rewrite the content of existing catalog documents")
	return cmd
}
