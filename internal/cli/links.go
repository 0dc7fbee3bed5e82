package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewBackfillCommand creates the backfill-links command.
func NewBackfillCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-links",
		Short: "Rebuild the link index of every document",
		Long: `Reconcile the link index of every document against its content.
Rows for links no longer present in the content are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			report, err := e.maintenanceService().Backfill(ctx)
			if err != nil {
				return err
			}

			return render(rootOpts, cmd.OutOrStdout(), report, func(w io.Writer) {
				for _, r := range report.Results {
					if r.Inserted+r.Updated+r.Deleted+r.Failed == 0 {
						continue
					}
					fmt.Fprintf(w, "%s: +%d ~%d -%d skipped %d failed %d\n",
						r.SourceID, r.Inserted, r.Updated, r.Deleted, r.Skipped, r.Failed)
				}
				fmt.Fprintf(w, "%d documents, %d with failures\n", report.Documents, report.Failed)
			})
		},
	}
}

// NewRelinkCommand creates the relink command.
func NewRelinkCommand(rootOpts *RootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "relink",
		Short: "Repoint library links at the document their label names",
		Long: `Rewrite every [label](/library/<id>) whose label matches a document title
(after normalization) with a different id, then save and reconcile the
document. Labels matching no title are reported and left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			report, err := e.maintenanceService().Relink(ctx, dryRun)
			if err != nil {
				return err
			}

			return render(rootOpts, cmd.OutOrStdout(), report, func(w io.Writer) {
				for _, rw := range report.Rewrites {
					fmt.Fprintf(w, "%s: %q %s -> %s\n", rw.DocumentID, rw.Label, rw.OldID, rw.NewID)
				}
				for _, label := range report.Unresolved {
					fmt.Fprintf(w, "unresolved: %q\n", label)
				}
				verb := "rewrote"
				if report.DryRun {
					verb = "would rewrite"
				}
				fmt.Fprintf(w, "%s %d of %d documents\n", verb, report.Changed, report.Documents)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report rewrites without saving")
	return cmd
}
