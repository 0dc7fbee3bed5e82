package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"yogablocks/internal/auth"
	"yogablocks/internal/config"
)

type userResult struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Created bool   `json:"created"`
}

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage Supabase users",
	}
	cmd.AddCommand(newUserCreateCommand(rootOpts))
	return cmd
}

func newUserCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a confirmed user, e.g. the catalog owner",
		Long: `Create a confirmed Supabase user through the admin API, or return the
existing user with that email. Requires SUPABASE_URL and SUPABASE_KEY
(service role). Use the printed id as SYSTEM_USER_ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
				return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required")
			}

			client := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
			id, created, err := client.EnsureUser(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			result := userResult{ID: id, Email: email, Created: created}
			return render(rootOpts, cmd.OutOrStdout(), result, func(w io.Writer) {
				state := "exists"
				if created {
					state = "created"
				}
				fmt.Fprintf(w, "%s %s (%s)\n", result.ID, result.Email, state)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}
