package cli

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		owner     string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "import <dir|file.zip>",
		Short: "Import markdown, text and HTML files as documents",
		Long: `Import every .md, .txt and .html file under a directory or inside a zip
archive. Markdown files may start with YAML frontmatter giving title and
doc_type. Without a title the first heading or paragraph is used.

Documents whose title already exists are skipped unless --overwrite is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fsys, closeFS, err := openSource(args[0])
			if err != nil {
				return err
			}
			defer closeFS()

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

			result, err := e.importService().ImportFS(ctx, owner, fsys, overwrite)
			if err != nil {
				return err
			}

			return render(rootOpts, cmd.OutOrStdout(), result, func(w io.Writer) {
				for _, d := range result.Documents {
					fmt.Fprintf(w, "%-8s %s (%s)\n", d.Action, d.Title, d.File)
				}
				for _, ie := range result.Errors {
					fmt.Fprintf(w, "failed   %s: %s\n", ie.File, ie.Error)
				}
				s := result.Summary
				fmt.Fprintf(w, "created %d, updated %d, skipped %d, failed %d of %d files\n",
					s.Created, s.Updated, s.Skipped, s.Failed, s.TotalFiles)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "user id owning the imported documents")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the content of documents with the same title")
	return cmd
}

// openSource opens a directory or zip archive as a filesystem
func openSource(path string) (fs.FS, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	if info.IsDir() {
		return os.DirFS(path), func() {}, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open zip: %w", err)
		}
		return zr, func() { zr.Close() }, nil
	}

	return nil, nil, fmt.Errorf("%s: expected a directory or .zip file", path)
}
