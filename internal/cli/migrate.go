package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newMigrateCommand creates the migrate command.
func newMigrateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		To     string
		Path   string
		Strict bool
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy records to another store backend",
		Long: `Copy every record from the current store into another backend.

Records already present in the destination (same id and content) are
skipped, so the command can be re-run after an interruption. A record
whose id exists with different content aborts the migration.
Update [store] backend in the config afterwards to switch stores.

Examples:
  # Copy records.json into records.db
  hourlog migrate --to sqlite

  # Copy into a specific file
  hourlog migrate --to sqlite --path /var/lib/hourlog/records.db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := strings.ToLower(strings.TrimSpace(opts.To))

			uc, closer, err := c.MigrateRecordsUseCase(backend, opts.Path)
			if err != nil {
				return err
			}
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}

			out, err := uc.Execute(cmd.Context(), usecase.MigrateRecordsInput{Strict: opts.Strict})
			if err != nil {
				return err
			}

			if out.Total == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No records to migrate")
				return nil
			}

			summary := fmt.Sprintf("Migrated %d record(s) to %s store", out.Migrated, backend)
			if out.Skipped > 0 {
				summary += fmt.Sprintf(" (skipped %d existing)", out.Skipped)
			}
			if out.Invalid > 0 {
				summary += fmt.Sprintf(" (left %d malformed)", out.Invalid)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", domain.StoreBackendSQLite, "Destination backend: json, sqlite")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Destination file (default: records.<ext> in the data directory)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on the first malformed record")

	return cmd
}
