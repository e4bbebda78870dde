package cli

import (
	"fmt"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory",
		Long: `Initialize the hourlog data directory.

This command creates the data directory with:
- logs/: directory for the global and per-user logs
- the record store (records.json or records.db, per [store] backend)
- projects.json when [projects] registry = "json", seeded from [projects] seed

Existing stores are left untouched, so running init twice is safe.`,
		Annotations: noStore(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Get use case from container
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized hourlog in %s (%d stores)\n", out.DataDir, out.Initialized)
			return nil
		},
	}
}
