package cli

import (
	"fmt"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		UserID string
		Lines  int
	}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the activity log",
		Long: `Show the global activity log, or one user's log with --user.

Examples:
  hourlog logs
  hourlog logs --user 42 -n 20`,
		Annotations: noStore(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowLogsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowLogsInput{
				UserID: opts.UserID,
				Lines:  opts.Lines,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.UserID, "user", "u", "", "Show this user's log instead of the global log")
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Number of lines from the end (0 = all)")

	return cmd
}
