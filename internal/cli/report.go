package cli

import (
	"fmt"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newReportCommand creates the report command.
func newReportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the spreadsheet report link",
		Long: `Print the link to the spreadsheet view behind the statistics.

The link is built from [report] spreadsheet_id and sheet_gid.`,
		Annotations: noStore(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowReportLinkUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowReportLinkInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.URL)
			return nil
		},
	}
}
