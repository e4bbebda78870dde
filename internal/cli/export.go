package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/infra/export"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		UserID   string
		Username string
		Format   string
		Output   string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump records",
		Long: fmt.Sprintf(`Dump stored records in log order.

Without --user or --username every record is exported.
Formats: %s.`, strings.Join(export.Formats, ", ")),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := strings.ToLower(strings.TrimSpace(opts.Format))
			if !slices.Contains(export.Formats, format) {
				return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, opts.Format)
			}

			uc := c.ExportRecordsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportRecordsInput{
				UserID:   opts.UserID,
				Username: opts.Username,
			})
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.Output != "" && opts.Output != "-" {
				f, err := os.Create(opts.Output) //nolint:gosec // Path provided by the user
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			return export.Write(w, format, out.Records)
		},
	}

	addUserFlags(cmd, &opts.UserID, &opts.Username)
	cmd.Flags().StringVarP(&opts.Format, "format", "f", export.FormatCSV, "Output format")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
