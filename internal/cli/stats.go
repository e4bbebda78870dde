package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		UserID   string
		Username string
		Period   string
		Project  string
		NoChart  bool
	}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show hours by project",
		Long: `Show a user's hours grouped by project for a period.

Periods: today, 7d, 30d, all. With --project the summary is limited
to one project. The chart is rendered per the [chart] config section;
PNG charts are written to [chart] dir and their path is printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(opts.UserID, opts.Username); err != nil {
				return err
			}

			period := domain.Period(strings.ToLower(strings.TrimSpace(opts.Period)))
			if !period.IsValid() {
				return fmt.Errorf("invalid period %q (want one of %v)", opts.Period, domain.AllPeriods())
			}

			uc := c.ShowStatsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowStatsInput{
				UserID:        opts.UserID,
				Username:      opts.Username,
				Period:        period,
				ProjectFilter: strings.TrimSpace(opts.Project),
				SkipChart:     opts.NoChart,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, out.SummaryText())
			if out.Chart == nil || out.Chart.Placeholder {
				return nil
			}
			_, _ = fmt.Fprintln(w)
			switch {
			case out.Chart.Format == domain.ChartFormatText:
				_, _ = fmt.Fprintln(w, strings.TrimRight(string(out.Chart.Data), "\n"))
			case out.Chart.Path != "":
				_, _ = fmt.Fprintf(w, "Chart: %s\n", out.Chart.Path)
			}
			return nil
		},
	}

	addUserFlags(cmd, &opts.UserID, &opts.Username)
	cmd.Flags().StringVar(&opts.Period, "period", string(domain.PeriodAll), "Period: today, 7d, 30d, all")
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Limit to one project name")
	cmd.Flags().BoolVar(&opts.NoChart, "no-chart", false, "Skip chart rendering")

	return cmd
}
