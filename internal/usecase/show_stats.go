package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/hourlog/internal/domain"
)

// ShowStatsInput contains the parameters for computing statistics.
// Fields are ordered to minimize memory padding.
type ShowStatsInput struct {
	UserID        string        // User identifier (required)
	Username      string        // Handle; records are looked up by it when set
	ProjectFilter string        // Restrict to this project name ("" = all)
	Period        domain.Period // Time window (default: all)
	SkipChart     bool          // Do not render a chart
}

// ShowStatsOutput contains computed statistics.
// Fields are ordered to minimize memory padding.
type ShowStatsOutput struct {
	Chart         *domain.ChartImage    // Rendered chart (nil when skipped or rendering failed)
	Title         string                // Heading, e.g. "Last 7 days"
	ProjectFilter string                // Echo of the applied filter
	Shares        []domain.ProjectShare // Projects ordered by hours descending
	Stats         domain.Stats          // Raw aggregation result
	Period        domain.Period
	NoRecords     bool // The user has no records at all
}

// ShowStats is the use case for the statistics summary and chart.
type ShowStats struct {
	records domain.RecordStore
	charts  domain.ChartRenderer
	clock   domain.Clock
	logger  domain.Logger
}

// NewShowStats creates a new ShowStats use case. charts may be nil.
func NewShowStats(records domain.RecordStore, charts domain.ChartRenderer, clock domain.Clock, logger domain.Logger) *ShowStats {
	return &ShowStats{
		records: records,
		charts:  charts,
		clock:   clock,
		logger:  logger,
	}
}

// Execute queries the user's records, aggregates them and renders a chart.
func (uc *ShowStats) Execute(ctx context.Context, in ShowStatsInput) (*ShowStatsOutput, error) {
	period := in.Period
	if period == "" {
		period = domain.PeriodAll
	}
	if !period.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, period)
	}

	out := &ShowStatsOutput{
		Title:         period.Title(),
		Period:        period,
		ProjectFilter: in.ProjectFilter,
	}

	rows, err := uc.records.Query(ctx, domain.IdentifierFor(in.UserID, in.Username))
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	uc.logger.Debug(in.UserID, "stats", fmt.Sprintf("retrieved %d records", len(rows)))
	if len(rows) == 0 {
		out.NoRecords = true
		return out, nil
	}

	out.Stats = domain.Aggregate(rows, period.Days(), in.ProjectFilter, uc.clock.Now())
	for _, skipped := range out.Stats.Skipped {
		uc.logger.Warn(in.UserID, "stats", fmt.Sprintf("skipping malformed record %v: %s", map[string]any(skipped.Record), skipped.Reason))
	}
	out.Shares = domain.Summarize(out.Stats)

	if in.SkipChart || uc.charts == nil {
		return out, nil
	}
	series, err := domain.ReduceSeries(out.Stats.ByProject)
	if err != nil && !errors.Is(err, domain.ErrNoChartData) {
		return nil, err
	}
	chart, err := uc.charts.Render(series, out.ChartTitle())
	if err != nil {
		// A missing chart never hides the summary.
		uc.logger.Error(in.UserID, "chart", fmt.Sprintf("render chart: %v", err))
		return out, nil
	}
	out.Chart = chart

	return out, nil
}

// ChartTitle returns the chart heading.
func (o *ShowStatsOutput) ChartTitle() string {
	if o.ProjectFilter != "" {
		return o.ProjectFilter + " — " + o.Title
	}
	return "Hours by project — " + o.Title
}

// Heading returns the summary heading line.
func (o *ShowStatsOutput) Heading() string {
	if o.ProjectFilter != "" {
		return fmt.Sprintf("📊 Statistics for project «%s» — %s", o.ProjectFilter, o.Title)
	}
	return "📊 Statistics — " + o.Title
}

// SummaryText renders the summary as a chat message.
func (o *ShowStatsOutput) SummaryText() string {
	var b strings.Builder
	b.WriteString(o.Heading())
	b.WriteString("\n\n")
	if o.NoRecords {
		b.WriteString("You have no records yet.")
		return b.String()
	}
	if o.Stats.Total == 0 {
		b.WriteString("No time found for the selected period.")
		return b.String()
	}
	for _, s := range o.Shares {
		fmt.Fprintf(&b, "▪ %s\n   — %.2f h (%.1f%%)\n", s.Project, s.Hours, s.Percent)
	}
	fmt.Fprintf(&b, "\n➡ Total: %.2f h", o.Stats.Total)
	return b.String()
}
