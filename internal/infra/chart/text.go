package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/hourlog/internal/domain"
)

// barWidth is the width of the longest bar in cells.
const barWidth = 30

// TextRenderer draws a horizontal bar chart for terminals.
type TextRenderer struct {
	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		title: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		label: lipgloss.NewStyle(),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
	}
}

// Render draws series. An empty series yields a "No data" placeholder.
func (r *TextRenderer) Render(series domain.Series, title string) (*domain.ChartImage, error) {
	var b strings.Builder
	b.WriteString(r.title.Render(title))
	b.WriteString("\n")

	total := series.Total()
	empty := len(series) == 0 || total <= 0
	if empty {
		b.WriteString(r.muted.Render("No data"))
	} else {
		labelWidth := 0
		maxValue := 0.0
		for _, p := range series {
			labelWidth = max(labelWidth, lipgloss.Width(p.Label))
			maxValue = max(maxValue, p.Value)
		}
		for i, p := range series {
			cells := int(p.Value / maxValue * barWidth)
			if cells == 0 && p.Value > 0 {
				cells = 1
			}
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(sliceColor(i)))).
				Render(strings.Repeat("█", cells))
			label := r.label.Width(labelWidth).Render(p.Label)
			fmt.Fprintf(&b, "%s %s %s\n", label, bar, r.muted.Render(valueText(p, total)))
		}
		fmt.Fprintf(&b, "%s %.2f h", r.label.Width(labelWidth).Render("Total"), total)
	}

	return &domain.ChartImage{
		Title:       title,
		Format:      domain.ChartFormatText,
		Data:        []byte(b.String()),
		Placeholder: empty,
	}, nil
}

// Ensure TextRenderer implements domain.ChartRenderer.
var _ domain.ChartRenderer = (*TextRenderer)(nil)
