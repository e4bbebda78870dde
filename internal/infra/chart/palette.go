// Package chart renders statistics series as PNG donut charts or text bar charts.
package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/runoshun/hourlog/internal/domain"
)

// palette holds one color per slice; MaxChartSlices entries are enough for a reduced series.
var palette = []color.RGBA{
	{0x4e, 0x79, 0xa7, 0xff},
	{0xf2, 0x8e, 0x2b, 0xff},
	{0xe1, 0x57, 0x59, 0xff},
	{0x76, 0xb7, 0xb2, 0xff},
	{0x59, 0xa1, 0x4f, 0xff},
	{0xed, 0xc9, 0x48, 0xff},
	{0xb0, 0x7a, 0xa1, 0xff},
	{0xff, 0x9d, 0xa7, 0xff},
	{0x9c, 0x75, 0x5f, 0xff},
	{0xba, 0xb0, 0xac, 0xff},
}

func sliceColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// valueText formats a slice value with its share: "2.50 h (40.0%)".
func valueText(p domain.SeriesPoint, total float64) string {
	var percent float64
	if total > 0 {
		percent = p.Value / total * 100
	}
	return fmt.Sprintf("%.2f h (%.1f%%)", p.Value, percent)
}

// legendLine formats one legend entry: "Label 2.50 h (40.0%)".
func legendLine(p domain.SeriesPoint, total float64) string {
	return p.Label + " " + valueText(p, total)
}

// NewRenderer returns the renderer for a configured chart format.
func NewRenderer(format, dir string) (domain.ChartRenderer, error) {
	switch domain.ChartFormat(strings.ToLower(format)) {
	case domain.ChartFormatPNG, "":
		return NewPNGRenderer(dir), nil
	case domain.ChartFormatText:
		return NewTextRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownChartFormat, format)
	}
}
