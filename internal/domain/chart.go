package domain

import "sort"

// Chart series limits.
const (
	MaxChartSlices = 10      // Categories shown before folding into OtherLabel
	OtherLabel     = "Other" // Label of the folded remainder
)

// SeriesPoint is one labelled value of a chart series.
type SeriesPoint struct {
	Label string
	Value float64
}

// Series is the ordered label/value list handed to a ChartRenderer.
type Series []SeriesPoint

// Total returns the sum of all values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// ChartFormat identifies the encoding of a rendered chart.
type ChartFormat string

const (
	ChartFormatPNG  ChartFormat = "png"
	ChartFormatText ChartFormat = "text"
)

// ChartImage is a rendered chart artifact.
// Fields are ordered to minimize memory padding.
type ChartImage struct {
	Title       string
	Format      ChartFormat
	Path        string // Set when the renderer wrote the artifact to disk
	Data        []byte
	Placeholder bool // True when rendered for an empty series
}

// ReduceSeries turns grouped totals into a chart series sorted by value
// (descending, then label). With more than MaxChartSlices categories the top
// MaxChartSlices-1 are kept and the rest are summed into OtherLabel.
// Returns ErrNoChartData when grouped is empty.
func ReduceSeries(grouped map[string]float64) (Series, error) {
	if len(grouped) == 0 {
		return nil, ErrNoChartData
	}

	series := make(Series, 0, len(grouped))
	for label, value := range grouped {
		series = append(series, SeriesPoint{Label: label, Value: value})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Value != series[j].Value {
			return series[i].Value > series[j].Value
		}
		return series[i].Label < series[j].Label
	})

	if len(series) <= MaxChartSlices {
		return series, nil
	}

	keep := MaxChartSlices - 1
	var other float64
	for _, p := range series[keep:] {
		other += p.Value
	}
	reduced := make(Series, 0, MaxChartSlices)
	reduced = append(reduced, series[:keep]...)
	reduced = append(reduced, SeriesPoint{Label: OtherLabel, Value: other})
	return reduced, nil
}
