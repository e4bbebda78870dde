package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceSeries(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := ReduceSeries(map[string]float64{})
		assert.ErrorIs(t, err, ErrNoChartData)
	})

	t.Run("sorted descending", func(t *testing.T) {
		series, err := ReduceSeries(map[string]float64{"a": 1, "b": 5, "c": 3})
		require.NoError(t, err)
		assert.Equal(t, Series{{"b", 5}, {"c", 3}, {"a", 1}}, series)
	})

	t.Run("ten categories are kept", func(t *testing.T) {
		grouped := make(map[string]float64)
		for i := 1; i <= MaxChartSlices; i++ {
			grouped[fmt.Sprintf("p%02d", i)] = float64(i)
		}
		series, err := ReduceSeries(grouped)
		require.NoError(t, err)
		assert.Len(t, series, MaxChartSlices)
		for _, p := range series {
			assert.NotEqual(t, OtherLabel, p.Label)
		}
	})

	t.Run("folds the smallest into other", func(t *testing.T) {
		grouped := make(map[string]float64)
		for i := 1; i <= 12; i++ {
			grouped[fmt.Sprintf("p%02d", i)] = float64(i)
		}
		series, err := ReduceSeries(grouped)
		require.NoError(t, err)
		require.Len(t, series, MaxChartSlices)

		last := series[len(series)-1]
		assert.Equal(t, OtherLabel, last.Label)
		assert.InDelta(t, 1.0+2+3, last.Value, 1e-9)
		assert.Equal(t, "p12", series[0].Label)
		assert.InDelta(t, 78.0, series.Total(), 1e-9)
	})
}
