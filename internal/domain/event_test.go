package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want EventKind
	}{
		{"start command", "/start", EventStart},
		{"menu command", "/menu", EventMenu},
		{"cancel command", "/cancel", EventCancel},
		{"command is case-insensitive", "/CANCEL", EventCancel},
		{"log time label", LabelLogTime, EventAddTime},
		{"statistics label", " " + LabelStatistics + " ", EventStatistics},
		{"cancel label", LabelCancel, EventCancel},
		{"free text", "2.5", EventText},
		{"label with different case", "log time", EventText},
		{"empty", "", EventText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := EventFromText(tt.text)
			assert.Equal(t, tt.want, ev.Kind)
			assert.False(t, ev.Callback)
			if tt.want == EventText {
				assert.Equal(t, tt.text, ev.Text)
			}
		})
	}
}

func TestParseEventData(t *testing.T) {
	t.Run("round trips button data", func(t *testing.T) {
		events := []Event{
			ChooseProjectEvent(15),
			ChoosePeriodEvent(PeriodMonth),
			{Kind: EventAddNewProject},
			{Kind: EventNoComment},
			{Kind: EventStatsFilterProject},
			{Kind: EventStatsClearFilter},
			{Kind: EventReportLink},
			{Kind: EventBackToStats},
			{Kind: EventBackToProjects},
			{Kind: EventMenu},
		}
		for _, ev := range events {
			got, err := ParseEventData(ev.Data())
			require.NoError(t, err, ev.Data())
			ev.Callback = true
			assert.Equal(t, ev, got)
		}
	})

	t.Run("encodes payloads", func(t *testing.T) {
		assert.Equal(t, "choose_project:3", ChooseProjectEvent(3).Data())
		assert.Equal(t, "choose_period:7d", ChoosePeriodEvent(PeriodWeek).Data())
		assert.Equal(t, "no_comment", Event{Kind: EventNoComment}.Data())
	})

	t.Run("rejects unknown data", func(t *testing.T) {
		for _, data := range []string{"", "launch", "choose_project:x", "choose_period:90d"} {
			ev, err := ParseEventData(data)
			assert.ErrorIs(t, err, ErrInvalidChoice, data)
			assert.Equal(t, EventUnknown, ev.Kind)
			assert.Equal(t, data, ev.Text)
			assert.True(t, ev.Callback)
		}
	})
}

func TestEvent_IsEntry(t *testing.T) {
	assert.True(t, Event{Kind: EventStart}.IsEntry())
	assert.True(t, Event{Kind: EventStatistics}.IsEntry())
	assert.False(t, TextEvent("x").IsEntry())
	assert.False(t, ChooseProjectEvent(1).IsEntry())
}
