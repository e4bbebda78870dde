package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKind enumerates the inputs a dialog can receive.
type EventKind string

const (
	EventStart              EventKind = "start"                // /start command
	EventMenu               EventKind = "menu"                 // /menu command or "back to main menu"
	EventCancel             EventKind = "cancel"               // /cancel command or the cancel button
	EventAddTime            EventKind = "add_time"             // "Log time" menu entry
	EventStatistics         EventKind = "statistics"           // "Statistics" menu entry
	EventChooseProject      EventKind = "choose_project"       // Project button (ProjectID set)
	EventAddNewProject      EventKind = "add_new_project"      // "Add project" button
	EventBackToProjects     EventKind = "back_to_projects"     // "Back" while naming a project
	EventText               EventKind = "text"                 // Free text (Text set)
	EventNoComment          EventKind = "no_comment"           // "No comment" button
	EventChoosePeriod       EventKind = "choose_period"        // Statistics period button (Period set)
	EventStatsFilterProject EventKind = "stats_filter_project" // "Filter by project" button
	EventStatsClearFilter   EventKind = "stats_clear_filter"   // "Clear project filter" button
	EventReportLink         EventKind = "report_link"          // "Open report" button
	EventBackToStats        EventKind = "back_to_stats"        // "Back to statistics" button
	EventUnknown            EventKind = "unknown"              // Callback data no handler recognizes (Text holds it)
)

// Event is one inbound user action. Only the payload field matching Kind is meaningful.
// Fields are ordered to minimize memory padding.
type Event struct {
	Kind      EventKind
	Text      string
	Period    Period
	ProjectID int
	Callback  bool // Produced by pressing an inline button rather than typing
}

// TextEvent returns a free-text event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// ChooseProjectEvent returns a project selection event.
func ChooseProjectEvent(id int) Event {
	return Event{Kind: EventChooseProject, ProjectID: id}
}

// ChoosePeriodEvent returns a statistics period event.
func ChoosePeriodEvent(p Period) Event {
	return Event{Kind: EventChoosePeriod, Period: p}
}

// Main menu labels. Typing one of them in any state acts as the matching entry command.
const (
	LabelLogTime    = "Log time"
	LabelStatistics = "Statistics"
	LabelCancel     = "Cancel"
)

// EventFromText maps free text to an event: slash commands and menu labels
// become their entry events, anything else is a text event.
func EventFromText(text string) Event {
	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(trimmed) {
	case "/start":
		return Event{Kind: EventStart}
	case "/menu":
		return Event{Kind: EventMenu}
	case "/cancel":
		return Event{Kind: EventCancel}
	}
	switch trimmed {
	case LabelLogTime:
		return Event{Kind: EventAddTime}
	case LabelStatistics:
		return Event{Kind: EventStatistics}
	case LabelCancel:
		return Event{Kind: EventCancel}
	}
	return TextEvent(text)
}

// Data encodes the event as button callback data, e.g. "choose_project:3".
func (e Event) Data() string {
	switch e.Kind {
	case EventChooseProject:
		return fmt.Sprintf("%s:%d", e.Kind, e.ProjectID)
	case EventChoosePeriod:
		return fmt.Sprintf("%s:%s", e.Kind, e.Period)
	case EventText:
		return fmt.Sprintf("%s:%s", e.Kind, e.Text)
	default:
		return string(e.Kind)
	}
}

// ParseEventData decodes button callback data produced by Event.Data.
// Unrecognized data yields an EventUnknown event together with ErrInvalidChoice,
// so transports can still forward it and let the dialog answer "invalid choice".
func ParseEventData(data string) (Event, error) {
	kind, payload, _ := strings.Cut(data, ":")
	ev := Event{Kind: EventKind(kind), Callback: true}
	unknown := Event{Kind: EventUnknown, Text: data, Callback: true}
	switch ev.Kind {
	case EventChooseProject:
		id, err := strconv.Atoi(payload)
		if err != nil {
			return unknown, fmt.Errorf("%w: %q", ErrInvalidChoice, data)
		}
		ev.ProjectID = id
	case EventChoosePeriod:
		p := Period(payload)
		if !p.IsValid() {
			return unknown, fmt.Errorf("%w: %q", ErrInvalidChoice, data)
		}
		ev.Period = p
	case EventText:
		ev.Text = payload
	case EventStart, EventMenu, EventCancel, EventAddTime, EventStatistics,
		EventAddNewProject, EventBackToProjects, EventNoComment, EventStatsFilterProject,
		EventStatsClearFilter, EventReportLink, EventBackToStats:
	default:
		return unknown, fmt.Errorf("%w: %q", ErrInvalidChoice, data)
	}
	return ev, nil
}

// IsEntry returns true for events that start a fresh dialog from any state.
func (e Event) IsEntry() bool {
	switch e.Kind {
	case EventStart, EventMenu, EventCancel, EventAddTime, EventStatistics:
		return true
	default:
		return false
	}
}
