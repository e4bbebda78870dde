package domain

// KeyboardStyle selects how a reply's buttons are shown by the transport.
type KeyboardStyle string

const (
	KeyboardNone   KeyboardStyle = ""       // Leave the current keyboard untouched
	KeyboardInline KeyboardStyle = "inline" // Choice buttons attached to the message
	KeyboardMenu   KeyboardStyle = "menu"   // Persistent reply keyboard below the input
	KeyboardRemove KeyboardStyle = "remove" // Hide the persistent keyboard
)

// Button is one choice offered to the user. Pressing it produces Event;
// URL buttons open a link instead.
type Button struct {
	Label string
	URL   string
	Event Event
}

// Reply is a structured message for the presentation adapter.
// Fields are ordered to minimize memory padding.
type Reply struct {
	Chart        *ChartImage
	Text         string
	Keyboard     KeyboardStyle
	Buttons      [][]Button
	EditPrevious bool // Replace the previous prompt instead of sending a new message
}

// Flatten returns all buttons in row order.
func (r Reply) Flatten() []Button {
	var out []Button
	for _, row := range r.Buttons {
		out = append(out, row...)
	}
	return out
}

// Button constructors used to build keyboards.

// EventButton returns a button that emits ev.
func EventButton(label string, ev Event) Button {
	ev.Callback = true
	return Button{Label: label, Event: ev}
}

// LinkButton returns a button that opens url.
func LinkButton(label, url string) Button {
	return Button{Label: label, URL: url}
}

// menuButton returns a persistent keyboard button; pressing it sends its label as text.
func menuButton(label string) Button {
	return Button{Label: label, Event: EventFromText(label)}
}

// MainMenuKeyboard is the persistent keyboard shown in menu_idle.
func MainMenuKeyboard() [][]Button {
	return [][]Button{{menuButton(LabelLogTime), menuButton(LabelStatistics)}}
}

// BackToMenuKeyboard offers a single inline "Main menu" button.
func BackToMenuKeyboard() [][]Button {
	return [][]Button{{EventButton("⬅ Main menu", Event{Kind: EventMenu})}}
}

// ProjectKeyboard lists projects followed by "Add project" and "Back".
// For the statistics filter the add button is replaced by "Clear project filter".
func ProjectKeyboard(projects []Project, forStats bool) [][]Button {
	rows := make([][]Button, 0, len(projects)+2)
	if forStats {
		rows = append(rows, []Button{EventButton("🔄 Clear project filter", Event{Kind: EventStatsClearFilter})})
	}
	for _, p := range projects {
		rows = append(rows, []Button{EventButton(p.Name, ChooseProjectEvent(p.ID))})
	}
	if !forStats {
		rows = append(rows, []Button{EventButton("➕ Add project", Event{Kind: EventAddNewProject})})
	}
	rows = append(rows, []Button{EventButton("⬅ Back to menu", Event{Kind: EventMenu})})
	return rows
}

// CommentKeyboard offers the "No comment" shortcut.
func CommentKeyboard() [][]Button {
	return [][]Button{{EventButton(NoCommentText, Event{Kind: EventNoComment})}}
}

// CancelKeyboard is the persistent keyboard shown while typing hours.
func CancelKeyboard() [][]Button {
	return [][]Button{{menuButton(LabelCancel)}}
}

// StatsKeyboard is the statistics menu.
func StatsKeyboard() [][]Button {
	return [][]Button{
		{
			EventButton("📅 Today", ChoosePeriodEvent(PeriodToday)),
			EventButton("🗓 7 days", ChoosePeriodEvent(PeriodWeek)),
		},
		{
			EventButton("🗓 30 days", ChoosePeriodEvent(PeriodMonth)),
			EventButton("📊 All time", ChoosePeriodEvent(PeriodAll)),
		},
		{EventButton("🔍 Filter by project", Event{Kind: EventStatsFilterProject})},
		{EventButton("📈 Open report", Event{Kind: EventReportLink})},
		{EventButton("⬅ Back to menu", Event{Kind: EventMenu})},
	}
}
