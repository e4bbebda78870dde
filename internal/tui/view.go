package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/hourlog/internal/domain"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.styles.Transcript.Render(m.viewport.View()))
	b.WriteString("\n")
	if bar := m.buttonsView(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) headerView() string {
	title := "hourlog"
	if m.config.Username != "" {
		title += " · " + m.config.Username
	}
	if m.busy {
		title += " · …"
	}
	return m.styles.Header.Render(title)
}

// buttonsView renders inline buttons on the first row and the menu on the second.
func (m Model) buttonsView() string {
	var rows []string
	offset := 0
	for _, group := range [][]string{m.labels(m.inline), m.labels(m.menu)} {
		if len(group) == 0 {
			continue
		}
		cells := make([]string, len(group))
		for i, label := range group {
			style := m.styles.Button
			if offset+i == m.selected {
				style = m.styles.ButtonSelected
			}
			cells[i] = style.Render(label)
		}
		offset += len(group)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) labels(buttons []domain.Button) []string {
	out := make([]string, len(buttons))
	for i, b := range buttons {
		label := b.Label
		if b.URL != "" {
			label += " ↗"
		}
		out[i] = label
	}
	return out
}

func (m *Model) updateLayout() {
	// Layout:
	// - Header: 1 line
	// - Transcript: remaining
	// - Buttons: 3 lines per row (bordered)
	// - Input: 3 lines
	// - Help: 1 line, or 3 when expanded
	headerHeight := 1
	inputHeight := 3
	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 3
	}
	buttonHeight := 0
	if len(m.inline) > 0 {
		buttonHeight += 3
	}
	if len(m.menu) > 0 {
		buttonHeight += 3
	}

	vpHeight := m.height - headerHeight - inputHeight - helpHeight - buttonHeight - 2 // borders
	if vpHeight < 3 {
		vpHeight = 3
	}

	if m.width > 0 {
		m.viewport.Width = m.width - 2
		m.input.Width = m.width - 6
		m.help.Width = m.width
	}
	m.viewport.Height = vpHeight
}

func (m *Model) updateViewportContent() {
	wrapWidth := m.viewport.Width - 2
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var lines []string
	for _, e := range m.entries {
		prefix := "[" + e.at.Format("15:04") + "] "
		var who string
		switch e.who {
		case speakerUser:
			who = "you: "
		case speakerError:
			who = "error: "
		default:
			who = "bot: "
		}
		indent := strings.Repeat(" ", len(prefix)+len(who))
		wrapped := strings.Split(wrapText(e.text, wrapWidth-len(indent)), "\n")

		head := m.styles.Timestamp.Render(prefix) + m.whoStyle(e.who).Render(who) + wrapped[0]
		lines = append(lines, head)
		for _, l := range wrapped[1:] {
			lines = append(lines, indent+l)
		}
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) whoStyle(who speaker) lipgloss.Style {
	switch who {
	case speakerUser:
		return m.styles.UserPrefix
	case speakerError:
		return m.styles.Error
	default:
		return m.styles.BotPrefix
	}
}
