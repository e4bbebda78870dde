// Package tui provides a terminal chat console for the time-tracking dialog.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/hourlog/internal/domain"
)

// Config contains configuration for the console.
type Config struct {
	Turn     TurnFunc
	Now      func() time.Time // Defaults to time.Now
	Username string
}

// speaker identifies who wrote a transcript line.
type speaker int

const (
	speakerBot speaker = iota
	speakerUser
	speakerError
)

// entry is one message in the transcript.
type entry struct {
	at   time.Time
	text string
	who  speaker
}

// Model is the bubbletea model for the chat console.
type Model struct {
	config   Config
	styles   Styles
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model
	entries  []entry
	inline   []domain.Button // Buttons attached to the latest reply
	menu     []domain.Button // Persistent keyboard
	selected int             // Index into buttons(); -1 when none
	width    int
	height   int
	busy     bool
	quitting bool
}

// New creates a new console model.
func New(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Type a message or /start..."
	ti.CharLimit = 512
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return Model{
		config:   cfg,
		styles:   DefaultStyles(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    ti,
		viewport: vp,
		selected: -1,
	}
}

// Init implements tea.Model. The console opens with /start.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.runTurn(domain.Event{Kind: domain.EventStart}),
	)
}

// runTurn returns a command running one dialog turn.
func (m Model) runTurn(ev domain.Event) tea.Cmd {
	turn := m.config.Turn
	return func() tea.Msg {
		if turn == nil {
			return turnDoneMsg{}
		}
		replies, err := turn(context.Background(), ev)
		return turnDoneMsg{replies: replies, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.updateViewportContent()
		return m, nil

	case turnDoneMsg:
		m.busy = false
		m.applyReplies(msg.replies)
		if msg.err != nil {
			m.addEntry(speakerError, msg.err.Error())
		}
		m.updateLayout()
		m.updateViewportContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil

	case key.Matches(msg, m.keys.NextButton):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevButton):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.send()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Typing drops the button selection so Enter sends the text.
	if m.input.Value() != "" {
		m.selected = -1
	}
	return m, cmd
}

// send submits typed text, or presses the selected button when the input is empty.
func (m Model) send() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	var ev domain.Event
	text := strings.TrimSpace(m.input.Value())
	buttons := m.buttons()
	switch {
	case text != "":
		ev = domain.EventFromText(text)
		m.addEntry(speakerUser, text)
		m.input.Reset()
	case m.selected >= 0 && m.selected < len(buttons):
		b := buttons[m.selected]
		if b.URL != "" {
			m.addEntry(speakerBot, "Open: "+b.URL)
			m.updateViewportContent()
			return m, nil
		}
		ev = b.Event
		m.addEntry(speakerUser, b.Label)
	default:
		return m, nil
	}

	// Inline buttons only answer the message they were attached to.
	m.inline = nil
	m.selected = -1
	m.busy = true
	m.updateLayout()
	m.updateViewportContent()
	return m, m.runTurn(ev)
}

// buttons returns the selectable buttons: inline first, then the persistent menu.
func (m Model) buttons() []domain.Button {
	out := make([]domain.Button, 0, len(m.inline)+len(m.menu))
	out = append(out, m.inline...)
	return append(out, m.menu...)
}

func (m *Model) moveSelection(delta int) {
	n := len(m.buttons())
	if n == 0 {
		m.selected = -1
		return
	}
	switch {
	case m.selected < 0 && delta > 0:
		m.selected = 0
	case m.selected < 0:
		m.selected = n - 1
	default:
		m.selected = (m.selected + delta + n) % n
	}
}

// applyReplies appends replies to the transcript and updates the keyboards.
func (m *Model) applyReplies(replies []domain.Reply) {
	for _, r := range replies {
		text := r.Text
		if r.Chart != nil {
			text = joinNonEmpty(text, chartText(r.Chart))
		}
		if !r.EditPrevious || !m.replaceLastBot(text) {
			m.addEntry(speakerBot, text)
		}

		switch r.Keyboard {
		case domain.KeyboardInline:
			m.inline = r.Flatten()
		case domain.KeyboardMenu:
			m.menu = r.Flatten()
		case domain.KeyboardRemove:
			m.menu = nil
		case domain.KeyboardNone:
		}
	}
	m.selected = -1
	if len(m.inline) > 0 {
		m.selected = 0
	}
}

// chartText describes a chart for the terminal: text charts inline, images by path.
func chartText(c *domain.ChartImage) string {
	switch {
	case c.Format == domain.ChartFormatText:
		return strings.TrimRight(string(c.Data), "\n")
	case c.Path != "":
		return "Chart saved to " + c.Path
	default:
		return "(chart: " + c.Title + ")"
	}
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}

func (m *Model) addEntry(who speaker, text string) {
	m.entries = append(m.entries, entry{at: m.config.Now(), text: text, who: who})
}

// replaceLastBot rewrites the latest bot message. Returns false when there is none.
func (m *Model) replaceLastBot(text string) bool {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].who == speakerBot {
			m.entries[i].text = text
			m.entries[i].at = m.config.Now()
			return true
		}
	}
	return false
}
