// Package tui is the terminal front end of the calculator.
//
// The model turns key presses into session events: keys bound in the keymap
// trigger evaluate, clear, backspace, or quit, and any other printable key is
// typed into the display. The view draws the display above the calculator's
// button layout and a help line.
//
// The model is meant for the bubbletea event loop, which calls Update from a
// single goroutine. It shares its session with nothing else.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/session"
)

// buttons is the layout of the calculator keypad, row by row.
var buttons = [][]string{
	{"C", "←", "/", "*"},
	{"7", "8", "9", "-"},
	{"4", "5", "6", "+"},
	{"1", "2", "3", "="},
	{"0", "."},
}

type keyMap struct {
	Evaluate  key.Binding
	Clear     key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

func newKeyMap(km config.Keymap) keyMap {
	return keyMap{
		Evaluate:  binding(km.Evaluate, "evaluate"),
		Clear:     binding(km.Clear, "clear"),
		Backspace: binding(km.Backspace, "delete"),
		Quit:      binding(km.Quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.Backspace, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type styles struct {
	display lipgloss.Style
	errFG   lipgloss.Color
	status  lipgloss.Style
	button  lipgloss.Style
}

func newStyles(th config.Theme) styles {
	return styles{
		display: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.DisplayFG)).
			Background(lipgloss.Color(th.DisplayBG)).
			Align(lipgloss.Right).
			Padding(0, 1),
		errFG:  lipgloss.Color(th.ErrorFG),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color(th.ErrorFG)).Faint(true),
		button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.ButtonFG)).
			Width(5).
			Align(lipgloss.Center).
			Padding(0, 1),
	}
}

// Model is the bubbletea model for one calculator.
type Model struct {
	sess     *session.Session
	keys     keyMap
	help     help.Model
	styles   styles
	width    int
	quitting bool
}

// New creates a model driving sess with the keymap and theme of cfg.
func New(sess *session.Session, cfg config.Config) Model {
	return Model{
		sess:   sess,
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		styles: newStyles(cfg.Theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Evaluate):
			m.sess.Evaluate()
		case key.Matches(msg, m.keys.Clear):
			m.sess.Clear()
		case key.Matches(msg, m.keys.Backspace):
			m.sess.Backspace()
		case msg.Type == tea.KeySpace:
			m.sess.Char(' ')
		case msg.Type == tea.KeyRunes && !msg.Alt:
			// Pastes arrive as one message with many runes.
			for _, r := range msg.Runes {
				m.sess.Char(r)
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	pad := m.renderButtons()
	// The display spans the window once its size is known.
	width := lipgloss.Width(pad)
	if m.width > 0 {
		width = m.width
	}

	text := m.sess.Display()
	st := m.styles.display.Width(width)
	if text == session.ErrorMarker {
		st = st.Foreground(m.styles.errFG)
	}
	// Keep the end of long input visible, as a calculator display does.
	if room := width - 2; room > 0 && len(text) > room {
		text = text[len(text)-room:]
	}
	var status string
	if err := m.sess.LastErr(); err != nil {
		status = m.styles.status.Render(err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.Render(text),
		status,
		pad,
		m.help.View(m.keys),
	) + "\n"
}

func (m Model) renderButtons() string {
	rows := make([]string, 0, len(buttons))
	for _, row := range buttons {
		cells := make([]string, 0, len(row))
		for _, label := range row {
			cells = append(cells, m.styles.button.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
