package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/theme"
)

// Name identifies a palette command.
type Name string

const (
	Refresh  Name = "refresh"
	New      Name = "new"
	Settings Name = "settings"
	Quit     Name = "quit"
)

var known = []Name{Refresh, New, Settings, Quit}

// aliases maps short forms onto commands.
var aliases = map[string]Name{
	"r": Refresh,
	"n": New,
	"s": Settings,
	"q": Quit,
}

// Names returns the palette commands in display order.
func Names() []string {
	out := make([]string, len(known))
	for i, n := range known {
		out[i] = string(n)
	}
	return out
}

// Parse resolves user input to a command name.
func Parse(input string) (Name, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if n, ok := aliases[s]; ok {
		return n, nil
	}
	for _, n := range known {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown command %q", input)
}

// CommandMsg is emitted when the user executes a known command.
type CommandMsg struct {
	Name Name
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    error
	width  int
	height int
}

// NewModel creates a new command palette model.
func NewModel(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "refresh, new, settings, quit"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		raw := m.input.Value()
		m.input.Reset()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}
		name, err := Parse(raw)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, func() tea.Msg {
			return CommandMsg{Name: name}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Command Palette")

	parts := []string{title, m.input.View()}
	if m.err != nil {
		parts = append(parts, theme.ErrorStyle.Render(m.err.Error()))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
