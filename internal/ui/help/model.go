package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/keys"
	"github.com/nhle/prompttotube/internal/theme"
	"github.com/nhle/prompttotube/internal/ui/command"
)

// Model is the help overlay view.
type Model struct {
	keys    *keys.KeyMap
	help    help.Model
	baseURL string
	width   int
	height  int
}

// New creates a new help view model. baseURL is shown so the user can see
// which service the client is talking to.
func New(keys *keys.KeyMap, baseURL string, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:    keys,
		help:    h,
		baseURL: baseURL,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	title := theme.SectionTitleStyle.Render("Keyboard Shortcuts")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	commands := theme.HelpStyle.Render(
		"Commands: " + strings.Join(command.Names(), ", "),
	)
	service := theme.HelpStyle.Render("Service: " + m.baseURL)

	content := lipgloss.JoinVertical(lipgloss.Left, title, helpText, "", commands, service)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
