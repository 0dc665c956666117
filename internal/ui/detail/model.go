package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/keys"
	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the project detail view component.
type Model struct {
	project  *model.Project
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m, func() tea.Msg {
			return BackMsg{}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.project == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No project selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.project == nil {
		return ""
	}

	p := m.project
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(p.DisplayTitle()))

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.ModeStyle(string(p.Mode)).Render(p.Mode.Label()),
		"  ",
		theme.BadgeStyle.Render(fmt.Sprintf("%ds", p.DurationSec)),
		"  ",
		theme.BadgeStyle.Render(p.Language),
		"  ",
		theme.StatusStyle(p.DisplayStatus()).Render(p.DisplayStatus()),
	)
	sections = append(sections, badgeLine, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	if p.ID != "" {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("ID:"),
			valStyle.Render(p.ID),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))
	sections = append(sections, "", separator, "")

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, headerStyle.Render("Prompt"))
	sections = append(sections, lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(p.Prompt))

	if top := p.TopSuggestions(); len(top) > 0 {
		sections = append(sections, "", separator, "")
		sections = append(sections, headerStyle.Render("Suggestions"))
		for _, s := range top {
			sections = append(sections, "• "+s)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetProject updates the project being displayed and re-renders the content.
func (m *Model) SetProject(p model.Project) {
	m.project = &p
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.project != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
