package projectlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/keys"
	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/theme"
)

// Placeholder texts shown instead of the list.
const (
	EmptyText   = "No projects yet. Create your first one above."
	LoadingText = "Loading projects…"
)

// SelectedProjectMsg is sent when the user opens a project card.
type SelectedProjectMsg struct {
	Project model.Project
}

// Model renders the project collection. It never owns the collection:
// Sync is called with the listing's current snapshot after every change.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	loaded bool
	width  int
	height int
}

// New creates a new project list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, CardDelegate{}, width, height)
	l.Title = "Projects"
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("project", "projects")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Sync replaces the displayed items with projects, keeping the cursor on
// the same project when it is still present.
func (m *Model) Sync(projects []model.Project, loaded bool) tea.Cmd {
	m.loaded = loaded

	var selectedID string
	if item, ok := m.list.SelectedItem().(ProjectItem); ok {
		selectedID = item.Project.ID
	}

	items := make([]list.Item, len(projects))
	cursor := 0
	for i, p := range projects {
		items[i] = ProjectItem{Project: p}
		if selectedID != "" && p.ID == selectedID {
			cursor = i
		}
	}

	cmd := m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(cursor)
	}
	return cmd
}

// Len returns the number of displayed projects.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the project under the cursor.
func (m Model) Selected() (model.Project, bool) {
	item, ok := m.list.SelectedItem().(ProjectItem)
	if !ok {
		return model.Project{}, false
	}
	return item.Project, true
}

// Update handles messages for the project list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		p, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedProjectMsg{Project: p}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list, or a placeholder while loading or when empty.
func (m Model) View() string {
	if len(m.list.Items()) > 0 {
		return m.list.View()
	}

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if !m.loaded {
		return style.Render(LoadingText)
	}
	return style.Render(EmptyText)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
