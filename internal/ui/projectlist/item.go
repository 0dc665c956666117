package projectlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/theme"
)

// ProjectItem wraps a model.Project so it can be used in a bubbles/list.
type ProjectItem struct {
	Project model.Project
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProjectItem) FilterValue() string { return i.Project.DisplayTitle() }

// Title returns the card title.
func (i ProjectItem) Title() string { return i.Project.DisplayTitle() }

// Description returns the one-line badge summary.
func (i ProjectItem) Description() string {
	p := i.Project
	return strings.Join([]string{
		string(p.Mode),
		fmt.Sprintf("%ds", p.DurationSec),
		p.Language,
		p.DisplayStatus(),
	}, " | ")
}

// CardDelegate renders each project as a three line card: title, badges
// and the first suggestions.
type CardDelegate struct{}

// Height returns the number of lines each card takes.
func (d CardDelegate) Height() int { return 3 }

// Spacing returns the number of blank lines between cards.
func (d CardDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d CardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single project card.
func (d CardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProjectItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	if width < 10 {
		width = 10
	}

	card := renderCard(pi.Project, width)
	if index == m.Index() {
		card = theme.SelectedItemStyle.Render(card)
	} else {
		card = theme.ListItemStyle.Render(card)
	}

	fmt.Fprint(w, card)
}

func renderCard(p model.Project, width int) string {
	title := theme.CardTitleStyle.Render(ansi.Truncate(oneLine(p.DisplayTitle()), width, "…"))

	badges := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.ModeStyle(string(p.Mode)).Render(string(p.Mode)),
		" ",
		theme.BadgeStyle.Render(fmt.Sprintf("%ds", p.DurationSec)),
		" ",
		theme.BadgeStyle.Render(p.Language),
		" ",
		theme.StatusStyle(p.DisplayStatus()).Render(p.DisplayStatus()),
	)

	suggestions := ""
	if top := p.TopSuggestions(); len(top) > 0 {
		suggestions = theme.HelpStyle.Render(
			ansi.Truncate("• "+strings.Join(top, "  • "), width, "…"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, badges, suggestions)
}

// oneLine collapses newlines so multi-line prompts fit a card title.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
