package projectlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prompttotube/internal/keys"
	"github.com/nhle/prompttotube/internal/model"
)

func project(id, prompt string) model.Project {
	return model.Project{ID: id, Prompt: prompt, Mode: model.ModeShort, DurationSec: 60, Language: "en"}
}

func TestView_LoadingBeforeFirstSync(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	assert.Contains(t, m.View(), LoadingText)
}

func TestView_EmptyAfterLoad(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.Sync(nil, true)
	assert.Contains(t, m.View(), EmptyText)
}

func TestView_ItemsShownEvenBeforeLoad(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.Sync([]model.Project{project("p1", "Optimistic cats video")}, false)

	view := m.View()
	assert.NotContains(t, view, LoadingText)
	assert.Contains(t, view, "Optimistic cats video")
}

func TestUpdate_SelectEmitsProject(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.Sync([]model.Project{project("p1", "first prompt"), project("p2", "second prompt")}, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectedProjectMsg)
	require.True(t, ok)
	assert.Equal(t, "p1", msg.Project.ID)
}

func TestSync_KeepsCursorOnSameProject(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 30)
	m.Sync([]model.Project{project("p1", "first prompt"), project("p2", "second prompt")}, true)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "p2", sel.ID)

	m.Sync([]model.Project{
		project("p0", "new prompt"),
		project("p1", "first prompt"),
		project("p2", "second prompt"),
	}, true)

	sel, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "p2", sel.ID)
	assert.Equal(t, 3, m.Len())
}

func TestRenderCard_ShowsFallbacksAndTopSuggestions(t *testing.T) {
	p := project("p1", "a prompt about tides")
	p.Suggestions = []string{"hook one", "hook two", "hook three", "hook four"}

	card := renderCard(p, 120)
	assert.Contains(t, card, "a prompt about tides")
	assert.Contains(t, card, "created")
	assert.Contains(t, card, "60s")
	assert.Contains(t, card, "hook three")
	assert.NotContains(t, card, "hook four")

	p.Title = "Tides Explained"
	assert.Contains(t, renderCard(p, 120), "Tides Explained")
}
