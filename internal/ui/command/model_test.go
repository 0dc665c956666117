package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Name{
		"refresh":   Refresh,
		" Refresh ": Refresh,
		"r":         Refresh,
		"new":       New,
		"settings":  Settings,
		"q":         Quit,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("delete")
	assert.Error(t, err)
}

func TestModel_EnterEmitsCommand(t *testing.T) {
	m := NewModel(80, 20)
	for _, r := range "refresh" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: Refresh}, cmd())
	assert.Nil(t, m.err)
}

func TestModel_UnknownCommandShowsError(t *testing.T) {
	m := NewModel(80, 20)
	for _, r := range "zap" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "unknown command")
}
