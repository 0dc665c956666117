package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/studio"
	"github.com/nhle/prompttotube/internal/ui/command"
	"github.com/nhle/prompttotube/internal/ui/intakeform"
	"github.com/nhle/prompttotube/internal/ui/projectlist"
)

type stubService struct {
	mu        sync.Mutex
	list      []model.Project
	createErr error
}

func (s *stubService) CreateProject(_ context.Context, d model.Draft) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.Project{ID: "new-1", Prompt: d.Prompt, Mode: d.Mode, DurationSec: d.DurationSec, Language: d.Language}, nil
}

func (s *stubService) ListProjects(context.Context) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Project(nil), s.list...), nil
}

func newTestModel(t *testing.T, svc *stubService) Model {
	t.Helper()
	st := studio.New(svc, studio.Options{})
	m := New(Options{
		Studio:  st,
		Draft:   model.DefaultDraft(),
		BaseURL: "http://localhost:8000",
	})
	mdl, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mdl.(Model)
}

// apply feeds msg through Update and returns the new model.
func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	mdl, cmd := m.Update(msg)
	out, ok := mdl.(Model)
	require.True(t, ok)
	return out, cmd
}

func catsDraft() model.Draft {
	d := model.DefaultDraft()
	d.Prompt = "Make a 1-minute video about cats"
	return d
}

func TestInitialRefreshPopulatesList(t *testing.T) {
	svc := &stubService{list: []model.Project{{ID: "a", Prompt: "first prompt"}}}
	m := newTestModel(t, svc)

	msg := m.studio.Refresh()()
	m, _ = apply(t, m, msg)

	assert.Equal(t, 1, m.projects.Len())
	assert.Contains(t, m.View(), "1 projects")
}

func TestSubmit_SuccessPrependsAndClearsSubmitting(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)

	m, cmd := apply(t, m, intakeform.SubmitMsg{Draft: catsDraft()})
	require.NotNil(t, cmd)
	assert.True(t, m.form.Submitting())
	assert.Contains(t, m.View(), "creating…")

	created, ok := cmd().(studio.ProjectCreatedMsg)
	require.True(t, ok)

	m, _ = apply(t, m, created)
	assert.False(t, m.form.Submitting())
	assert.Equal(t, 1, m.projects.Len())
	sel, ok := m.projects.Selected()
	require.True(t, ok)
	assert.Equal(t, "new-1", sel.ID)
	assert.Empty(t, m.alert)
}

func TestSubmit_ShortPromptIsIgnored(t *testing.T) {
	m := newTestModel(t, &stubService{})
	d := catsDraft()
	d.Prompt = "cats"

	m, cmd := apply(t, m, intakeform.SubmitMsg{Draft: d})
	assert.Nil(t, cmd)
	assert.False(t, m.form.Submitting())
}

func TestSubmit_FailureRaisesBlockingAlert(t *testing.T) {
	svc := &stubService{createErr: errors.New("HTTP 500")}
	m := newTestModel(t, svc)

	m, cmd := apply(t, m, intakeform.SubmitMsg{Draft: catsDraft()})
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())

	assert.Equal(t, CreationFailureText, m.alert)
	assert.Contains(t, m.View(), CreationFailureText)
	assert.False(t, m.form.Submitting())
	assert.Zero(t, m.projects.Len())

	// Other keys are swallowed while the alert is up.
	m.focus = FocusList
	m, cmd = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.alert)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.alert)
}

func TestListFocus_RefreshKey(t *testing.T) {
	svc := &stubService{list: []model.Project{{ID: "a"}}}
	m := newTestModel(t, svc)
	m.focus = FocusList

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "refreshing…")

	m, _ = apply(t, m, cmd())
	assert.Equal(t, 1, m.projects.Len())
}

func TestSelectedProjectOpensDetail(t *testing.T) {
	m := newTestModel(t, &stubService{})

	m, _ = apply(t, m, projectlist.SelectedProjectMsg{Project: model.Project{ID: "p-9", Prompt: "tides explained"}})
	assert.Equal(t, ViewDetail, m.currentView)
	assert.Contains(t, m.View(), "p-9")
}

func TestCommandPalette_Refresh(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.currentView = ViewCommand
	m.previousView = ViewHome

	m, cmd := apply(t, m, command.CommandMsg{Name: command.Refresh})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewHome, m.currentView)
	_, ok := cmd().(studio.RefreshedMsg)
	assert.True(t, ok)
}

func TestCancelMovesFocusToList(t *testing.T) {
	m := newTestModel(t, &stubService{})
	require.Equal(t, FocusForm, m.focus)

	m, _ = apply(t, m, intakeform.CancelMsg{})
	assert.Equal(t, FocusList, m.focus)
	assert.Contains(t, m.keyHints(), "r refresh")
}
