package intakeform

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prompttotube/internal/model"
)

func TestNew_SeedsFieldsFromDraft(t *testing.T) {
	initial := model.Draft{Prompt: "a video about tides", Mode: model.ModeLong, DurationSec: 300, Language: "fr"}
	m := New(initial, 80, 20)

	d, err := m.Draft()
	require.NoError(t, err)
	assert.Equal(t, initial, d)
}

func TestDraft_CoercesDurationText(t *testing.T) {
	m := New(model.DefaultDraft(), 80, 20)
	m.fb.duration = " 90 "

	d, err := m.Draft()
	require.NoError(t, err)
	assert.Equal(t, 90, d.DurationSec)

	m.fb.duration = "ninety"
	_, err = m.Draft()
	assert.ErrorIs(t, err, model.ErrInvalidDuration)
}

func TestSubmitCmd_EmitsDraft(t *testing.T) {
	m := New(model.DefaultDraft(), 80, 20)
	m.fb.prompt = "Make a 1-minute video about cats"

	cmd := m.submitCmd()
	require.NotNil(t, cmd)
	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "Make a 1-minute video about cats", msg.Draft.Prompt)
	assert.Equal(t, model.ModeShort, msg.Draft.Mode)
	assert.Equal(t, 60, msg.Draft.DurationSec)

	m.fb.mode = "square"
	assert.Nil(t, m.submitCmd())
}

func TestComplete_RebuildsFormAndKeepsValues(t *testing.T) {
	m := New(model.DefaultDraft(), 80, 20)
	m.Start()
	m.fb.prompt = "Make a 1-minute video about cats"

	m, cmd := m.complete()
	assert.NotNil(t, cmd)
	require.NotNil(t, m.form)
	assert.Equal(t, huh.StateNormal, m.form.State)

	d, err := m.Draft()
	require.NoError(t, err)
	assert.Equal(t, "Make a 1-minute video about cats", d.Prompt)
}

func TestView_ShowsCreatingWhileSubmitting(t *testing.T) {
	m := New(model.DefaultDraft(), 80, 20)
	m.Start()
	assert.Contains(t, m.View(), submitLabel)

	m.SetSubmitting(true)
	assert.True(t, m.Submitting())
	assert.Contains(t, m.View(), submittingLabel)
}
