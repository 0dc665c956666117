package intakeform

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/theme"
)

// Footer labels for the submit affordance.
const (
	submitLabel     = "Create project"
	submittingLabel = "Creating…"
)

// SubmitMsg is dispatched when the user completes the form.
type SubmitMsg struct {
	Draft model.Draft
}

// CancelMsg is dispatched when the user leaves the form with esc.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	prompt   string
	mode     string
	duration string
	language string
}

// Model is the Bubble Tea model for the project intake form. Field values
// survive submission so a failed attempt can be retried as is.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	submitting bool
	width      int
	height     int
}

// New creates an intake form seeded with initial.
func New(initial model.Draft, width, height int) Model {
	m := Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.setDraft(initial)
	m.form = m.buildForm()
	return m
}

// Init returns the form's initial command.
func (m Model) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Start (re)builds the form with the current field values and focuses it.
func (m *Model) Start() tea.Cmd {
	m.form = m.buildForm()
	return m.form.Init()
}

// Draft coerces the current field values into a Draft.
func (m Model) Draft() (model.Draft, error) {
	mode, err := model.ParseMode(m.fb.mode)
	if err != nil {
		return model.Draft{}, err
	}
	dur, err := model.ParseDurationSec(m.fb.duration)
	if err != nil {
		return model.Draft{}, err
	}
	return model.Draft{
		Prompt:      m.fb.prompt,
		Mode:        mode,
		DurationSec: dur,
		Language:    m.fb.language,
	}, nil
}

// SetSubmitting toggles the "Creating…" affordance.
func (m *Model) SetSubmitting(submitting bool) {
	m.submitting = submitting
}

// Submitting reports whether the affordance shows an in-flight creation.
func (m Model) Submitting() bool {
	return m.submitting
}

// Update handles messages for the intake form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.complete()
	case huh.StateAborted:
		restart := m.Start()
		return m, tea.Batch(restart, func() tea.Msg { return CancelMsg{} })
	}

	return m, cmd
}

// complete emits the draft and rebuilds the form with the same values.
func (m Model) complete() (Model, tea.Cmd) {
	emit := m.submitCmd()
	restart := m.Start()
	return m, tea.Batch(restart, emit)
}

func (m Model) submitCmd() tea.Cmd {
	d, err := m.Draft()
	if err != nil {
		return nil
	}
	return func() tea.Msg { return SubmitMsg{Draft: d} }
}

// View renders the intake form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	footer := theme.HelpStyle.Render(submitLabel + " · enter on the last field")
	if m.submitting {
		footer = lipgloss.NewStyle().Foreground(theme.ColorYellow).Render(submittingLabel)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.SectionTitleStyle.Render("New project"),
		m.form.View(),
		footer,
	)

	return lipgloss.NewStyle().
		Padding(0, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m *Model) setDraft(d model.Draft) {
	m.fb.prompt = d.Prompt
	m.fb.mode = string(d.Mode)
	m.fb.duration = strconv.Itoa(d.DurationSec)
	m.fb.language = d.Language
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Prompt").
				Placeholder("Describe your video").
				Lines(3).
				Value(&m.fb.prompt).
				Validate(model.ValidatePrompt),
			huh.NewSelect[string]().
				Title("Mode").
				Options(
					huh.NewOption(model.ModeShort.Label(), string(model.ModeShort)),
					huh.NewOption(model.ModeLong.Label(), string(model.ModeLong)),
				).
				Value(&m.fb.mode),
			huh.NewInput().
				Title("Duration (sec)").
				Description(fmt.Sprintf("%d to %d", model.MinDurationSec, model.MaxDurationSec)).
				Value(&m.fb.duration).
				Validate(model.ValidateDurationInput),
			huh.NewInput().
				Title("Language").
				Placeholder("en").
				CharLimit(8).
				Value(&m.fb.language).
				Validate(model.ValidateLanguage),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 20 {
		return 20
	}
	return w
}
