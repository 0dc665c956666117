package app

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/keys"
	"github.com/nhle/prompttotube/internal/logging"
	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/studio"
	"github.com/nhle/prompttotube/internal/theme"
	"github.com/nhle/prompttotube/internal/ui"
	"github.com/nhle/prompttotube/internal/ui/command"
	"github.com/nhle/prompttotube/internal/ui/detail"
	helpview "github.com/nhle/prompttotube/internal/ui/help"
	"github.com/nhle/prompttotube/internal/ui/intakeform"
	"github.com/nhle/prompttotube/internal/ui/projectlist"
	"github.com/nhle/prompttotube/internal/ui/settings"
)

// CreationFailureText is shown in the blocking alert when a project could
// not be created.
const CreationFailureText = "Something went wrong creating your project."

// formHeight is the number of rows reserved for the intake form on the
// home view.
const formHeight = 16

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewHome ViewState = iota
	ViewDetail
	ViewSettings
	ViewHelp
	ViewCommand
)

// Focus selects which pane of the home view receives keys.
type Focus int

const (
	FocusForm Focus = iota
	FocusList
)

// Options configures the root model.
type Options struct {
	Studio     *studio.Studio
	Config     model.AppConfig
	ConfigPath string
	BaseURL    string
	Draft      model.Draft
	Tokens     settings.TokenStore
	Logger     *slog.Logger
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and hands studio messages to the studio.
type Model struct {
	currentView  ViewState
	previousView ViewState
	focus        Focus
	layout       ui.Layout
	studio       *studio.Studio
	keys         *keys.KeyMap
	form         intakeform.Model
	projects     projectlist.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	settingsView settings.Model
	cfg          model.AppConfig
	alert        string
	notice       string
	ready        bool
	logger       *slog.Logger
}

// New creates a new root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return Model{
		currentView:  ViewHome,
		focus:        FocusForm,
		studio:       opts.Studio,
		keys:         k,
		form:         intakeform.New(opts.Draft, 80, formHeight),
		projects:     projectlist.New(k, 80, 24),
		detail:       detail.New(k, 80, 24),
		helpView:     helpview.New(k, opts.BaseURL, 80, 24),
		commandView:  command.NewModel(80, 24),
		settingsView: settings.New(opts.Config, opts.ConfigPath, opts.Tokens, 80, 24),
		cfg:          opts.Config,
		logger:       logging.WithComponent(logger, "app"),
	}
}

// Init performs the initial project fetch and focuses the intake form.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.studio.Init(),
		m.form.Init(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		return m.updateActiveView(msg)

	case studio.RefreshedMsg:
		cmd := m.studio.Update(msg)
		return m, tea.Batch(cmd, m.syncListing())

	case studio.ProjectCreatedMsg:
		cmd := m.studio.Update(msg)
		m.notice = fmt.Sprintf("Created %q", msg.Project.DisplayTitle())
		return m, tea.Batch(cmd, m.syncListing())

	case studio.CreationFailedMsg:
		cmd := m.studio.Update(msg)
		m.alert = CreationFailureText
		m.notice = ""
		return m, tea.Batch(cmd, m.syncListing())

	case intakeform.SubmitMsg:
		cmd := m.studio.Submit(msg.Draft)
		if cmd == nil {
			return m, nil
		}
		m.notice = ""
		m.form.SetSubmitting(true)
		return m, cmd

	case intakeform.CancelMsg:
		m.focus = FocusList
		return m, nil

	case projectlist.SelectedProjectMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetProject(msg.Project)
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewHome
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg.Name)

	case settings.SavedMsg:
		m.cfg = msg.Config
		m.currentView = ViewHome
		m.notice = "Settings saved"
		if msg.TokenChanged {
			m.notice = "Settings saved; restart to use the new token"
		}
		return m, nil

	case settings.DoneMsg:
		m.currentView = ViewHome
		return m, nil

	case tea.KeyMsg:
		if mdl, cmd, handled := m.handleKey(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleKey processes global keys. It reports false when the key should
// be passed on to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	// A blocking alert swallows every key until dismissed.
	if m.alert != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert = ""
		}
		return m, nil, true
	}

	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, true

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case ViewHome:
		if m.focus == FocusForm {
			// The form owns every key except a few globals.
			if msg.String() == "ctrl+r" {
				return m, m.refresh(), true
			}
			return m, nil, false
		}
		return m.handleListKey(msg)
	}

	return m, nil, false
}

// handleListKey processes keys while the project list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.New):
		m.focus = FocusForm
		return m, m.form.Start(), true

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh(), true

	case key.Matches(msg, m.keys.Settings):
		return m, m.openSettings(), true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true
	}
	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHome:
		_, isKey := msg.(tea.KeyMsg)
		switch {
		case !isKey:
			var listCmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			m.projects, listCmd = m.projects.Update(msg)
			cmd = tea.Batch(cmd, listCmd)
		case m.focus == FocusForm:
			m.form, cmd = m.form.Update(msg)
		default:
			m.projects, cmd = m.projects.Update(msg)
		}
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// refresh issues a listing refresh and updates the header state.
func (m *Model) refresh() tea.Cmd {
	m.notice = ""
	return m.studio.Refresh()
}

func (m *Model) openSettings() tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewSettings
	return m.settingsView.Start()
}

// syncListing copies the studio's state into the views.
func (m *Model) syncListing() tea.Cmd {
	l := m.studio.Listing()
	m.form.SetSubmitting(l.Gate().Submitting())
	return m.projects.Sync(l.Projects(), l.Loaded())
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(name command.Name) tea.Cmd {
	switch name {
	case command.Refresh:
		return m.refresh()
	case command.New:
		m.currentView = ViewHome
		m.focus = FocusForm
		return m.form.Start()
	case command.Settings:
		return m.openSettings()
	case command.Quit:
		return tea.Quit
	default:
		return nil
	}
}

func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	top, bottom := m.layout.SplitHeights(formHeight)

	m.form.SetSize(w, top)
	m.projects.SetSize(w, bottom)
	m.detail.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
	m.settingsView.SetSize(w, h)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("PromptToTube", m.listingStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	if m.alert != "" {
		return m.layout.RenderModal(lipgloss.JoinVertical(
			lipgloss.Center,
			m.alert,
			"",
			theme.HelpStyle.Render("enter/esc to dismiss"),
		))
	}

	switch m.currentView {
	case ViewHome:
		top, _ := m.layout.SplitHeights(formHeight)
		form := lipgloss.NewStyle().
			Height(top).
			MaxHeight(top).
			Render(m.form.View())
		return lipgloss.JoinVertical(lipgloss.Left, form, m.projects.View())
	case ViewDetail:
		return m.detail.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// listingStatus returns the header's right-hand status.
func (m Model) listingStatus() string {
	l := m.studio.Listing()
	switch {
	case l.Gate().Submitting():
		return "creating…"
	case l.Refreshing():
		return "refreshing…"
	case !l.Loaded():
		return "loading…"
	case l.Stale():
		return theme.StaleStyle.Render(fmt.Sprintf("%d projects · stale", l.Len()))
	default:
		return fmt.Sprintf("%d projects", l.Len())
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.alert != "" {
		return "enter/esc dismiss"
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "esc back | j/k scroll"
	case ViewSettings:
		return "enter next | esc cancel"
	}

	hints := "enter next field | esc to list | ctrl+r refresh"
	if m.focus == FocusList {
		hints = "n new | r refresh | enter open | s settings | : command | ? help | q quit"
	}
	if m.notice != "" {
		return m.notice + " | " + hints
	}
	return hints
}
