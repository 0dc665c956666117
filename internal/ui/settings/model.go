package settings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prompttotube/internal/credential"
	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/theme"
)

// TokenStore persists the API token.
type TokenStore interface {
	Set(key, value string) error
}

// DoneMsg signals the settings view should close without changes.
type DoneMsg struct{}

// SavedMsg signals the configuration was written.
type SavedMsg struct {
	Config       model.AppConfig
	TokenChanged bool
}

// saveResultMsg is sent after the config file and token are persisted.
type saveResultMsg struct {
	cfg          model.AppConfig
	tokenChanged bool
	err          error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	baseURL  string
	prompt   string
	mode     string
	duration string
	language string
	logLevel string
	token    string
}

// Model is the Bubble Tea model for the settings view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	cfg    model.AppConfig
	path   string
	tokens TokenStore
	save   func(string, *model.AppConfig) error
	status string
	width  int
	height int
}

// New creates a settings view editing cfg, which is written to path.
// tokens may be nil when no keyring is available.
func New(cfg model.AppConfig, path string, tokens TokenStore, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		cfg:    cfg,
		path:   path,
		tokens: tokens,
		save:   model.SaveConfig,
		width:  width,
		height: height,
	}
}

// Start loads the current configuration into the form.
func (m *Model) Start() tea.Cmd {
	m.fb.baseURL = m.cfg.Service.BaseURL
	m.fb.prompt = m.cfg.Defaults.Prompt
	m.fb.mode = m.cfg.Defaults.Mode
	m.fb.duration = strconv.Itoa(m.cfg.Defaults.DurationSec)
	m.fb.language = m.cfg.Defaults.Language
	m.fb.logLevel = m.cfg.Log.Level
	m.fb.token = ""
	m.status = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(saveResultMsg); ok {
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving settings: %v", msg.err)
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.cfg = msg.cfg
		m.status = "Settings saved"
		saved := SavedMsg{Config: msg.cfg, TokenChanged: msg.tokenChanged}
		return m, func() tea.Msg { return saved }
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		cfg, err := m.apply()
		if err != nil {
			m.status = err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, m.persist(cfg, strings.TrimSpace(m.fb.token))
	case huh.StateAborted:
		return m, func() tea.Msg { return DoneMsg{} }
	}

	return m, cmd
}

// apply copies the form values onto a copy of the current config.
func (m Model) apply() (model.AppConfig, error) {
	cfg := m.cfg

	base := strings.TrimSpace(m.fb.baseURL)
	if err := validateOptionalURL(base); err != nil {
		return cfg, err
	}
	mode, err := model.ParseMode(m.fb.mode)
	if err != nil {
		return cfg, err
	}
	dur, err := model.ParseDurationSec(m.fb.duration)
	if err != nil {
		return cfg, err
	}

	cfg.Service.BaseURL = base
	cfg.Defaults = model.DraftDefaults{
		Prompt:      m.fb.prompt,
		Mode:        string(mode),
		DurationSec: dur,
		Language:    strings.TrimSpace(m.fb.language),
	}
	cfg.Log.Level = m.fb.logLevel
	return cfg, nil
}

// persist writes cfg and, when non-empty, the token.
func (m Model) persist(cfg model.AppConfig, token string) tea.Cmd {
	path, save, tokens := m.path, m.save, m.tokens
	return func() tea.Msg {
		if err := save(path, &cfg); err != nil {
			return saveResultMsg{err: err}
		}
		if token == "" {
			return saveResultMsg{cfg: cfg}
		}
		if tokens == nil {
			return saveResultMsg{cfg: cfg, err: fmt.Errorf("no keyring available to store the token")}
		}
		if err := tokens.Set(credential.APITokenKey, token); err != nil {
			return saveResultMsg{cfg: cfg, err: err}
		}
		return saveResultMsg{cfg: cfg, tokenChanged: true}
	}
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	parts := []string{
		theme.SectionTitleStyle.Render("Settings"),
		m.form.View(),
		theme.HelpStyle.Render("The service address is resolved at startup; restart to apply a change."),
	}
	if m.status != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.status))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service URL").
				Description("Leave empty to use " + model.EnvBackendURL + " or the default").
				Placeholder("http://localhost:8000").
				Value(&m.fb.baseURL).
				Validate(validateOptionalURL),
			huh.NewInput().
				Title("API Token").
				Description("Stored in the system keyring; leave empty to keep the current one").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.token),
		).Title("Service"),
		huh.NewGroup(
			huh.NewText().
				Title("Default prompt").
				Lines(2).
				Value(&m.fb.prompt),
			huh.NewSelect[string]().
				Title("Default mode").
				Options(
					huh.NewOption(model.ModeShort.Label(), string(model.ModeShort)),
					huh.NewOption(model.ModeLong.Label(), string(model.ModeLong)),
				).
				Value(&m.fb.mode),
			huh.NewInput().
				Title("Default duration (sec)").
				Value(&m.fb.duration).
				Validate(model.ValidateDurationInput),
			huh.NewInput().
				Title("Default language").
				Value(&m.fb.language).
				Validate(model.ValidateLanguage),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&m.fb.logLevel),
		).Title("Defaults"),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 30 {
		return 30
	}
	return w
}

func validateOptionalURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL %q", s)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https")
	}
	return nil
}
