package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/prompttotube/internal/api"
	"github.com/nhle/prompttotube/internal/app"
	"github.com/nhle/prompttotube/internal/credential"
	"github.com/nhle/prompttotube/internal/logging"
	"github.com/nhle/prompttotube/internal/model"
	"github.com/nhle/prompttotube/internal/store"
	"github.com/nhle/prompttotube/internal/studio"
	"github.com/nhle/prompttotube/internal/theme"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrCreationFailed is returned by create when the service rejected or
// never answered the request.
var ErrCreationFailed = errors.New(app.CreationFailureText)

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd, err := Parse(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	if err := model.LoadEnvFiles(); err != nil {
		fmt.Fprintln(stderr, err)
	}

	if err := execute(cmd, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, model.ErrPromptTooShort) {
			return ExitUsage
		}
		return ExitFailure
	}
	return ExitOK
}

func execute(cmd Command, stdout io.Writer) error {
	cfgPath := cmd.ConfigPath
	if cfgPath == "" {
		cfgPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cmd.BaseURL != "" {
		cfg.Service.BaseURL = cmd.BaseURL
	}
	theme.Apply(cfg.Display.Theme)

	logger, closeLog := openLogger(cfg.Log)
	defer closeLog()

	vault, err := credential.Open()
	if err != nil {
		logger.Warn("keyring unavailable", "error", err)
		vault = nil
	}

	if cmd.Name == CmdToken {
		return runToken(cmd, vault, stdout)
	}

	journal, err := openStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer journal.Close()

	if cmd.Name == CmdHistory {
		return (&runner{journal: journal, out: stdout}).history(context.Background(), cmd.Limit, cmd.JSON)
	}

	baseURL := model.ResolveBaseURL(cfg.Service, os.Getenv)
	token, err := credential.APIToken(vault, os.Getenv)
	if err != nil {
		logger.Warn("reading api token", "error", err)
	}
	logger.Info("starting",
		"command", cmd.Name,
		"base_url", baseURL,
		"token", logging.SanitizeToken(token),
	)

	client := api.NewClient(baseURL, token, cfg.Service.Timeout(), logger)
	st := studio.New(client, studio.Options{
		Timeout: cfg.Service.Timeout(),
		Logger:  logger,
		Journal: journal,
	})
	r := &runner{studio: st, journal: journal, out: stdout}

	switch cmd.Name {
	case CmdList:
		return r.list(cmd.JSON)
	case CmdCreate:
		return r.create(cmd.Draft.Apply(cfg.Defaults.Draft()), cmd.JSON)
	default:
		return runTUI(st, journal, vault, cfg, cfgPath, baseURL, logger)
	}
}

func openLogger(cfg model.LogConfig) (*slog.Logger, func()) {
	if cfg.File == "" {
		return logging.Discard(), func() {}
	}
	f, err := logging.OpenFile(cfg.File)
	if err != nil {
		return logging.Discard(), func() {}
	}
	return logging.NewLogger(cfg.Level, f), func() { f.Close() }
}

func openStore(path string) (*store.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return store.NewSQLiteStore(path)
}

func runTUI(
	st *studio.Studio,
	journal store.JournalStore,
	vault *credential.Vault,
	cfg *model.AppConfig,
	cfgPath, baseURL string,
	logger *slog.Logger,
) error {
	draft := cfg.Defaults.Draft()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	saved, err := journal.LoadDraft(ctx)
	cancel()
	if err != nil {
		logger.Warn("loading saved draft", "error", err)
	}
	if saved != nil {
		draft = *saved
	}

	opts := app.Options{
		Studio:     st,
		Config:     *cfg,
		ConfigPath: cfgPath,
		BaseURL:    baseURL,
		Draft:      draft,
		Logger:     logger,
	}
	if vault != nil {
		opts.Tokens = vault
	}

	p := tea.NewProgram(app.New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

func runToken(cmd Command, vault *credential.Vault, stdout io.Writer) error {
	if vault == nil {
		return errors.New("no keyring backend available")
	}
	switch cmd.TokenAction {
	case TokenSet:
		if err := vault.Set(credential.APITokenKey, cmd.TokenValue); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "API token stored.")
	case TokenClear:
		if err := vault.Delete(credential.APITokenKey); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "API token removed.")
	}
	return nil
}

// runner executes the headless commands against a studio.
type runner struct {
	studio  *studio.Studio
	journal store.JournalStore
	out     io.Writer
}

// list refreshes once and prints the collection.
func (r *runner) list(asJSON bool) error {
	r.studio.Drive(r.studio.Refresh())

	l := r.studio.Listing()
	if err := l.LastError(); err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	projects := l.Projects()
	if asJSON {
		return writeJSON(r.out, projects)
	}
	if len(projects) == 0 {
		fmt.Fprintln(r.out, "No projects yet.")
		return nil
	}

	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{
			p.ID,
			p.DisplayStatus(),
			string(p.Mode),
			strconv.Itoa(p.DurationSec) + "s",
			p.Language,
			p.DisplayTitle(),
		}
	}
	fmt.Fprintln(r.out, renderTable([]string{"ID", "STATUS", "MODE", "DURATION", "LANG", "TITLE"}, rows))
	return nil
}

// create submits d and waits for the outcome.
func (r *runner) create(d model.Draft, asJSON bool) error {
	if err := model.ValidatePrompt(d.Prompt); err != nil {
		return err
	}

	cmd := r.studio.Submit(d)
	if cmd == nil {
		return model.ErrPromptTooShort
	}

	for _, msg := range r.studio.Drive(cmd) {
		switch msg := msg.(type) {
		case studio.ProjectCreatedMsg:
			if asJSON {
				return writeJSON(r.out, msg.Project)
			}
			fmt.Fprintf(r.out, "Created project %s (%s)\n", msg.Project.ID, msg.Project.DisplayStatus())
			return nil
		case studio.CreationFailedMsg:
			return fmt.Errorf("%w: %v", ErrCreationFailed, msg.Err)
		}
	}
	return ErrCreationFailed
}

// history prints the local submission journal.
func (r *runner) history(ctx context.Context, limit int, asJSON bool) error {
	subs, err := r.journal.ListSubmissions(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		if subs == nil {
			subs = []model.Submission{}
		}
		return writeJSON(r.out, subs)
	}
	if len(subs) == 0 {
		fmt.Fprintln(r.out, "No submissions recorded.")
		return nil
	}

	rows := make([][]string, len(subs))
	for i, s := range subs {
		detail := s.ProjectID
		if s.Outcome == model.OutcomeFailed {
			detail = s.Error
		}
		rows[i] = []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Outcome,
			s.Mode,
			strconv.Itoa(s.DurationSec) + "s",
			s.Prompt,
			detail,
		}
	}
	fmt.Fprintln(r.out, renderTable([]string{"WHEN", "OUTCOME", "MODE", "DURATION", "PROMPT", "PROJECT/ERROR"}, rows))
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers(headers...).
		Rows(rows...).
		String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
