package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nhle/prompttotube/internal/model"
)

// Subcommand names.
const (
	CmdTUI     = "tui"
	CmdList    = "list"
	CmdCreate  = "create"
	CmdHistory = "history"
	CmdToken   = "token"
)

// Token actions.
const (
	TokenSet   = "set"
	TokenClear = "clear"
)

// ErrUsage marks a command line that could not be parsed.
var ErrUsage = errors.New("usage error")

// DraftFlags holds create flags as given. Zero values mean "not set" and
// fall back to the configured defaults.
type DraftFlags struct {
	Prompt      string
	Mode        string
	DurationSec int
	Language    string
}

// Command is a parsed command line.
type Command struct {
	Name       string
	ConfigPath string
	BaseURL    string
	JSON       bool

	Draft DraftFlags
	Limit int

	TokenAction string
	TokenValue  string
}

// Parse parses args (without the program name):
//
//	prompttotube [-config path] [-base-url url] [tui|list|create|history|token] [flags]
func Parse(args []string, stderr io.Writer) (Command, error) {
	var cmd Command

	fs := flag.NewFlagSet("prompttotube", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cmd.ConfigPath, "config", "", "Config file (default ~/.config/prompttotube/config.yaml)")
	fs.StringVar(&cmd.BaseURL, "base-url", "", "Service base URL (overrides config and "+model.EnvBackendURL+")")
	if err := fs.Parse(args); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	rest := fs.Args()
	cmd.Name = CmdTUI
	if len(rest) > 0 {
		cmd.Name = rest[0]
		rest = rest[1:]
	}

	var err error
	switch cmd.Name {
	case CmdTUI:
		err = noArgs(cmd.Name, rest)
	case CmdList:
		err = parseList(&cmd, rest, stderr)
	case CmdCreate:
		err = parseCreate(&cmd, rest, stderr)
	case CmdHistory:
		err = parseHistory(&cmd, rest, stderr)
	case CmdToken:
		err = parseToken(&cmd, rest)
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrUsage, cmd.Name)
	}
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

func parseList(cmd *Command, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(CmdList, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cmd.JSON, "json", false, "Print projects as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return noArgs(CmdList, fs.Args())
}

func parseCreate(cmd *Command, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(CmdCreate, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cmd.Draft.Prompt, "prompt", "", "Video prompt (required unless a default is configured)")
	fs.StringVar(&cmd.Draft.Mode, "mode", "", "short or long")
	fs.IntVar(&cmd.Draft.DurationSec, "duration", 0, "Duration in seconds")
	fs.StringVar(&cmd.Draft.Language, "language", "", "Language code, e.g. en")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the created project as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := noArgs(CmdCreate, fs.Args()); err != nil {
		return err
	}
	if cmd.Draft.Mode != "" {
		if _, err := model.ParseMode(cmd.Draft.Mode); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}
	if cmd.Draft.DurationSec < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrUsage)
	}
	return nil
}

func parseHistory(cmd *Command, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(CmdHistory, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cmd.Limit, "n", 20, "Number of entries to show")
	fs.BoolVar(&cmd.JSON, "json", false, "Print entries as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return noArgs(CmdHistory, fs.Args())
}

func parseToken(cmd *Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: token requires set <value> or clear", ErrUsage)
	}
	cmd.TokenAction = args[0]
	switch cmd.TokenAction {
	case TokenSet:
		if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
			return fmt.Errorf("%w: token set requires exactly one value", ErrUsage)
		}
		cmd.TokenValue = strings.TrimSpace(args[1])
	case TokenClear:
		if len(args) != 1 {
			return fmt.Errorf("%w: token clear takes no arguments", ErrUsage)
		}
	default:
		return fmt.Errorf("%w: unknown token action %q", ErrUsage, cmd.TokenAction)
	}
	return nil
}

func noArgs(name string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %s: unexpected arguments %v", ErrUsage, name, args)
	}
	return nil
}

// Apply overlays the set flags on defaults.
func (f DraftFlags) Apply(defaults model.Draft) model.Draft {
	d := defaults
	if f.Prompt != "" {
		d.Prompt = f.Prompt
	}
	if f.Mode != "" {
		if m, err := model.ParseMode(f.Mode); err == nil {
			d.Mode = m
		}
	}
	if f.DurationSec > 0 {
		d.DurationSec = f.DurationSec
	}
	if f.Language != "" {
		d.Language = f.Language
	}
	return d
}
