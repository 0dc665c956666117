package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mode is the video format requested for a project.
type Mode string

const (
	ModeShort Mode = "short"
	ModeLong  Mode = "long"
)

// Duration bounds recommended by the service. They are applied by the form
// widget only; the service remains the source of truth.
const (
	MinDurationSec = 10
	MaxDurationSec = 3600
)

// MinPromptLength is the trimmed prompt length a draft must exceed.
const MinPromptLength = 5

var (
	ErrPromptTooShort  = fmt.Errorf("prompt must be longer than %d characters", MinPromptLength)
	ErrInvalidMode     = errors.New("mode must be short or long")
	ErrInvalidDuration = errors.New("duration must be a whole number of seconds")
	ErrEmptyLanguage   = errors.New("language is required")
)

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeShort:
		return ModeShort, nil
	case ModeLong:
		return ModeLong, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Label returns a human readable label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeShort:
		return "Short (vertical)"
	case ModeLong:
		return "Long-form"
	default:
		return string(m)
	}
}

// Draft holds the fields of a project being composed. It exists only
// until it is submitted.
type Draft struct {
	Prompt      string `json:"prompt"`
	Mode        Mode   `json:"mode"`
	DurationSec int    `json:"duration_sec"`
	Language    string `json:"language"`
}

// DefaultDraft returns the draft the intake form starts with.
func DefaultDraft() Draft {
	return Draft{
		Prompt:      "1-minute motivational short about discipline with punchy hook",
		Mode:        ModeShort,
		DurationSec: 60,
		Language:    "en",
	}
}

// Submittable reports whether the prompt is long enough to submit.
// Whether a submission is already in flight is tracked separately.
func (d Draft) Submittable() bool {
	return ValidatePrompt(d.Prompt) == nil
}

// ValidatePrompt returns ErrPromptTooShort unless the trimmed prompt is
// longer than MinPromptLength characters.
func ValidatePrompt(prompt string) error {
	if utf8.RuneCountInString(strings.TrimSpace(prompt)) <= MinPromptLength {
		return ErrPromptTooShort
	}
	return nil
}

// ParseDurationSec coerces form input into a number of seconds.
func ParseDurationSec(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return n, nil
}

// ValidateDurationInput checks form input against the widget bounds.
func ValidateDurationInput(s string) error {
	n, err := ParseDurationSec(s)
	if err != nil {
		return err
	}
	if n < MinDurationSec || n > MaxDurationSec {
		return fmt.Errorf("duration must be between %d and %d seconds", MinDurationSec, MaxDurationSec)
	}
	return nil
}

// ValidateLanguage rejects an empty language code.
func ValidateLanguage(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyLanguage
	}
	return nil
}
