package studio

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prompttotube/internal/model"
)

var errEmptyCreateResponse = errors.New("service returned no project")

// Creator creates projects on the service.
type Creator interface {
	CreateProject(ctx context.Context, d model.Draft) (*model.Project, error)
}

// Intake issues creation requests. It holds no state of its own besides
// the gate it was handed.
type Intake struct {
	creator Creator
	gate    Gate
	timeout time.Duration
	logger  *slog.Logger
}

// NewIntake creates an intake bound to gate.
func NewIntake(c Creator, gate Gate, timeout time.Duration, logger *slog.Logger) *Intake {
	return &Intake{
		creator: c,
		gate:    gate,
		timeout: timeout,
		logger:  logger,
	}
}

// CanSubmit reports whether Submit would issue a request for d.
func (in *Intake) CanSubmit(d model.Draft) bool {
	return d.Submittable() && !in.gate.Submitting()
}

// Submitting reports whether a creation request is in flight.
func (in *Intake) Submitting() bool {
	return in.gate.Submitting()
}

// Submit acquires the gate and returns a command that posts d exactly once.
// It returns nil, without touching the gate, when the prompt is too short
// or a submission is already in flight.
func (in *Intake) Submit(d model.Draft) tea.Cmd {
	if !d.Submittable() {
		in.logger.Debug("submit skipped: prompt too short")
		return nil
	}
	if !in.gate.Acquire() {
		in.logger.Debug("submit skipped: submission in flight")
		return nil
	}

	creator := in.creator
	timeout := in.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		project, err := creator.CreateProject(ctx, d)
		if err != nil {
			return CreationFailedMsg{Draft: d, Err: err}
		}
		if project == nil {
			return CreationFailedMsg{Draft: d, Err: errEmptyCreateResponse}
		}
		return ProjectCreatedMsg{Draft: d, Project: *project}
	}
}
