package studio

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prompttotube/internal/logging"
	"github.com/nhle/prompttotube/internal/model"
)

// defaultTimeout bounds a single request when Options.Timeout is unset.
const defaultTimeout = 30 * time.Second

// journalTimeout bounds a single write to the local journal.
const journalTimeout = 5 * time.Second

// Lister fetches the full project collection.
type Lister interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
}

// Service is the remote side of the studio.
type Service interface {
	Creator
	Lister
}

// Journal records submissions locally. It is optional.
type Journal interface {
	RecordSubmission(ctx context.Context, s model.Submission) error
	SaveDraft(ctx context.Context, d model.Draft) error
}

// Options configures a Studio.
type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
	Journal Journal
}

// Studio coordinates the intake and the listing. It owns the listing, and
// through it the submission gate, and applies every result message.
type Studio struct {
	svc       Service
	listing   *Listing
	intake    *Intake
	journal   Journal
	timeout   time.Duration
	logger    *slog.Logger
	activated bool
}

// New creates a Studio talking to svc.
func New(svc Service, opts Options) *Studio {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	listing := NewListing(logging.WithComponent(logger, "listing"))
	intake := NewIntake(svc, listing.Gate(), timeout, logging.WithComponent(logger, "intake"))

	return &Studio{
		svc:     svc,
		listing: listing,
		intake:  intake,
		journal: opts.Journal,
		timeout: timeout,
		logger:  logger,
	}
}

// Listing returns the project collection owner.
func (s *Studio) Listing() *Listing {
	return s.listing
}

// Intake returns the submission side.
func (s *Studio) Intake() *Intake {
	return s.intake
}

// Init performs the one refresh that happens on first activation. Later
// calls return nil; there is no scheduled re-fetch.
func (s *Studio) Init() tea.Cmd {
	if s.activated {
		return nil
	}
	s.activated = true
	return s.Refresh()
}

// Refresh returns a command that fetches the full collection. Each call is
// tagged with a new sequence number.
func (s *Studio) Refresh() tea.Cmd {
	seq := s.listing.nextSeq()
	lister := s.svc
	timeout := s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		projects, err := lister.ListProjects(ctx)
		return RefreshedMsg{Seq: seq, Projects: projects, Err: err}
	}
}

// Submit is Intake.Submit; it returns nil when the submission is skipped.
func (s *Studio) Submit(d model.Draft) tea.Cmd {
	return s.intake.Submit(d)
}

// Update applies studio result messages. Other messages are ignored. The
// returned command, if any, writes the local journal.
func (s *Studio) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshedMsg:
		s.listing.ApplyRefresh(msg)
		return nil

	case ProjectCreatedMsg:
		s.listing.Gate().Release()
		s.listing.OnProjectCreated(msg.Project)
		s.logger.Info("project created", "project_id", msg.Project.ID, "mode", msg.Project.Mode)

		entry := model.NewSubmission(msg.Draft, model.OutcomeCreated)
		entry.ProjectID = msg.Project.ID
		return s.record(entry, msg.Draft)

	case CreationFailedMsg:
		s.listing.Gate().Release()
		s.logger.Error("project creation failed", "error", msg.Err)

		entry := model.NewSubmission(msg.Draft, model.OutcomeFailed)
		entry.Error = msg.Err.Error()
		return s.record(entry, msg.Draft)
	}
	return nil
}

// record returns a command writing entry and the draft to the journal.
func (s *Studio) record(entry model.Submission, d model.Draft) tea.Cmd {
	if s.journal == nil {
		return nil
	}
	j := s.journal
	logger := s.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()

		if err := j.RecordSubmission(ctx, entry); err != nil {
			logger.Warn("recording submission", "error", err)
		}
		if err := j.SaveDraft(ctx, d); err != nil {
			logger.Warn("saving draft", "error", err)
		}
		return nil
	}
}

// Drive runs cmd and every follow-up command synchronously, feeding each
// message through Update. It is how headless callers use the studio.
// Messages are returned in the order they were applied.
func (s *Studio) Drive(cmd tea.Cmd) []tea.Msg {
	var applied []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}

		applied = append(applied, msg)
		queue = append(queue, s.Update(msg))
	}
	return applied
}
