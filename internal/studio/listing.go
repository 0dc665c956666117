package studio

import (
	"log/slog"

	"github.com/nhle/prompttotube/internal/model"
)

// Listing owns the client-side collection of projects, most recent first.
// It is the only writer of that collection.
type Listing struct {
	projects []model.Project
	loaded   bool

	// issued is the sequence number of the newest refresh handed out;
	// applied is the newest one whose result replaced the collection.
	issued  uint64
	applied uint64
	pending int

	// lastErr is the error of the most recent completed refresh, cleared
	// when a refresh replaces the collection.
	lastErr error

	gate   *submitGate
	logger *slog.Logger
}

// NewListing returns an empty, not yet loaded listing.
func NewListing(logger *slog.Logger) *Listing {
	return &Listing{
		projects: []model.Project{},
		gate:     &submitGate{},
		logger:   logger,
	}
}

// Projects returns a copy of the collection in display order.
func (l *Listing) Projects() []model.Project {
	out := make([]model.Project, len(l.projects))
	copy(out, l.projects)
	return out
}

// Len returns the number of projects held.
func (l *Listing) Len() int {
	return len(l.projects)
}

// Loaded reports whether at least one refresh has completed.
func (l *Listing) Loaded() bool {
	return l.loaded
}

// Empty reports the "fetched and empty" condition. It is false before the
// first refresh completes so callers can tell that apart from "not yet
// fetched".
func (l *Listing) Empty() bool {
	return l.loaded && len(l.projects) == 0
}

// Gate exposes the submission flag to the intake side.
func (l *Listing) Gate() Gate {
	return l.gate
}

// Refreshing reports whether a refresh is outstanding.
func (l *Listing) Refreshing() bool {
	return l.pending > 0
}

// Stale reports whether the last completed refresh failed, meaning the
// collection may be out of date.
func (l *Listing) Stale() bool {
	return l.lastErr != nil
}

// LastError returns the error of the last failed refresh, if any.
func (l *Listing) LastError() error {
	return l.lastErr
}

// nextSeq tags a new refresh request.
func (l *Listing) nextSeq() uint64 {
	l.issued++
	l.pending++
	return l.issued
}

// ApplyRefresh folds a listing result into the collection and reports
// whether the collection was replaced. Every result marks the listing as
// loaded. Failures keep the current collection, and a result issued before
// one that was already applied is discarded so the latest request wins.
func (l *Listing) ApplyRefresh(msg RefreshedMsg) bool {
	l.loaded = true
	if l.pending > 0 {
		l.pending--
	}

	if msg.Err != nil {
		l.lastErr = msg.Err
		l.logger.Warn("project refresh failed; keeping current list",
			"seq", msg.Seq,
			"error", msg.Err,
		)
		return false
	}

	if msg.Seq < l.applied {
		l.logger.Debug("discarding stale project refresh",
			"seq", msg.Seq,
			"applied", l.applied,
		)
		return false
	}

	l.applied = msg.Seq
	l.lastErr = nil
	projects := make([]model.Project, len(msg.Projects))
	copy(projects, msg.Projects)
	l.projects = projects

	l.logger.Debug("project list replaced", "seq", msg.Seq, "count", len(projects))
	return true
}

// OnProjectCreated puts p at the front of the collection without a
// re-fetch. The record is a snapshot of the creation response.
func (l *Listing) OnProjectCreated(p model.Project) {
	projects := make([]model.Project, 0, len(l.projects)+1)
	projects = append(projects, p)
	projects = append(projects, l.projects...)
	l.projects = projects
}
