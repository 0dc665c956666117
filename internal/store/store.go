package store

import (
	"context"

	"github.com/nhle/prompttotube/internal/model"
)

// DefaultHistoryLimit caps ListSubmissions when no limit is given.
const DefaultHistoryLimit = 50

// JournalStore defines the local persistence used by the client: a journal
// of creation attempts and the last composed draft.
type JournalStore interface {
	// === Submissions ===

	RecordSubmission(ctx context.Context, sub model.Submission) error
	ListSubmissions(ctx context.Context, limit int) ([]model.Submission, error)

	// === Draft ===

	SaveDraft(ctx context.Context, d model.Draft) error
	LoadDraft(ctx context.Context) (*model.Draft, error)

	Close() error
}
