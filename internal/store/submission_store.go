package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/prompttotube/internal/model"
)

// RecordSubmission appends sub to the journal. ID and CreatedAt are
// assigned when empty.
func (s *SQLiteStore) RecordSubmission(ctx context.Context, sub model.Submission) error {
	switch sub.Outcome {
	case model.OutcomeCreated, model.OutcomeFailed:
	default:
		return fmt.Errorf("invalid submission outcome %q", sub.Outcome)
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO submissions (id, prompt, mode, duration_sec, language, outcome, project_id, error, created_at)
		VALUES (:id, :prompt, :mode, :duration_sec, :language, :outcome, :project_id, :error, :created_at)`,
		sub,
	)
	if err != nil {
		return fmt.Errorf("recording submission: %w", err)
	}
	return nil
}

// ListSubmissions returns the most recent journal entries, newest first.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var subs []model.Submission
	err := s.db.SelectContext(ctx, &subs, `
		SELECT id, prompt, mode, duration_sec, language, outcome, project_id, error, created_at
		FROM submissions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	return subs, nil
}
