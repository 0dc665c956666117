package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nhle/prompttotube/internal/model"
)

type draftRow struct {
	Prompt      string `db:"prompt"`
	Mode        string `db:"mode"`
	DurationSec int    `db:"duration_sec"`
	Language    string `db:"language"`
}

// SaveDraft stores d as the last composed draft, replacing any previous one.
func (s *SQLiteStore) SaveDraft(ctx context.Context, d model.Draft) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, prompt, mode, duration_sec, language, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			prompt = excluded.prompt,
			mode = excluded.mode,
			duration_sec = excluded.duration_sec,
			language = excluded.language,
			updated_at = excluded.updated_at`,
		d.Prompt, string(d.Mode), d.DurationSec, d.Language, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// LoadDraft returns the last saved draft, or nil if none has been saved.
func (s *SQLiteStore) LoadDraft(ctx context.Context) (*model.Draft, error) {
	var row draftRow
	err := s.db.GetContext(ctx, &row,
		"SELECT prompt, mode, duration_sec, language FROM drafts WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	d := model.Draft{
		Prompt:      row.Prompt,
		Mode:        model.Mode(row.Mode),
		DurationSec: row.DurationSec,
		Language:    row.Language,
	}
	return &d, nil
}
