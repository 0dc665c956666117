package model

import "time"

// Submission outcomes recorded in the local journal.
const (
	OutcomeCreated = "created"
	OutcomeFailed  = "failed"
)

// Submission is a local journal entry for one creation attempt.
type Submission struct {
	ID          string    `json:"id" db:"id"`
	Prompt      string    `json:"prompt" db:"prompt"`
	Mode        string    `json:"mode" db:"mode"`
	DurationSec int       `json:"duration_sec" db:"duration_sec"`
	Language    string    `json:"language" db:"language"`
	Outcome     string    `json:"outcome" db:"outcome"`
	ProjectID   string    `json:"project_id" db:"project_id"`
	Error       string    `json:"error" db:"error"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewSubmission builds a journal entry for d. ID and CreatedAt are filled
// in by the store when left empty.
func NewSubmission(d Draft, outcome string) Submission {
	return Submission{
		Prompt:      d.Prompt,
		Mode:        string(d.Mode),
		DurationSec: d.DurationSec,
		Language:    d.Language,
		Outcome:     outcome,
	}
}
