package studio

import (
	"context"
	"sync"

	"github.com/nhle/prompttotube/internal/model"
)

// fakeService is an in-memory Service with call counters.
type fakeService struct {
	mu          sync.Mutex
	createCalls int
	listCalls   int

	created   *model.Project
	createErr error
	list      []model.Project
	listErr   error
}

func (f *fakeService) CreateProject(_ context.Context, d model.Draft) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		p := *f.created
		return &p, nil
	}
	return &model.Project{
		ID:          "generated",
		Prompt:      d.Prompt,
		Mode:        d.Mode,
		DurationSec: d.DurationSec,
		Language:    d.Language,
	}, nil
}

func (f *fakeService) ListProjects(context.Context) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Project, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeService) calls() (create, list int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.listCalls
}

// fakeJournal records what the studio asked it to store.
type fakeJournal struct {
	mu      sync.Mutex
	entries []model.Submission
	drafts  []model.Draft
}

func (j *fakeJournal) RecordSubmission(_ context.Context, s model.Submission) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
	return nil
}

func (j *fakeJournal) SaveDraft(_ context.Context, d model.Draft) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.drafts = append(j.drafts, d)
	return nil
}
