package studio

import "github.com/nhle/prompttotube/internal/model"

// RefreshedMsg carries the outcome of one listing request. Seq is the
// sequence number assigned when the request was issued.
type RefreshedMsg struct {
	Seq      uint64
	Projects []model.Project
	Err      error
}

// ProjectCreatedMsg is delivered when the service accepted a draft.
type ProjectCreatedMsg struct {
	Draft   model.Draft
	Project model.Project
}

// CreationFailedMsg is delivered when a creation request failed, either in
// transport or with a non-success status.
type CreationFailedMsg struct {
	Draft model.Draft
	Err   error
}
