package model

// Project status values observed from the generation service. The service
// owns the lifecycle; the client only displays what it is given.
const (
	ProjectStatusCreated = "created"
)

// MaxDisplayedSuggestions caps how many suggestions a project card shows.
const MaxDisplayedSuggestions = 3

// Project is the server-confirmed record of one submitted draft.
type Project struct {
	// ID is the opaque identifier assigned by the service.
	ID string `json:"id"`

	// Prompt is the natural-language description as submitted.
	Prompt string `json:"prompt"`

	// Mode is the requested format.
	Mode Mode `json:"mode"`

	// DurationSec is the requested length in seconds.
	DurationSec int `json:"duration_sec"`

	// Language is the requested language code.
	Language string `json:"language"`

	// Status is the service-assigned pipeline stage, if any.
	Status string `json:"status,omitempty"`

	// Title is the service-assigned title, if any.
	Title string `json:"title,omitempty"`

	// Suggestions are short service-generated hints in service order.
	Suggestions []string `json:"suggestions,omitempty"`
}

// DisplayTitle returns the title, falling back to the prompt.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Prompt
}

// DisplayStatus returns the status, falling back to "created".
func (p Project) DisplayStatus() string {
	if p.Status != "" {
		return p.Status
	}
	return ProjectStatusCreated
}

// TopSuggestions returns at most MaxDisplayedSuggestions suggestions.
func (p Project) TopSuggestions() []string {
	if len(p.Suggestions) <= MaxDisplayedSuggestions {
		return p.Suggestions
	}
	return p.Suggestions[:MaxDisplayedSuggestions]
}
