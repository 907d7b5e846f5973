package domain

import "time"

// Status is the lifecycle state of a survey. The only transition is
// draft -> published; there is no un-publish.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ParseStatus validates a raw status string.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusDraft, StatusPublished:
		return Status(value), true
	default:
		return "", false
	}
}

// Survey is an eligibility-flow document owned by a single user.
type Survey struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      Status
	Nodes       []Node
	Edges       []Edge
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Published reports whether the survey has been published.
func (s Survey) Published() bool {
	return s.Status == StatusPublished
}

// Response records one completed walk through a published flow.
type Response struct {
	ID        string
	SurveyID  string
	Outcome   NodeType
	Answers   map[string]string
	CreatedAt time.Time
}
