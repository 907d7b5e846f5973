package application

import (
	"context"
	"errors"

	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

// ErrSurveyNotFound is returned by repositories when no survey matches.
var ErrSurveyNotFound = errors.New("survey not found")

// SurveyRepository persists survey aggregates. Update replaces the
// whole mutable document; concurrent writers are last-writer-wins.
type SurveyRepository interface {
	Find(ctx context.Context, ownerID string, paging Paging) ([]surveydomain.Survey, int, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]surveydomain.Survey, error)
	FindByID(ctx context.Context, id string) (*surveydomain.Survey, error)
	Create(ctx context.Context, survey *surveydomain.Survey) error
	Update(ctx context.Context, survey *surveydomain.Survey) error
	Delete(ctx context.Context, id string) error
}

// ResponseRepository persists flow walk outcomes.
type ResponseRepository interface {
	Create(ctx context.Context, response *surveydomain.Response) error
	FindBySurvey(ctx context.Context, surveyID string) ([]surveydomain.Response, error)
	CountBySurveys(ctx context.Context, surveyIDs []string) (int, error)
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Normalize applies the default page/limit the dashboard uses.
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// CreateSurveyCommand carries a new-survey request.
type CreateSurveyCommand struct {
	Title       string
	Description string
}

// UpdateSurveyCommand carries a partial update; nil fields are left
// untouched in the stored document.
type UpdateSurveyCommand struct {
	Title       *string
	Description *string
	Status      *string
	Nodes       *[]surveydomain.Node
	Edges       *[]surveydomain.Edge
}

// Analytics aggregates the caller's surveys for the analytics page.
type Analytics struct {
	TotalSurveys       int
	PublishedSurveys   int
	TotalResponses     int
	AvgEligibilityRate int
}

// SurveyService describes the survey CRUD and analytics use-cases. All
// operations act on behalf of ownerID; surveys belonging to someone
// else are reported as not found rather than forbidden.
type SurveyService interface {
	Create(ctx context.Context, ownerID string, cmd CreateSurveyCommand) (*surveydomain.Survey, error)
	List(ctx context.Context, ownerID string, paging Paging) ([]surveydomain.Survey, int, error)
	Get(ctx context.Context, ownerID, id string) (*surveydomain.Survey, error)
	Update(ctx context.Context, ownerID, id string, cmd UpdateSurveyCommand) (*surveydomain.Survey, error)
	Delete(ctx context.Context, ownerID, id string) error
	Analytics(ctx context.Context, ownerID string) (Analytics, error)
}

// ResponseService records and lists flow walk outcomes.
type ResponseService interface {
	Submit(ctx context.Context, surveyID string, answers map[string]string) (*surveydomain.Response, error)
	List(ctx context.Context, ownerID, surveyID string) ([]surveydomain.Response, error)
}
