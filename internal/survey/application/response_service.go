package application

import (
	"context"
	"errors"
	"time"

	"github.com/surveyflow/surveyflow-services/api/internal/flow"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

type responseService struct {
	surveys   SurveyRepository
	responses ResponseRepository
}

// NewResponseService creates a ResponseService over the given repositories.
func NewResponseService(surveys SurveyRepository, responses ResponseRepository) ResponseService {
	return &responseService{surveys: surveys, responses: responses}
}

// Submit walks the published flow with the given answers and records
// the outcome. Draft surveys do not accept responses.
func (s *responseService) Submit(ctx context.Context, surveyID string, answers map[string]string) (*surveydomain.Response, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, ErrSurveyNotFound) {
			return nil, fault.NotFound("survey not found")
		}
		return nil, fault.Internal("survey lookup failed", err)
	}
	if !survey.Published() {
		return nil, fault.Validation("survey is not published")
	}

	outcome, _, err := flow.Walk(survey.Nodes, survey.Edges, answers)
	if err != nil {
		return nil, fault.Validation("flow walk failed: " + err.Error())
	}

	response := &surveydomain.Response{
		SurveyID:  survey.ID,
		Outcome:   outcome,
		Answers:   answers,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, fault.Internal("response creation failed", err)
	}
	return response, nil
}

// List returns the recorded responses for one of the owner's surveys.
func (s *responseService) List(ctx context.Context, ownerID, surveyID string) ([]surveydomain.Response, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, ErrSurveyNotFound) {
			return nil, fault.NotFound("survey not found")
		}
		return nil, fault.Internal("survey lookup failed", err)
	}
	if survey.OwnerID != ownerID {
		return nil, fault.NotFound("survey not found")
	}

	responses, err := s.responses.FindBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fault.Internal("response listing failed", err)
	}
	return responses, nil
}
