package application

import (
	"context"
	"fmt"

	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

type fakeSurveyRepository struct {
	surveys []surveydomain.Survey
	seq     int
}

func (r *fakeSurveyRepository) Find(_ context.Context, ownerID string, paging Paging) ([]surveydomain.Survey, int, error) {
	owned := r.owned(ownerID)
	total := len(owned)

	start := (paging.Page - 1) * paging.Limit
	if start > total {
		start = total
	}
	end := start + paging.Limit
	if end > total {
		end = total
	}
	return owned[start:end], total, nil
}

func (r *fakeSurveyRepository) FindAllByOwner(_ context.Context, ownerID string) ([]surveydomain.Survey, error) {
	return r.owned(ownerID), nil
}

func (r *fakeSurveyRepository) FindByID(_ context.Context, id string) (*surveydomain.Survey, error) {
	for _, s := range r.surveys {
		if s.ID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, ErrSurveyNotFound
}

func (r *fakeSurveyRepository) Create(_ context.Context, survey *surveydomain.Survey) error {
	r.seq++
	survey.ID = fmt.Sprintf("survey-%d", r.seq)
	r.surveys = append(r.surveys, *survey)
	return nil
}

func (r *fakeSurveyRepository) Update(_ context.Context, survey *surveydomain.Survey) error {
	for i, s := range r.surveys {
		if s.ID == survey.ID {
			r.surveys[i] = *survey
			return nil
		}
	}
	return ErrSurveyNotFound
}

func (r *fakeSurveyRepository) Delete(_ context.Context, id string) error {
	for i, s := range r.surveys {
		if s.ID == id {
			r.surveys = append(r.surveys[:i], r.surveys[i+1:]...)
			return nil
		}
	}
	return ErrSurveyNotFound
}

func (r *fakeSurveyRepository) owned(ownerID string) []surveydomain.Survey {
	owned := make([]surveydomain.Survey, 0)
	for _, s := range r.surveys {
		if s.OwnerID == ownerID {
			owned = append(owned, s)
		}
	}
	return owned
}

type fakeResponseRepository struct {
	responses []surveydomain.Response
	seq       int
}

func (r *fakeResponseRepository) Create(_ context.Context, response *surveydomain.Response) error {
	r.seq++
	response.ID = fmt.Sprintf("response-%d", r.seq)
	r.responses = append(r.responses, *response)
	return nil
}

func (r *fakeResponseRepository) FindBySurvey(_ context.Context, surveyID string) ([]surveydomain.Response, error) {
	found := make([]surveydomain.Response, 0)
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			found = append(found, resp)
		}
	}
	return found, nil
}

func (r *fakeResponseRepository) CountBySurveys(_ context.Context, surveyIDs []string) (int, error) {
	wanted := make(map[string]struct{}, len(surveyIDs))
	for _, id := range surveyIDs {
		wanted[id] = struct{}{}
	}
	count := 0
	for _, resp := range r.responses {
		if _, ok := wanted[resp.SurveyID]; ok {
			count++
		}
	}
	return count, nil
}
