package application

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/surveyflow/surveyflow-services/api/internal/flow"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

type surveyService struct {
	surveys   SurveyRepository
	responses ResponseRepository
}

// NewSurveyService creates a SurveyService over the given repositories.
func NewSurveyService(surveys SurveyRepository, responses ResponseRepository) SurveyService {
	return &surveyService{surveys: surveys, responses: responses}
}

func (s *surveyService) Create(ctx context.Context, ownerID string, cmd CreateSurveyCommand) (*surveydomain.Survey, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, fault.Validation("title is required")
	}

	now := time.Now().UTC()
	survey := &surveydomain.Survey{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Status:      surveydomain.StatusDraft,
		Nodes:       []surveydomain.Node{},
		Edges:       []surveydomain.Edge{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, fault.Internal("survey creation failed", err)
	}
	return survey, nil
}

func (s *surveyService) List(ctx context.Context, ownerID string, paging Paging) ([]surveydomain.Survey, int, error) {
	items, total, err := s.surveys.Find(ctx, ownerID, paging.Normalize())
	if err != nil {
		return nil, 0, fault.Internal("survey listing failed", err)
	}
	return items, total, nil
}

func (s *surveyService) Get(ctx context.Context, ownerID, id string) (*surveydomain.Survey, error) {
	return s.loadOwned(ctx, ownerID, id)
}

// Update merges the provided fields into the stored document as one
// read-modify-write. There is no version check; the last writer wins.
func (s *surveyService) Update(ctx context.Context, ownerID, id string, cmd UpdateSurveyCommand) (*surveydomain.Survey, error) {
	survey, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return nil, fault.Validation("title is required")
		}
		survey.Title = title
	}
	if cmd.Description != nil {
		survey.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Status != nil {
		status, ok := surveydomain.ParseStatus(*cmd.Status)
		if !ok {
			return nil, fault.Validation("invalid status")
		}
		// Publishing is one-way; re-publishing is a no-op.
		if survey.Status == surveydomain.StatusPublished && status == surveydomain.StatusDraft {
			return nil, fault.Validation("published surveys cannot return to draft")
		}
		survey.Status = status
	}
	if cmd.Nodes != nil {
		if err := validateNodes(*cmd.Nodes); err != nil {
			return nil, err
		}
		survey.Nodes = *cmd.Nodes
	}
	if cmd.Edges != nil {
		if err := validateEdges(*cmd.Edges); err != nil {
			return nil, err
		}
		survey.Edges = *cmd.Edges
	}

	survey.UpdatedAt = time.Now().UTC()
	if err := s.surveys.Update(ctx, survey); err != nil {
		if errors.Is(err, ErrSurveyNotFound) {
			return nil, fault.NotFound("survey not found")
		}
		return nil, fault.Internal("survey update failed", err)
	}
	return survey, nil
}

func (s *surveyService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.surveys.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrSurveyNotFound) {
			return fault.NotFound("survey not found")
		}
		return fault.Internal("survey deletion failed", err)
	}
	return nil
}

func (s *surveyService) Analytics(ctx context.Context, ownerID string) (Analytics, error) {
	surveys, err := s.surveys.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return Analytics{}, fault.Internal("analytics aggregation failed", err)
	}

	result := Analytics{TotalSurveys: len(surveys)}
	rateSum := 0
	rated := 0
	surveyIDs := make([]string, 0, len(surveys))
	for _, survey := range surveys {
		surveyIDs = append(surveyIDs, survey.ID)
		if survey.Published() {
			result.PublishedSurveys++
		}
		if flow.HasTerminals(survey.Nodes) {
			rateSum += flow.EligibilityRate(survey.Nodes)
			rated++
		}
	}
	if rated > 0 {
		result.AvgEligibilityRate = int(math.Round(float64(rateSum) / float64(rated)))
	}

	if len(surveyIDs) > 0 {
		count, err := s.responses.CountBySurveys(ctx, surveyIDs)
		if err != nil {
			return Analytics{}, fault.Internal("response count failed", err)
		}
		result.TotalResponses = count
	}
	return result, nil
}

// loadOwned fetches a survey and checks ownership, reporting a
// mismatch as not-found so survey ids cannot be probed.
func (s *surveyService) loadOwned(ctx context.Context, ownerID, id string) (*surveydomain.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSurveyNotFound) {
			return nil, fault.NotFound("survey not found")
		}
		return nil, fault.Internal("survey lookup failed", err)
	}
	if survey.OwnerID != ownerID {
		return nil, fault.NotFound("survey not found")
	}
	return survey, nil
}

func validateNodes(nodes []surveydomain.Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if strings.TrimSpace(node.ID) == "" {
			return fault.Validation("node id is required")
		}
		if _, dup := seen[node.ID]; dup {
			return fault.Validation("duplicate node id: " + node.ID)
		}
		seen[node.ID] = struct{}{}
		if _, ok := surveydomain.ParseNodeType(string(node.Type)); !ok {
			return fault.Validation("invalid node type: " + string(node.Type))
		}
	}
	return nil
}

// validateEdges checks edge shape only. Dangling source/target ids are
// tolerated while a draft is being sketched out in the builder.
func validateEdges(edges []surveydomain.Edge) error {
	for _, edge := range edges {
		if strings.TrimSpace(edge.Source) == "" || strings.TrimSpace(edge.Target) == "" {
			return fault.Validation("edge source and target are required")
		}
	}
	return nil
}
