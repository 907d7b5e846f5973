package application

import (
	"context"
	"testing"

	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

func newTestSurveyService() (SurveyService, *fakeSurveyRepository, *fakeResponseRepository) {
	surveys := &fakeSurveyRepository{}
	responses := &fakeResponseRepository{}
	return NewSurveyService(surveys, responses), surveys, responses
}

func mustCreate(t *testing.T, svc SurveyService, ownerID, title string) *surveydomain.Survey {
	t.Helper()
	survey, err := svc.Create(context.Background(), ownerID, CreateSurveyCommand{Title: title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return survey
}

func strptr(s string) *string { return &s }

func TestCreateSurvey_StartsAsEmptyDraft(t *testing.T) {
	svc, _, _ := newTestSurveyService()

	survey, err := svc.Create(context.Background(), "owner-1", CreateSurveyCommand{
		Title:       "  Health Study  ",
		Description: " screening ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if survey.ID == "" {
		t.Errorf("expected the repository to assign an id")
	}
	if survey.Title != "Health Study" || survey.Description != "screening" {
		t.Errorf("expected trimmed fields, got %q / %q", survey.Title, survey.Description)
	}
	if survey.Status != surveydomain.StatusDraft {
		t.Errorf("expected draft status, got %s", survey.Status)
	}
	if survey.Nodes == nil || survey.Edges == nil {
		t.Errorf("expected empty, non-nil node and edge slices")
	}
}

func TestCreateSurvey_RequiresTitle(t *testing.T) {
	svc, _, _ := newTestSurveyService()

	_, err := svc.Create(context.Background(), "owner-1", CreateSurveyCommand{Title: "   "})
	if !fault.IsKind(err, fault.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetSurvey_OtherOwnerLooksLikeNotFound(t *testing.T) {
	svc, _, _ := newTestSurveyService()
	ctx := context.Background()

	survey := mustCreate(t, svc, "owner-1", "Mine")

	if _, err := svc.Get(ctx, "owner-2", survey.ID); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected not-found for a foreign owner, got %v", err)
	}
	if _, err := svc.Get(ctx, "owner-1", "missing"); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected not-found for an unknown id, got %v", err)
	}
	if _, err := svc.Get(ctx, "owner-1", survey.ID); err != nil {
		t.Errorf("expected the owner to read the survey, got %v", err)
	}
}

func TestListSurveys_Paginates(t *testing.T) {
	svc, _, _ := newTestSurveyService()
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		mustCreate(t, svc, "owner-1", title)
	}
	mustCreate(t, svc, "owner-2", "Someone else's")

	items, total, err := svc.List(ctx, "owner-1", Paging{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(items) != 1 {
		t.Errorf("expected one item on the last page, got %d", len(items))
	}

	// Zero paging falls back to the dashboard defaults.
	items, _, err = svc.List(ctx, "owner-1", Paging{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected all three on the default first page, got %d", len(items))
	}
}

func TestUpdateSurvey_MergesProvidedFields(t *testing.T) {
	svc, _, _ := newTestSurveyService()
	ctx := context.Background()

	survey := mustCreate(t, svc, "owner-1", "Draft")

	nodes := []surveydomain.Node{
		{ID: "start", Type: surveydomain.NodeStart, Data: map[string]string{"label": "Start"}},
		{ID: "end", Type: surveydomain.NodeEligible},
	}
	edges := []surveydomain.Edge{{ID: "e1", Source: "start", Target: "end"}}

	updated, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{
		Title: strptr("Renamed"),
		Nodes: &nodes,
		Edges: &edges,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("expected renamed title, got %q", updated.Title)
	}
	if len(updated.Nodes) != 2 || len(updated.Edges) != 1 {
		t.Errorf("expected the graph to be replaced, got %d nodes / %d edges", len(updated.Nodes), len(updated.Edges))
	}
	if updated.Description != "" {
		t.Errorf("expected untouched description, got %q", updated.Description)
	}
	if !updated.UpdatedAt.After(survey.UpdatedAt) && !updated.UpdatedAt.Equal(survey.UpdatedAt) {
		t.Errorf("expected UpdatedAt to move forward")
	}

	stored, err := svc.Get(ctx, "owner-1", survey.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != "Renamed" || len(stored.Nodes) != 2 {
		t.Errorf("expected the update to be persisted, got %+v", stored)
	}
}

func TestUpdateSurvey_ValidatesGraph(t *testing.T) {
	svc, _, _ := newTestSurveyService()
	ctx := context.Background()

	survey := mustCreate(t, svc, "owner-1", "Draft")

	badType := []surveydomain.Node{{ID: "n1", Type: "teleport"}}
	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Nodes: &badType}); !fault.IsKind(err, fault.KindValidation) {
		t.Errorf("expected validation error for an unknown node type, got %v", err)
	}

	duplicate := []surveydomain.Node{
		{ID: "n1", Type: surveydomain.NodeQuestion},
		{ID: "n1", Type: surveydomain.NodeQuestion},
	}
	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Nodes: &duplicate}); !fault.IsKind(err, fault.KindValidation) {
		t.Errorf("expected validation error for duplicate node ids, got %v", err)
	}

	blankEdge := []surveydomain.Edge{{ID: "e1", Source: "", Target: "n1"}}
	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Edges: &blankEdge}); !fault.IsKind(err, fault.KindValidation) {
		t.Errorf("expected validation error for a blank edge source, got %v", err)
	}

	// Dangling targets are fine while drafting.
	dangling := []surveydomain.Edge{{ID: "e1", Source: "n1", Target: "nowhere"}}
	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Edges: &dangling}); err != nil {
		t.Errorf("expected dangling edges to be tolerated, got %v", err)
	}
}

func TestUpdateSurvey_PublishingIsOneWay(t *testing.T) {
	svc, _, _ := newTestSurveyService()
	ctx := context.Background()

	survey := mustCreate(t, svc, "owner-1", "Draft")

	published, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Status: strptr("published")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !published.Published() {
		t.Errorf("expected published status, got %s", published.Status)
	}

	// Re-publishing is a no-op.
	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Status: strptr("published")}); err != nil {
		t.Errorf("expected re-publishing to succeed, got %v", err)
	}

	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Status: strptr("draft")}); !fault.IsKind(err, fault.KindValidation) {
		t.Errorf("expected un-publishing to be rejected, got %v", err)
	}
	if _, err := svc.Update(ctx, "owner-1", survey.ID, UpdateSurveyCommand{Status: strptr("archived")}); !fault.IsKind(err, fault.KindValidation) {
		t.Errorf("expected an unknown status to be rejected, got %v", err)
	}
}

func TestDeleteSurvey(t *testing.T) {
	svc, repo, _ := newTestSurveyService()
	ctx := context.Background()

	survey := mustCreate(t, svc, "owner-1", "Short-lived")

	if err := svc.Delete(ctx, "owner-2", survey.ID); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected a foreign owner's delete to look like not-found, got %v", err)
	}
	if len(repo.surveys) != 1 {
		t.Fatalf("expected the survey to survive, got %d stored", len(repo.surveys))
	}

	if err := svc.Delete(ctx, "owner-1", survey.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.surveys) != 0 {
		t.Errorf("expected the survey to be gone, got %d stored", len(repo.surveys))
	}
	if _, err := svc.Get(ctx, "owner-1", survey.ID); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected a get after delete to be not-found, got %v", err)
	}
	if err := svc.Delete(ctx, "owner-1", survey.ID); !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected a second delete to be not-found, got %v", err)
	}
}

func TestAnalytics_AggregatesOwnedSurveys(t *testing.T) {
	svc, _, responses := newTestSurveyService()
	ctx := context.Background()

	rated := mustCreate(t, svc, "owner-1", "Rated")
	nodes := []surveydomain.Node{
		{ID: "start", Type: surveydomain.NodeStart},
		{ID: "e1", Type: surveydomain.NodeEligible},
		{ID: "e2", Type: surveydomain.NodeEligible},
		{ID: "e3", Type: surveydomain.NodeEligible},
		{ID: "i1", Type: surveydomain.NodeIneligible},
	}
	if _, err := svc.Update(ctx, "owner-1", rated.ID, UpdateSurveyCommand{
		Nodes:  &nodes,
		Status: strptr("published"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A draft without terminals contributes to the count but not the rate.
	mustCreate(t, svc, "owner-1", "Sketch")
	// Another owner's survey is invisible.
	foreign := mustCreate(t, svc, "owner-2", "Foreign")

	responses.responses = append(responses.responses,
		surveydomain.Response{ID: "r1", SurveyID: rated.ID, Outcome: surveydomain.NodeEligible},
		surveydomain.Response{ID: "r2", SurveyID: rated.ID, Outcome: surveydomain.NodeIneligible},
		surveydomain.Response{ID: "r3", SurveyID: foreign.ID, Outcome: surveydomain.NodeEligible},
	)

	analytics, err := svc.Analytics(ctx, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analytics.TotalSurveys != 2 {
		t.Errorf("expected 2 surveys, got %d", analytics.TotalSurveys)
	}
	if analytics.PublishedSurveys != 1 {
		t.Errorf("expected 1 published survey, got %d", analytics.PublishedSurveys)
	}
	if analytics.TotalResponses != 2 {
		t.Errorf("expected 2 responses, got %d", analytics.TotalResponses)
	}
	if analytics.AvgEligibilityRate != 75 {
		t.Errorf("expected average rate 75, got %d", analytics.AvgEligibilityRate)
	}
}

func TestAnalytics_EmptyAccount(t *testing.T) {
	svc, _, _ := newTestSurveyService()

	analytics, err := svc.Analytics(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analytics != (Analytics{}) {
		t.Errorf("expected zeroed analytics, got %+v", analytics)
	}
}
