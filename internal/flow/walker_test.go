package flow

import (
	"errors"
	"testing"

	"github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

func branchingGraph() ([]domain.Node, []domain.Edge) {
	nodes := []domain.Node{
		{ID: "start", Type: domain.NodeStart},
		{ID: "q1", Type: domain.NodeQuestion, Data: map[string]string{"label": "Over 18?"}},
		{ID: "yes", Type: domain.NodeEligible},
		{ID: "no", Type: domain.NodeIneligible},
	}
	edges := []domain.Edge{
		{ID: "e1", Source: "start", Target: "q1"},
		{ID: "e2", Source: "q1", Target: "yes", Condition: `answers["q1"] == "yes"`},
		{ID: "e3", Source: "q1", Target: "no"},
	}
	return nodes, edges
}

func TestWalk_ConditionalBranchMatches(t *testing.T) {
	nodes, edges := branchingGraph()

	outcome, path, err := Walk(nodes, edges, map[string]string{"q1": "yes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != domain.NodeEligible {
		t.Errorf("expected eligible outcome, got %s", outcome)
	}
	if len(path) != 3 || path[2] != "yes" {
		t.Errorf("unexpected path %v", path)
	}
}

func TestWalk_FallsThroughToUnconditionalEdge(t *testing.T) {
	nodes, edges := branchingGraph()

	outcome, _, err := Walk(nodes, edges, map[string]string{"q1": "no"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != domain.NodeIneligible {
		t.Errorf("expected ineligible outcome, got %s", outcome)
	}
}

func TestWalk_NilAnswers(t *testing.T) {
	nodes, edges := branchingGraph()

	outcome, _, err := Walk(nodes, edges, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != domain.NodeIneligible {
		t.Errorf("expected ineligible outcome for missing answers, got %s", outcome)
	}
}

func TestWalk_NoStartNode(t *testing.T) {
	nodes := []domain.Node{{ID: "q1", Type: domain.NodeQuestion}}

	_, _, err := Walk(nodes, nil, nil)
	if !errors.Is(err, ErrNoStart) {
		t.Errorf("expected ErrNoStart, got %v", err)
	}
}

func TestWalk_DeadEnd(t *testing.T) {
	nodes := []domain.Node{
		{ID: "start", Type: domain.NodeStart},
		{ID: "q1", Type: domain.NodeQuestion},
	}
	edges := []domain.Edge{{ID: "e1", Source: "start", Target: "q1"}}

	_, path, err := Walk(nodes, edges, nil)
	if !errors.Is(err, ErrDeadEnd) {
		t.Errorf("expected ErrDeadEnd, got %v", err)
	}
	if len(path) != 2 {
		t.Errorf("expected the partial path to be reported, got %v", path)
	}
}

func TestWalk_CycleTerminates(t *testing.T) {
	nodes := []domain.Node{
		{ID: "start", Type: domain.NodeStart},
		{ID: "q1", Type: domain.NodeQuestion},
	}
	edges := []domain.Edge{
		{ID: "e1", Source: "start", Target: "q1"},
		{ID: "e2", Source: "q1", Target: "start"},
	}

	_, _, err := Walk(nodes, edges, nil)
	if !errors.Is(err, ErrDeadEnd) {
		t.Errorf("expected cyclic graph to end with ErrDeadEnd, got %v", err)
	}
}

func TestWalk_MissingTarget(t *testing.T) {
	nodes := []domain.Node{{ID: "start", Type: domain.NodeStart}}
	edges := []domain.Edge{{ID: "e1", Source: "start", Target: "gone"}}

	_, _, err := Walk(nodes, edges, nil)
	if err == nil {
		t.Fatalf("expected error for a dangling edge target")
	}
}

func TestWalk_InvalidCondition(t *testing.T) {
	nodes := []domain.Node{
		{ID: "start", Type: domain.NodeStart},
		{ID: "yes", Type: domain.NodeEligible},
	}
	edges := []domain.Edge{
		{ID: "e1", Source: "start", Target: "yes", Condition: `answers["q1" ==`},
	}

	_, _, err := Walk(nodes, edges, nil)
	if err == nil {
		t.Fatalf("expected error for a malformed condition")
	}
}

func TestWalk_StartOnlyGraph(t *testing.T) {
	nodes := []domain.Node{{ID: "start", Type: domain.NodeStart}}

	_, _, err := Walk(nodes, nil, nil)
	if !errors.Is(err, ErrDeadEnd) {
		t.Errorf("expected ErrDeadEnd for a start-only graph, got %v", err)
	}
}
