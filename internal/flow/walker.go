package flow

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

var (
	// ErrNoStart is returned when the graph has no start node.
	ErrNoStart = errors.New("flow has no start node")
	// ErrDeadEnd is returned when the walk stops before reaching an
	// eligible/ineligible terminal.
	ErrDeadEnd = errors.New("flow walk reached a dead end")
)

// Walk follows the graph from its start node to a terminal node,
// using answers (keyed by node id) to pick between conditional edges.
// An edge with an empty condition always matches; conditions are
// boolean expressions over the answers map, e.g. `answers["q1"] == "yes"`.
// The walk visits at most len(nodes) steps, so cyclic graphs terminate
// with ErrDeadEnd instead of looping.
func Walk(nodes []domain.Node, edges []domain.Edge, answers map[string]string) (domain.NodeType, []string, error) {
	start, ok := domain.StartNode(nodes)
	if !ok {
		return "", nil, ErrNoStart
	}

	byID := make(map[string]domain.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	outgoing := make(map[string][]domain.Edge, len(edges))
	for _, e := range edges {
		outgoing[e.Source] = append(outgoing[e.Source], e)
	}

	env := map[string]any{"answers": answersEnv(answers)}

	current := start
	path := []string{current.ID}
	for range nodes {
		if current.Type.Terminal() {
			return current.Type, path, nil
		}

		next, ok, err := nextNode(current, outgoing[current.ID], byID, env)
		if err != nil {
			return "", path, err
		}
		if !ok {
			return "", path, ErrDeadEnd
		}
		current = next
		path = append(path, current.ID)
	}

	if current.Type.Terminal() {
		return current.Type, path, nil
	}
	return "", path, ErrDeadEnd
}

// nextNode picks the first outgoing edge whose condition holds.
func nextNode(current domain.Node, candidates []domain.Edge, byID map[string]domain.Node, env map[string]any) (domain.Node, bool, error) {
	for _, edge := range candidates {
		match, err := evaluateCondition(edge.Condition, env)
		if err != nil {
			return domain.Node{}, false, fmt.Errorf("edge %s -> %s: %w", edge.Source, edge.Target, err)
		}
		if !match {
			continue
		}
		target, ok := byID[edge.Target]
		if !ok {
			return domain.Node{}, false, fmt.Errorf("edge %s -> %s: target node missing", edge.Source, edge.Target)
		}
		return target, true, nil
	}
	return domain.Node{}, false, nil
}

func evaluateCondition(condition string, env map[string]any) (bool, error) {
	if condition == "" {
		return true, nil
	}

	program, err := expr.Compile(condition, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, err
	}
	output, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	result, ok := output.(bool)
	if !ok {
		return false, errors.New("condition did not return a boolean")
	}
	return result, nil
}

func answersEnv(answers map[string]string) map[string]string {
	if answers == nil {
		return map[string]string{}
	}
	return answers
}
