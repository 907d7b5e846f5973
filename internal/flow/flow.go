// Package flow holds the working-copy logic for a survey's node/edge
// graph: the eligibility metric, file exports and the walk used to
// evaluate a respondent against a published flow.
package flow

import (
	"math"

	"github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

// EligibilityRate returns the percentage of terminal nodes that are
// eligible, rounded to the nearest integer. A graph without terminal
// nodes has a rate of 0.
func EligibilityRate(nodes []domain.Node) int {
	eligible := 0
	ineligible := 0
	for _, n := range nodes {
		switch n.Type {
		case domain.NodeEligible:
			eligible++
		case domain.NodeIneligible:
			ineligible++
		}
	}

	total := eligible + ineligible
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(eligible) / float64(total) * 100))
}

// HasTerminals reports whether the graph has at least one
// eligible/ineligible node, i.e. a meaningful eligibility rate.
func HasTerminals(nodes []domain.Node) bool {
	for _, n := range nodes {
		if n.Type.Terminal() {
			return true
		}
	}
	return false
}
