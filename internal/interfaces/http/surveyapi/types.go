package surveyapi

import (
	"time"

	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

// nodePayload is the wire shape of a flow graph node.
type nodePayload struct {
	ID   string            `json:"id"`
	Type string            `json:"type"`
	Data map[string]string `json:"data,omitempty"`
}

// edgePayload is the wire shape of a flow graph edge.
type edgePayload struct {
	ID        string `json:"id,omitempty"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Condition string `json:"condition,omitempty"`
}

// createSurveyRequest mirrors POST /api/surveys.
type createSurveyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// updateSurveyRequest mirrors PUT /api/surveys/{id}; nil fields are
// left untouched.
type updateSurveyRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Nodes       *[]nodePayload `json:"nodes"`
	Edges       *[]edgePayload `json:"edges"`
}

// submitResponseRequest mirrors POST /api/surveys/{id}/responses.
type submitResponseRequest struct {
	Answers map[string]string `json:"answers"`
}

type surveyResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      string        `json:"status"`
	Nodes       []nodePayload `json:"nodes"`
	Edges       []edgePayload `json:"edges"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type surveyListResponse struct {
	Items []surveyResponse `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
}

type analyticsResponse struct {
	TotalSurveys       int `json:"totalSurveys"`
	PublishedSurveys   int `json:"publishedSurveys"`
	TotalResponses     int `json:"totalResponses"`
	AvgEligibilityRate int `json:"avgEligibilityRate"`
}

type responseResponse struct {
	ID        string            `json:"id"`
	SurveyID  string            `json:"surveyId"`
	Outcome   string            `json:"outcome"`
	Answers   map[string]string `json:"answers,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func buildSurveyResponse(survey surveydomain.Survey) surveyResponse {
	nodes := make([]nodePayload, 0, len(survey.Nodes))
	for _, n := range survey.Nodes {
		nodes = append(nodes, nodePayload{ID: n.ID, Type: string(n.Type), Data: n.Data})
	}
	edges := make([]edgePayload, 0, len(survey.Edges))
	for _, e := range survey.Edges {
		edges = append(edges, edgePayload{ID: e.ID, Source: e.Source, Target: e.Target, Condition: e.Condition})
	}
	return surveyResponse{
		ID:          survey.ID,
		Title:       survey.Title,
		Description: survey.Description,
		Status:      string(survey.Status),
		Nodes:       nodes,
		Edges:       edges,
		CreatedAt:   survey.CreatedAt,
		UpdatedAt:   survey.UpdatedAt,
	}
}

func buildResponseResponse(response surveydomain.Response) responseResponse {
	return responseResponse{
		ID:        response.ID,
		SurveyID:  response.SurveyID,
		Outcome:   string(response.Outcome),
		Answers:   response.Answers,
		CreatedAt: response.CreatedAt,
	}
}

func mapNodePayloads(payloads []nodePayload) []surveydomain.Node {
	nodes := make([]surveydomain.Node, 0, len(payloads))
	for _, p := range payloads {
		nodes = append(nodes, surveydomain.Node{
			ID:   p.ID,
			Type: surveydomain.NodeType(p.Type),
			Data: p.Data,
		})
	}
	return nodes
}

func mapEdgePayloads(payloads []edgePayload) []surveydomain.Edge {
	edges := make([]surveydomain.Edge, 0, len(payloads))
	for _, p := range payloads {
		edges = append(edges, surveydomain.Edge{
			ID:        p.ID,
			Source:    p.Source,
			Target:    p.Target,
			Condition: p.Condition,
		})
	}
	return edges
}
