package flow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

type exportNode struct {
	ID   string            `json:"id"`
	Type string            `json:"type"`
	Data map[string]string `json:"data,omitempty"`
}

type exportEdge struct {
	ID        string `json:"id,omitempty"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Condition string `json:"condition,omitempty"`
}

type exportDocument struct {
	Title string       `json:"title"`
	Nodes []exportNode `json:"nodes"`
	Edges []exportEdge `json:"edges"`
}

// ExportJSON renders the flow as an indented {title, nodes, edges}
// document, the payload of the `<title>-logic.json` download.
func ExportJSON(title string, nodes []domain.Node, edges []domain.Edge) ([]byte, error) {
	doc := exportDocument{
		Title: title,
		Nodes: make([]exportNode, 0, len(nodes)),
		Edges: make([]exportEdge, 0, len(edges)),
	}
	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, exportNode{ID: n.ID, Type: string(n.Type), Data: n.Data})
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, exportEdge{ID: e.ID, Source: e.Source, Target: e.Target, Condition: e.Condition})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ExportCSV renders one `id,type,label` row per node. Labels are not
// escaped; the builder UI never allows commas in labels.
func ExportCSV(nodes []domain.Node) string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, fmt.Sprintf("%s,%s,%s", n.ID, n.Type, n.Label()))
	}
	return "id,type,label\n" + strings.Join(lines, "\n")
}

// ExportFileName derives the download file name for a survey title,
// e.g. "my survey-logic.json". Empty titles fall back to "survey".
func ExportFileName(title, suffix string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		trimmed = "survey"
	}
	return trimmed + suffix
}
