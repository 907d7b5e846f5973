package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surveyflow/surveyflow-services/api/internal/client"
	"github.com/surveyflow/surveyflow-services/api/internal/flow"
	surveydomain "github.com/surveyflow/surveyflow-services/api/internal/survey/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a survey's flow as JSON logic or a node CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		survey, err := api.GetSurvey(args[0])
		if err != nil {
			return err
		}

		nodes := mapClientNodes(survey.Nodes)
		edges := mapClientEdges(survey.Edges)

		switch format {
		case "json":
			data, err := flow.ExportJSON(survey.Title, nodes, edges)
			if err != nil {
				return err
			}
			name := flow.ExportFileName(survey.Title, "-logic.json")
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", name)
		case "csv":
			name := flow.ExportFileName(survey.Title, "-nodes.csv")
			if err := os.WriteFile(name, []byte(flow.ExportCSV(nodes)), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", name)
		default:
			return fmt.Errorf("unknown format %q (want json or csv)", format)
		}
		return nil
	},
}

func mapClientNodes(nodes []client.Node) []surveydomain.Node {
	result := make([]surveydomain.Node, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, surveydomain.Node{
			ID:   n.ID,
			Type: surveydomain.NodeType(n.Type),
			Data: n.Data,
		})
	}
	return result
}

func mapClientEdges(edges []client.Edge) []surveydomain.Edge {
	result := make([]surveydomain.Edge, 0, len(edges))
	for _, e := range edges {
		result = append(result, surveydomain.Edge{
			ID:        e.ID,
			Source:    e.Source,
			Target:    e.Target,
			Condition: e.Condition,
		})
	}
	return result
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format: json or csv")
}
