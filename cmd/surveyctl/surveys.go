package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surveyflow/surveyflow-services/api/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your surveys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		result, err := api.ListSurveys(page, limit)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}
		for _, survey := range result.Items {
			fmt.Printf("%s  %-10s  %s\n", survey.ID, survey.Status, survey.Title)
		}
		fmt.Printf("page %d/%d (%d total)\n", result.Page, totalPages(result.Total, result.Limit), result.Total)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a draft survey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		survey, err := api.CreateSurvey(args[0], description)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(survey)
		}
		fmt.Printf("created %s (%s)\n", survey.Title, survey.ID)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one survey with its flow graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := api.GetSurvey(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(survey)
		}
		fmt.Printf("%s (%s)\n", survey.Title, survey.Status)
		if survey.Description != "" {
			fmt.Println(survey.Description)
		}
		fmt.Printf("%d nodes, %d edges\n", len(survey.Nodes), len(survey.Edges))
		for _, node := range survey.Nodes {
			fmt.Printf("  [%s] %s %s\n", node.Type, node.ID, node.Data["label"])
		}
		for _, edge := range survey.Edges {
			if edge.Condition != "" {
				fmt.Printf("  %s -> %s when %s\n", edge.Source, edge.Target, edge.Condition)
			} else {
				fmt.Printf("  %s -> %s\n", edge.Source, edge.Target)
			}
		}
		return nil
	},
}

var updateTitleCmd = &cobra.Command{
	Use:   "update-title <id> <title>",
	Short: "Rename a survey",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := api.UpdateSurvey(args[0], client.SurveyUpdate{Title: &args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("renamed to %s\n", survey.Title)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a survey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteSurvey(args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a survey (one-way)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := api.PublishSurvey(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is %s\n", survey.Title, survey.Status)
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show aggregate metrics for your surveys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analytics, err := api.Analytics()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(analytics)
		}
		fmt.Printf("total surveys:     %d\n", analytics.TotalSurveys)
		fmt.Printf("published:         %d\n", analytics.PublishedSurveys)
		fmt.Printf("total responses:   %d\n", analytics.TotalResponses)
		fmt.Printf("avg eligibility:   %d%%\n", analytics.AvgEligibilityRate)
		return nil
	},
}

func totalPages(total, limit int) int {
	if limit < 1 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	listCmd.Flags().Int("page", 1, "page number")
	listCmd.Flags().Int("limit", 10, "surveys per page")
	createCmd.Flags().StringP("description", "d", "", "survey description")
}
