package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Answer a published survey's questions and record the outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := api.GetSurvey(args[0])
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		answers := make(map[string]string)
		for _, node := range survey.Nodes {
			if node.Type != "question" {
				continue
			}
			label := node.Data["label"]
			if label == "" {
				label = node.ID
			}
			fmt.Printf("%s: ", label)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return err
			}
			answers[node.ID] = strings.TrimRight(line, "\r\n")
		}

		response, err := api.SubmitResponse(survey.ID, answers)
		if err != nil {
			return err
		}
		fmt.Printf("outcome: %s\n", response.Outcome)
		return nil
	},
}

var responsesCmd = &cobra.Command{
	Use:   "responses <id>",
	Short: "List the recorded responses of one of your surveys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		responses, err := api.ListResponses(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(responses)
		}
		for _, response := range responses {
			fmt.Printf("%s  %-10s  %s\n", response.ID, response.Outcome, response.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("%d responses\n", len(responses))
		return nil
	},
}
