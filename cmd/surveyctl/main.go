// Command surveyctl drives the surveyflow API from the terminal:
// authentication, survey CRUD, publishing, flow exports and analytics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surveyflow/surveyflow-services/api/internal/client"
)

var (
	serverURL  string
	statePath  string
	jsonOutput bool

	api *client.Client
)

func defaultServer() string {
	if s := os.Getenv("SURVEYFLOW_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "surveyctl",
	Short: "CLI client for the surveyflow API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		api, err = client.New(serverURL, statePath)
		if err != nil {
			return fmt.Errorf("failed to initialise client: %w", err)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "API server base URL")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "session state file (default ~/.surveyctl.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON output")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateTitleCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(responsesCmd)
	rootCmd.AddCommand(analyticsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
