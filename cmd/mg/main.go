package main

import (
	"os"

	"github.com/alfredjeanlab/maintgraph/internal/client"
	"github.com/alfredjeanlab/maintgraph/internal/ui"
	"github.com/spf13/cobra"
)

var (
	httpURL    string
	authToken  string
	jsonOutput bool
	verbose    bool

	graphClient client.GraphClient
)

func defaultHTTPURL() string {
	return os.Getenv("MAINTGRAPH_URL")
}

var rootCmd = &cobra.Command{
	Use:   "mg <command>",
	Short: "Maintenance relationship graph: build, query and audit",
	Long: `mg builds a relationship graph over maintenance tasks, equipment, pieces,
teams and meetings, then answers related-item, consistency and suggestion
queries over it.

Query commands talk to a running "mg serve" when --http-url (or
MAINTGRAPH_URL) is set; otherwise they build the graph in-process from
MAINTGRAPH_DATABASE_URL or MAINTGRAPH_DATA_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Configure()
		if httpURL != "" {
			graphClient = client.NewHTTPClient(httpURL, authToken)
			return nil
		}
		c, err := openLocalClient()
		if err != nil {
			return err
		}
		graphClient = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if graphClient != nil {
			graphClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "maintgraph server URL (empty = build locally)")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("MAINTGRAPH_AUTH_TOKEN"), "bearer token for the server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log loader and build progress to stderr")

	rootCmd.AddGroup(
		&cobra.Group{ID: "query", Title: "Queries:"},
		&cobra.Group{ID: "audit", Title: "Audit:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Queries
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(relatedCmd)

	// Audit
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(statsCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
