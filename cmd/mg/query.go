package main

import (
	"fmt"
	"io"

	"github.com/alfredjeanlab/maintgraph/internal/model"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:     "graph",
	Short:   "Print every node and edge",
	GroupID: "query",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graphClient.Graph(cmd.Context())
		if err != nil {
			return fmt.Errorf("getting graph: %w", err)
		}
		return output(g, func(w io.Writer) {
			for _, n := range g.Nodes {
				fmt.Fprintf(w, "%s\t%s\n", n.ID, nodeLabel(n))
			}
			fmt.Fprintln(w)
			for _, e := range g.Edges {
				fmt.Fprintf(w, "%s -> %s\t%s\t%.2f\n", e.From, e.To, e.Type, e.Confidence)
			}
			printMetadata(w, &g.Metadata)
		})
	},
}

var nodeCmd = &cobra.Command{
	Use:     "node <id>",
	Short:   "Show one node, e.g. task:T-42",
	GroupID: "query",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := graphClient.Node(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("getting node %s: %w", args[0], err)
		}
		return output(n, func(w io.Writer) { printNode(w, n) })
	},
}

var relatedCmd = &cobra.Command{
	Use:     "related <id>",
	Short:   "List nodes within two hops of a node",
	GroupID: "query",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := graphClient.Related(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("finding related items: %w", err)
		}
		return output(r, func(w io.Writer) { printRelated(w, args[0], r) })
	},
}

var auditCmd = &cobra.Command{
	Use:     "audit",
	Short:   "Report orphans, broken links and potential duplicates",
	GroupID: "audit",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sev, _ := cmd.Flags().GetString("severity")
		issues, err := graphClient.Issues(cmd.Context(), model.Severity(sev))
		if err != nil {
			return fmt.Errorf("auditing graph: %w", err)
		}
		return output(issues, func(w io.Writer) { printIssues(w, issues) })
	},
}

var duplicatesCmd = &cobra.Command{
	Use:     "duplicates",
	Short:   "List same-type records with near-identical names",
	GroupID: "audit",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dups, err := graphClient.Duplicates(cmd.Context())
		if err != nil {
			return fmt.Errorf("finding duplicates: %w", err)
		}
		return output(dups, func(w io.Writer) { printDuplicates(w, dups) })
	},
}

var suggestCmd = &cobra.Command{
	Use:     "suggest",
	Short:   "List heuristic links worth confirming",
	GroupID: "audit",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sugg, err := graphClient.Suggestions(cmd.Context())
		if err != nil {
			return fmt.Errorf("getting suggestions: %w", err)
		}
		return output(sugg, func(w io.Writer) { printSuggestions(w, sugg) })
	},
}

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show graph statistics",
	GroupID: "audit",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := graphClient.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}
		return output(st, func(w io.Writer) { printStats(w, st) })
	},
}

var rebuildCmd = &cobra.Command{
	Use:     "rebuild",
	Short:   "Rebuild the graph from the source collections",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := graphClient.Rebuild(cmd.Context())
		if err != nil {
			return fmt.Errorf("rebuilding graph: %w", err)
		}
		return output(md, func(w io.Writer) { printMetadata(w, md) })
	},
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check the health of the maintgraph server",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := graphClient.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}
		if err := output(h, func(w io.Writer) {
			fmt.Fprintf(w, "Health: %s (built: %t)\n", h.Status, h.Built)
		}); err != nil {
			return err
		}
		if h.Status != "ok" {
			return fmt.Errorf("unhealthy: %s", h.Status)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().String("severity", "", "only report issues of this severity (high, medium, low)")
}
