package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/maintgraph/internal/model"
	"github.com/alfredjeanlab/maintgraph/internal/ui"
)

// displayFields is the label priority for table output. Local builds
// replace it with the loaded rule set's list.
var displayFields = model.DefaultRuleSet().DisplayFields

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// output prints v as JSON when --json is set and with table otherwise.
func output(v any, table func(io.Writer)) error {
	if jsonOutput {
		return printJSON(os.Stdout, v)
	}
	table(os.Stdout)
	return nil
}

// nodeLabel returns the first non-empty display field of n, or "".
func nodeLabel(n *model.Node) string {
	if n == nil {
		return ""
	}
	return n.Data.String(displayFields)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func printNode(w io.Writer, n *model.Node) {
	fmt.Fprintf(w, "ID:    %s\n", ui.RenderAccent(n.ID))
	fmt.Fprintf(w, "Type:  %s\n", n.Type)
	if label := nodeLabel(n); label != "" {
		fmt.Fprintf(w, "Label: %s\n", label)
	}
	if n.Metadata.Synthetic {
		fmt.Fprintf(w, "       %s\n", ui.RenderMuted("(synthetic id)"))
	}
	keys := make([]string, 0, len(n.Data))
	for k := range n.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nFIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", k, n.Data[k])
	}
	tw.Flush()
}

func printRelatedSection(w io.Writer, title string, items []model.RelatedItem) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(items))
	if len(items) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, it := range items {
		label := nodeLabel(it.Node)
		if it.Node == nil {
			label = ui.RenderMuted("(missing)")
		}
		via := ""
		if it.Via != "" {
			via = ui.RenderMuted("via " + it.Via)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			ui.RenderAccent(it.NodeID), it.Type, ui.RenderConfidence(it.Confidence), truncate(label, 40), via)
	}
	tw.Flush()
}

func printRelated(w io.Writer, id string, r *model.Related) {
	fmt.Fprintf(w, "Related to %s\n\n", ui.RenderAccent(id))
	printRelatedSection(w, "Direct", r.Direct)
	fmt.Fprintln(w)
	printRelatedSection(w, "Indirect", r.Indirect)
	fmt.Fprintln(w)
	printRelatedSection(w, "Suggested", r.Suggested)
}

func printIssues(w io.Writer, issues []model.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tKIND\tMESSAGE")
	counts := map[model.Severity]int{}
	for _, is := range issues {
		counts[is.Severity]++
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ui.RenderSeverity(is.Severity, string(is.Severity)), is.Kind, is.Message)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d issues (%d high, %d medium, %d low)\n", len(issues),
		counts[model.SeverityHigh], counts[model.SeverityMedium], counts[model.SeverityLow])
}

func printDuplicates(w io.Writer, dups []*model.DuplicatePair) {
	if len(dups) == 0 {
		fmt.Fprintln(w, "No potential duplicates.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tA\tB\tSIMILARITY")
	for _, d := range dups {
		fmt.Fprintf(tw, "%s\t%s %s\t%s %s\t%.2f\n", d.Type,
			ui.RenderAccent(d.A.ID), truncate(nodeLabel(d.A), 30),
			ui.RenderAccent(d.B.ID), truncate(nodeLabel(d.B), 30),
			d.Similarity)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d pairs\n", len(dups))
}

func printSuggestions(w io.Writer, sugg []model.Suggestion) {
	if len(sugg) == 0 {
		fmt.Fprintln(w, "No suggestions.")
		return
	}
	for i, s := range sugg {
		fmt.Fprintf(w, "%d. %s  %s\n", i+1, s.Action, ui.RenderConfidence(s.Confidence))
		fmt.Fprintf(w, "   %s\n", ui.RenderMuted(s.Reason+" ("+string(s.Type)+")"))
	}
}

func printStats(w io.Writer, st *model.GraphStats) {
	fmt.Fprintf(w, "Nodes:           %d\n", st.NodeCount)
	fmt.Fprintf(w, "Edges:           %d\n", st.EdgeCount)
	fmt.Fprintf(w, "Average degree:  %s\n", st.AverageDegree)
	fmt.Fprintf(w, "High confidence: %d\n", st.HighConfidence)
	fmt.Fprintf(w, "Suggested:       %d\n", st.Suggested)
	fmt.Fprintf(w, "Orphans:         %d\n", st.Orphans)

	fmt.Fprintln(w, "\nNodes by type:")
	for _, t := range model.LoadOrder {
		if n := st.NodesByType[t]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", t, n)
		}
	}

	types := make([]string, 0, len(st.EdgesByType))
	for t := range st.EdgesByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	fmt.Fprintln(w, "\nEdges by type:")
	for _, t := range types {
		fmt.Fprintf(w, "  %-24s %d\n", t, st.EdgesByType[model.EdgeType(t)])
	}
}

func printMetadata(w io.Writer, md *model.GraphMetadata) {
	fmt.Fprintf(w, "Built %d nodes, %d edges in %dms\n", md.NodeCount, md.EdgeCount, md.DurationMs)
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
