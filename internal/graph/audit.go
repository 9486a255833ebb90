package graph

import (
	"fmt"
	"strings"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// duplicateThreshold is the similarity a pair must exceed to be reported.
const duplicateThreshold = 0.8

// DetectInconsistencies reports orphan nodes (medium), edges whose endpoints
// do not resolve (high), and potential duplicates (low), in that order.
func (s *Snapshot) DetectInconsistencies() []model.Issue {
	issues := []model.Issue{}

	for _, n := range s.graph.Nodes {
		if n.Type == model.EntityPerson || s.Degree(n.ID) > 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind:     model.IssueOrphanNode,
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("%s %q has no relationships", n.Type, s.label(n)),
			Node:     n,
		})
	}

	for _, e := range s.graph.Edges {
		var missing []string
		if s.nodes[e.From] == nil {
			missing = append(missing, e.From)
		}
		if s.nodes[e.To] == nil {
			missing = append(missing, e.To)
		}
		if len(missing) == 0 {
			continue
		}
		issues = append(issues, model.Issue{
			Kind:     model.IssueBrokenLink,
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("%s edge %s -> %s references missing %s", e.Type, e.From, e.To, strings.Join(missing, ", ")),
			Edge:     e,
		})
	}

	for _, d := range s.FindPotentialDuplicates() {
		issues = append(issues, model.Issue{
			Kind:      model.IssuePotentialDuplicate,
			Severity:  model.SeverityLow,
			Message:   fmt.Sprintf("%s %q and %q look like duplicates (%.2f)", d.Type, s.label(d.A), s.label(d.B), d.Similarity),
			Duplicate: d,
		})
	}
	return issues
}

// FindPotentialDuplicates compares every pair of same-type nodes by display
// text. This is O(n^2) per type. Nodes without display text are skipped.
func (s *Snapshot) FindPotentialDuplicates() []*model.DuplicatePair {
	var order []model.EntityType
	groups := make(map[model.EntityType][]*model.Node)
	for _, n := range s.graph.Nodes {
		if _, ok := groups[n.Type]; !ok {
			order = append(order, n.Type)
		}
		groups[n.Type] = append(groups[n.Type], n)
	}

	out := []*model.DuplicatePair{}
	for _, t := range order {
		nodes := groups[t]
		names := make([]string, len(nodes))
		for i, n := range nodes {
			names[i] = s.DisplayName(n)
		}
		for i := 0; i < len(nodes); i++ {
			if names[i] == "" {
				continue
			}
			for j := i + 1; j < len(nodes); j++ {
				if names[j] == "" {
					continue
				}
				sim := Similarity(names[i], names[j])
				if sim > duplicateThreshold {
					out = append(out, &model.DuplicatePair{Type: t, A: nodes[i], B: nodes[j], Similarity: sim})
				}
			}
		}
	}
	return out
}

// Similarity scores two display strings: 1 for a case-insensitive exact
// match, otherwise the number of words of a also present in b divided by the
// larger word count.
func Similarity(a, b string) float64 {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return 1
	}
	wa, wb := strings.Fields(la), strings.Fields(lb)
	longest := max(len(wa), len(wb))
	if longest == 0 {
		return 0
	}
	inB := make(map[string]struct{}, len(wb))
	for _, w := range wb {
		inB[w] = struct{}{}
	}
	shared := 0
	for _, w := range wa {
		if _, ok := inB[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(longest)
}
