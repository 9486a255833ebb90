package graph

import (
	"fmt"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

const highConfidence = 0.9

// reasons maps edge types to the sentence shown with a suggestion.
var reasons = map[model.EdgeType]string{
	model.EdgePotentialLinkByName: "The equipment name appears in the task title",
	model.EdgePotentialLinkByDate: "The task is scheduled within a week of the meeting",
	model.EdgeLinkedByDesignation: "Both records carry the same designation",
	model.EdgeResponsiblePerson:   "The task names this person as responsible",
}

const defaultReason = "A potential relationship was detected between these records"

// Reason returns the human sentence for an edge type.
func Reason(t model.EdgeType) string {
	if r, ok := reasons[t]; ok {
		return r
	}
	return defaultReason
}

// SuggestLinks returns one suggestion per edge whose confidence lies strictly
// between 0.5 and 1.0 and whose endpoints both resolve.
func (s *Snapshot) SuggestLinks() []model.Suggestion {
	out := []model.Suggestion{}
	for _, e := range s.graph.Edges {
		if e.Confidence <= 0.5 || e.Confidence >= 1.0 {
			continue
		}
		from, to := s.nodes[e.From], s.nodes[e.To]
		if from == nil || to == nil {
			continue
		}
		out = append(out, model.Suggestion{
			From:       from,
			To:         to,
			Type:       e.Type,
			Confidence: e.Confidence,
			Reason:     Reason(e.Type),
			Action:     fmt.Sprintf("Link %s %q to %s %q", from.Type, s.label(from), to.Type, s.label(to)),
		})
	}
	return out
}

// Stats aggregates counts over the snapshot. The orphan count is computed
// from the edge list directly and must agree with DetectInconsistencies.
func (s *Snapshot) Stats() model.GraphStats {
	st := model.GraphStats{
		NodeCount:   len(s.graph.Nodes),
		EdgeCount:   len(s.graph.Edges),
		NodesByType: make(map[model.EntityType]int),
		EdgesByType: make(map[model.EdgeType]int),
	}
	for _, n := range s.graph.Nodes {
		st.NodesByType[n.Type]++
	}

	endpoints := make(map[string]struct{}, 2*len(s.graph.Edges))
	for _, e := range s.graph.Edges {
		st.EdgesByType[e.Type]++
		if e.Confidence >= highConfidence {
			st.HighConfidence++
		}
		if e.Confidence < suggestThreshold {
			st.Suggested++
		}
		endpoints[e.From] = struct{}{}
		endpoints[e.To] = struct{}{}
	}

	for _, n := range s.graph.Nodes {
		if n.Type == model.EntityPerson {
			continue
		}
		if _, ok := endpoints[n.ID]; !ok {
			st.Orphans++
		}
	}

	avg := 0.0
	if st.NodeCount > 0 {
		avg = float64(st.EdgeCount*2) / float64(st.NodeCount)
	}
	st.AverageDegree = fmt.Sprintf("%.2f", avg)
	return st
}
