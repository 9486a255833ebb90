package graph

import "github.com/alfredjeanlab/maintgraph/internal/model"

const (
	// secondHopDecay scales the confidence of edges reached through a neighbor.
	secondHopDecay = 0.5
	// suggestThreshold is the confidence below which a direct edge is also
	// reported as a suggestion.
	suggestThreshold = 0.8
)

// FindRelated performs a bounded two-hop expansion around nodeID, treating
// every edge as undirected. An empty or unknown id yields empty results.
func (s *Snapshot) FindRelated(nodeID string) model.Related {
	res := model.Related{
		Direct:    []model.RelatedItem{},
		Indirect:  []model.RelatedItem{},
		Suggested: []model.RelatedItem{},
	}
	if nodeID == "" {
		return res
	}

	inDirect := make(map[string]struct{})
	for _, e := range s.incident[nodeID] {
		other := e.Other(nodeID)
		res.Direct = append(res.Direct, model.RelatedItem{
			NodeID:     other,
			Node:       s.nodes[other],
			Type:       e.Type,
			Confidence: e.Confidence,
		})
		inDirect[other] = struct{}{}
	}

	// First discovery wins; later paths to the same node are dropped.
	inIndirect := make(map[string]struct{})
	for _, d := range res.Direct {
		for _, e := range s.incident[d.NodeID] {
			if e.Touches(nodeID) {
				continue
			}
			second := e.Other(d.NodeID)
			if _, ok := inDirect[second]; ok {
				continue
			}
			if _, ok := inIndirect[second]; ok {
				continue
			}
			inIndirect[second] = struct{}{}
			res.Indirect = append(res.Indirect, model.RelatedItem{
				NodeID:     second,
				Node:       s.nodes[second],
				Type:       e.Type,
				Confidence: e.Confidence * secondHopDecay,
				Via:        d.NodeID,
			})
		}
	}

	// Suggestions are the low-confidence subset of the direct edges.
	for _, d := range res.Direct {
		if d.Confidence < suggestThreshold {
			res.Suggested = append(res.Suggested, d)
		}
	}
	return res
}
