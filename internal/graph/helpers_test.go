package graph

import (
	"testing"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// exampleCollections is the two-task, one-equipment scenario used across tests.
func exampleCollections() model.Collections {
	return model.Collections{
		Tasks: []model.Record{
			{"id": "t1", "ordre": "OT-100", "titre": "Changer pompe P-01"},
			{"id": "t2", "ordre": "OT-100", "titre": "Vérifier pompe"},
		},
		Equipment: []model.Record{
			{"id": "e1", "nom": "Pompe P-01"},
		},
	}
}

func build(c model.Collections) *Snapshot {
	rules := model.DefaultRuleSet()
	return NewSnapshot(Build(c, rules), rules)
}

// findEdge returns the first edge joining a and b with type t, in either direction.
func findEdge(g *model.Graph, a, b string, t model.EdgeType) *model.Edge {
	for _, e := range g.Edges {
		if e.Type == t && e.Joins(a, b) {
			return e
		}
	}
	return nil
}

func countEdges(g *model.Graph, t model.EdgeType) int {
	n := 0
	for _, e := range g.Edges {
		if e.Type == t {
			n++
		}
	}
	return n
}

func relatedIDs(items []model.RelatedItem) map[string]model.RelatedItem {
	m := make(map[string]model.RelatedItem, len(items))
	for _, it := range items {
		m[it.NodeID] = it
	}
	return m
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	const eps = 1e-9
	if got < want-eps || got > want+eps {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
