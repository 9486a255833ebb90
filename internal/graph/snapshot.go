package graph

import (
	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// Snapshot is an immutable, indexed view of one built graph. All query
// methods are read-only and safe for concurrent use.
type Snapshot struct {
	graph *model.Graph
	rules model.RuleSet

	nodes    map[string]*model.Node
	incident map[string][]*model.Edge // edges touching an id, in edge order
}

// NewSnapshot indexes g for querying. g must not be modified afterwards.
func NewSnapshot(g *model.Graph, rules model.RuleSet) *Snapshot {
	s := &Snapshot{
		graph:    g,
		rules:    rules,
		nodes:    make(map[string]*model.Node, len(g.Nodes)),
		incident: make(map[string][]*model.Edge),
	}
	// The first node wins an id collision, as in the builder's natural index.
	for _, n := range g.Nodes {
		if _, dup := s.nodes[n.ID]; !dup {
			s.nodes[n.ID] = n
		}
	}
	for _, e := range g.Edges {
		s.incident[e.From] = append(s.incident[e.From], e)
		if e.To != e.From {
			s.incident[e.To] = append(s.incident[e.To], e)
		}
	}
	return s
}

// Graph returns the underlying graph. Callers must treat it as read-only.
func (s *Snapshot) Graph() *model.Graph {
	return s.graph
}

// Metadata returns the build metadata of the snapshot.
func (s *Snapshot) Metadata() model.GraphMetadata {
	return s.graph.Metadata
}

// Node returns the node with the given id, or nil.
func (s *Snapshot) Node(id string) *model.Node {
	return s.nodes[id]
}

// Degree returns the number of edges touching id.
func (s *Snapshot) Degree(id string) int {
	return len(s.incident[id])
}

// DisplayName returns the first display field of the node's record, or ""
// when none is set.
func (s *Snapshot) DisplayName(n *model.Node) string {
	if n == nil {
		return ""
	}
	return n.Data.String(s.rules.DisplayFields)
}

// label is DisplayName with the node id as fallback.
func (s *Snapshot) label(n *model.Node) string {
	if name := s.DisplayName(n); name != "" {
		return name
	}
	return n.ID
}
