// Package export writes graph snapshots as JSONL to external destinations.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/graph"
)

// FormatVersion is the version written in every export header.
const FormatVersion = "1"

// Record type discriminators.
const (
	TypeHeader = "header"
	TypeNode   = "node"
	TypeEdge   = "edge"
	TypeIssue  = "issue"
)

// Header is the first JSONL record written by WriteJSONL.
type Header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	BuiltAt    time.Time `json:"built_at"`
	NodeCount  int       `json:"node_count"`
	EdgeCount  int       `json:"edge_count"`
	IssueCount int       `json:"issue_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WriteJSONL writes the snapshot to w: a header, then every node and edge in
// graph order, then the audit findings.
func WriteJSONL(s *graph.Snapshot, w io.Writer) error {
	g := s.Graph()
	issues := s.DetectInconsistencies()

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(Header{
		Version:    FormatVersion,
		Type:       TypeHeader,
		Timestamp:  time.Now().UTC(),
		BuiltAt:    g.Metadata.BuiltAt,
		NodeCount:  len(g.Nodes),
		EdgeCount:  len(g.Edges),
		IssueCount: len(issues),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, n := range g.Nodes {
		if err := enc.Encode(record{Type: TypeNode, Data: n}); err != nil {
			return fmt.Errorf("encode node %s: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges {
		if err := enc.Encode(record{Type: TypeEdge, Data: e}); err != nil {
			return fmt.Errorf("encode edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	for i, is := range issues {
		if err := enc.Encode(record{Type: TypeIssue, Data: is}); err != nil {
			return fmt.Errorf("encode issue %d: %w", i, err)
		}
	}
	return nil
}
