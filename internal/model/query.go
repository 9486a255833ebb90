package model

// RelatedItem is one neighbor reported by a traversal.
type RelatedItem struct {
	NodeID     string   `json:"node_id"`
	Node       *Node    `json:"node,omitempty"` // nil when the endpoint is dangling
	Type       EdgeType `json:"type"`
	Confidence float64  `json:"confidence"`
	Via        string   `json:"via,omitempty"`
}

// Related is the result of a two-hop traversal around one node.
type Related struct {
	Direct    []RelatedItem `json:"direct"`
	Indirect  []RelatedItem `json:"indirect"`
	Suggested []RelatedItem `json:"suggested"`
}

// Severity ranks an inconsistency finding.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// IssueKind categorizes an inconsistency finding.
type IssueKind string

const (
	IssueOrphanNode         IssueKind = "orphan_node"
	IssueBrokenLink         IssueKind = "broken_link"
	IssuePotentialDuplicate IssueKind = "potential_duplicate"
)

// DuplicatePair is two same-type nodes whose display text is near-identical.
type DuplicatePair struct {
	Type       EntityType `json:"type"`
	A          *Node      `json:"a"`
	B          *Node      `json:"b"`
	Similarity float64    `json:"similarity"`
}

// Issue is one finding of the consistency audit. Exactly one of Node, Edge
// or Duplicate is set, according to Kind.
type Issue struct {
	Kind      IssueKind      `json:"kind"`
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
	Node      *Node          `json:"node,omitempty"`
	Edge      *Edge          `json:"edge,omitempty"`
	Duplicate *DuplicatePair `json:"duplicate,omitempty"`
}

// Suggestion proposes confirming a heuristic edge.
type Suggestion struct {
	From       *Node    `json:"from"`
	To         *Node    `json:"to"`
	Type       EdgeType `json:"type"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
	Action     string   `json:"action"`
}

// GraphStats holds aggregate counts over a built graph.
type GraphStats struct {
	NodeCount      int                `json:"node_count"`
	EdgeCount      int                `json:"edge_count"`
	NodesByType    map[EntityType]int `json:"nodes_by_type"`
	EdgesByType    map[EdgeType]int   `json:"edges_by_type"`
	AverageDegree  string             `json:"average_degree"`
	HighConfidence int                `json:"high_confidence"`
	Suggested      int                `json:"suggested"`
	Orphans        int                `json:"orphans"`
}
