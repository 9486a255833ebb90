package model

import "time"

// EdgeType identifies the rule that produced an edge.
// Edge types are extensible; rule sets may declare their own.
type EdgeType string

const (
	EdgeUsesEquipment      EdgeType = "uses_equipment"
	EdgeUsesPiece          EdgeType = "uses_piece"
	EdgeAssignedToTeam     EdgeType = "assigned_to_team"
	EdgeDiscussedInMeeting EdgeType = "discussed_in_meeting"
	EdgeResponsiblePerson  EdgeType = "responsible_person"

	EdgeLinkedByOrderNumber EdgeType = "linked_by_order_number"
	EdgeLinkedByDesignation EdgeType = "linked_by_designation"
	EdgeLinkedByIW37N       EdgeType = "linked_by_iw37n"

	EdgePotentialLinkByName EdgeType = "potential_link_by_name"
	EdgePotentialLinkByDate EdgeType = "potential_link_by_date"
)

// NodeMetadata is analyzer-owned bookkeeping attached to each node.
type NodeMetadata struct {
	AddedAt time.Time `json:"added_at"`
	// Synthetic is set when the id carries a random suffix because the
	// record had no natural identifier.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Node is a graph vertex wrapping one source record.
type Node struct {
	ID       string       `json:"id"`
	Type     EntityType   `json:"type"`
	Data     Record       `json:"data"`
	Metadata NodeMetadata `json:"metadata"`
}

// EdgeMetadata is analyzer-owned bookkeeping attached to each edge.
type EdgeMetadata struct {
	CreatedAt time.Time `json:"created_at"`
}

// Edge is a directed, typed, confidence-scored link between two node ids.
// Endpoints are not guaranteed to resolve to nodes.
type Edge struct {
	From          string       `json:"from"`
	To            string       `json:"to"`
	Type          EdgeType     `json:"type"`
	Confidence    float64      `json:"confidence"`
	Bidirectional bool         `json:"bidirectional,omitempty"`
	Metadata      EdgeMetadata `json:"metadata"`
}

// Touches reports whether id is one of the edge endpoints.
func (e *Edge) Touches(id string) bool {
	return e.From == id || e.To == id
}

// Other returns the endpoint opposite id.
func (e *Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Joins reports whether the edge connects a and b in either direction.
func (e *Edge) Joins(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// GraphMetadata is informational only; no algorithm reads it.
type GraphMetadata struct {
	BuiltAt    time.Time `json:"built_at"`
	DurationMs int64     `json:"duration_ms"`
	NodeCount  int       `json:"node_count"`
	EdgeCount  int       `json:"edge_count"`

	// CollidingIDs lists the node ids of records whose natural id an earlier
	// record of the same type already carried. Only that first record is
	// addressable by id.
	CollidingIDs []string `json:"colliding_ids,omitempty"`
}

// Graph is the aggregate produced by one build.
type Graph struct {
	Nodes    []*Node       `json:"nodes"`
	Edges    []*Edge       `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}
