package model

import (
	"strconv"
	"strings"
)

// EntityType tags the source collection a node was materialized from.
// Well-known constants are provided below, but entity types are extensible.
type EntityType string

const (
	EntityTask      EntityType = "task"
	EntityEquipment EntityType = "equipment"
	EntityPiece     EntityType = "piece"
	EntityTeam      EntityType = "team"
	EntityMeeting   EntityType = "meeting"

	// EntityPerson is never loaded as a collection. People are referenced as
	// record attributes only.
	EntityPerson EntityType = "person"
)

// LoadOrder is the fixed order in which collections are materialized.
var LoadOrder = []EntityType{EntityTask, EntityEquipment, EntityPiece, EntityTeam, EntityMeeting}

// IsValid reports whether the entity type is a non-empty string of at most 50 characters.
func (t EntityType) IsValid() bool {
	return len(t) > 0 && len(t) <= 50
}

// Record is one source record as supplied by the persistence layer. The
// analyzer treats it as opaque and never mutates it.
type Record map[string]any

// Lookup returns the first alias present on the record with a non-empty value.
func (r Record) Lookup(aliases []string) (any, bool) {
	for _, a := range aliases {
		v, ok := r[a]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// String returns the first alias whose value renders as a non-empty scalar string.
func (r Record) String(aliases []string) string {
	for _, a := range aliases {
		if s, ok := ScalarString(r[a]); ok {
			return s
		}
	}
	return ""
}

// Scalar normalizes a primitive value so that equal JSON values compare equal
// with ==. Numbers collapse to float64. Empty strings, nil, and composite
// values (maps, slices) are rejected.
func Scalar(v any) (any, bool) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return nil, false
		}
		return x, true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		return x, true
	default:
		return nil, false
	}
}

// ScalarString renders a primitive value as a string. It rejects the same
// values Scalar rejects.
func ScalarString(v any) (string, bool) {
	s, ok := Scalar(v)
	if !ok {
		return "", false
	}
	switch x := s.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// Strings flattens a reference field into its scalar members. A single
// scalar yields one element; arrays yield one element per scalar entry.
func Strings(v any) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := ScalarString(e); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(x))
		for _, s := range x {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := ScalarString(v); ok {
			return []string{s}
		}
		return nil
	}
}

// Collections is the snapshot of the five source collections for one build.
type Collections struct {
	Tasks     []Record `json:"tasks"`
	Equipment []Record `json:"equipment"`
	Pieces    []Record `json:"pieces"`
	Teams     []Record `json:"teams"`
	Meetings  []Record `json:"meetings"`
}

// Of returns the collection holding records of the given type.
func (c *Collections) Of(t EntityType) []Record {
	switch t {
	case EntityTask:
		return c.Tasks
	case EntityEquipment:
		return c.Equipment
	case EntityPiece:
		return c.Pieces
	case EntityTeam:
		return c.Teams
	case EntityMeeting:
		return c.Meetings
	}
	return nil
}

// Total returns the number of records across all collections.
func (c *Collections) Total() int {
	return len(c.Tasks) + len(c.Equipment) + len(c.Pieces) + len(c.Teams) + len(c.Meetings)
}
