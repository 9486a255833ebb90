package model

// KeyGroup is a smart-key rule: two records of any type that share an equal
// value under one of the aliases are linked.
type KeyGroup struct {
	Name          string   `json:"name" toml:"name"`
	EdgeType      EdgeType `json:"edge_type" toml:"edge_type"`
	Aliases       []string `json:"aliases" toml:"aliases"`
	Strength      float64  `json:"strength" toml:"strength"`
	Bidirectional bool     `json:"bidirectional" toml:"bidirectional"`
}

// LinkRule is a direct foreign-key rule evaluated on task records.
type LinkRule struct {
	Name     string     `json:"name" toml:"name"`
	Target   EntityType `json:"target" toml:"target"`
	EdgeType EdgeType   `json:"edge_type" toml:"edge_type"`
	Aliases  []string   `json:"aliases" toml:"aliases"`
	Strength float64    `json:"strength" toml:"strength"`
	// UnresolvedStrength is the confidence of an edge whose reference does
	// not match any record of the target collection.
	UnresolvedStrength float64 `json:"unresolved_strength" toml:"unresolved_strength"`
	Bidirectional      bool    `json:"bidirectional" toml:"bidirectional"`
}

// NameRule links tasks to equipment whose name appears in the task title.
type NameRule struct {
	EdgeType        EdgeType `json:"edge_type" toml:"edge_type"`
	TaskFields      []string `json:"task_fields" toml:"task_fields"`
	EquipmentFields []string `json:"equipment_fields" toml:"equipment_fields"`
	Strength        float64  `json:"strength" toml:"strength"`
	Bidirectional   bool     `json:"bidirectional" toml:"bidirectional"`
}

// DateRule links tasks to meetings held within WindowDays calendar days.
// TaskFields is in priority order.
type DateRule struct {
	EdgeType      EdgeType `json:"edge_type" toml:"edge_type"`
	TaskFields    []string `json:"task_fields" toml:"task_fields"`
	MeetingFields []string `json:"meeting_fields" toml:"meeting_fields"`
	WindowDays    int      `json:"window_days" toml:"window_days"`
	Strength      float64  `json:"strength" toml:"strength"`
	Bidirectional bool     `json:"bidirectional" toml:"bidirectional"`
}

// RuleSet is the full relationship configuration evaluated by the builder.
// Rules are data; they have no behavior of their own.
type RuleSet struct {
	NaturalID     []string   `json:"natural_id" toml:"natural_id"`
	DisplayFields []string   `json:"display_fields" toml:"display_fields"`
	SmartKeys     []KeyGroup `json:"smart_keys" toml:"smart_keys"`
	TaskLinks     []LinkRule `json:"task_links" toml:"task_links"`
	NameMatch     NameRule   `json:"name_match" toml:"name_match"`
	DateMatch     DateRule   `json:"date_match" toml:"date_match"`
}

// DefaultRuleSet returns the built-in rules. Alias lists tolerate the naming
// drift between the source systems (French and English spellings, SAP
// transaction names).
func DefaultRuleSet() RuleSet {
	return RuleSet{
		NaturalID:     []string{"id", "_id", "uuid", "code", "reference"},
		DisplayFields: []string{"titre", "title", "nom", "name", "designation", "libelle", "label"},
		SmartKeys: []KeyGroup{
			{
				Name:          "order_number",
				EdgeType:      EdgeLinkedByOrderNumber,
				Aliases:       []string{"ordre", "order", "orderNumber", "order_number", "numeroOrdre", "numero_ordre", "numOrdre", "OT"},
				Strength:      1.0,
				Bidirectional: true,
			},
			{
				Name:          "designation",
				EdgeType:      EdgeLinkedByDesignation,
				Aliases:       []string{"designation", "désignation", "Designation", "Désignation"},
				Strength:      0.95,
				Bidirectional: true,
			},
			{
				Name:          "iw37n",
				EdgeType:      EdgeLinkedByIW37N,
				Aliases:       []string{"iw37nId", "iw37n_id", "IW37N", "iw37n", "idIW37N"},
				Strength:      1.0,
				Bidirectional: true,
			},
		},
		TaskLinks: []LinkRule{
			{
				Name:               "task-equipment",
				Target:             EntityEquipment,
				EdgeType:           EdgeUsesEquipment,
				Aliases:            []string{"equipementId", "equipmentId", "equipment_id", "equipement"},
				Strength:           1.0,
				UnresolvedStrength: 0.3,
				Bidirectional:      true,
			},
			{
				Name:               "task-pieces",
				Target:             EntityPiece,
				EdgeType:           EdgeUsesPiece,
				Aliases:            []string{"pieces", "pieceIds", "piece_ids", "parts"},
				Strength:           1.0,
				UnresolvedStrength: 0.3,
				Bidirectional:      true,
			},
			{
				Name:               "task-team",
				Target:             EntityTeam,
				EdgeType:           EdgeAssignedToTeam,
				Aliases:            []string{"equipeId", "teamId", "team_id", "equipe"},
				Strength:           1.0,
				UnresolvedStrength: 0.3,
				Bidirectional:      true,
			},
			{
				Name:               "task-meeting",
				Target:             EntityMeeting,
				EdgeType:           EdgeDiscussedInMeeting,
				Aliases:            []string{"reunionId", "meetingId", "meeting_id", "reunion"},
				Strength:           1.0,
				UnresolvedStrength: 0.3,
				Bidirectional:      true,
			},
			{
				// Declared for completeness; the builder does not evaluate
				// rules targeting people.
				Name:               "task-responsible",
				Target:             EntityPerson,
				EdgeType:           EdgeResponsiblePerson,
				Aliases:            []string{"responsable"},
				Strength:           0.9,
				UnresolvedStrength: 0.3,
				Bidirectional:      false,
			},
		},
		NameMatch: NameRule{
			EdgeType:        EdgePotentialLinkByName,
			TaskFields:      []string{"titre", "title"},
			EquipmentFields: []string{"nom", "name", "libelle"},
			Strength:        0.7,
			Bidirectional:   true,
		},
		DateMatch: DateRule{
			EdgeType:      EdgePotentialLinkByDate,
			TaskFields:    []string{"date", "datePhase", "date_phase"},
			MeetingFields: []string{"date", "dateReunion"},
			WindowDays:    7,
			Strength:      0.5,
			Bidirectional: true,
		},
	}
}

// IsDirectLink reports whether t is produced by one of the task foreign-key rules.
func (rs *RuleSet) IsDirectLink(t EdgeType) bool {
	for _, r := range rs.TaskLinks {
		if r.EdgeType == t {
			return true
		}
	}
	return false
}
