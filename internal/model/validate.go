package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) checkStrength(field string, v float64) {
	if v < 0 || v > 1 {
		e.add(field, "must be between 0 and 1, got %g", v)
	}
}

func (e *ValidationError) checkAliases(field string, aliases []string) {
	if len(aliases) == 0 {
		e.add(field, "at least one alias is required")
		return
	}
	for i, a := range aliases {
		if strings.TrimSpace(a) == "" {
			e.add(fmt.Sprintf("%s[%d]", field, i), "must not be blank")
		}
	}
}

// ValidateRuleSet checks a RuleSet for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the set is valid.
func ValidateRuleSet(rs *RuleSet) error {
	var ve ValidationError

	ve.checkAliases("natural_id", rs.NaturalID)
	ve.checkAliases("display_fields", rs.DisplayFields)

	seen := make(map[EdgeType]string)
	claim := func(field string, t EdgeType) {
		if t == "" {
			ve.add(field+".edge_type", "is required")
			return
		}
		if len(t) > 50 {
			ve.add(field+".edge_type", "must be 50 characters or fewer")
		}
		if prev, dup := seen[t]; dup {
			ve.add(field+".edge_type", "%q already used by %s", t, prev)
			return
		}
		seen[t] = field
	}

	for i, g := range rs.SmartKeys {
		f := fmt.Sprintf("smart_keys[%d]", i)
		claim(f, g.EdgeType)
		ve.checkAliases(f+".aliases", g.Aliases)
		ve.checkStrength(f+".strength", g.Strength)
	}
	for i, r := range rs.TaskLinks {
		f := fmt.Sprintf("task_links[%d]", i)
		claim(f, r.EdgeType)
		if !r.Target.IsValid() {
			ve.add(f+".target", "invalid value %q", r.Target)
		}
		ve.checkAliases(f+".aliases", r.Aliases)
		ve.checkStrength(f+".strength", r.Strength)
		ve.checkStrength(f+".unresolved_strength", r.UnresolvedStrength)
	}

	claim("name_match", rs.NameMatch.EdgeType)
	ve.checkAliases("name_match.task_fields", rs.NameMatch.TaskFields)
	ve.checkAliases("name_match.equipment_fields", rs.NameMatch.EquipmentFields)
	ve.checkStrength("name_match.strength", rs.NameMatch.Strength)

	claim("date_match", rs.DateMatch.EdgeType)
	ve.checkAliases("date_match.task_fields", rs.DateMatch.TaskFields)
	ve.checkAliases("date_match.meeting_fields", rs.DateMatch.MeetingFields)
	ve.checkStrength("date_match.strength", rs.DateMatch.Strength)
	if rs.DateMatch.WindowDays < 0 {
		ve.add("date_match.window_days", "must not be negative, got %d", rs.DateMatch.WindowDays)
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
