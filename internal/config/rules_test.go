package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRuleSet_NoFile(t *testing.T) {
	rs, err := LoadRuleSet("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rs, model.DefaultRuleSet()) {
		t.Error("empty path should return the built-in rules")
	}
}

func TestLoadRuleSet_Overlay(t *testing.T) {
	path := writeRules(t, `
natural_id = ["matricule", "id"]

[date_match]
window_days = 3
strength = 0.4
`)
	rs, err := LoadRuleSet(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := model.DefaultRuleSet()

	if !reflect.DeepEqual(rs.NaturalID, []string{"matricule", "id"}) {
		t.Errorf("NaturalID = %v", rs.NaturalID)
	}
	if rs.DateMatch.WindowDays != 3 || rs.DateMatch.Strength != 0.4 {
		t.Errorf("DateMatch = %+v", rs.DateMatch)
	}
	// Keys absent from the file keep their built-in values.
	if !reflect.DeepEqual(rs.DateMatch.TaskFields, def.DateMatch.TaskFields) {
		t.Errorf("DateMatch.TaskFields = %v", rs.DateMatch.TaskFields)
	}
	if !reflect.DeepEqual(rs.SmartKeys, def.SmartKeys) {
		t.Error("SmartKeys should be unchanged")
	}
	if !reflect.DeepEqual(rs.NameMatch, def.NameMatch) {
		t.Error("NameMatch should be unchanged")
	}
}

func TestLoadRuleSet_ReplaceSmartKeys(t *testing.T) {
	path := writeRules(t, `
[[smart_keys]]
name = "work_order"
edge_type = "linked_by_order_number"
aliases = ["wo", "workOrder"]
strength = 1.0
bidirectional = true
`)
	rs, err := LoadRuleSet(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.SmartKeys) != 1 || rs.SmartKeys[0].Name != "work_order" {
		t.Fatalf("SmartKeys = %+v", rs.SmartKeys)
	}
}

func TestLoadRuleSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `natural_id = [`, "read rules"},
		{"unknown key", `colour = "blue"`, "unknown keys: colour"},
		{"invalid strength", "[name_match]\nstrength = 1.5", "strength"},
		{"negative window", "[date_match]\nwindow_days = -1", "window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRuleSet(writeRules(t, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRuleSet_MissingFile(t *testing.T) {
	if _, err := LoadRuleSet(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
