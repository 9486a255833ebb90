package graph

import (
	"testing"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"Pompe P-01", "pompe p-01", 1},
		{"pompe a b c d", "pompe a b c e", 0.8},
		{"pompe a b c d e", "pompe a b c d f", 5.0 / 6.0},
		{"pompe", "pompe doseuse", 0.5},
		{"vanne", "pompe", 0},
		{"", "", 1},
		{"", "pompe", 0},
		{"a a", "a b", 1},
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		assertFloat(t, tt.a+" ~ "+tt.b, got, tt.want)
	}
}

func TestFindPotentialDuplicates_ThresholdBoundary(t *testing.T) {
	c := model.Collections{
		Equipment: []model.Record{
			{"id": "e1", "nom": "pompe a b c d"},
			{"id": "e2", "nom": "pompe a b c e"}, // 4/5 = 0.8 with e1
		},
		Pieces: []model.Record{
			{"id": "p1", "nom": "joint a b c d e"},
			{"id": "p2", "nom": "joint a b c d f"}, // 5/6 with p1
		},
	}
	s := build(c)
	dups := s.FindPotentialDuplicates()
	if len(dups) != 1 {
		t.Fatalf("got %d duplicates, want 1: %+v", len(dups), dups)
	}
	d := dups[0]
	if d.Type != model.EntityPiece || d.A.ID != "piece:p1" || d.B.ID != "piece:p2" {
		t.Errorf("duplicate = %s %s/%s", d.Type, d.A.ID, d.B.ID)
	}
	assertFloat(t, "similarity", d.Similarity, 5.0/6.0)
}

func TestFindPotentialDuplicates_SameTypeOnly(t *testing.T) {
	c := model.Collections{
		Equipment: []model.Record{{"id": "e1", "nom": "Pompe"}},
		Pieces:    []model.Record{{"id": "p1", "nom": "Pompe"}},
		Teams:     []model.Record{{"id": "a"}, {"id": "b"}},
	}
	s := build(c)
	if dups := s.FindPotentialDuplicates(); len(dups) != 0 {
		t.Errorf("got %+v, want none", dups)
	}
}

func TestDetectInconsistencies(t *testing.T) {
	c := model.Collections{
		Tasks: []model.Record{
			{"id": "t1", "equipementId": "E-404"},
			{"id": "t2", "titre": "Remplacer filtre"},
			{"id": "t3", "titre": "remplacer FILTRE"},
		},
		Equipment: []model.Record{{"id": "e1"}},
	}
	s := build(c)
	issues := s.DetectInconsistencies()

	var orphans, broken, dups []model.Issue
	for _, is := range issues {
		switch is.Kind {
		case model.IssueOrphanNode:
			orphans = append(orphans, is)
		case model.IssueBrokenLink:
			broken = append(broken, is)
		case model.IssuePotentialDuplicate:
			dups = append(dups, is)
		}
	}

	// t2, t3, and e1 have no edges.
	if len(orphans) != 3 {
		t.Errorf("got %d orphans, want 3: %+v", len(orphans), orphans)
	}
	for _, o := range orphans {
		if o.Severity != model.SeverityMedium || o.Node == nil {
			t.Errorf("orphan issue = %+v", o)
		}
	}
	if len(broken) != 1 || broken[0].Severity != model.SeverityHigh {
		t.Errorf("broken = %+v", broken)
	}
	if len(dups) != 1 || dups[0].Severity != model.SeverityLow || dups[0].Duplicate == nil {
		t.Fatalf("dups = %+v", dups)
	}
	assertFloat(t, "duplicate similarity", dups[0].Duplicate.Similarity, 1)

	// Issues are grouped: orphans, then broken links, then duplicates.
	rank := map[model.IssueKind]int{model.IssueOrphanNode: 0, model.IssueBrokenLink: 1, model.IssuePotentialDuplicate: 2}
	for i := 1; i < len(issues); i++ {
		if rank[issues[i].Kind] < rank[issues[i-1].Kind] {
			t.Fatalf("issue %d (%s) after %s", i, issues[i].Kind, issues[i-1].Kind)
		}
	}
}

func TestDetectInconsistencies_PersonNodesAreNotOrphans(t *testing.T) {
	g := &model.Graph{
		Nodes: []*model.Node{
			{ID: "person:jdupont", Type: model.EntityPerson},
			{ID: "team:a", Type: model.EntityTeam},
		},
		Edges: []*model.Edge{},
	}
	s := NewSnapshot(g, model.DefaultRuleSet())
	issues := s.DetectInconsistencies()
	if len(issues) != 1 || issues[0].Node.ID != "team:a" {
		t.Errorf("issues = %+v", issues)
	}
	if st := s.Stats(); st.Orphans != 1 {
		t.Errorf("Stats().Orphans = %d, want 1", st.Orphans)
	}
}

func TestDetectInconsistencies_EmptyGraph(t *testing.T) {
	s := build(model.Collections{})
	issues := s.DetectInconsistencies()
	if issues == nil || len(issues) != 0 {
		t.Errorf("issues = %#v, want empty non-nil", issues)
	}
}
