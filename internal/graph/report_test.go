package graph

import (
	"strings"
	"testing"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

func TestSuggestLinks_ConfidenceBand(t *testing.T) {
	g := &model.Graph{
		Nodes: []*model.Node{
			{ID: "task:t1", Type: model.EntityTask, Data: model.Record{"titre": "Changer pompe"}},
			{ID: "equipment:e1", Type: model.EntityEquipment, Data: model.Record{"nom": "Pompe"}},
			{ID: "meeting:m1", Type: model.EntityMeeting, Data: model.Record{}},
		},
		Edges: []*model.Edge{
			{From: "task:t1", To: "equipment:e1", Type: model.EdgePotentialLinkByName, Confidence: 0.7},
			{From: "task:t1", To: "meeting:m1", Type: model.EdgePotentialLinkByDate, Confidence: 0.5},
			{From: "task:t1", To: "equipment:e1", Type: model.EdgeUsesEquipment, Confidence: 1.0},
			{From: "task:t1", To: "equipment:e1", Type: model.EdgeLinkedByDesignation, Confidence: 0.95},
			{From: "task:t1", To: "piece:gone", Type: "custom_rule", Confidence: 0.6},
			{From: "task:t1", To: "meeting:m1", Type: "custom_rule", Confidence: 0.51},
		},
	}
	s := NewSnapshot(g, model.DefaultRuleSet())
	got := s.SuggestLinks()

	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3: %+v", len(got), got)
	}

	name := got[0]
	if name.Type != model.EdgePotentialLinkByName || name.From.ID != "task:t1" || name.To.ID != "equipment:e1" {
		t.Errorf("suggestion[0] = %+v", name)
	}
	if name.Reason != Reason(model.EdgePotentialLinkByName) {
		t.Errorf("reason = %q", name.Reason)
	}
	if !strings.Contains(name.Action, `"Changer pompe"`) || !strings.Contains(name.Action, `"Pompe"`) {
		t.Errorf("action = %q, want both display titles", name.Action)
	}

	if got[1].Type != model.EdgeLinkedByDesignation {
		t.Errorf("suggestion[1] type = %s", got[1].Type)
	}

	custom := got[2]
	if custom.Reason != defaultReason {
		t.Errorf("unknown edge type reason = %q, want default", custom.Reason)
	}
	// Without a display field the node id stands in.
	if !strings.Contains(custom.Action, `"meeting:m1"`) {
		t.Errorf("action = %q, want node id fallback", custom.Action)
	}
}

func TestSuggestLinks_ExampleScenario(t *testing.T) {
	s := build(exampleCollections())
	got := s.SuggestLinks()
	if len(got) != 1 || got[0].Type != model.EdgePotentialLinkByName {
		t.Fatalf("suggestions = %+v", got)
	}
}

func TestStats(t *testing.T) {
	c := model.Collections{
		Tasks: []model.Record{
			{"id": "t1", "ordre": "OT-100", "titre": "Changer pompe P-01", "pieces": []any{"p404"}},
			{"id": "t2", "ordre": "OT-100", "designation": "Filtre"},
		},
		Equipment: []model.Record{{"id": "e1", "nom": "Pompe P-01", "designation": "Filtre"}},
		Teams:     []model.Record{{"id": "a"}},
	}
	s := build(c)
	st := s.Stats()

	// Edges: order t1-t2 (1.0), designation t2-e1 (0.95), piece t1-p404 (0.3), name t1-e1 (0.7).
	if st.NodeCount != 4 || st.EdgeCount != 4 {
		t.Fatalf("counts = %d nodes, %d edges", st.NodeCount, st.EdgeCount)
	}
	if st.NodesByType[model.EntityTask] != 2 || st.NodesByType[model.EntityEquipment] != 1 || st.NodesByType[model.EntityTeam] != 1 {
		t.Errorf("NodesByType = %v", st.NodesByType)
	}
	if st.EdgesByType[model.EdgeLinkedByOrderNumber] != 1 || st.EdgesByType[model.EdgeUsesPiece] != 1 {
		t.Errorf("EdgesByType = %v", st.EdgesByType)
	}
	if st.HighConfidence != 2 {
		t.Errorf("HighConfidence = %d, want 2", st.HighConfidence)
	}
	if st.Suggested != 2 {
		t.Errorf("Suggested = %d, want 2", st.Suggested)
	}
	if st.AverageDegree != "2.00" {
		t.Errorf("AverageDegree = %q, want 2.00", st.AverageDegree)
	}
	if st.Orphans != 1 {
		t.Errorf("Orphans = %d, want 1", st.Orphans)
	}
}

func TestStats_AverageDegreeFormatting(t *testing.T) {
	c := model.Collections{
		Tasks:     []model.Record{{"id": "t1", "ordre": "X"}, {"id": "t2", "ordre": "X"}},
		Equipment: []model.Record{{"id": "e1"}},
	}
	if got := build(c).Stats().AverageDegree; got != "0.67" {
		t.Errorf("AverageDegree = %q, want 0.67", got)
	}
	if got := build(model.Collections{}).Stats().AverageDegree; got != "0.00" {
		t.Errorf("empty AverageDegree = %q, want 0.00", got)
	}
}

func TestStats_OrphansAgreeWithAudit(t *testing.T) {
	inputs := []model.Collections{
		exampleCollections(),
		{},
		{
			Tasks:     []model.Record{{"id": "t1", "equipementId": "x"}, {"titre": "sans id"}},
			Pieces:    []model.Record{{"id": "p1"}, {"id": "p2"}},
			Teams:     []model.Record{{"id": "a"}},
			Meetings:  []model.Record{{"id": "m1", "date": "2024-01-01"}},
			Equipment: []model.Record{{"id": "e1", "nom": "Sans id"}},
		},
	}
	for i, c := range inputs {
		s := build(c)
		orphans := 0
		for _, is := range s.DetectInconsistencies() {
			if is.Kind == model.IssueOrphanNode {
				orphans++
			}
		}
		if st := s.Stats(); st.Orphans != orphans {
			t.Errorf("input %d: Stats().Orphans = %d, audit found %d", i, st.Orphans, orphans)
		}
	}
}
