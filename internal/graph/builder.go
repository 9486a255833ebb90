package graph

import (
	"strings"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// entry is one materialized record with the id assigned to its node. Later
// passes read ids from here so that synthetic ids stay consistent within a build.
type entry struct {
	rec model.Record
	id  string
}

type edgeKey struct {
	from, to string
	typ      model.EdgeType
}

type pairKey struct{ a, b string }

func unordered(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

type builder struct {
	rules model.RuleSet
	now   time.Time
	graph *model.Graph

	entries []entry
	byType  map[model.EntityType][]int
	// natural id -> node id, per type; first record wins.
	natural map[model.EntityType]map[string]string
	// node ids of records whose natural id an earlier record already took.
	colliding []string

	seen   map[edgeKey]struct{}
	direct map[pairKey]struct{}
}

// Build assembles a fresh graph from the five collections. It performs no
// I/O and never fails: records missing the fields a rule needs are skipped
// by that rule.
//
// Passes run in a fixed order because edge insertion is deduplicated and the
// heuristics read edges produced before them: node materialization,
// smart-key linking, direct foreign keys, name similarity, date proximity.
func Build(c model.Collections, rules model.RuleSet) *model.Graph {
	start := time.Now()
	b := &builder{
		rules:   rules,
		now:     start.UTC(),
		graph:   &model.Graph{Nodes: []*model.Node{}, Edges: []*model.Edge{}},
		byType:  make(map[model.EntityType][]int),
		natural: make(map[model.EntityType]map[string]string),
		seen:    make(map[edgeKey]struct{}),
		direct:  make(map[pairKey]struct{}),
	}

	for _, t := range model.LoadOrder {
		b.materialize(t, c.Of(t))
	}
	b.linkSmartKeys()
	b.linkTaskReferences()
	b.linkByName()
	b.linkByDate()

	b.graph.Metadata = model.GraphMetadata{
		BuiltAt:    b.now,
		DurationMs: time.Since(start).Milliseconds(),
		NodeCount:    len(b.graph.Nodes),
		EdgeCount:    len(b.graph.Edges),
		CollidingIDs: b.colliding,
	}
	return b.graph
}

func (b *builder) materialize(t model.EntityType, records []model.Record) {
	index := make(map[string]string)
	b.natural[t] = index
	for _, rec := range records {
		if rec == nil {
			continue
		}
		id, synthetic := NodeID(t, rec, b.rules.NaturalID)
		b.byType[t] = append(b.byType[t], len(b.entries))
		b.entries = append(b.entries, entry{rec: rec, id: id})
		b.graph.Nodes = append(b.graph.Nodes, &model.Node{
			ID:   id,
			Type: t,
			Data: rec,
			Metadata: model.NodeMetadata{
				AddedAt:   b.now,
				Synthetic: synthetic,
			},
		})
		if natural := rec.String(b.rules.NaturalID); natural != "" {
			if _, dup := index[natural]; dup {
				b.colliding = append(b.colliding, id)
				continue
			}
			index[natural] = id
		}
	}
}

// addEdge appends an edge unless an endpoint is empty, both endpoints are
// the same node, or the same (from, to, type) triple is already present.
func (b *builder) addEdge(from, to string, t model.EdgeType, confidence float64, bidirectional bool) {
	if from == "" || to == "" || from == to {
		return
	}
	k := edgeKey{from, to, t}
	if _, dup := b.seen[k]; dup {
		return
	}
	b.seen[k] = struct{}{}
	if b.rules.IsDirectLink(t) {
		b.direct[unordered(from, to)] = struct{}{}
	}
	b.graph.Edges = append(b.graph.Edges, &model.Edge{
		From:          from,
		To:            to,
		Type:          t,
		Confidence:    confidence,
		Bidirectional: bidirectional,
		Metadata:      model.EdgeMetadata{CreatedAt: b.now},
	})
}

func (b *builder) directlyLinked(x, y string) bool {
	_, ok := b.direct[unordered(x, y)]
	return ok
}

// linkSmartKeys compares every unordered pair of records across all types.
// This is O(n^2) in the total record count, which is acceptable for the
// hundreds of records the source systems hold.
func (b *builder) linkSmartKeys() {
	groups := b.rules.SmartKeys
	// keys[g][i] is the normalized value of group g on entry i, nil if absent.
	keys := make([][]any, len(groups))
	for g, group := range groups {
		keys[g] = make([]any, len(b.entries))
		for i, e := range b.entries {
			if v, ok := e.rec.Lookup(group.Aliases); ok {
				if s, ok := model.Scalar(v); ok {
					keys[g][i] = s
				}
			}
		}
	}

	for i := 0; i < len(b.entries); i++ {
		for j := i + 1; j < len(b.entries); j++ {
			for g, group := range groups {
				vi, vj := keys[g][i], keys[g][j]
				if vi == nil || vj == nil || vi != vj {
					continue
				}
				b.addEdge(b.entries[i].id, b.entries[j].id, group.EdgeType, group.Strength, group.Bidirectional)
			}
		}
	}
}

// linkTaskReferences follows the explicit reference fields of task records.
// A reference that matches no record still yields an edge, at reduced
// confidence, to the id the reference names.
func (b *builder) linkTaskReferences() {
	for _, i := range b.byType[model.EntityTask] {
		task := b.entries[i]
		for _, rule := range b.rules.TaskLinks {
			// People are attributes, not linked nodes.
			if rule.Target == model.EntityPerson {
				continue
			}
			v, ok := task.rec.Lookup(rule.Aliases)
			if !ok {
				continue
			}
			// References compare as rendered strings, unlike smart keys:
			// node ids are strings, so 42 and "42" already name one node.
			for _, ref := range model.Strings(v) {
				if target, found := b.natural[rule.Target][ref]; found {
					b.addEdge(task.id, target, rule.EdgeType, rule.Strength, rule.Bidirectional)
				} else {
					b.addEdge(task.id, RefID(rule.Target, ref), rule.EdgeType, rule.UnresolvedStrength, rule.Bidirectional)
				}
			}
		}
	}
}

func (b *builder) linkByName() {
	rule := b.rules.NameMatch
	for _, ti := range b.byType[model.EntityTask] {
		task := b.entries[ti]
		title := strings.ToLower(task.rec.String(rule.TaskFields))
		if title == "" {
			continue
		}
		for _, ei := range b.byType[model.EntityEquipment] {
			eq := b.entries[ei]
			name := strings.ToLower(eq.rec.String(rule.EquipmentFields))
			if name == "" {
				continue
			}
			if !strings.Contains(title, name) && !strings.Contains(name, title) {
				continue
			}
			if b.directlyLinked(task.id, eq.id) {
				continue
			}
			b.addEdge(task.id, eq.id, rule.EdgeType, rule.Strength, rule.Bidirectional)
		}
	}
}

func (b *builder) linkByDate() {
	rule := b.rules.DateMatch
	for _, ti := range b.byType[model.EntityTask] {
		task := b.entries[ti]
		td, ok := firstDate(task.rec, rule.TaskFields)
		if !ok {
			continue
		}
		for _, mi := range b.byType[model.EntityMeeting] {
			meeting := b.entries[mi]
			md, ok := firstDate(meeting.rec, rule.MeetingFields)
			if !ok {
				continue
			}
			if dayDistance(td, md) > rule.WindowDays {
				continue
			}
			if b.directlyLinked(task.id, meeting.id) {
				continue
			}
			b.addEdge(task.id, meeting.id, rule.EdgeType, rule.Strength, rule.Bidirectional)
		}
	}
}
