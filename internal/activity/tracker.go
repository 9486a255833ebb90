// Package activity tracks when each source collection last changed.
//
// The Tracker keeps an in-memory entry per collection key, fed by the
// collection-updated events the watcher receives. Entries never expire;
// a collection that has been quiet longer than the caller's threshold is
// flagged stale in listings.
package activity

import (
	"sort"
	"sync"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/events"
)

// Entry is the change history of one collection.
type Entry struct {
	Key         string    `json:"key"`
	FirstSeen   time.Time `json:"first_seen"`
	LastUpdated time.Time `json:"last_updated"`
	LastActor   string    `json:"last_actor,omitempty"`
	Records     int       `json:"records"`      // record count reported by the last update
	UpdateCount int64     `json:"update_count"` // total updates seen
	IdleSecs    float64   `json:"idle_secs"`    // seconds since the last update
	Stale       bool      `json:"stale,omitempty"`
}

// Tracker maintains the per-collection update log.
type Tracker struct {
	mu   sync.RWMutex
	keys map[string]*keyState
	now  func() time.Time
}

type keyState struct {
	firstSeen   time.Time
	lastUpdated time.Time
	lastActor   string
	records     int
	updateCount int64
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		keys: make(map[string]*keyState),
		now:  time.Now,
	}
}

// Record notes one collection update. Events without a key are ignored.
func (t *Tracker) Record(ev events.CollectionUpdated) {
	if ev.Key == "" {
		return
	}

	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.keys[ev.Key]
	if !ok {
		state = &keyState{firstSeen: now}
		t.keys[ev.Key] = state
	}
	state.lastUpdated = now
	state.records = ev.Records
	state.updateCount++
	if ev.Actor != "" {
		state.lastActor = ev.Actor
	}
}

// List returns every tracked collection, most recently updated first.
// Entries idle for longer than staleAfter are flagged; 0 disables flagging.
func (t *Tracker) List(staleAfter time.Duration) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	now := t.now()
	entries := make([]Entry, 0, len(t.keys))
	for key, state := range t.keys {
		idle := now.Sub(state.lastUpdated)
		entries = append(entries, Entry{
			Key:         key,
			FirstSeen:   state.firstSeen,
			LastUpdated: state.lastUpdated,
			LastActor:   state.lastActor,
			Records:     state.records,
			UpdateCount: state.updateCount,
			IdleSecs:    idle.Seconds(),
			Stale:       staleAfter > 0 && idle > staleAfter,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LastUpdated.Equal(entries[j].LastUpdated) {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].LastUpdated.After(entries[j].LastUpdated)
	})
	return entries
}
