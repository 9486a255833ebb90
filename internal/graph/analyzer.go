package graph

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// CollectionLoader supplies the source collections for a build.
type CollectionLoader interface {
	LoadAll(ctx context.Context) model.Collections
}

// Analyzer owns the current graph. Each rebuild constructs a new graph from
// scratch and swaps it in atomically; readers always see a complete snapshot.
type Analyzer struct {
	loader    CollectionLoader
	rules     model.RuleSet
	publisher events.Publisher
	logger    *slog.Logger

	mu      sync.Mutex // serializes rebuilds
	current atomic.Pointer[Snapshot]
}

// NewAnalyzer creates an Analyzer. A nil publisher disables events.
func NewAnalyzer(loader CollectionLoader, rules model.RuleSet, publisher events.Publisher, logger *slog.Logger) *Analyzer {
	if publisher == nil {
		publisher = events.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		loader:    loader,
		rules:     rules,
		publisher: publisher,
		logger:    logger,
	}
}

// Rules returns the rule set the analyzer builds with.
func (a *Analyzer) Rules() model.RuleSet {
	return a.rules
}

// Current returns the latest snapshot, or nil before the first build.
func (a *Analyzer) Current() *Snapshot {
	return a.current.Load()
}

// Rebuild loads every collection, builds a fresh graph, and installs it as
// the current snapshot. Concurrent calls run one after another.
func (a *Analyzer) Rebuild(ctx context.Context) *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := a.loader.LoadAll(ctx)
	g := Build(c, a.rules)
	snap := NewSnapshot(g, a.rules)
	a.current.Store(snap)

	md := g.Metadata
	a.logger.Info("graph built",
		"nodes", md.NodeCount,
		"edges", md.EdgeCount,
		"duration_ms", md.DurationMs)
	if len(md.CollidingIDs) > 0 {
		a.logger.Warn("records share a natural id; only the first is addressable",
			"count", len(md.CollidingIDs), "ids", md.CollidingIDs)
	}

	if err := a.publisher.Publish(ctx, events.TopicGraphBuilt, events.GraphBuilt{
		BuiltAt:    md.BuiltAt,
		DurationMs: md.DurationMs,
		NodeCount:  md.NodeCount,
		EdgeCount:  md.EdgeCount,
	}); err != nil {
		a.logger.Warn("failed to publish graph event", "err", err)
	}
	return snap
}

// EnsureBuilt returns the current snapshot, building one first if needed.
func (a *Analyzer) EnsureBuilt(ctx context.Context) *Snapshot {
	if s := a.Current(); s != nil {
		return s
	}
	return a.Rebuild(ctx)
}
