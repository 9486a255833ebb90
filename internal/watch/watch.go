// Package watch rebuilds the graph when a source collection changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/graph"
)

// DefaultDebounce is how long the watcher waits after the last change
// notification before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Builder is the part of the analyzer the watcher drives.
type Builder interface {
	Rebuild(ctx context.Context) *graph.Snapshot
}

// Rebuilder coalesces bursts of collection-updated events into one rebuild.
type Rebuilder struct {
	builder  Builder
	debounce time.Duration
	logger   *slog.Logger
	observe  func(events.CollectionUpdated)
}

// NewRebuilder returns a Rebuilder. A non-positive debounce uses DefaultDebounce.
func NewRebuilder(b Builder, debounce time.Duration, logger *slog.Logger) *Rebuilder {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rebuilder{builder: b, debounce: debounce, logger: logger}
}

// Observe registers fn to be called with every decoded update, before the
// debounce. It must be called before Run.
func (r *Rebuilder) Observe(fn func(events.CollectionUpdated)) {
	r.observe = fn
}

// Run listens for collection updates on the event bus and rebuilds after
// each quiet period. It blocks until ctx is cancelled or the subscription
// closes.
func (r *Rebuilder) Run(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe(events.TopicCollectionAll)
	if err != nil {
		return fmt.Errorf("watch: subscribe: %w", err)
	}
	defer cancel()

	r.logger.Info("watch: rebuilder started", "debounce", r.debounce)

	// Stop and Reset never leave a stale tick behind as of Go 1.23.
	timer := time.NewTimer(r.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("watch: rebuilder stopping")
			return nil
		case msg, ok := <-ch:
			if !ok {
				r.logger.Info("watch: subscription channel closed")
				return nil
			}

			ev, err := events.DecodeCollectionUpdated(msg)
			if err != nil {
				r.logger.Warn("watch: bad collection event", "topic", msg.Topic, "err", err)
				continue
			}
			r.logger.Debug("watch: collection updated", "key", ev.Key, "records", ev.Records)
			if r.observe != nil {
				r.observe(ev)
			}

			timer.Reset(r.debounce)
		case <-timer.C:
			r.builder.Rebuild(ctx)
		}
	}
}
