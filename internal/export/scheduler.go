package export

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/graph"
)

// Builder produces a fresh snapshot for each export.
type Builder interface {
	Rebuild(ctx context.Context) *graph.Snapshot
}

// Scheduler rebuilds the graph and exports it to every destination on a
// fixed interval.
type Scheduler struct {
	builder      Builder
	destinations []Destination
	interval     time.Duration
	publisher    events.Publisher
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler. A nil publisher disables events.
func NewScheduler(b Builder, destinations []Destination, interval time.Duration, publisher events.Publisher, logger *slog.Logger) *Scheduler {
	if publisher == nil {
		publisher = events.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		builder:      b,
		destinations: destinations,
		interval:     interval,
		publisher:    publisher,
		logger:       logger,
	}
}

// Start runs an export immediately, then on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current export to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.ExportOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ExportOnce(ctx)
		}
	}
}

// ExportOnce rebuilds, serializes, and writes to every destination. A failing
// destination is logged and does not stop the others.
func (s *Scheduler) ExportOnce(ctx context.Context) events.ExportCompleted {
	snap := s.builder.Rebuild(ctx)

	var buf bytes.Buffer
	if err := WriteJSONL(snap, &buf); err != nil {
		s.logger.Error("export encode failed", "err", err)
		return events.ExportCompleted{Destinations: len(s.destinations), Failed: len(s.destinations)}
	}
	data := buf.Bytes()

	done := events.ExportCompleted{Destinations: len(s.destinations), Bytes: len(data)}
	for _, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			done.Failed++
			s.logger.Error("export destination write failed", "destination", dest.Name(), "err", err)
		}
	}

	s.logger.Info("export completed",
		"destinations", done.Destinations,
		"failed", done.Failed,
		"bytes", done.Bytes)
	if err := s.publisher.Publish(ctx, events.TopicExportCompleted, done); err != nil {
		s.logger.Warn("failed to publish export event", "err", err)
	}
	return done
}
