package watch

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/activity"
	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/graph"
)

type countingBuilder struct {
	calls atomic.Int32
}

func (b *countingBuilder) Rebuild(context.Context) *graph.Snapshot {
	b.calls.Add(1)
	return nil
}

// chanSubscriber hands out a single in-memory channel.
type chanSubscriber struct {
	ch       chan events.Message
	topic    string
	canceled atomic.Bool
	closed   atomic.Bool
}

var _ events.Subscriber = (*chanSubscriber)(nil)

func newChanSubscriber(size int) *chanSubscriber {
	return &chanSubscriber{ch: make(chan events.Message, size)}
}

func (s *chanSubscriber) Subscribe(topic string) (<-chan events.Message, func(), error) {
	s.topic = topic
	return s.ch, func() { s.canceled.Store(true) }, nil
}

func (s *chanSubscriber) Close() error {
	s.closed.Store(true)
	return nil
}

// send queues a collection update on the subject the publisher would use.
func (s *chanSubscriber) send(key, payload string) {
	s.ch <- events.Message{Topic: events.TopicCollectionUpdated(key), Data: []byte(payload)}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRebuilder_DebouncesBursts(t *testing.T) {
	b := &countingBuilder{}
	sub := newChanSubscriber(16)
	r := NewRebuilder(b, 50*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, sub) }()

	for i := 0; i < 5; i++ {
		sub.send("task", `{"key":"task","records":3}`)
	}
	waitFor(t, func() bool { return b.calls.Load() == 1 })

	// Let another debounce window pass to catch a stray second rebuild.
	time.Sleep(150 * time.Millisecond)
	if n := b.calls.Load(); n != 1 {
		t.Errorf("rebuilds = %d, want 1", n)
	}

	sub.send("meeting", `{"key":"meeting","records":1}`)
	waitFor(t, func() bool { return b.calls.Load() == 2 })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sub.topic != "maintgraph.collection.>" {
		t.Errorf("subscribed to %q", sub.topic)
	}
	if !sub.canceled.Load() {
		t.Error("subscription was not cancelled")
	}
}

func TestRebuilder_SkipsBadPayload(t *testing.T) {
	b := &countingBuilder{}
	sub := newChanSubscriber(1)
	r := NewRebuilder(b, 20*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, sub) }()

	sub.send("task", `not json`)
	time.Sleep(100 * time.Millisecond)
	if n := b.calls.Load(); n != 0 {
		t.Errorf("rebuilds = %d, want 0", n)
	}
	close(sub.ch)
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRebuilder_ObserveSeesEveryUpdate(t *testing.T) {
	b := &countingBuilder{}
	sub := newChanSubscriber(4)
	r := NewRebuilder(b, 30*time.Millisecond, quietLogger())

	tracker := activity.New()
	r.Observe(tracker.Record)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, sub) }()

	sub.send("task", `{"key":"task","records":3,"actor":"alice"}`)
	sub.send("task", `{"records":4}`)
	sub.send("team", `{"key":"team","records":1}`)
	waitFor(t, func() bool { return b.calls.Load() == 1 })
	cancel()
	<-done

	entries := tracker.List(0)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	counts := map[string]int64{}
	for _, e := range entries {
		counts[e.Key] = e.UpdateCount
	}
	if counts["task"] != 2 || counts["team"] != 1 {
		t.Errorf("update counts = %v", counts)
	}
}

func TestRebuilder_SkipsUpdateWithoutKey(t *testing.T) {
	b := &countingBuilder{}
	sub := newChanSubscriber(2)
	r := NewRebuilder(b, 20*time.Millisecond, quietLogger())

	var seen atomic.Int32
	r.Observe(func(events.CollectionUpdated) { seen.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, sub) }()

	sub.ch <- events.Message{Topic: "maintgraph.collection.updated", Data: []byte(`{"records":2}`)}
	sub.ch <- events.Message{Topic: "maintgraph.collection.task.updated", Data: []byte(`{"key":"task","records":-4}`)}
	time.Sleep(100 * time.Millisecond)
	if n := b.calls.Load(); n != 0 {
		t.Errorf("rebuilds = %d, want 0", n)
	}
	if n := seen.Load(); n != 0 {
		t.Errorf("observed = %d, want 0", n)
	}
	close(sub.ch)
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
