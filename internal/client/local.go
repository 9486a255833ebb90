package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/maintgraph/internal/graph"
	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// ErrNodeNotFound is returned by LocalClient.Node for an unknown id.
var ErrNodeNotFound = errors.New("node not found")

// Builder is the subset of graph.Analyzer the local client needs.
type Builder interface {
	EnsureBuilt(ctx context.Context) *graph.Snapshot
	Rebuild(ctx context.Context) *graph.Snapshot
}

// LocalClient implements GraphClient by building the graph in-process.
// The first query triggers a build; later queries reuse the snapshot.
type LocalClient struct {
	builder Builder
	closer  func() error
}

// NewLocalClient returns a client over b. closer, if non-nil, runs on Close
// and typically releases the backing store.
func NewLocalClient(b Builder, closer func() error) *LocalClient {
	return &LocalClient{builder: b, closer: closer}
}

func (c *LocalClient) snapshot(ctx context.Context) *graph.Snapshot {
	return c.builder.EnsureBuilt(ctx)
}

func (c *LocalClient) Graph(ctx context.Context) (*model.Graph, error) {
	return c.snapshot(ctx).Graph(), nil
}

func (c *LocalClient) Rebuild(ctx context.Context) (*model.GraphMetadata, error) {
	md := c.builder.Rebuild(ctx).Metadata()
	return &md, nil
}

func (c *LocalClient) Node(ctx context.Context, id string) (*model.Node, error) {
	n := c.snapshot(ctx).Node(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

func (c *LocalClient) Related(ctx context.Context, id string) (*model.Related, error) {
	r := c.snapshot(ctx).FindRelated(id)
	return &r, nil
}

func (c *LocalClient) Issues(ctx context.Context, severity model.Severity) ([]model.Issue, error) {
	if severity != "" && !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity %q: must be high, medium, or low", severity)
	}
	issues := c.snapshot(ctx).DetectInconsistencies()
	if severity == "" {
		return issues, nil
	}
	filtered := make([]model.Issue, 0, len(issues))
	for _, is := range issues {
		if is.Severity == severity {
			filtered = append(filtered, is)
		}
	}
	return filtered, nil
}

func (c *LocalClient) Duplicates(ctx context.Context) ([]*model.DuplicatePair, error) {
	return c.snapshot(ctx).FindPotentialDuplicates(), nil
}

func (c *LocalClient) Suggestions(ctx context.Context) ([]model.Suggestion, error) {
	return c.snapshot(ctx).SuggestLinks(), nil
}

func (c *LocalClient) Stats(ctx context.Context) (*model.GraphStats, error) {
	st := c.snapshot(ctx).Stats()
	return &st, nil
}

// Health reports ok; the local client builds on demand.
func (c *LocalClient) Health(_ context.Context) (*Health, error) {
	return &Health{Status: "ok", Built: true}, nil
}

func (c *LocalClient) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
