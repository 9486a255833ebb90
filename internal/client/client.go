// Package client provides a transport-agnostic interface for querying a
// maintenance graph, with an HTTP/JSON implementation that talks to the
// maintgraph REST API and a local implementation backed by an analyzer.
package client

import (
	"context"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// GraphClient is the interface that all mg query commands use. It is
// implemented by HTTPClient (remote server) and LocalClient (in-process build).
type GraphClient interface {
	// Graph
	Graph(ctx context.Context) (*model.Graph, error)
	Rebuild(ctx context.Context) (*model.GraphMetadata, error)

	// Nodes
	Node(ctx context.Context, id string) (*model.Node, error)
	Related(ctx context.Context, id string) (*model.Related, error)

	// Analysis
	Issues(ctx context.Context, severity model.Severity) ([]model.Issue, error)
	Duplicates(ctx context.Context) ([]*model.DuplicatePair, error)
	Suggestions(ctx context.Context) ([]model.Suggestion, error)
	Stats(ctx context.Context) (*model.GraphStats, error)

	// Health
	Health(ctx context.Context) (*Health, error)

	// Lifecycle
	Close() error
}

// Health is the server liveness report.
type Health struct {
	Status string `json:"status"`
	Built  bool   `json:"built"`
}

// IssueList is the response body of the issues endpoint.
type IssueList struct {
	Issues []model.Issue `json:"issues"`
	Total  int           `json:"total"`
}
