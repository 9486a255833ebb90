// Package server exposes the analyzer over HTTP/JSON.
package server

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/maintgraph/internal/activity"
	"github.com/alfredjeanlab/maintgraph/internal/graph"
)

// Analyzer is the part of graph.Analyzer the server reads from.
type Analyzer interface {
	Current() *graph.Snapshot
	Rebuild(ctx context.Context) *graph.Snapshot
}

// GraphServer serves queries against the analyzer's current snapshot.
type GraphServer struct {
	analyzer Analyzer
	hub      *EventHub
	activity *activity.Tracker
	logger   *slog.Logger
}

// NewGraphServer returns a server over a. hub may be nil, in which case the
// event stream endpoint reports 503.
func NewGraphServer(a Analyzer, hub *EventHub, logger *slog.Logger) *GraphServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphServer{analyzer: a, hub: hub, logger: logger}
}

// WithActivity enables GET /v1/collections over t.
func (s *GraphServer) WithActivity(t *activity.Tracker) *GraphServer {
	s.activity = t
	return s
}

// inputError indicates invalid user input.
// Transport layers map this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
