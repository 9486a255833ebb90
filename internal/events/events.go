package events

import (
	"context"
	"time"
)

// Event topic constants
const (
	// TopicGraphBuilt is published after every rebuild installs a new snapshot.
	TopicGraphBuilt = "maintgraph.graph.built"

	// TopicCollectionPrefix is the subject prefix for source collection changes.
	// Subscribers use TopicCollectionAll to watch every collection.
	TopicCollectionPrefix = "maintgraph.collection."
	TopicCollectionAll    = "maintgraph.collection.>"

	// TopicExportCompleted is published after a snapshot is written to all destinations.
	TopicExportCompleted = "maintgraph.export.completed"
)

// TopicCollectionUpdated returns the subject announcing a change to key.
func TopicCollectionUpdated(key string) string {
	return TopicCollectionPrefix + key + ".updated"
}

// Event types

type GraphBuilt struct {
	BuiltAt    time.Time `json:"built_at"`
	DurationMs int64     `json:"duration_ms"`
	NodeCount  int       `json:"node_count"`
	EdgeCount  int       `json:"edge_count"`
}

type CollectionUpdated struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
	Actor   string `json:"actor,omitempty"`
}

type ExportCompleted struct {
	Destinations int `json:"destinations"`
	Failed       int `json:"failed"`
	Bytes        int `json:"bytes"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
