// Package store defines the persistence boundary the analyzer reads its
// source collections from.
package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// ErrNotFound is returned by Load when no collection is stored under the key.
var ErrNotFound = errors.New("collection not found")

// Key returns the storage key of the collection holding records of type t.
func Key(t model.EntityType) string {
	return string(t)
}

// KeyTasks is the key task records are stored under.
var KeyTasks = Key(model.EntityTask)

// Store is a key-value store of record collections.
type Store interface {
	// Load returns the collection stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]model.Record, error)
	// Save replaces the collection stored under key.
	Save(ctx context.Context, key string, records []model.Record) error
	// Keys lists the stored collection keys in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}

// TaskSource supplies the task collection.
type TaskSource interface {
	GetAllTasks(ctx context.Context) ([]model.Record, error)
}

// StoreTasks is a TaskSource reading tasks from a Store under KeyTasks.
type StoreTasks struct {
	Store Store
}

// GetAllTasks loads the task collection.
func (s StoreTasks) GetAllTasks(ctx context.Context) ([]model.Record, error) {
	return s.Store.Load(ctx, KeyTasks)
}
