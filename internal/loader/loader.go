// Package loader gathers the five source collections the graph is built from.
package loader

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/maintgraph/internal/model"
	"github.com/alfredjeanlab/maintgraph/internal/store"
)

// Loader reads tasks from a TaskSource and every other collection from a
// Store. A failing collection is logged and treated as empty so one bad
// source never blocks a rebuild.
type Loader struct {
	store  store.Store
	tasks  store.TaskSource
	logger *slog.Logger
}

// New returns a Loader. A nil tasks source falls back to the store's task key.
func New(s store.Store, tasks store.TaskSource, logger *slog.Logger) *Loader {
	if tasks == nil {
		tasks = store.StoreTasks{Store: s}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: s, tasks: tasks, logger: logger}
}

// LoadAll fetches all collections concurrently. It never fails.
func (l *Loader) LoadAll(ctx context.Context) model.Collections {
	var c model.Collections
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Tasks = l.guard(model.EntityTask, func() ([]model.Record, error) {
			return l.tasks.GetAllTasks(gctx)
		})
		return nil
	})
	load := func(t model.EntityType, dst *[]model.Record) {
		g.Go(func() error {
			*dst = l.guard(t, func() ([]model.Record, error) {
				return l.store.Load(gctx, store.Key(t))
			})
			return nil
		})
	}
	load(model.EntityEquipment, &c.Equipment)
	load(model.EntityPiece, &c.Pieces)
	load(model.EntityTeam, &c.Teams)
	load(model.EntityMeeting, &c.Meetings)

	_ = g.Wait()
	return c
}

func (l *Loader) guard(t model.EntityType, fn func() ([]model.Record, error)) (records []model.Record) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("collection loader panicked", "type", t, "panic", r)
			records = []model.Record{}
		}
	}()

	records, err := fn()
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.logger.Debug("collection not stored", "type", t)
		return []model.Record{}
	case err != nil:
		l.logger.Warn("failed to load collection", "type", t, "err", err)
		return []model.Record{}
	case records == nil:
		return []model.Record{}
	}
	return records
}
