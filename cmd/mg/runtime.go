package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/alfredjeanlab/maintgraph/internal/client"
	"github.com/alfredjeanlab/maintgraph/internal/config"
	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/export"
	"github.com/alfredjeanlab/maintgraph/internal/graph"
	"github.com/alfredjeanlab/maintgraph/internal/loader"
	"github.com/alfredjeanlab/maintgraph/internal/store"
	"github.com/alfredjeanlab/maintgraph/internal/store/jsondir"
	"github.com/alfredjeanlab/maintgraph/internal/store/postgres"
	"github.com/alfredjeanlab/maintgraph/internal/ui"
	"github.com/spf13/cobra"
)

// runtime bundles the components shared by every command that builds the
// graph in-process.
type runtime struct {
	cfg       *config.Config
	store     store.Store
	publisher events.Publisher
	analyzer  *graph.Analyzer
	logger    *slog.Logger
}

// newLogger returns the CLI logger. Query commands stay quiet unless
// --verbose is set; serve always logs at info.
func newLogger(level slog.Level) *slog.Logger {
	if verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens Postgres when a database URL is configured and the JSON
// directory store otherwise.
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		s, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := jsondir.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// newPublisher connects to NATS when configured.
func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("events disabled (MAINTGRAPH_NATS_URL not set)")
		return events.Discard, nil
	}
	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	logger.Info("events enabled", "nats_url", cfg.NATSURL)
	return pub, nil
}

// openRuntime loads configuration and rules, then wires the store, the
// publisher and the analyzer. wrap, if non-nil, decorates the publisher
// before the analyzer sees it.
func openRuntime(logger *slog.Logger, wrap func(events.Publisher) events.Publisher) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	rules, err := config.LoadRuleSet(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	pub, err := newPublisher(cfg, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	if wrap != nil {
		pub = wrap(pub)
	}

	l := loader.New(st, nil, logger)
	return &runtime{
		cfg:       cfg,
		store:     st,
		publisher: pub,
		analyzer:  graph.NewAnalyzer(l, rules, pub, logger),
		logger:    logger,
	}, nil
}

func (rt *runtime) close() error {
	return errors.Join(rt.publisher.Close(), rt.store.Close())
}

// exportDestinations builds the destinations configured in the environment.
// A destination that cannot be created is logged and skipped.
func (rt *runtime) exportDestinations(ctx context.Context) []export.Destination {
	cfg := rt.cfg
	var dests []export.Destination
	if cfg.ExportS3Bucket != "" {
		d, err := export.NewS3Destination(ctx, cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
		if err != nil {
			rt.logger.Error("failed to create S3 export destination", "err", err)
		} else {
			dests = append(dests, d)
			rt.logger.Info("export S3 destination enabled", "bucket", cfg.ExportS3Bucket, "key", cfg.ExportS3Key)
		}
	}
	if cfg.ExportGitRepo != "" {
		dests = append(dests, export.NewGitDestination(cfg.ExportGitRepo, cfg.ExportGitFile, cfg.ExportGitBranch))
		rt.logger.Info("export git destination enabled", "repo", cfg.ExportGitRepo, "file", cfg.ExportGitFile)
	}
	if cfg.ExportFile != "" {
		dests = append(dests, export.NewFileDestination(cfg.ExportFile))
		rt.logger.Info("export file destination enabled", "path", cfg.ExportFile)
	}
	return dests
}

// openLocalClient returns a GraphClient that builds the graph in-process.
func openLocalClient() (*client.LocalClient, error) {
	rt, err := openRuntime(newLogger(slog.LevelWarn), nil)
	if err != nil {
		return nil, err
	}
	displayFields = rt.analyzer.Rules().DisplayFields
	return client.NewLocalClient(rt.analyzer, rt.close), nil
}

// skipClient overrides the root PersistentPreRunE for commands that wire
// their own components.
func skipClient(cmd *cobra.Command, args []string) error {
	ui.Configure()
	return nil
}
