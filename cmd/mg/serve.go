package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfredjeanlab/maintgraph/internal/activity"
	"github.com/alfredjeanlab/maintgraph/internal/events"
	"github.com/alfredjeanlab/maintgraph/internal/export"
	"github.com/alfredjeanlab/maintgraph/internal/server"
	"github.com/alfredjeanlab/maintgraph/internal/watch"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:               "serve",
	Short:             "Start the maintgraph HTTP server",
	GroupID:           "system",
	PersistentPreRunE: skipClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(slog.LevelInfo)

		// The hub streams every analyzer event to SSE clients before it
		// reaches NATS.
		var hub *server.EventHub
		rt, err := openRuntime(logger, func(p events.Publisher) events.Publisher {
			hub = server.NewEventHub(p)
			return hub
		})
		if err != nil {
			return err
		}
		cfg := rt.cfg

		snap := rt.analyzer.Rebuild(context.Background())
		logger.Info("initial graph built",
			"nodes", snap.Metadata().NodeCount,
			"edges", snap.Metadata().EdgeCount)

		// Start HTTP server.
		tracker := activity.New()
		graphServer := server.NewGraphServer(rt.analyzer, hub, logger).WithActivity(tracker)
		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           graphServer.NewHTTPHandler(cfg.AuthToken),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr, "auth", cfg.AuthToken != "")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start export scheduler if any destinations are configured.
		var scheduler *export.Scheduler
		if cfg.ExportInterval > 0 && cfg.HasExportDestination() {
			if dests := rt.exportDestinations(context.Background()); len(dests) > 0 {
				scheduler = export.NewScheduler(rt.analyzer, dests, cfg.ExportInterval, rt.publisher, logger)
				scheduler.Start()
				logger.Info("export scheduler started", "interval", cfg.ExportInterval)
			}
		}

		// Rebuild on collection changes if NATS is available.
		var watchCancel context.CancelFunc
		watchDone := make(chan struct{})
		if cfg.NATSURL != "" {
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				logger.Error("failed to create collection subscriber", "err", err)
				close(watchDone)
			} else {
				var watchCtx context.Context
				watchCtx, watchCancel = context.WithCancel(context.Background())
				rebuilder := watch.NewRebuilder(rt.analyzer, watch.DefaultDebounce, logger)
				rebuilder.Observe(tracker.Record)
				go func() {
					defer close(watchDone)
					if err := rebuilder.Run(watchCtx, sub); err != nil {
						logger.Error("collection watcher error", "err", err)
					}
					sub.Close()
				}()
				logger.Info("collection watcher started", "topic", events.TopicCollectionAll)
			}
		} else {
			close(watchDone)
		}

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if watchCancel != nil {
			watchCancel()
		}
		<-watchDone

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("export scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := rt.close(); err != nil {
			logger.Error("error closing runtime", "err", err)
		}
		logger.Info("shutdown complete")
		return nil
	},
}
