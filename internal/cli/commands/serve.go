package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/api"
	"github.com/conduit-lang/classview/internal/cli/config"
	"github.com/conduit-lang/classview/internal/metrics"
	"github.com/conduit-lang/classview/internal/snapshot"
	"github.com/conduit-lang/classview/internal/watch"
	"github.com/conduit-lang/classview/internal/web/cache"
	"github.com/conduit-lang/classview/internal/web/ratelimit"
	"github.com/conduit-lang/classview/internal/web/server"
)

var (
	servePort  int
	serveHost  string
	serveWatch bool
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalogue over HTTP",
		Long: `Load the catalogue and serve the JSON API.

The serve command will:
  1. Load and index the catalogue files
  2. Start the HTTP server
  3. Rebuild the catalogue when its files change (if --watch is enabled)

The catalogue is rebuilt in the background once its TTL expires. Queries
keep being answered from the previous build until the new one is ready.`,
		Example: `  classview serve
  classview serve --port 8080
  classview serve --watch
  CLASSVIEW_CACHE_BACKEND=redis classview serve`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().IntVarP(&servePort, "port", "p", 3500, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind (default from config)")
	cmd.Flags().BoolVar(&serveWatch, "watch", false, "Rebuild the catalogue when data files change")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("watch") {
		cfg.Data.Watch = serveWatch
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cmd, cfg, logger)
}

// serve runs the API until ctx is cancelled.
func serve(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	m := metrics.New()

	store := snapshot.NewStore(snapshot.Options{
		Paths:  cfg.Data.Paths(),
		TTL:    cfg.Snapshot.TTL,
		Strict: cfg.Snapshot.Strict,
		Query:  cfg.Query.Options(),
		Logger: logger,
		OnBuild: func(snap *snapshot.Snapshot, took time.Duration, err error) {
			m.ObserveBuild(took, err)
			if snap != nil {
				m.SetCatalogue(snap.Registry.Stats())
			}
		},
	})

	// A broken data path fails here rather than on the first request.
	snap, err := store.Get(ctx)
	if err != nil {
		return err
	}

	responses, err := cache.New(cfg.CacheBackend())
	if err != nil {
		return fmt.Errorf("failed to create response cache: %w", err)
	}

	closers := []func() error{responses.Close}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	opts := []api.Option{api.WithMetrics(m), api.WithLogger(logger)}
	if _, disabled := responses.(cache.NoopCache); !disabled {
		opts = append(opts, api.WithCache(responses))
	}
	if cfg.RateLimit.Enabled {
		limiter, err := ratelimit.New(cfg.Limiter())
		if err != nil {
			closeAll()
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}
		closers = append(closers, limiter.Close)
		opts = append(opts, api.WithRateLimit(limiter))
	}
	if cfg.Server.Pprof {
		logger.Warn("profiling endpoints enabled", zap.String("path", "/debug/pprof"))
	}
	handler := api.New(store, cfg.API(), opts...).Handler()

	srvCfg := server.DefaultConfig(handler)
	srvCfg.Address = cfg.Server.Address()
	srv, err := server.New(srvCfg)
	if err != nil {
		closeAll()
		return err
	}

	gs := server.NewGracefulShutdown(srv, &server.ShutdownConfig{
		Timeout: cfg.Server.ShutdownTimeout,
		Logger:  logger,
	})

	if cfg.Data.Watch {
		watcher, err := watchCatalogue(cfg, store, responses, logger)
		if err != nil {
			closeAll()
			return err
		}
		gs.RegisterHook(func(context.Context) error {
			return watcher.Stop()
		})
	}
	for _, c := range closers {
		gs.RegisterHook(func(context.Context) error {
			return c()
		})
	}

	stats := snap.Registry.Stats()
	out := cmd.OutOrStdout()
	color.New(color.FgGreen, color.Bold).Fprintf(out, "Serving %d classes, %d structs and %d enums\n",
		stats.Classes, stats.Structs, stats.Enums)
	color.New(color.FgCyan).Fprintf(out, "Server URL: http://%s\n", cfg.Server.Address())

	return gs.Run(ctx)
}

// watchCatalogue rebuilds the snapshot whenever a data file changes and
// drops the cached pages of the snapshot it replaced. Pages are keyed by
// snapshot, so stale pages are never served even if the drop fails.
func watchCatalogue(cfg *config.Config, store *snapshot.Store, responses cache.Cache, logger *zap.Logger) (*watch.FileWatcher, error) {
	paths := cfg.Data.Paths()
	onChange := func(files []string) error {
		logger.Info("catalogue files changed", zap.Strings("files", files))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		old := store.Current()
		snap, err := store.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("rebuild failed: %w", err)
		}
		logger.Info("catalogue rebuilt", zap.String("snapshot", snap.ID))

		if old != nil && old.ID != snap.ID {
			if err := responses.ClearSnapshot(ctx, old.ID); err != nil {
				logger.Warn("failed to drop cached pages",
					zap.String("snapshot", old.ID), zap.Error(err))
			}
		}
		return nil
	}

	watcher, err := watch.NewFileWatcher(
		[]string{paths.Native, paths.Blueprint, paths.Descriptions},
		onChange,
		watch.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return nil, err
	}
	return watcher, nil
}
