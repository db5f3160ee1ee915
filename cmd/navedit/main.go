// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/navedit/internal/cache"
	"github.com/olegiv/navedit/internal/config"
	"github.com/olegiv/navedit/internal/handler"
	"github.com/olegiv/navedit/internal/handler/api"
	"github.com/olegiv/navedit/internal/logging"
	"github.com/olegiv/navedit/internal/scheduler"
	"github.com/olegiv/navedit/internal/service"
	"github.com/olegiv/navedit/internal/store"
	"github.com/olegiv/navedit/internal/transfer"
	"github.com/olegiv/navedit/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	var opts runOptions
	flag.BoolVar(&opts.seed, "seed", false, "Seed a demo navigation tree into an empty database")
	flag.StringVar(&opts.exportPath, "export", "", "Export the navigation tree to a JSON file and exit")
	flag.StringVar(&opts.importPath, "import", "", "Import a navigation tree from a JSON file and exit")
	flag.BoolVar(&opts.replace, "replace", false, "With -import, delete the existing tree first")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "With -import, validate without writing")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "navedit - navigation store of record\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVEDIT_DB_PATH              SQLite database path (default: ./data/navedit.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVEDIT_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVEDIT_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVEDIT_REDIS_URL            Redis URL for a shared tree cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVEDIT_COMPACTION_SCHEDULE  Cron schedule for position compaction, or off (default: @hourly)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NAVEDIT_EVENT_RETENTION      How long events are kept (default: 720h)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("navedit %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// runOptions holds the command-line switches of a run.
type runOptions struct {
	seed       bool
	exportPath string
	importPath string
	replace    bool
	dryRun     bool
}

func run(opts runOptions) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if opts.seed || cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	backend, backendName, err := cache.NewCache(cfg.CacheConfig())
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = backend.Close() }()
	slog.Info("tree cache initialized", "backend", backendName)
	treeCache := cache.NewTreeCache(backend, cfg.CacheTTL, logger)

	navService := service.NewNavigationService(db, treeCache, logger)
	eventService := service.NewEventService(db)

	switch {
	case opts.importPath != "":
		return importTree(ctx, db, treeCache, logger, opts)
	case opts.exportPath != "":
		if err := transfer.NewExporter(navService, logger).ExportToFile(ctx, opts.exportPath); err != nil {
			return fmt.Errorf("exporting tree: %w", err)
		}
		_, _ = fmt.Printf("exported navigation tree to %s\n", opts.exportPath)
		return nil
	}

	sched := scheduler.New(navService, eventService, logger, cfg.SchedulerConfig())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router := newRouter(routerDeps{
		API:            api.NewHandler(navService, eventService, logger),
		Health:         handler.NewHealthHandler(db, treeCache),
		Logger:         logger,
		RateLimit:      cfg.APIRateLimit,
		RateBurst:      cfg.APIRateBurst,
		RequestTimeout: cfg.RequestTimeout,
	})
	slog.Info("REST API v1 mounted at /api/v1")

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func importTree(ctx context.Context, db *sql.DB, treeCache *cache.TreeCache, logger *slog.Logger, opts runOptions) error {
	importer := transfer.NewImporter(db, treeCache, logger)
	result, err := importer.ImportFromFile(ctx, opts.importPath, transfer.ImportOptions{
		DryRun:  opts.dryRun,
		Replace: opts.replace,
	})
	if result != nil {
		for _, e := range result.Errors {
			_, _ = fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
	}
	if err != nil {
		return fmt.Errorf("importing tree: %w", err)
	}

	verb := "imported"
	if result.DryRun {
		verb = "would import"
	}
	_, _ = fmt.Printf("%s %d navigations and %d pages\n", verb, result.Navigations, result.Pages)
	return nil
}
