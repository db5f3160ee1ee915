// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command navctl edits a remote navigation tree from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/olegiv/navedit/internal/client"
	"github.com/olegiv/navedit/internal/config"
	"github.com/olegiv/navedit/internal/editor"
	"github.com/olegiv/navedit/internal/navsync"
	"github.com/olegiv/navedit/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	remoteURL := flag.String("url", "", "API base URL (overrides NAVEDIT_CLIENT_URL)")
	compact := flag.Bool("compact", false, "Re-rank siblings after a delete")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "navctl - navigation tree editor\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Commands:\n%s\n", usage)
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("navctl %s\n", version.Get())
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*remoteURL, *compact, flag.Args()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "navctl: %v\n", err)
		os.Exit(1)
	}
}

func run(remoteURL string, compact bool, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if remoteURL != "" {
		cfg.Remote.BaseURL = remoteURL
	}
	if compact {
		cfg.Editor.CompactOnDelete = true
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	c, err := client.New(cfg.Remote, logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := navsync.NewController(c, logger, navsync.Config{RequestTimeout: cfg.Remote.Timeout})
	tree, err := ctrl.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading tree: %w", err)
	}

	ed := editor.New(ctrl, tree, logger, cfg.Editor)
	defer ed.Wait()

	return execute(ctx, ed, args, os.Stdout)
}
