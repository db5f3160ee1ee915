// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type seedNode struct {
	Name         string
	Label        string
	ExternalLink string
	ItemType     string
	Pages        []seedPage
	Children     []seedNode
}

type seedPage struct {
	Title   string
	Slug    string
	Content string
}

// demoTree is the forest created on an empty database by Seed.
var demoTree = []seedNode{
	{
		Name:     "Documentation",
		ItemType: "NAV",
		Pages: []seedPage{
			{Title: "Getting started", Slug: "getting-started", Content: "# Getting started\n\nInstall the binary and run `navedit`."},
			{Title: "Configuration", Slug: "configuration", Content: "All settings are read from `NAVEDIT_*` environment variables."},
		},
		Children: []seedNode{
			{
				Name:     "Guides",
				ItemType: "NAV",
				Pages: []seedPage{
					{Title: "Reordering sections", Slug: "reordering-sections", Content: "Use **up** and **down** to move a section among its siblings."},
				},
			},
			{Name: "Reference", ItemType: "PAGE"},
		},
	},
	{Name: "Blog", ItemType: "NAV"},
	{Label: "Source code", ExternalLink: "https://github.com/olegiv/navedit", ItemType: "MENU"},
}

// Seed creates a demo navigation tree when the database holds no navigation.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountNavigationSiblings(ctx, sql.NullInt64{})
	if err != nil {
		return fmt.Errorf("counting navigations: %w", err)
	}
	if count > 0 {
		slog.Info("navigations already exist, skipping seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created, err := seedNodes(ctx, queries.WithTx(tx), demoTree, sql.NullInt64{}, time.Now())
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded demo navigation tree", "navigations", created)
	return nil
}

func seedNodes(ctx context.Context, q *Queries, nodes []seedNode, parentID sql.NullInt64, now time.Time) (int, error) {
	created := 0
	for i, n := range nodes {
		nav, err := q.CreateNavigation(ctx, CreateNavigationParams{
			Name:         n.Name,
			Label:        n.Label,
			ExternalLink: n.ExternalLink,
			Position:     int64(i),
			ParentID:     parentID,
			ItemType:     n.ItemType,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return created, fmt.Errorf("creating navigation %q: %w", n.Name, err)
		}
		created++

		for j, p := range n.Pages {
			if _, err := q.CreatePage(ctx, CreatePageParams{
				NavigationID: nav.ID,
				Title:        p.Title,
				Slug:         p.Slug,
				Content:      p.Content,
				Position:     int64(j),
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return created, fmt.Errorf("creating page %q: %w", p.Title, err)
			}
		}

		sub, err := seedNodes(ctx, q, n.Children, sql.NullInt64{Int64: nav.ID, Valid: true}, now)
		created += sub
		if err != nil {
			return created, err
		}
	}
	return created, nil
}
