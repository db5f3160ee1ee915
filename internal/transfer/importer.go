// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olegiv/navedit/internal/cache"
	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/store"
	"github.com/olegiv/navedit/internal/util"
)

// ErrValidation is returned when the import data is rejected.
var ErrValidation = errors.New("validation failed")

// Importer handles importing a navigation tree from JSON format.
type Importer struct {
	store  *store.Queries
	db     *sql.DB
	tree   *cache.TreeCache
	logger *slog.Logger
}

// NewImporter creates a new Importer instance. treeCache may be nil.
func NewImporter(db *sql.DB, treeCache *cache.TreeCache, logger *slog.Logger) *Importer {
	return &Importer{
		store:  store.New(db),
		db:     db,
		tree:   treeCache,
		logger: logger,
	}
}

// Import performs the import operation based on the provided options.
// The import runs in a transaction and rolls back on error.
func (i *Importer) Import(ctx context.Context, data *ExportData, opts ImportOptions) (*ImportResult, error) {
	result := NewImportResult(opts.DryRun)

	if errs := Validate(data); len(errs) > 0 {
		for _, e := range errs {
			result.AddError(e.Path, e.Message)
		}
		return result, ErrValidation
	}

	if opts.DryRun {
		result.Navigations, result.Pages = countNodes(data.Navigations)
		return result, nil
	}

	// Existing roots are needed before the transaction; the connection
	// pool may be a single connection.
	roots, err := i.rootIDs(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := i.store.WithTx(tx)

	offset := len(roots)
	if opts.Replace {
		for _, id := range roots {
			if _, err := queries.DeleteNavigation(ctx, id); err != nil {
				return nil, fmt.Errorf("deleting navigation %d: %w", id, err)
			}
		}
		result.Replaced = len(roots)
		offset = 0
	}

	now := time.Now()
	for idx, n := range data.Navigations {
		if err := importNode(ctx, queries, n, sql.NullInt64{}, offset+idx, now, result); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.tree.Invalidate(ctx)
	i.logger.Info("navigation tree imported",
		"navigations", result.Navigations, "pages", result.Pages, "replaced", result.Replaced)
	return result, nil
}

// ImportFromReader reads and imports from an io.Reader.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return i.Import(ctx, &data, opts)
}

// ImportFromFile reads and imports from a file path.
func (i *Importer) ImportFromFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return i.ImportFromReader(ctx, f, opts)
}

func (i *Importer) rootIDs(ctx context.Context) ([]int64, error) {
	navs, err := i.store.ListNavigations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing navigations: %w", err)
	}

	var ids []int64
	for _, n := range navs {
		if !n.ParentID.Valid {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

func importNode(ctx context.Context, q *store.Queries, n ExportNavigation, parentID sql.NullInt64, position int, now time.Time, result *ImportResult) error {
	itemType := n.ItemType
	if itemType == "" {
		itemType = string(model.ItemTypeNav)
	}

	row, err := q.CreateNavigation(ctx, store.CreateNavigationParams{
		Name:         n.Name,
		Url:          n.URL,
		Label:        n.Label,
		ExternalLink: n.ExternalLink,
		Position:     int64(position),
		ParentID:     parentID,
		ItemType:     itemType,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating navigation %q: %w", n.Name, err)
	}
	result.Navigations++

	taken := make(map[string]bool, len(n.Pages))
	for idx, p := range n.Pages {
		slug := p.Slug
		if !util.IsValidSlug(slug) || taken[slug] {
			slug, _ = util.UniqueSlug(p.Title, func(s string) (bool, error) {
				return taken[s], nil
			})
		}
		taken[slug] = true

		if _, err := q.CreatePage(ctx, store.CreatePageParams{
			NavigationID: row.ID,
			Title:        p.Title,
			Slug:         slug,
			Content:      p.Content,
			Position:     int64(idx),
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("creating page %q: %w", p.Title, err)
		}
		result.Pages++
	}

	parent := sql.NullInt64{Int64: row.ID, Valid: true}
	for idx, c := range n.Children {
		if err := importNode(ctx, q, c, parent, idx, now, result); err != nil {
			return err
		}
	}
	return nil
}

func countNodes(nodes []ExportNavigation) (navs, pages int) {
	for _, n := range nodes {
		navs++
		pages += len(n.Pages)
		cn, cp := countNodes(n.Children)
		navs += cn
		pages += cp
	}
	return navs, pages
}
