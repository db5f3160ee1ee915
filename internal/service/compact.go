// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/store"
)

// CompactPositions renumbers every sibling group of navigations and pages to
// 0..n-1, keeping their relative order. Deletes leave gaps that this closes.
// It returns the number of rows rewritten.
func (s *NavigationService) CompactPositions(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	queries := s.queries.WithTx(tx)

	navs, err := queries.ListNavigations(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing navigations: %w", err)
	}
	pages, err := queries.ListPages(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing pages: %w", err)
	}

	changed := 0

	// Rows arrive grouped by parent and ordered by position within a group.
	next := make(map[int64]int64)
	var nextRoot int64
	for _, n := range navs {
		var want int64
		if n.ParentID.Valid {
			want = next[n.ParentID.Int64]
			next[n.ParentID.Int64]++
		} else {
			want = nextRoot
			nextRoot++
		}
		if n.Position == want {
			continue
		}
		if err := queries.UpdateNavigationPosition(ctx, store.UpdateNavigationPositionParams{
			Position: want,
			ID:       n.ID,
		}); err != nil {
			return 0, fmt.Errorf("updating navigation position: %w", err)
		}
		changed++
	}

	nextPage := make(map[int64]int64)
	for _, p := range pages {
		want := nextPage[p.NavigationID]
		nextPage[p.NavigationID]++
		if p.Position == want {
			continue
		}
		if err := queries.UpdatePagePosition(ctx, store.UpdatePagePositionParams{
			Position: want,
			ID:       p.ID,
		}); err != nil {
			return 0, fmt.Errorf("updating page position: %w", err)
		}
		changed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if changed > 0 {
		s.tree.Invalidate(ctx)
		s.logger.Info("positions compacted", "category", model.EventCategoryNavigation, "rows", changed)
	}
	return changed, nil
}
