// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/store"
	"github.com/olegiv/navedit/internal/util"
)

// PagePatch is a partial update of a page. Setting Title re-derives the slug.
type PagePatch struct {
	Title    *string
	Content  *string
	Position *int
}

// GetPage returns a page of a navigation.
func (s *NavigationService) GetPage(ctx context.Context, navID, pageID int64) (model.Page, error) {
	row, err := s.queries.GetPage(ctx, store.GetPageParams{ID: pageID, NavigationID: navID})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Page{}, ErrPageNotFound
	}
	if err != nil {
		return model.Page{}, fmt.Errorf("loading page: %w", err)
	}
	return pageFromRow(row), nil
}

// CreatePage appends a page to a navigation. The slug is derived from the
// title and made unique among the navigation's pages.
func (s *NavigationService) CreatePage(ctx context.Context, navID int64, title, content string) (model.Page, error) {
	if err := s.checkContainer(ctx, navID); err != nil {
		if errors.Is(err, ErrInvalidParent) {
			if _, getErr := s.queries.GetNavigation(ctx, navID); errors.Is(getErr, sql.ErrNoRows) {
				return model.Page{}, ErrNavigationNotFound
			}
		}
		return model.Page{}, err
	}
	if title == "" {
		title = model.PlaceholderPageTitle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Page{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	queries := s.queries.WithTx(tx)

	slug, err := uniquePageSlug(ctx, queries, navID, 0, title)
	if err != nil {
		return model.Page{}, err
	}
	position, err := queries.NextPagePosition(ctx, navID)
	if err != nil {
		return model.Page{}, fmt.Errorf("finding next page position: %w", err)
	}

	now := time.Now()
	row, err := queries.CreatePage(ctx, store.CreatePageParams{
		NavigationID: navID,
		Title:        title,
		Slug:         slug,
		Content:      content,
		Position:     position,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Page{}, fmt.Errorf("creating page: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Page{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.tree.Invalidate(ctx)

	_ = s.events.LogPageEvent(ctx, "Page created", map[string]any{
		"navigation_id": navID,
		"page_id":       row.ID,
		"slug":          row.Slug,
	})

	page := pageFromRow(row)
	if n, err := s.Get(ctx, navID); err == nil {
		for _, p := range n.Pages {
			if p.ID == page.ID {
				page.FullPath = p.FullPath
			}
		}
	}
	return page, nil
}

// UpdatePage patches a page and returns its navigation with the resulting
// page order. A position change re-ranks the siblings so positions stay a
// permutation of 0..n-1; out of range targets are clamped.
func (s *NavigationService) UpdatePage(ctx context.Context, navID, pageID int64, patch PagePatch) (model.Navigation, error) {
	if patch.Position != nil && *patch.Position < 0 {
		return model.Navigation{}, fmt.Errorf("%w: position must not be negative", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Navigation{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	queries := s.queries.WithTx(tx)

	current, err := queries.GetPage(ctx, store.GetPageParams{ID: pageID, NavigationID: navID})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Navigation{}, ErrPageNotFound
	}
	if err != nil {
		return model.Navigation{}, fmt.Errorf("loading page: %w", err)
	}

	if patch.Title != nil || patch.Content != nil {
		params := store.UpdatePageParams{
			Title:     current.Title,
			Slug:      current.Slug,
			Content:   current.Content,
			UpdatedAt: time.Now(),
			ID:        pageID,
		}
		if patch.Title != nil && *patch.Title != current.Title {
			params.Title = *patch.Title
			if params.Slug, err = uniquePageSlug(ctx, queries, navID, pageID, params.Title); err != nil {
				return model.Navigation{}, err
			}
		}
		if patch.Content != nil {
			params.Content = *patch.Content
		}
		if _, err := queries.UpdatePage(ctx, params); err != nil {
			return model.Navigation{}, fmt.Errorf("updating page: %w", err)
		}
	}

	if patch.Position != nil {
		if err := rankPage(ctx, queries, navID, pageID, *patch.Position); err != nil {
			return model.Navigation{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Navigation{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.tree.Invalidate(ctx)

	return s.Get(ctx, navID)
}

// DeletePage removes a page. Remaining siblings keep their positions.
func (s *NavigationService) DeletePage(ctx context.Context, navID, pageID int64) error {
	n, err := s.queries.DeletePage(ctx, store.DeletePageParams{ID: pageID, NavigationID: navID})
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	if n == 0 {
		return ErrPageNotFound
	}
	s.tree.Invalidate(ctx)

	_ = s.events.LogPageEvent(ctx, "Page deleted", map[string]any{
		"navigation_id": navID,
		"page_id":       pageID,
	})
	return nil
}

// rankPage moves pageID to target among its siblings and rewrites every
// position that changed.
func rankPage(ctx context.Context, queries *store.Queries, navID, pageID int64, target int) error {
	rows, err := queries.ListPagesByNavigation(ctx, navID)
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}

	order := make([]store.Page, 0, len(rows))
	var moved store.Page
	for _, r := range rows {
		if r.ID == pageID {
			moved = r
			continue
		}
		order = append(order, r)
	}
	if target > len(order) {
		target = len(order)
	}
	order = append(order[:target], append([]store.Page{moved}, order[target:]...)...)

	for i, p := range order {
		if p.Position == int64(i) {
			continue
		}
		if err := queries.UpdatePagePosition(ctx, store.UpdatePagePositionParams{
			Position: int64(i),
			ID:       p.ID,
		}); err != nil {
			return fmt.Errorf("updating page position: %w", err)
		}
	}
	return nil
}

func uniquePageSlug(ctx context.Context, queries *store.Queries, navID, excludeID int64, title string) (string, error) {
	slug, err := util.UniqueSlug(title, func(slug string) (bool, error) {
		n, err := queries.PageSlugExists(ctx, store.PageSlugExistsParams{
			NavigationID: navID,
			Slug:         slug,
			ExcludeID:    excludeID,
		})
		return n > 0, err
	})
	if err != nil {
		return "", fmt.Errorf("deriving slug: %w", err)
	}
	return slug, nil
}
