// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the store of record behind the navigation API:
// tree assembly, validated writes, page ranking and position compaction.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/olegiv/navedit/internal/cache"
	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/navtree"
	"github.com/olegiv/navedit/internal/store"
	"github.com/olegiv/navedit/internal/util"
)

// NavigationService provides tree loading and validated navigation writes.
// It uses cache.TreeCache for the assembled tree when one is configured.
type NavigationService struct {
	db      *sql.DB
	queries *store.Queries
	tree    *cache.TreeCache
	events  *EventService
	logger  *slog.Logger
}

// NewNavigationService creates a new NavigationService.
// If treeCache is nil, every read assembles the tree from the database.
func NewNavigationService(db *sql.DB, treeCache *cache.TreeCache, logger *slog.Logger) *NavigationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NavigationService{
		db:      db,
		queries: store.New(db),
		tree:    treeCache,
		events:  NewEventService(db),
		logger:  logger,
	}
}

// CreateNavigationInput holds the fields of a new navigation.
// A nil Position appends the node after its current siblings.
type CreateNavigationInput struct {
	Name         string
	URL          string
	Label        string
	ExternalLink string
	ParentID     *int64
	Position     *int
	ItemType     model.ItemType
}

// NavigationPatch is a partial update of a navigation. Placement changes
// only apply when Position is set or ParentSet is true; ParentSet with a
// nil ParentID moves the node to the root.
type NavigationPatch struct {
	Fields    model.NodeFields
	Position  *int
	ParentSet bool
	ParentID  *int64
}

// HasPlacement reports whether the patch moves the node.
func (p NavigationPatch) HasPlacement() bool {
	return p.Position != nil || p.ParentSet
}

// Tree returns the whole navigation forest ordered by position.
func (s *NavigationService) Tree(ctx context.Context) ([]model.Navigation, error) {
	if tree, ok := s.tree.Get(ctx); ok {
		return tree, nil
	}

	navs, err := s.queries.ListNavigations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing navigations: %w", err)
	}
	pages, err := s.queries.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	tree := buildTree(navs, pages)
	s.tree.Set(ctx, tree)
	return tree, nil
}

// Get returns a navigation with its subtree and pages.
func (s *NavigationService) Get(ctx context.Context, id int64) (model.Navigation, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return model.Navigation{}, err
	}
	n, ok := navtree.Find(tree, id)
	if !ok {
		return model.Navigation{}, ErrNavigationNotFound
	}
	return n, nil
}

// Create inserts a navigation and returns it as stored.
func (s *NavigationService) Create(ctx context.Context, in CreateNavigationInput) (model.Navigation, error) {
	if in.ItemType == "" {
		in.ItemType = model.ItemTypeNav
	}
	if !model.IsValidItemType(in.ItemType) {
		return model.Navigation{}, fmt.Errorf("%w: item_type %q", ErrInvalidInput, in.ItemType)
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Navigation{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Position != nil && *in.Position < 0 {
		return model.Navigation{}, fmt.Errorf("%w: position must not be negative", ErrInvalidInput)
	}

	if in.ParentID != nil {
		if err := s.checkContainer(ctx, *in.ParentID); err != nil {
			return model.Navigation{}, err
		}
	}

	parent := util.NullInt64FromPtr(in.ParentID)
	var position int64
	if in.Position != nil {
		position = int64(*in.Position)
	} else {
		next, err := s.queries.NextNavigationPosition(ctx, parent)
		if err != nil {
			return model.Navigation{}, fmt.Errorf("finding next position: %w", err)
		}
		position = next
	}

	now := time.Now()
	row, err := s.queries.CreateNavigation(ctx, store.CreateNavigationParams{
		Name:         in.Name,
		Url:          in.URL,
		Label:        in.Label,
		ExternalLink: in.ExternalLink,
		Position:     position,
		ParentID:     parent,
		ItemType:     string(in.ItemType),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Navigation{}, fmt.Errorf("creating navigation: %w", err)
	}
	s.tree.Invalidate(ctx)

	_ = s.events.LogNavigationEvent(ctx, "Navigation created", map[string]any{
		"navigation_id": row.ID,
		"name":          row.Name,
	})
	s.logger.Debug("navigation created", "navigation_id", row.ID, "position", row.Position)

	return navigationFromRow(row), nil
}

// Update applies a patch and returns the navigation with its subtree.
func (s *NavigationService) Update(ctx context.Context, id int64, patch NavigationPatch) (model.Navigation, error) {
	current, err := s.queries.GetNavigation(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Navigation{}, ErrNavigationNotFound
	}
	if err != nil {
		return model.Navigation{}, fmt.Errorf("loading navigation: %w", err)
	}

	if patch.Fields.Name != nil && strings.TrimSpace(*patch.Fields.Name) == "" {
		return model.Navigation{}, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if patch.Position != nil && *patch.Position < 0 {
		return model.Navigation{}, fmt.Errorf("%w: position must not be negative", ErrInvalidInput)
	}

	parentID := util.PtrFromNullInt64(current.ParentID)
	if patch.ParentSet {
		parentID = patch.ParentID
	}
	if patch.ParentSet && parentID != nil {
		if err := s.checkReparent(ctx, id, *parentID); err != nil {
			return model.Navigation{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Navigation{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	queries := s.queries.WithTx(tx)

	now := time.Now()
	if !patch.Fields.IsEmpty() {
		n := navigationFromRow(current)
		patch.Fields.Apply(&n)
		if _, err := queries.UpdateNavigation(ctx, store.UpdateNavigationParams{
			Name:         n.Name,
			Url:          n.URL,
			Label:        n.Label,
			ExternalLink: n.ExternalLink,
			UpdatedAt:    now,
			ID:           id,
		}); err != nil {
			return model.Navigation{}, fmt.Errorf("updating navigation: %w", err)
		}
	}

	if patch.HasPlacement() {
		position := current.Position
		switch {
		case patch.Position != nil:
			position = int64(*patch.Position)
		case !model.SameParent(parentID, util.PtrFromNullInt64(current.ParentID)):
			next, err := queries.NextNavigationPosition(ctx, util.NullInt64FromPtr(parentID))
			if err != nil {
				return model.Navigation{}, fmt.Errorf("finding next position: %w", err)
			}
			position = next
		}
		if _, err := queries.UpdateNavigationPlacement(ctx, store.UpdateNavigationPlacementParams{
			Position:  position,
			ParentID:  util.NullInt64FromPtr(parentID),
			UpdatedAt: now,
			ID:        id,
		}); err != nil {
			return model.Navigation{}, fmt.Errorf("moving navigation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Navigation{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.tree.Invalidate(ctx)

	return s.Get(ctx, id)
}

// Delete removes a navigation together with its subtree and pages.
func (s *NavigationService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteNavigation(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting navigation: %w", err)
	}
	if n == 0 {
		return ErrNavigationNotFound
	}
	s.tree.Invalidate(ctx)

	_ = s.events.LogNavigationEvent(ctx, "Navigation deleted", map[string]any{"navigation_id": id})
	return nil
}

// checkContainer verifies that id exists and may own children and pages.
func (s *NavigationService) checkContainer(ctx context.Context, id int64) error {
	parent, err := s.queries.GetNavigation(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: navigation %d does not exist", ErrInvalidParent, id)
	}
	if err != nil {
		return fmt.Errorf("loading parent: %w", err)
	}
	if model.ItemType(parent.ItemType) == model.ItemTypeMenu {
		return fmt.Errorf("%w: navigation %d is a menu", ErrInvalidParent, id)
	}
	return nil
}

// checkReparent rejects parents that would put id inside its own subtree.
func (s *NavigationService) checkReparent(ctx context.Context, id, parentID int64) error {
	if err := s.checkContainer(ctx, parentID); err != nil {
		return err
	}

	navs, err := s.queries.ListNavigations(ctx)
	if err != nil {
		return fmt.Errorf("listing navigations: %w", err)
	}
	parents := make(map[int64]sql.NullInt64, len(navs))
	for _, n := range navs {
		parents[n.ID] = n.ParentID
	}

	for cur, seen := parentID, 0; seen <= len(navs); seen++ {
		if cur == id {
			return fmt.Errorf("%w: navigation %d is inside the subtree of %d", ErrInvalidParent, parentID, id)
		}
		up := parents[cur]
		if !up.Valid {
			return nil
		}
		cur = up.Int64
	}
	return fmt.Errorf("%w: parent chain of %d has a cycle", ErrInvalidParent, parentID)
}

func navigationFromRow(row store.Navigation) model.Navigation {
	return model.Navigation{
		ID:           row.ID,
		Name:         row.Name,
		URL:          row.Url,
		Label:        row.Label,
		ExternalLink: row.ExternalLink,
		Position:     int(row.Position),
		ParentID:     util.PtrFromNullInt64(row.ParentID),
		ItemType:     model.ItemType(row.ItemType),
		Children:     []model.Navigation{},
		Pages:        []model.Page{},
	}
}

func pageFromRow(row store.Page) model.Page {
	return model.Page{
		ID:           row.ID,
		Title:        row.Title,
		Slug:         row.Slug,
		Position:     int(row.Position),
		NavigationID: row.NavigationID,
		Content:      row.Content,
	}
}

// buildTree converts flat rows to the nested forest.
func buildTree(navs []store.Navigation, pages []store.Page) []model.Navigation {
	itemMap := make(map[int64]*model.Navigation, len(navs))
	childIDs := make(map[int64][]int64) // parent ID -> child IDs
	var rootIDs []int64

	// First pass: create all nodes and record parent relationships
	for _, row := range navs {
		n := navigationFromRow(row)
		itemMap[row.ID] = &n
	}
	for _, row := range navs {
		if row.ParentID.Valid {
			if _, ok := itemMap[row.ParentID.Int64]; ok {
				childIDs[row.ParentID.Int64] = append(childIDs[row.ParentID.Int64], row.ID)
				continue
			}
		}
		rootIDs = append(rootIDs, row.ID)
	}

	for _, row := range pages {
		if n := itemMap[row.NavigationID]; n != nil {
			n.Pages = append(n.Pages, pageFromRow(row))
		}
	}

	byPosition := func(ids []int64) {
		sort.SliceStable(ids, func(i, j int) bool {
			a, b := itemMap[ids[i]], itemMap[ids[j]]
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.ID < b.ID
		})
	}

	// Second pass: recursively copy children so deep nesting is populated
	var copyWithChildren func(id int64, prefix []string) model.Navigation
	copyWithChildren = func(id int64, prefix []string) model.Navigation {
		item := itemMap[id]
		result := *item
		segments := append(prefix[:len(prefix):len(prefix)], util.Slugify(item.Name))

		result.Pages = make([]model.Page, len(item.Pages))
		for i, p := range item.Pages {
			p.FullPath = util.SlugPath(append(segments[:len(segments):len(segments)], p.Slug)...)
			result.Pages[i] = p
		}
		sort.SliceStable(result.Pages, func(i, j int) bool {
			if result.Pages[i].Position != result.Pages[j].Position {
				return result.Pages[i].Position < result.Pages[j].Position
			}
			return result.Pages[i].ID < result.Pages[j].ID
		})

		ids := childIDs[id]
		byPosition(ids)
		result.Children = make([]model.Navigation, 0, len(ids))
		for _, childID := range ids {
			result.Children = append(result.Children, copyWithChildren(childID, segments))
		}
		return result
	}

	byPosition(rootIDs)
	roots := make([]model.Navigation, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, copyWithChildren(id, nil))
	}
	return roots
}
