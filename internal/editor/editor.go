// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor exposes one method per editing intent on a navigation tree.
// Every method applies the change to the local snapshot first and then
// dispatches the matching remote writes.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/navsync"
	"github.com/olegiv/navedit/internal/navtree"
)

// Config holds editor configuration.
type Config struct {
	// CompactOnDelete re-ranks the surviving siblings after a delete instead
	// of leaving a position gap for the next move to close.
	CompactOnDelete bool `env:"COMPACT_ON_DELETE" envDefault:"false"`
}

// PendingKind tells what a pending creation will produce.
type PendingKind string

// Pending kinds
const (
	PendingNavigation PendingKind = "navigation"
	PendingPage       PendingKind = "page"
)

// Pending is a creation sent to the store and not yet confirmed.
// Pending entries are not part of the tree.
type Pending struct {
	Key          string
	Kind         PendingKind
	ParentID     *int64 // navigation creations
	NavigationID int64  // page creations
	Position     int
	IssuedAt     time.Time
}

// Editor owns the local tree snapshot. All methods are safe for concurrent
// use; confirmations from the store arrive on other goroutines.
type Editor struct {
	mu      sync.Mutex
	tree    []model.Navigation
	pending map[string]Pending

	sync   *navsync.Controller
	logger *slog.Logger
	cfg    Config
}

// New creates an editor over an initial tree. The tree is copied.
func New(ctrl *navsync.Controller, tree []model.Navigation, logger *slog.Logger, cfg Config) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		tree:    model.CloneTree(tree),
		pending: make(map[string]Pending),
		sync:    ctrl,
		logger:  logger,
		cfg:     cfg,
	}
}

// Tree returns a copy of the current local snapshot.
func (e *Editor) Tree() []model.Navigation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.CloneTree(e.tree)
}

// Pending returns the unconfirmed creations, oldest first.
func (e *Editor) Pending() []Pending {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Pending, 0, len(e.pending))
	for _, p := range e.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IssuedAt.Equal(out[j].IssuedAt) {
			return out[i].Key < out[j].Key
		}
		return out[i].IssuedAt.Before(out[j].IssuedAt)
	})
	return out
}

// Reload replaces the local snapshot with the tree held by the store.
// Pending creations keep running and are merged when confirmed.
func (e *Editor) Reload(ctx context.Context) error {
	tree, err := e.sync.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading tree: %w", err)
	}

	e.mu.Lock()
	e.tree = tree
	e.mu.Unlock()

	e.logger.Info("navigation tree reloaded", "nodes", navtree.Count(tree))
	return nil
}

// Wait blocks until every dispatched remote write has finished.
func (e *Editor) Wait() {
	e.sync.Wait()
}

// AddNode asks the store to create a placeholder node under parentID (the
// root when nil). The node joins the local tree once the store confirms it,
// carrying the task key as its client key.
func (e *Editor) AddNode(parentID *int64) (*navsync.Task[model.Navigation], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	siblings := e.tree
	if parentID != nil {
		parent, ok := navtree.Find(e.tree, *parentID)
		if !ok {
			return nil, fmt.Errorf("adding node: navigation %d: %w", *parentID, navtree.ErrNotFound)
		}
		if !parent.CanContain() {
			return nil, fmt.Errorf("adding node: %w: navigation %d is a MENU node", navtree.ErrInvalidParent, parent.ID)
		}
		siblings = parent.Children
	}

	taken := make([]int, len(siblings))
	for i, n := range siblings {
		taken[i] = n.Position
	}
	position := e.nextPosition(PendingNavigation, parentID, 0, taken)

	var key string
	task := e.sync.CreateNode(parentID, position, func(created model.Navigation, err error) {
		e.confirmNode(key, parentID, created, err)
	})
	key = task.Key
	e.pending[key] = Pending{
		Key:      key,
		Kind:     PendingNavigation,
		ParentID: parentID,
		Position: position,
		IssuedAt: time.Now(),
	}
	return task, nil
}

// UpdateNode merges fields into a node and sends them to the store.
// An empty update sends nothing.
func (e *Editor) UpdateNode(id int64, fields model.NodeFields) (*navsync.Task[model.Navigation], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := navtree.UpdateNode(e.tree, id, fields)
	if err != nil {
		return nil, fmt.Errorf("updating node: %w", err)
	}
	e.tree = tree

	if fields.IsEmpty() {
		node, _ := navtree.Find(tree, id)
		return navsync.Completed("update_navigation", node, nil), nil
	}
	return e.sync.UpdateNode(id, fields, nil), nil
}

// DeleteNode removes a node and its subtree locally and issues one remote
// delete; the store removes the descendants. With CompactOnDelete the
// surviving siblings are re-ranked and their new positions sent as well.
func (e *Editor) DeleteNode(id int64) (*navsync.Task[struct{}], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := navtree.DeleteNode(e.tree, id)
	if err != nil {
		return nil, fmt.Errorf("deleting node: %w", err)
	}

	task := e.sync.DeleteNode(id, nil)

	if e.cfg.CompactOnDelete {
		targets := navtree.MoveTargets(tree, tree)
		tree = navtree.ApplyPlacements(tree, targets)
		if len(targets) > 0 {
			e.sync.MoveNodes(targets, nil)
		}
	}
	e.tree = tree
	return task, nil
}

// MoveNode swaps a node with its neighbour in dir inside the sibling set of
// parentID and sends one position patch per node whose slot changed.
func (e *Editor) MoveNode(id int64, dir navtree.Direction, parentID *int64) (*navsync.Task[[]model.Navigation], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := navtree.MoveNode(e.tree, id, dir, parentID)
	if err != nil {
		return nil, fmt.Errorf("moving node: %w", err)
	}
	targets := navtree.MoveTargets(e.tree, tree)
	e.tree = tree

	return e.sync.MoveNodes(targets, nil), nil
}

// ReparentNode appends a node to the children of newParentID (the root when
// nil). Only the moved node's placement is sent.
func (e *Editor) ReparentNode(id int64, newParentID *int64) (*navsync.Task[[]model.Navigation], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := navtree.ReparentNode(e.tree, id, newParentID)
	if err != nil {
		return nil, fmt.Errorf("reparenting node: %w", err)
	}

	// The moved node records its slot after the highest sibling, which can
	// lie past its array index when the new siblings carry a gap.
	var targets []model.Placement
	before, _ := navtree.DeriveTarget(e.tree, id)
	after, err := navtree.DeriveTarget(tree, id)
	if err != nil {
		return nil, fmt.Errorf("reparenting node: %w", err)
	}
	if !model.SameParent(before.ParentID, after.ParentID) {
		moved, _ := navtree.Find(tree, id)
		after.Position = moved.Position
		targets = append(targets, after)
	}
	e.tree = tree

	return e.sync.MoveNodes(targets, nil), nil
}

// AddPage asks the store to create a placeholder page under a navigation.
// The page joins the local tree at its stored position once confirmed.
func (e *Editor) AddPage(navID int64) (*navsync.Task[model.Page], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	nav, ok := navtree.Find(e.tree, navID)
	if !ok {
		return nil, fmt.Errorf("adding page: navigation %d: %w", navID, navtree.ErrNotFound)
	}
	if !nav.CanContain() {
		return nil, fmt.Errorf("adding page: %w: navigation %d is a MENU node", navtree.ErrInvalidParent, navID)
	}

	taken := make([]int, len(nav.Pages))
	for i, p := range nav.Pages {
		taken[i] = p.Position
	}
	position := e.nextPosition(PendingPage, nil, navID, taken)

	var key string
	task := e.sync.CreatePage(navID, func(created model.Page, err error) {
		e.confirmPage(key, navID, created, err)
	})
	key = task.Key
	e.pending[key] = Pending{
		Key:          key,
		Kind:         PendingPage,
		NavigationID: navID,
		Position:     position,
		IssuedAt:     time.Now(),
	}
	return task, nil
}

// DeletePage removes a page locally and issues a remote delete.
func (e *Editor) DeletePage(navID, pageID int64) (*navsync.Task[struct{}], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := navtree.DeletePage(e.tree, navID, pageID)
	if err != nil {
		return nil, fmt.Errorf("deleting page: %w", err)
	}
	e.tree = tree
	return e.sync.DeletePage(navID, pageID, nil), nil
}

// MovePage asks the store to move a page one step in dir. The local page
// order is replaced by the order the store confirms. A page at the
// boundary sends nothing.
func (e *Editor) MovePage(navID, pageID int64, dir navtree.Direction) (*navsync.Task[model.Navigation], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	target, ok, err := navtree.PageMoveTarget(e.tree, navID, pageID, dir)
	if err != nil {
		return nil, fmt.Errorf("moving page: %w", err)
	}
	if !ok {
		nav, _ := navtree.Find(e.tree, navID)
		return navsync.Completed("move_page", nav, nil), nil
	}

	return e.sync.MovePage(navID, pageID, target, func(nav model.Navigation, err error) {
		if err != nil {
			return
		}
		e.confirmPageOrder(navID, nav.Pages)
	}), nil
}

// nextPosition returns one past the highest position among taken and the
// pending creations of kind aimed at the same container, or 0 when there
// are none. Gaps left by deletes are never refilled. Callers hold e.mu.
func (e *Editor) nextPosition(kind PendingKind, parentID *int64, navID int64, taken []int) int {
	highest := -1
	for _, pos := range taken {
		highest = max(highest, pos)
	}
	for _, p := range e.pending {
		if p.Kind != kind {
			continue
		}
		if kind == PendingNavigation && model.SameParent(p.ParentID, parentID) {
			highest = max(highest, p.Position)
		}
		if kind == PendingPage && p.NavigationID == navID {
			highest = max(highest, p.Position)
		}
	}
	return highest + 1
}
