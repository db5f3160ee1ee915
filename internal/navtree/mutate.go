// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navtree

import (
	"fmt"
	"slices"

	"github.com/olegiv/navedit/internal/model"
)

// Direction is the direction of an adjacent-swap move.
type Direction string

// Move directions
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts a user-supplied string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// AddChild appends n to the root sequence when parentID is nil, or to the
// children of the node with parentID. The new node's position is one past
// the highest sibling position, so a gap left by a delete is never reused.
func AddChild(tree []model.Navigation, parentID *int64, n model.Navigation) ([]model.Navigation, error) {
	if n.IsMenu() && (len(n.Children) > 0 || len(n.Pages) > 0) {
		return tree, fmt.Errorf("%w: MENU node %q carries children or pages", ErrInvariantViolation, n.Name)
	}

	if parentID == nil {
		n.ParentID = nil
		n.Position = nextPosition(tree)
		out := make([]model.Navigation, 0, len(tree)+1)
		out = append(out, tree...)
		return append(out, n), nil
	}

	return modify(tree, *parentID, func(p *model.Navigation) error {
		if !p.CanContain() {
			return fmt.Errorf("%w: navigation %d is a MENU node", ErrInvalidParent, p.ID)
		}
		n.ParentID = model.Int64Ptr(p.ID)
		n.Position = nextPosition(p.Children)
		children := make([]model.Navigation, 0, len(p.Children)+1)
		children = append(children, p.Children...)
		p.Children = append(children, n)
		return nil
	})
}

// InsertChild places n among the root sequence when parentID is nil, or
// among the children of parentID, in order of n.Position. The position is
// kept as given and no sibling is renumbered. A node sharing a position with
// an existing sibling goes after it.
func InsertChild(tree []model.Navigation, parentID *int64, n model.Navigation) ([]model.Navigation, error) {
	if n.IsMenu() && (len(n.Children) > 0 || len(n.Pages) > 0) {
		return tree, fmt.Errorf("%w: MENU node %q carries children or pages", ErrInvariantViolation, n.Name)
	}

	if parentID == nil {
		n.ParentID = nil
		return insertByPosition(tree, n, func(s model.Navigation) int { return s.Position }), nil
	}

	return modify(tree, *parentID, func(p *model.Navigation) error {
		if !p.CanContain() {
			return fmt.Errorf("%w: navigation %d is a MENU node", ErrInvalidParent, p.ID)
		}
		n.ParentID = model.Int64Ptr(p.ID)
		p.Children = insertByPosition(p.Children, n, func(s model.Navigation) int { return s.Position })
		return nil
	})
}

// nextPosition returns one past the highest position in nodes, or 0.
func nextPosition(nodes []model.Navigation) int {
	next := 0
	for _, n := range nodes {
		next = max(next, n.Position+1)
	}
	return next
}

// insertByPosition returns a copy of seq with v placed before the first
// element whose position is greater than v's.
func insertByPosition[T any](seq []T, v T, position func(T) int) []T {
	idx := slices.IndexFunc(seq, func(s T) bool { return position(s) > position(v) })
	if idx < 0 {
		idx = len(seq)
	}
	return slices.Insert(slices.Clone(seq), idx, v)
}

// UpdateNode merges fields into the node with the given id.
// Identity, children and pages are never changed; an empty update returns
// the input tree unchanged.
func UpdateNode(tree []model.Navigation, id int64, fields model.NodeFields) ([]model.Navigation, error) {
	if _, ok := Find(tree, id); !ok {
		return tree, fmt.Errorf("navigation %d: %w", id, ErrNotFound)
	}
	if fields.IsEmpty() {
		return tree, nil
	}
	return modify(tree, id, func(n *model.Navigation) error {
		fields.Apply(n)
		return nil
	})
}

// DeleteNode removes the node with the given id and its whole subtree.
// Surviving siblings keep their positions, which leaves a gap until the
// sibling set is re-indexed by a later move or by Reindex.
func DeleteNode(tree []model.Navigation, id int64) ([]model.Navigation, error) {
	out, ok := remove(tree, id)
	if !ok {
		return tree, fmt.Errorf("navigation %d: %w", id, ErrNotFound)
	}
	return out, nil
}

// MoveNode swaps the node with its neighbour in the given direction inside
// the sibling sequence owned by parentID (the root sequence when nil).
// Moving the first node up or the last node down returns the tree unchanged.
// The affected sibling sequence is re-indexed so positions match array order.
func MoveNode(tree []model.Navigation, id int64, dir Direction, parentID *int64) ([]model.Navigation, error) {
	if dir != Up && dir != Down {
		return tree, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}

	moved := false
	swap := func(siblings []model.Navigation) ([]model.Navigation, error) {
		idx := indexOf(siblings, id)
		if idx < 0 || id == 0 {
			return siblings, fmt.Errorf("navigation %d among siblings: %w", id, ErrNotFound)
		}
		target := idx + 1
		if dir == Up {
			target = idx - 1
		}
		if target < 0 || target >= len(siblings) {
			return siblings, nil
		}
		out := slices.Clone(siblings)
		out[idx], out[target] = out[target], out[idx]
		reindex(out)
		moved = true
		return out, nil
	}

	if parentID == nil {
		out, err := swap(tree)
		if err != nil || !moved {
			return tree, err
		}
		return out, nil
	}

	out, err := modify(tree, *parentID, func(p *model.Navigation) error {
		children, err := swap(p.Children)
		if err != nil {
			return err
		}
		p.Children = children
		return nil
	})
	if err != nil || !moved {
		return tree, err
	}
	return out, nil
}

// ReparentNode detaches the node with the given id and appends it to the
// children of newParentID (the root sequence when nil). Reparenting onto the
// current parent is a no-op. The node's former siblings keep their positions.
func ReparentNode(tree []model.Navigation, id int64, newParentID *int64) ([]model.Navigation, error) {
	node, ok := Find(tree, id)
	if !ok {
		return tree, fmt.Errorf("navigation %d: %w", id, ErrNotFound)
	}
	ancestors, _ := Path(tree, id)
	var currentParent *int64
	if len(ancestors) > 0 {
		currentParent = model.Int64Ptr(ancestors[len(ancestors)-1])
	}
	if model.SameParent(currentParent, newParentID) {
		return tree, nil
	}

	if newParentID != nil {
		parent, ok := Find(tree, *newParentID)
		if !ok {
			return tree, fmt.Errorf("navigation %d: %w", *newParentID, ErrNotFound)
		}
		if subtreeContains(node, parent.ID) {
			return tree, fmt.Errorf("%w: navigation %d lies inside %d", ErrInvalidParent, parent.ID, id)
		}
		if !parent.CanContain() {
			return tree, fmt.Errorf("%w: navigation %d is a MENU node", ErrInvalidParent, parent.ID)
		}
	}

	detached, _ := remove(tree, id)
	return AddChild(detached, newParentID, node)
}

// Reindex returns a copy of the tree in which every child and page sequence
// has positions equal to its array order. It closes the gaps left by deletes.
func Reindex(tree []model.Navigation) []model.Navigation {
	out := model.CloneTree(tree)
	var walk func(nodes []model.Navigation)
	walk = func(nodes []model.Navigation) {
		reindex(nodes)
		for i := range nodes {
			for j := range nodes[i].Pages {
				nodes[i].Pages[j].Position = j
			}
			walk(nodes[i].Children)
		}
	}
	walk(out)
	return out
}

// InsertPage places a page among the pages of a navigation in order of its
// position, which is kept as given.
func InsertPage(tree []model.Navigation, navID int64, page model.Page) ([]model.Navigation, error) {
	return modify(tree, navID, func(n *model.Navigation) error {
		if !n.CanContain() {
			return fmt.Errorf("%w: navigation %d is a MENU node", ErrInvalidParent, n.ID)
		}
		page.NavigationID = n.ID
		n.Pages = insertByPosition(n.Pages, page, func(p model.Page) int { return p.Position })
		return nil
	})
}

// DeletePage removes a page from the navigation with the given id.
// Remaining pages keep their positions.
func DeletePage(tree []model.Navigation, navID, pageID int64) ([]model.Navigation, error) {
	return modify(tree, navID, func(n *model.Navigation) error {
		idx := pageIndex(n.Pages, pageID)
		if idx < 0 {
			return fmt.Errorf("page %d of navigation %d: %w", pageID, navID, ErrNotFound)
		}
		n.Pages = slices.Delete(slices.Clone(n.Pages), idx, idx+1)
		return nil
	})
}

// ReplacePages sets the page sequence of a navigation, typically with the
// order the store confirmed.
func ReplacePages(tree []model.Navigation, navID int64, pages []model.Page) ([]model.Navigation, error) {
	return modify(tree, navID, func(n *model.Navigation) error {
		n.Pages = slices.Clone(pages)
		return nil
	})
}

// PageMoveTarget returns the position a page would take when moved one step
// in dir. The boolean is false when the page already sits at the boundary.
// The tree itself is not changed: page order is recomputed by the store.
func PageMoveTarget(tree []model.Navigation, navID, pageID int64, dir Direction) (int, bool, error) {
	if dir != Up && dir != Down {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	nav, ok := Find(tree, navID)
	if !ok {
		return 0, false, fmt.Errorf("navigation %d: %w", navID, ErrNotFound)
	}
	idx := pageIndex(nav.Pages, pageID)
	if idx < 0 {
		return 0, false, fmt.Errorf("page %d of navigation %d: %w", pageID, navID, ErrNotFound)
	}
	target := idx + 1
	if dir == Up {
		target = idx - 1
	}
	if target < 0 || target >= len(nav.Pages) {
		return idx, false, nil
	}
	return target, true, nil
}

// modify copies the path from the root to the node with id and applies fn to
// the copy of that node. Slices reachable from the node are still shared, so
// fn must replace rather than write into them.
func modify(tree []model.Navigation, id int64, fn func(*model.Navigation) error) ([]model.Navigation, error) {
	if id == 0 {
		return tree, fmt.Errorf("navigation %d: %w", id, ErrNotFound)
	}
	out, found, err := modifyIn(tree, id, fn)
	if !found {
		return tree, fmt.Errorf("navigation %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return tree, err
	}
	return out, nil
}

func modifyIn(nodes []model.Navigation, id int64, fn func(*model.Navigation) error) ([]model.Navigation, bool, error) {
	for i := range nodes {
		if nodes[i].ID == id {
			out := slices.Clone(nodes)
			if err := fn(&out[i]); err != nil {
				return nodes, true, err
			}
			return out, true, nil
		}
		children, found, err := modifyIn(nodes[i].Children, id, fn)
		if !found {
			continue
		}
		if err != nil {
			return nodes, true, err
		}
		out := slices.Clone(nodes)
		out[i].Children = children
		return out, true, nil
	}
	return nodes, false, nil
}

func remove(nodes []model.Navigation, id int64) ([]model.Navigation, bool) {
	if id == 0 {
		return nodes, false
	}
	for i := range nodes {
		if nodes[i].ID == id {
			return slices.Delete(slices.Clone(nodes), i, i+1), true
		}
		if children, ok := remove(nodes[i].Children, id); ok {
			out := slices.Clone(nodes)
			out[i].Children = children
			return out, true
		}
	}
	return nodes, false
}

func reindex(nodes []model.Navigation) {
	for i := range nodes {
		nodes[i].Position = i
	}
}
