// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navtree

import (
	"fmt"
	"slices"

	"github.com/olegiv/navedit/internal/model"
)

// FlattenAll walks the tree depth-first and returns one placement per
// persisted node, using the node's array index as its position and its
// structural parent as its parent. Unpersisted nodes and their subtrees are
// skipped; they still occupy their array slot.
func FlattenAll(tree []model.Navigation) []model.Placement {
	var out []model.Placement
	var walk func(nodes []model.Navigation, parentID *int64)
	walk = func(nodes []model.Navigation, parentID *int64) {
		for i, n := range nodes {
			if !n.IsPersisted() {
				continue
			}
			out = append(out, model.Placement{ID: n.ID, Position: i, ParentID: copyID(parentID)})
			walk(n.Children, model.Int64Ptr(n.ID))
		}
	}
	walk(tree, nil)
	return out
}

// Stored returns the placements as recorded in the nodes' own Position and
// ParentID fields, which is the last state known to the store.
func Stored(tree []model.Navigation) []model.Placement {
	var out []model.Placement
	var walk func(nodes []model.Navigation)
	walk = func(nodes []model.Navigation) {
		for _, n := range nodes {
			if !n.IsPersisted() {
				continue
			}
			out = append(out, model.Placement{ID: n.ID, Position: n.Position, ParentID: copyID(n.ParentID)})
			walk(n.Children)
		}
	}
	walk(tree)
	return out
}

// Changed returns every placement of after whose position or parent differs
// from before, in the order of after. Nodes missing from before are included.
func Changed(before, after []model.Placement) []model.Placement {
	prev := make(map[int64]model.Placement, len(before))
	for _, p := range before {
		prev[p.ID] = p
	}

	var out []model.Placement
	for _, p := range after {
		if old, ok := prev[p.ID]; ok && old.Equal(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MoveTargets returns the minimum set of placements to send after a move:
// the nodes whose array slot in after differs from what they recorded in before.
// An adjacent swap yields exactly the two swapped nodes.
func MoveTargets(before, after []model.Navigation) []model.Placement {
	return Changed(Stored(before), FlattenAll(after))
}

// DeriveTarget returns the placement of a single node from its current
// array index and structural parent.
func DeriveTarget(tree []model.Navigation, id int64) (model.Placement, error) {
	var walk func(nodes []model.Navigation, parentID *int64) (model.Placement, bool)
	walk = func(nodes []model.Navigation, parentID *int64) (model.Placement, bool) {
		for i, n := range nodes {
			if n.ID == id {
				return model.Placement{ID: n.ID, Position: i, ParentID: copyID(parentID)}, true
			}
			if p, ok := walk(n.Children, model.Int64Ptr(n.ID)); ok {
				return p, true
			}
		}
		return model.Placement{}, false
	}

	if id != 0 {
		if p, ok := walk(tree, nil); ok {
			return p, nil
		}
	}
	return model.Placement{}, fmt.Errorf("navigation %d: %w", id, ErrNotFound)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	return model.Int64Ptr(*id)
}

// ApplyPlacements returns a copy of the tree in which every node named by a
// placement records that placement's position. Structure is not changed.
func ApplyPlacements(tree []model.Navigation, placements []model.Placement) []model.Navigation {
	if len(placements) == 0 {
		return tree
	}
	byID := make(map[int64]int, len(placements))
	for _, p := range placements {
		byID[p.ID] = p.Position
	}

	var walk func(nodes []model.Navigation) []model.Navigation
	walk = func(nodes []model.Navigation) []model.Navigation {
		out := slices.Clone(nodes)
		for i := range out {
			if pos, ok := byID[out[i].ID]; ok && out[i].IsPersisted() {
				out[i].Position = pos
			}
			if len(out[i].Children) > 0 {
				out[i].Children = walk(out[i].Children)
			}
		}
		return out
	}
	return walk(tree)
}
