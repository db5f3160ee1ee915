// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package navtree implements lookups, pure mutations and position flattening
// over a forest of navigation nodes.
//
// Every function takes the root-level sequence and returns a new one; inputs
// are never modified. Unchanged subtrees are shared between the old and the
// new tree, so callers must treat returned trees as read-only too.
package navtree

import "github.com/olegiv/navedit/internal/model"

// Find returns the first node with the given id in depth-first order.
// Pages are not searched.
func Find(tree []model.Navigation, id int64) (model.Navigation, bool) {
	if id == 0 {
		return model.Navigation{}, false
	}
	for _, n := range tree {
		if n.ID == id {
			return n, true
		}
		if found, ok := Find(n.Children, id); ok {
			return found, true
		}
	}
	return model.Navigation{}, false
}

// FindByKey returns the node carrying the given client key.
func FindByKey(tree []model.Navigation, key string) (model.Navigation, bool) {
	if key == "" {
		return model.Navigation{}, false
	}
	for _, n := range tree {
		if n.ClientKey == key {
			return n, true
		}
		if found, ok := FindByKey(n.Children, key); ok {
			return found, true
		}
	}
	return model.Navigation{}, false
}

// Path returns the ids of the ancestors of id, root first.
// A root-level node has an empty, non-nil path.
func Path(tree []model.Navigation, id int64) ([]int64, bool) {
	if id == 0 {
		return nil, false
	}
	var walk func(nodes []model.Navigation, ancestors []int64) ([]int64, bool)
	walk = func(nodes []model.Navigation, ancestors []int64) ([]int64, bool) {
		for _, n := range nodes {
			if n.ID == id {
				out := make([]int64, len(ancestors))
				copy(out, ancestors)
				return out, true
			}
			if p, ok := walk(n.Children, append(ancestors, n.ID)); ok {
				return p, true
			}
		}
		return nil, false
	}
	return walk(tree, make([]int64, 0, 4))
}

// FindPage returns a page of the given navigation.
func FindPage(tree []model.Navigation, navID, pageID int64) (model.Page, bool) {
	nav, ok := Find(tree, navID)
	if !ok {
		return model.Page{}, false
	}
	for _, p := range nav.Pages {
		if p.ID == pageID {
			return p, true
		}
	}
	return model.Page{}, false
}

// Walk visits every node depth-first together with its structural parent id.
func Walk(tree []model.Navigation, fn func(n model.Navigation, parentID *int64)) {
	var walk func(nodes []model.Navigation, parentID *int64)
	walk = func(nodes []model.Navigation, parentID *int64) {
		for _, n := range nodes {
			fn(n, parentID)
			walk(n.Children, model.Int64Ptr(n.ID))
		}
	}
	walk(tree, nil)
}

// Count returns the number of nodes in the forest.
func Count(tree []model.Navigation) int {
	total := 0
	Walk(tree, func(model.Navigation, *int64) { total++ })
	return total
}

func indexOf(nodes []model.Navigation, id int64) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func pageIndex(pages []model.Page, id int64) int {
	for i, p := range pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// subtreeContains reports whether id is n itself or one of its descendants.
func subtreeContains(n model.Navigation, id int64) bool {
	if n.ID == id {
		return true
	}
	_, ok := Find(n.Children, id)
	return ok
}
