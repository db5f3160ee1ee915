// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/navtree"
)

// confirmNode merges a node confirmed by the store into the local tree at
// the position the store recorded. Confirmations may arrive in any order.
func (e *Editor) confirmNode(key string, parentID *int64, created model.Navigation, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.pending, key)
	if err != nil {
		return
	}
	if !created.IsPersisted() {
		e.logger.Warn("store confirmed navigation without id", "category", model.EventCategorySync)
		return
	}
	if _, exists := navtree.Find(e.tree, created.ID); exists {
		return
	}

	created.ClientKey = key
	tree, err := navtree.InsertChild(e.tree, parentID, created)
	if err != nil {
		e.logger.Warn("confirmed navigation has no local parent",
			"category", model.EventCategorySync,
			"navigation_id", created.ID,
			"error", err)
		return
	}
	e.tree = tree
}

// confirmPage places a page confirmed by the store at its stored position.
func (e *Editor) confirmPage(key string, navID int64, created model.Page, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.pending, key)
	if err != nil {
		return
	}
	if created.ID == 0 {
		e.logger.Warn("store confirmed page without id", "category", model.EventCategorySync)
		return
	}
	if _, exists := navtree.FindPage(e.tree, navID, created.ID); exists {
		return
	}

	tree, err := navtree.InsertPage(e.tree, navID, created)
	if err != nil {
		e.logger.Warn("confirmed page has no local navigation",
			"category", model.EventCategorySync,
			"navigation_id", navID,
			"page_id", created.ID,
			"error", err)
		return
	}
	e.tree = tree
}

// confirmPageOrder replaces a navigation's pages with the order the store
// recomputed.
func (e *Editor) confirmPageOrder(navID int64, pages []model.Page) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := navtree.ReplacePages(e.tree, navID, pages)
	if err != nil {
		e.logger.Warn("page order confirmed for missing navigation",
			"category", model.EventCategorySync,
			"navigation_id", navID,
			"error", err)
		return
	}
	e.tree = tree
}
