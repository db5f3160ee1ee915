// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package navsync turns local navigation mutations into remote writes
// against the store of record and hands confirmed snapshots back to the caller.
package navsync

import (
	"context"

	"github.com/olegiv/navedit/internal/model"
)

// Transport is the request/response contract of the store of record.
// Implementations decode the server snapshot into out when out is non-nil.
// A Transport is shared by all tasks and must be safe for concurrent use.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// CreateNavigationRequest is the body of POST /navigations.
type CreateNavigationRequest struct {
	Name     string         `json:"name"`
	ParentID *int64         `json:"navigation_parent_id,omitempty"`
	Position int            `json:"position"`
	ItemType model.ItemType `json:"item_type,omitempty"`
}

// MoveNavigationRequest is the body of a node move. A nil ParentID is sent
// as an explicit null so the store moves the node to the root.
type MoveNavigationRequest struct {
	Position int    `json:"position"`
	ParentID *int64 `json:"navigation_parent_id"`
}

// CreatePageRequest is the body of POST /navigations/{id}/pages.
type CreatePageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MovePageRequest is the body of a page move.
type MovePageRequest struct {
	Position int `json:"position"`
}
