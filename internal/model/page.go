// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Page is a leaf content unit owned by exactly one navigation.
// Slug and FullPath are derived by the store and read-only to the editor.
type Page struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Position     int    `json:"position"`
	NavigationID int64  `json:"navigation_id"`
	Content      string `json:"content"`
	FullPath     string `json:"full_path"`
}
