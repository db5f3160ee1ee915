// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type Navigation struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Url          string        `json:"url"`
	Label        string        `json:"label"`
	ExternalLink string        `json:"external_link"`
	Position     int64         `json:"position"`
	ParentID     sql.NullInt64 `json:"navigation_parent_id"`
	ItemType     string        `json:"item_type"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Page struct {
	ID           int64     `json:"id"`
	NavigationID int64     `json:"navigation_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Content      string    `json:"content"`
	Position     int64     `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
