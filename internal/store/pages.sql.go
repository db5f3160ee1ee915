// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const pageColumns = `id, navigation_id, title, slug, content, position, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (Page, error) {
	var i Page
	err := row.Scan(
		&i.ID,
		&i.NavigationID,
		&i.Title,
		&i.Slug,
		&i.Content,
		&i.Position,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listPages(ctx context.Context, query string, args ...any) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Page
	for rows.Next() {
		i, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPage = `-- name: CreatePage :one
INSERT INTO pages (navigation_id, title, slug, content, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + pageColumns

type CreatePageParams struct {
	NavigationID int64     `json:"navigation_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Content      string    `json:"content"`
	Position     int64     `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, createPage,
		arg.NavigationID,
		arg.Title,
		arg.Slug,
		arg.Content,
		arg.Position,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanPage(row)
}

const getPage = `-- name: GetPage :one
SELECT ` + pageColumns + ` FROM pages WHERE id = ? AND navigation_id = ?`

type GetPageParams struct {
	ID           int64 `json:"id"`
	NavigationID int64 `json:"navigation_id"`
}

func (q *Queries) GetPage(ctx context.Context, arg GetPageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, getPage, arg.ID, arg.NavigationID)
	return scanPage(row)
}

const listPages = `-- name: ListPages :many
SELECT ` + pageColumns + ` FROM pages ORDER BY navigation_id, position, id`

func (q *Queries) ListPages(ctx context.Context) ([]Page, error) {
	return q.listPages(ctx, listPages)
}

const listPagesByNavigation = `-- name: ListPagesByNavigation :many
SELECT ` + pageColumns + ` FROM pages WHERE navigation_id = ? ORDER BY position, id`

func (q *Queries) ListPagesByNavigation(ctx context.Context, navigationID int64) ([]Page, error) {
	return q.listPages(ctx, listPagesByNavigation, navigationID)
}

const nextPagePosition = `-- name: NextPagePosition :one
SELECT COALESCE(MAX(position) + 1, 0) FROM pages WHERE navigation_id = ?`

func (q *Queries) NextPagePosition(ctx context.Context, navigationID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, nextPagePosition, navigationID)
	var position int64
	err := row.Scan(&position)
	return position, err
}

const pageSlugExists = `-- name: PageSlugExists :one
SELECT COUNT(*) FROM pages WHERE navigation_id = ? AND slug = ? AND id != ?`

type PageSlugExistsParams struct {
	NavigationID int64  `json:"navigation_id"`
	Slug         string `json:"slug"`
	ExcludeID    int64  `json:"exclude_id"`
}

func (q *Queries) PageSlugExists(ctx context.Context, arg PageSlugExistsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, pageSlugExists, arg.NavigationID, arg.Slug, arg.ExcludeID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updatePage = `-- name: UpdatePage :one
UPDATE pages SET title = ?, slug = ?, content = ?, updated_at = ?
WHERE id = ?
RETURNING ` + pageColumns

type UpdatePageParams struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, updatePage,
		arg.Title,
		arg.Slug,
		arg.Content,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanPage(row)
}

const updatePagePosition = `-- name: UpdatePagePosition :exec
UPDATE pages SET position = ? WHERE id = ?`

type UpdatePagePositionParams struct {
	Position int64 `json:"position"`
	ID       int64 `json:"id"`
}

func (q *Queries) UpdatePagePosition(ctx context.Context, arg UpdatePagePositionParams) error {
	_, err := q.db.ExecContext(ctx, updatePagePosition, arg.Position, arg.ID)
	return err
}

const deletePage = `-- name: DeletePage :execrows
DELETE FROM pages WHERE id = ? AND navigation_id = ?`

type DeletePageParams struct {
	ID           int64 `json:"id"`
	NavigationID int64 `json:"navigation_id"`
}

func (q *Queries) DeletePage(ctx context.Context, arg DeletePageParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePage, arg.ID, arg.NavigationID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
