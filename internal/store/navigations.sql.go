// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const navigationColumns = `id, name, url, label, external_link, position, navigation_parent_id, item_type, created_at, updated_at`

func scanNavigation(row interface{ Scan(...any) error }) (Navigation, error) {
	var i Navigation
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Url,
		&i.Label,
		&i.ExternalLink,
		&i.Position,
		&i.ParentID,
		&i.ItemType,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createNavigation = `-- name: CreateNavigation :one
INSERT INTO navigations (name, url, label, external_link, position, navigation_parent_id, item_type, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + navigationColumns

type CreateNavigationParams struct {
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

func (q *Queries) CreateNavigation(ctx context.Context, arg CreateNavigationParams) (Navigation, error) {
	row := q.db.QueryRowContext(ctx, createNavigation,
		arg.Name,
		arg.Url,
		arg.Label,
		arg.ExternalLink,
		arg.Position,
		arg.ParentID,
		arg.ItemType,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanNavigation(row)
}

const getNavigation = `-- name: GetNavigation :one
SELECT ` + navigationColumns + ` FROM navigations WHERE id = ?`

func (q *Queries) GetNavigation(ctx context.Context, id int64) (Navigation, error) {
	row := q.db.QueryRowContext(ctx, getNavigation, id)
	return scanNavigation(row)
}

const listNavigations = `-- name: ListNavigations :many
SELECT ` + navigationColumns + ` FROM navigations
ORDER BY navigation_parent_id IS NOT NULL, navigation_parent_id, position, id`

func (q *Queries) ListNavigations(ctx context.Context) ([]Navigation, error) {
	rows, err := q.db.QueryContext(ctx, listNavigations)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Navigation
	for rows.Next() {
		i, err := scanNavigation(rows)
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

const countNavigationSiblings = `-- name: CountNavigationSiblings :one
SELECT COUNT(*) FROM navigations WHERE navigation_parent_id IS ?`

func (q *Queries) CountNavigationSiblings(ctx context.Context, parentID sql.NullInt64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countNavigationSiblings, parentID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const nextNavigationPosition = `-- name: NextNavigationPosition :one
SELECT COALESCE(MAX(position) + 1, 0) FROM navigations WHERE navigation_parent_id IS ?`

func (q *Queries) NextNavigationPosition(ctx context.Context, parentID sql.NullInt64) (int64, error) {
	row := q.db.QueryRowContext(ctx, nextNavigationPosition, parentID)
	var position int64
	err := row.Scan(&position)
	return position, err
}

const updateNavigation = `-- name: UpdateNavigation :one
UPDATE navigations
SET name = ?, url = ?, label = ?, external_link = ?, updated_at = ?
WHERE id = ?
RETURNING ` + navigationColumns

type UpdateNavigationParams struct {
	Name         string    `json:"name"`
	Url          string    `json:"url"`
	Label        string    `json:"label"`
	ExternalLink string    `json:"external_link"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           int64     `json:"id"`
}

func (q *Queries) UpdateNavigation(ctx context.Context, arg UpdateNavigationParams) (Navigation, error) {
	row := q.db.QueryRowContext(ctx, updateNavigation,
		arg.Name,
		arg.Url,
		arg.Label,
		arg.ExternalLink,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanNavigation(row)
}

const updateNavigationPlacement = `-- name: UpdateNavigationPlacement :one
UPDATE navigations
SET position = ?, navigation_parent_id = ?, updated_at = ?
WHERE id = ?
RETURNING ` + navigationColumns

type UpdateNavigationPlacementParams struct {
	Position  int64         `json:"position"`
	ParentID  sql.NullInt64 `json:"navigation_parent_id"`
	UpdatedAt time.Time     `json:"updated_at"`
	ID        int64         `json:"id"`
}

func (q *Queries) UpdateNavigationPlacement(ctx context.Context, arg UpdateNavigationPlacementParams) (Navigation, error) {
	row := q.db.QueryRowContext(ctx, updateNavigationPlacement,
		arg.Position,
		arg.ParentID,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanNavigation(row)
}

const updateNavigationPosition = `-- name: UpdateNavigationPosition :exec
UPDATE navigations SET position = ? WHERE id = ?`

type UpdateNavigationPositionParams struct {
	Position int64 `json:"position"`
	ID       int64 `json:"id"`
}

func (q *Queries) UpdateNavigationPosition(ctx context.Context, arg UpdateNavigationPositionParams) error {
	_, err := q.db.ExecContext(ctx, updateNavigationPosition, arg.Position, arg.ID)
	return err
}

const deleteNavigation = `-- name: DeleteNavigation :execrows
DELETE FROM navigations WHERE id = ?`

func (q *Queries) DeleteNavigation(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteNavigation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
