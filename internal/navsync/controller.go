// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navsync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/olegiv/navedit/internal/model"
)

// Hook receives the outcome of a task before the task is marked done.
// It runs on the task goroutine.
type Hook[T any] func(result T, err error)

// Config holds controller configuration.
type Config struct {
	// RequestTimeout bounds every remote call (0 = no bound beyond the transport's).
	RequestTimeout time.Duration
}

// DefaultConfig returns default controller configuration.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 30 * time.Second,
	}
}

// Controller issues one remote write per affected entry and tracks every
// dispatched task. Writes are never retried; a failure is reported through
// the task and logged.
type Controller struct {
	transport Transport
	logger    *slog.Logger
	cfg       Config
	wg        sync.WaitGroup
}

// NewController creates a controller on top of the given transport.
func NewController(transport Transport, logger *slog.Logger, cfg Config) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		transport: transport,
		logger:    logger,
		cfg:       cfg,
	}
}

// Wait blocks until every task dispatched so far has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Load fetches the full navigation tree from the store.
func (c *Controller) Load(ctx context.Context) ([]model.Navigation, error) {
	var tree []model.Navigation
	if err := c.transport.Get(ctx, NavigationsPath(), &tree); err != nil {
		return nil, requestError(http.MethodGet, NavigationsPath(), err)
	}
	return tree, nil
}

// CreateNode posts a placeholder node. The local tree is expected to stay
// untouched until the store answers with the assigned id.
func (c *Controller) CreateNode(parentID *int64, position int, hook Hook[model.Navigation]) *Task[model.Navigation] {
	path := NavigationsPath()
	body := CreateNavigationRequest{
		Name:     model.PlaceholderNavigationName,
		ParentID: parentID,
		Position: position,
		ItemType: model.ItemTypeNav,
	}
	return spawn(c, "create_navigation", hook, func(ctx context.Context) (model.Navigation, error) {
		var created model.Navigation
		if err := c.transport.Post(ctx, path, body, &created); err != nil {
			return created, requestError(http.MethodPost, path, err)
		}
		return created, nil
	})
}

// UpdateNode patches the editable fields of a node.
func (c *Controller) UpdateNode(id int64, fields model.NodeFields, hook Hook[model.Navigation]) *Task[model.Navigation] {
	path := NavigationPath(id)
	return spawn(c, "update_navigation", hook, func(ctx context.Context) (model.Navigation, error) {
		var updated model.Navigation
		if err := c.transport.Patch(ctx, path, fields, &updated); err != nil {
			return updated, requestError(http.MethodPatch, path, err)
		}
		return updated, nil
	})
}

// DeleteNode deletes a node; the store removes its descendants and pages.
func (c *Controller) DeleteNode(id int64, hook Hook[struct{}]) *Task[struct{}] {
	path := NavigationPath(id)
	return spawn(c, "delete_navigation", hook, func(ctx context.Context) (struct{}, error) {
		if err := c.transport.Delete(ctx, path); err != nil {
			return struct{}{}, requestError(http.MethodDelete, path, err)
		}
		return struct{}{}, nil
	})
}

// MoveNodes sends one position/parent patch per placement, one after the
// other. Every placement is attempted even when an earlier one fails; the
// failures are joined. Placements are absolute, so the store may apply them
// in any order.
func (c *Controller) MoveNodes(placements []model.Placement, hook Hook[[]model.Navigation]) *Task[[]model.Navigation] {
	if len(placements) == 0 {
		t := Completed[[]model.Navigation]("move_navigation", nil, nil)
		if hook != nil {
			hook(nil, nil)
		}
		return t
	}

	batch := make([]model.Placement, len(placements))
	copy(batch, placements)
	return spawn(c, "move_navigation", hook, func(ctx context.Context) ([]model.Navigation, error) {
		var (
			confirmed []model.Navigation
			errs      []error
		)
		for _, p := range batch {
			path := NavigationPath(p.ID)
			var updated model.Navigation
			err := c.transport.Patch(ctx, path, MoveNavigationRequest{Position: p.Position, ParentID: p.ParentID}, &updated)
			if err != nil {
				errs = append(errs, requestError(http.MethodPatch, path, err))
				continue
			}
			confirmed = append(confirmed, updated)
		}
		return confirmed, errors.Join(errs...)
	})
}

// CreatePage posts a placeholder page under a navigation.
func (c *Controller) CreatePage(navID int64, hook Hook[model.Page]) *Task[model.Page] {
	path := PagesPath(navID)
	body := CreatePageRequest{Title: model.PlaceholderPageTitle}
	return spawn(c, "create_page", hook, func(ctx context.Context) (model.Page, error) {
		var created model.Page
		if err := c.transport.Post(ctx, path, body, &created); err != nil {
			return created, requestError(http.MethodPost, path, err)
		}
		return created, nil
	})
}

// DeletePage deletes a page.
func (c *Controller) DeletePage(navID, pageID int64, hook Hook[struct{}]) *Task[struct{}] {
	path := PagePath(navID, pageID)
	return spawn(c, "delete_page", hook, func(ctx context.Context) (struct{}, error) {
		if err := c.transport.Delete(ctx, path); err != nil {
			return struct{}{}, requestError(http.MethodDelete, path, err)
		}
		return struct{}{}, nil
	})
}

// MovePage asks the store to put a page at the given position. The store
// re-ranks the siblings and answers with the owning navigation.
func (c *Controller) MovePage(navID, pageID int64, position int, hook Hook[model.Navigation]) *Task[model.Navigation] {
	path := PagePath(navID, pageID)
	return spawn(c, "move_page", hook, func(ctx context.Context) (model.Navigation, error) {
		var nav model.Navigation
		if err := c.transport.Patch(ctx, path, MovePageRequest{Position: position}, &nav); err != nil {
			return nav, requestError(http.MethodPatch, path, err)
		}
		return nav, nil
	})
}

// spawn runs fn on its own goroutine. The request context is detached from
// any caller so a later local change cannot cancel it.
func spawn[T any](c *Controller, op string, hook Hook[T], fn func(ctx context.Context) (T, error)) *Task[T] {
	t := newTask[T](op)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		ctx := context.Background()
		if c.cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
			defer cancel()
		}

		start := time.Now()
		result, err := fn(ctx)
		if err != nil {
			c.logger.Warn("remote write failed",
				"category", model.EventCategorySync,
				"op", op,
				"task", t.Key,
				"error", err)
		} else {
			c.logger.Debug("remote write confirmed",
				"op", op,
				"task", t.Key,
				"duration", time.Since(start))
		}

		if hook != nil {
			hook(result, err)
		}
		t.finish(result, err)
	}()

	return t
}

func requestError(method, path string, err error) error {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err
	}
	return &RequestError{Method: method, Path: path, Err: err}
}
