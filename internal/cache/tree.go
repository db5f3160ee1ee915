// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/navedit/internal/model"
)

// TreeKey is the cache key of the assembled navigation tree.
const TreeKey = "navigations:tree"

// TreeCache stores the assembled navigation tree as JSON. Every write to a
// navigation or page invalidates it.
type TreeCache struct {
	backend Cacher
	ttl     time.Duration
	logger  *slog.Logger
}

// NewTreeCache wraps a backend. A nil backend yields a cache that never hits.
func NewTreeCache(backend Cacher, ttl time.Duration, logger *slog.Logger) *TreeCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &TreeCache{backend: backend, ttl: ttl, logger: logger}
}

// Get returns the cached tree. Backend failures are logged and reported as misses.
func (c *TreeCache) Get(ctx context.Context) ([]model.Navigation, bool) {
	if c == nil || c.backend == nil {
		return nil, false
	}

	data, err := c.backend.Get(ctx, TreeKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("cache read failed", "category", model.EventCategoryCache, "error", err)
		}
		return nil, false
	}

	var tree []model.Navigation
	if err := json.Unmarshal(data, &tree); err != nil {
		c.logger.Warn("cache entry is corrupt", "category", model.EventCategoryCache, "error", err)
		_ = c.backend.Delete(ctx, TreeKey)
		return nil, false
	}
	return tree, true
}

// Set stores the tree.
func (c *TreeCache) Set(ctx context.Context, tree []model.Navigation) {
	if c == nil || c.backend == nil {
		return
	}
	data, err := json.Marshal(tree)
	if err != nil {
		c.logger.Warn("encoding tree for cache failed", "category", model.EventCategoryCache, "error", err)
		return
	}
	if err := c.backend.Set(ctx, TreeKey, data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "category", model.EventCategoryCache, "error", err)
	}
}

// Invalidate drops the cached tree.
func (c *TreeCache) Invalidate(ctx context.Context) {
	if c == nil || c.backend == nil {
		return
	}
	if err := c.backend.Delete(ctx, TreeKey); err != nil {
		c.logger.Warn("cache invalidation failed", "category", model.EventCategoryCache, "error", err)
	}
}

// Stats returns the backend statistics when it keeps any.
func (c *TreeCache) Stats() (Stats, bool) {
	if c == nil || c.backend == nil {
		return Stats{}, false
	}
	sp, ok := c.backend.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	return sp.Stats(), true
}
