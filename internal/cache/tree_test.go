// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/testutil"
)

func TestTreeCache(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = backend.Close() }()
	c := NewTreeCache(backend, time.Minute, testutil.TestLogger())
	ctx := context.Background()

	if _, ok := c.Get(ctx); ok {
		t.Fatal("empty cache should miss")
	}

	tree := []model.Navigation{
		{ID: 1, Name: "Docs", Children: []model.Navigation{{ID: 2, Name: "Guides", ParentID: model.Int64Ptr(1)}}},
	}
	c.Set(ctx, tree)

	got, ok := c.Get(ctx)
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 1 || len(got[0].Children) != 1 || *got[0].Children[0].ParentID != 1 {
		t.Errorf("tree = %+v", got)
	}

	c.Invalidate(ctx)
	if _, ok := c.Get(ctx); ok {
		t.Error("expected miss after invalidation")
	}

	stats, ok := c.Stats()
	if !ok || stats.Hits != 1 {
		t.Errorf("Stats = %+v, %v", stats, ok)
	}
}

func TestTreeCache_CorruptEntry(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = backend.Close() }()
	c := NewTreeCache(backend, time.Minute, testutil.TestLoggerSilent())
	ctx := context.Background()

	_ = backend.Set(ctx, TreeKey, []byte("{not json"), 0)
	if _, ok := c.Get(ctx); ok {
		t.Fatal("corrupt entry should miss")
	}
	if _, err := backend.Get(ctx, TreeKey); err == nil {
		t.Error("corrupt entry should be dropped")
	}
}

func TestTreeCache_NilBackend(t *testing.T) {
	c := NewTreeCache(nil, time.Minute, nil)
	ctx := context.Background()

	c.Set(ctx, []model.Navigation{{ID: 1}})
	if _, ok := c.Get(ctx); ok {
		t.Error("nil backend should never hit")
	}
	c.Invalidate(ctx)
}
