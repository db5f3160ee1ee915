// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/navedit/internal/cache"
	"github.com/olegiv/navedit/internal/testutil"
)

func TestHealth(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = backend.Close() }()
	h := NewHealthHandler(db, cache.NewTreeCache(backend, time.Minute, nil))

	req := httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var status HealthStatus
	if err := json.NewDecoder(rr.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("status = %q, want %q", status.Status, "healthy")
	}
	if got := status.Checks["migrations"].Message; got != "Version 3" {
		t.Errorf("migrations message = %q, want %q", got, "Version 3")
	}
	if status.Cache == nil {
		t.Error("cache stats missing")
	}
	if status.System == nil {
		t.Error("system info missing with verbose=true")
	}
}

func TestHealth_ClosedDatabase(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	cleanup()

	h := NewHealthHandler(db, nil)
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	rr := httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
