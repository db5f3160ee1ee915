// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/navedit/internal/handler"
	"github.com/olegiv/navedit/internal/handler/api"
	"github.com/olegiv/navedit/internal/service"
	"github.com/olegiv/navedit/internal/testutil"
)

func testRouter(t *testing.T, burst int) http.Handler {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	logger := testutil.TestLoggerSilent()
	nav := service.NewNavigationService(db, nil, logger)
	return newRouter(routerDeps{
		API:            api.NewHandler(nav, service.NewEventService(db), logger),
		Health:         handler.NewHealthHandler(db, nil),
		Logger:         logger,
		RateLimit:      1,
		RateBurst:      burst,
		RequestTimeout: 5 * time.Second,
	})
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Routes(t *testing.T) {
	router := testRouter(t, 100)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"liveness", http.MethodGet, "/health/live", "", http.StatusOK},
		{"list navigations", http.MethodGet, "/api/v1/navigations", "", http.StatusOK},
		{"create navigation", http.MethodPost, "/api/v1/navigations", `{"name":"Docs"}`, http.StatusCreated},
		{"list events", http.MethodGet, "/api/v1/events", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/v1/navigations", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, tt.method, tt.path, tt.body)
			if rr.Code != tt.want {
				t.Errorf("%s %s = %d, want %d; body: %s", tt.method, tt.path, rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	router := testRouter(t, 100)

	rr := serve(router, http.MethodGet, "/api/v2/navigations", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != "not_found" {
		t.Errorf("error code = %q, want %q", resp.Error.Code, "not_found")
	}
}

func TestRouter_RateLimitsAPIOnly(t *testing.T) {
	router := testRouter(t, 1)

	if rr := serve(router, http.MethodGet, "/api/v1/navigations", ""); rr.Code != http.StatusOK {
		t.Fatalf("first request = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr := serve(router, http.MethodGet, "/api/v1/navigations", ""); rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}

	for range 3 {
		if rr := serve(router, http.MethodGet, "/health/live", ""); rr.Code != http.StatusOK {
			t.Errorf("liveness = %d, want %d", rr.Code, http.StatusOK)
		}
	}
}
