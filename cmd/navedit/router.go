// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/navedit/internal/handler"
	"github.com/olegiv/navedit/internal/handler/api"
	"github.com/olegiv/navedit/internal/middleware"
)

// routerDeps holds everything the HTTP router serves.
type routerDeps struct {
	API            *api.Handler
	Health         *handler.HealthHandler
	Logger         *slog.Logger
	RateLimit      float64
	RateBurst      int
	RequestTimeout time.Duration
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(d.Logger))

	// Health probes stay outside rate limiting
	r.Get("/health", d.Health.Health)
	r.Get("/health/live", d.Health.Liveness)

	limiter := middleware.NewRateLimiter(d.RateLimit, d.RateBurst, d.Logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(d.RequestTimeout))
		r.Use(limiter.Middleware())
		d.API.Routes(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}
