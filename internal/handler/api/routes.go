// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers the API endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/events", h.ListEvents)

	r.Route("/navigations", func(r chi.Router) {
		r.Get("/", h.ListNavigations)
		r.Post("/", h.CreateNavigation)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetNavigation)
			r.Patch("/", h.UpdateNavigation)
			r.Delete("/", h.DeleteNavigation)

			r.Post("/pages", h.CreatePage)
			r.Get("/pages/{pageId}", h.GetPage)
			r.Patch("/pages/{pageId}", h.UpdatePage)
			r.Delete("/pages/{pageId}", h.DeletePage)
			r.Get("/pages/{pageId}/preview", h.PreviewPage)
		})
	})
}
