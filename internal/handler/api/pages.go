// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/navedit/internal/service"
)

// CreatePageRequest represents the request body for creating a page.
type CreatePageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePageRequest represents the request body for patching a page.
type UpdatePageRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Position *int    `json:"position"`
}

// PreviewResponse is the rendered content of a page.
type PreviewResponse struct {
	ID   int64  `json:"id"`
	HTML string `json:"html"`
}

// pageParams parses the navigation and page ids of a page route.
func pageParams(w http.ResponseWriter, r *http.Request) (navID, pageID int64, ok bool) {
	if navID, ok = requireIDParam(w, r, "id", "navigation"); !ok {
		return 0, 0, false
	}
	if pageID, ok = requireIDParam(w, r, "pageId", "page"); !ok {
		return 0, 0, false
	}
	return navID, pageID, true
}

// CreatePage handles POST /navigations/{id}/pages
// The slug is derived from the title.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	navID, ok := requireIDParam(w, r, "id", "navigation")
	if !ok {
		return
	}

	var req CreatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	page, err := h.nav.CreatePage(r.Context(), navID, req.Title, req.Content)
	if err != nil {
		h.writeServiceError(w, r, err, "create page")
		return
	}
	WriteCreated(w, page)
}

// GetPage handles GET /navigations/{id}/pages/{pageId}
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	navID, pageID, ok := pageParams(w, r)
	if !ok {
		return
	}

	page, err := h.nav.GetPage(r.Context(), navID, pageID)
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve page")
		return
	}
	WriteSuccess(w, page, nil)
}

// UpdatePage handles PATCH /navigations/{id}/pages/{pageId}
// Responds with the owning navigation so callers see the recomputed order.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	navID, pageID, ok := pageParams(w, r)
	if !ok {
		return
	}

	var req UpdatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title != nil && *req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title must not be empty"})
		return
	}

	n, err := h.nav.UpdatePage(r.Context(), navID, pageID, service.PagePatch{
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "update page")
		return
	}
	WriteSuccess(w, n, nil)
}

// DeletePage handles DELETE /navigations/{id}/pages/{pageId}
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	navID, pageID, ok := pageParams(w, r)
	if !ok {
		return
	}

	if err := h.nav.DeletePage(r.Context(), navID, pageID); err != nil {
		h.writeServiceError(w, r, err, "delete page")
		return
	}
	WriteNoContent(w)
}

// PreviewPage handles GET /navigations/{id}/pages/{pageId}/preview
func (h *Handler) PreviewPage(w http.ResponseWriter, r *http.Request) {
	navID, pageID, ok := pageParams(w, r)
	if !ok {
		return
	}

	page, err := h.nav.GetPage(r.Context(), navID, pageID)
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve page")
		return
	}

	html, err := h.preview.HTML(page.Content)
	if err != nil {
		h.writeServiceError(w, r, err, "render page")
		return
	}
	WriteSuccess(w, PreviewResponse{ID: page.ID, HTML: html}, nil)
}
