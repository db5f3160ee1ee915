// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/service"
)

// CreateNavigationRequest represents the request body for creating a navigation.
type CreateNavigationRequest struct {
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	Label        string         `json:"label"`
	ExternalLink string         `json:"external_link"`
	ParentID     *int64         `json:"navigation_parent_id"`
	Position     *int           `json:"position"`
	ItemType     model.ItemType `json:"item_type"`
}

// UpdateNavigationRequest represents the request body for patching a navigation.
// ParentID stays raw so an explicit null (move to root) can be told apart
// from an absent key.
type UpdateNavigationRequest struct {
	Name         *string         `json:"name"`
	URL          *string         `json:"url"`
	Label        *string         `json:"label"`
	ExternalLink *string         `json:"external_link"`
	Position     *int            `json:"position"`
	ParentID     json.RawMessage `json:"navigation_parent_id"`
}

func (req UpdateNavigationRequest) patch() (service.NavigationPatch, bool) {
	p := service.NavigationPatch{
		Fields: model.NodeFields{
			Name:         req.Name,
			URL:          req.URL,
			Label:        req.Label,
			ExternalLink: req.ExternalLink,
		},
		Position: req.Position,
	}
	if len(req.ParentID) == 0 {
		return p, true
	}

	p.ParentSet = true
	if bytes.Equal(req.ParentID, []byte("null")) {
		return p, true
	}
	var id int64
	if err := json.Unmarshal(req.ParentID, &id); err != nil || id <= 0 {
		return p, false
	}
	p.ParentID = &id
	return p, true
}

// ListNavigations handles GET /navigations
func (h *Handler) ListNavigations(w http.ResponseWriter, r *http.Request) {
	tree, err := h.nav.Tree(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "list navigations")
		return
	}
	WriteSuccess(w, tree, &Meta{Total: countNodes(tree)})
}

// GetNavigation handles GET /navigations/{id}
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "id", "navigation")
	if !ok {
		return
	}

	n, err := h.nav.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve navigation")
		return
	}
	WriteSuccess(w, n, nil)
}

// CreateNavigation handles POST /navigations
func (h *Handler) CreateNavigation(w http.ResponseWriter, r *http.Request) {
	var req CreateNavigationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	validationErrors := make(map[string]string)
	if req.Name == "" {
		validationErrors["name"] = "Name is required"
	}
	if req.ItemType != "" && !model.IsValidItemType(req.ItemType) {
		validationErrors["item_type"] = "Item type must be NAV, PAGE or MENU"
	}
	if req.Position != nil && *req.Position < 0 {
		validationErrors["position"] = "Position must not be negative"
	}
	if len(validationErrors) > 0 {
		WriteValidationError(w, validationErrors)
		return
	}

	n, err := h.nav.Create(r.Context(), service.CreateNavigationInput{
		Name:         req.Name,
		URL:          req.URL,
		Label:        req.Label,
		ExternalLink: req.ExternalLink,
		ParentID:     req.ParentID,
		Position:     req.Position,
		ItemType:     req.ItemType,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "create navigation")
		return
	}
	WriteCreated(w, n)
}

// UpdateNavigation handles PATCH /navigations/{id}
// A body of {position, navigation_parent_id} moves the node; the store
// persists the triple as given and leaves sibling positions to the caller.
func (h *Handler) UpdateNavigation(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "id", "navigation")
	if !ok {
		return
	}

	var req UpdateNavigationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch, ok := req.patch()
	if !ok {
		WriteValidationError(w, map[string]string{"navigation_parent_id": "Must be a navigation ID or null"})
		return
	}

	n, err := h.nav.Update(r.Context(), id, patch)
	if err != nil {
		h.writeServiceError(w, r, err, "update navigation")
		return
	}
	WriteSuccess(w, n, nil)
}

// DeleteNavigation handles DELETE /navigations/{id}
// Children and pages are removed with the node.
func (h *Handler) DeleteNavigation(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIDParam(w, r, "id", "navigation")
	if !ok {
		return
	}

	if err := h.nav.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "delete navigation")
		return
	}
	WriteNoContent(w)
}

func countNodes(tree []model.Navigation) int {
	n := len(tree)
	for _, node := range tree {
		n += countNodes(node.Children)
	}
	return n
}
