// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/service"
)

func createNav(t *testing.T, nav *service.NavigationService, name string, parentID *int64, itemType model.ItemType) model.Navigation {
	t.Helper()
	n, err := nav.Create(context.Background(), service.CreateNavigationInput{Name: name, ParentID: parentID, ItemType: itemType})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return n
}

func TestCreateNavigation(t *testing.T) {
	_, router := testSetup(t)

	rr := do(t, router, http.MethodPost, "/api/v1/navigations", `{"name":"New navigation","position":0}`)
	assertStatus(t, rr, http.StatusCreated)

	var got model.Navigation
	decodeData(t, rr, &got)
	if got.ID == 0 {
		t.Error("created navigation has no id")
	}
	if got.Name != "New navigation" {
		t.Errorf("name = %q, want %q", got.Name, "New navigation")
	}
	if got.ItemType != model.ItemTypeNav {
		t.Errorf("item_type = %q, want %q", got.ItemType, model.ItemTypeNav)
	}
	if got.Children == nil || got.Pages == nil {
		t.Error("children and pages should be empty arrays, not null")
	}
}

func TestCreateNavigation_Invalid(t *testing.T) {
	nav, router := testSetup(t)
	menu := createNav(t, nav, "Links", nil, model.ItemTypeMenu)

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantField string
	}{
		{"invalid json", `{`, http.StatusBadRequest, ""},
		{"missing name", `{"position":0}`, http.StatusUnprocessableEntity, "name"},
		{"bad item type", `{"name":"x","item_type":"FOLDER"}`, http.StatusUnprocessableEntity, "item_type"},
		{"negative position", `{"name":"x","position":-1}`, http.StatusUnprocessableEntity, "position"},
		{"menu parent", fmt.Sprintf(`{"name":"x","navigation_parent_id":%d}`, menu.ID), http.StatusUnprocessableEntity, "navigation_parent_id"},
		{"missing parent", `{"name":"x","navigation_parent_id":999}`, http.StatusUnprocessableEntity, "navigation_parent_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodPost, "/api/v1/navigations", tt.body)
			assertStatus(t, rr, tt.wantCode)
			if tt.wantField == "" {
				return
			}
			detail := decodeError(t, rr)
			if detail.Code != "validation_error" {
				t.Errorf("code = %q, want %q", detail.Code, "validation_error")
			}
			if _, ok := detail.Details[tt.wantField]; !ok {
				t.Errorf("details = %v, want key %q", detail.Details, tt.wantField)
			}
		})
	}
}

func TestListNavigations(t *testing.T) {
	nav, router := testSetup(t)
	docs := createNav(t, nav, "Docs", nil, "")
	createNav(t, nav, "Guides", &docs.ID, "")
	createNav(t, nav, "Blog", nil, "")

	rr := do(t, router, http.MethodGet, "/api/v1/navigations", "")
	assertStatus(t, rr, http.StatusOK)

	var tree []model.Navigation
	decodeData(t, rr, &tree)
	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].Name != "Docs" || tree[1].Name != "Blog" {
		t.Errorf("roots = %s, %s, want Docs, Blog", tree[0].Name, tree[1].Name)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Name != "Guides" {
		t.Errorf("children of Docs = %+v, want [Guides]", tree[0].Children)
	}
}

func TestListNavigations_Empty(t *testing.T) {
	_, router := testSetup(t)

	rr := do(t, router, http.MethodGet, "/api/v1/navigations", "")
	assertStatus(t, rr, http.StatusOK)
	if body := rr.Body.String(); body != "{\"data\":[],\"meta\":{\"total\":0}}\n" {
		t.Errorf("body = %q, want an empty data array", body)
	}
}

func TestGetNavigation(t *testing.T) {
	nav, router := testSetup(t)
	n := createNav(t, nav, "Docs", nil, "")

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"found", fmt.Sprintf("/api/v1/navigations/%d", n.ID), http.StatusOK},
		{"not found", "/api/v1/navigations/999", http.StatusNotFound},
		{"invalid id", "/api/v1/navigations/abc", http.StatusBadRequest},
		{"zero id", "/api/v1/navigations/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, tt.wantCode)
		})
	}
}

func TestUpdateNavigation_Fields(t *testing.T) {
	nav, router := testSetup(t)
	n := createNav(t, nav, "Docs", nil, "")

	rr := do(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/navigations/%d", n.ID), `{"name":"Documentation","label":"Docs"}`)
	assertStatus(t, rr, http.StatusOK)

	var got model.Navigation
	decodeData(t, rr, &got)
	if got.Name != "Documentation" || got.Label != "Docs" {
		t.Errorf("got name %q label %q, want Documentation / Docs", got.Name, got.Label)
	}
}

func TestUpdateNavigation_Move(t *testing.T) {
	nav, router := testSetup(t)
	a := createNav(t, nav, "A", nil, "")
	b := createNav(t, nav, "B", nil, "")
	a1 := createNav(t, nav, "A1", &a.ID, "")
	path := fmt.Sprintf("/api/v1/navigations/%d", a1.ID)

	rr := do(t, router, http.MethodPatch, path, fmt.Sprintf(`{"position":0,"navigation_parent_id":%d}`, b.ID))
	assertStatus(t, rr, http.StatusOK)
	var got model.Navigation
	decodeData(t, rr, &got)
	if got.ParentID == nil || *got.ParentID != b.ID {
		t.Errorf("parent = %v, want %d", got.ParentID, b.ID)
	}

	// An explicit null moves the node to the root.
	rr = do(t, router, http.MethodPatch, path, `{"position":2,"navigation_parent_id":null}`)
	assertStatus(t, rr, http.StatusOK)
	got = model.Navigation{}
	decodeData(t, rr, &got)
	if got.ParentID != nil {
		t.Errorf("parent = %d, want root", *got.ParentID)
	}
	if got.Position != 2 {
		t.Errorf("position = %d, want 2", got.Position)
	}

	// Without the key the parent is kept.
	rr = do(t, router, http.MethodPatch, path, `{"position":1}`)
	assertStatus(t, rr, http.StatusOK)
	got = model.Navigation{}
	decodeData(t, rr, &got)
	if got.ParentID != nil || got.Position != 1 {
		t.Errorf("got parent %v position %d, want root / 1", got.ParentID, got.Position)
	}
}

func TestUpdateNavigation_Invalid(t *testing.T) {
	nav, router := testSetup(t)
	a := createNav(t, nav, "A", nil, "")
	a1 := createNav(t, nav, "A1", &a.ID, "")
	path := fmt.Sprintf("/api/v1/navigations/%d", a.ID)

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{"string parent", path, `{"navigation_parent_id":"x"}`, http.StatusUnprocessableEntity},
		{"into own child", path, fmt.Sprintf(`{"navigation_parent_id":%d}`, a1.ID), http.StatusUnprocessableEntity},
		{"negative position", path, `{"position":-2}`, http.StatusUnprocessableEntity},
		{"invalid json", path, `[`, http.StatusBadRequest},
		{"not found", "/api/v1/navigations/999", `{"name":"x"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, http.MethodPatch, tt.path, tt.body)
			assertStatus(t, rr, tt.wantCode)
		})
	}
}

func TestDeleteNavigation(t *testing.T) {
	nav, router := testSetup(t)
	n := createNav(t, nav, "Docs", nil, "")
	path := fmt.Sprintf("/api/v1/navigations/%d", n.ID)

	rr := do(t, router, http.MethodDelete, path, "")
	assertStatus(t, rr, http.StatusNoContent)
	if rr.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rr.Body.String())
	}

	rr = do(t, router, http.MethodDelete, path, "")
	assertStatus(t, rr, http.StatusNotFound)
	if detail := decodeError(t, rr); detail.Code != "not_found" {
		t.Errorf("code = %q, want %q", detail.Code, "not_found")
	}
}

func TestListEvents(t *testing.T) {
	nav, router := testSetup(t)
	createNav(t, nav, "Docs", nil, "")

	rr := do(t, router, http.MethodGet, "/api/v1/events?limit=10", "")
	assertStatus(t, rr, http.StatusOK)

	var events []EventResponse
	decodeData(t, rr, &events)
	if len(events) != 1 || events[0].Message != "Navigation created" {
		t.Errorf("events = %+v, want one creation event", events)
	}

	rr = do(t, router, http.MethodGet, "/api/v1/events?limit=-1", "")
	assertStatus(t, rr, http.StatusBadRequest)
}
