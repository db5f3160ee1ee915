// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidItemType(t *testing.T) {
	tests := []struct {
		itemType ItemType
		want     bool
	}{
		{ItemTypeNav, true},
		{ItemTypePage, true},
		{ItemTypeMenu, true},
		{"LINK", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.itemType), func(t *testing.T) {
			if got := IsValidItemType(tt.itemType); got != tt.want {
				t.Errorf("IsValidItemType(%q) = %v, want %v", tt.itemType, got, tt.want)
			}
		})
	}
}

func TestNavigationClone(t *testing.T) {
	orig := Navigation{
		ID:       1,
		Name:     "Docs",
		ParentID: Int64Ptr(9),
		Children: []Navigation{{ID: 2, Name: "Guides", ParentID: Int64Ptr(1)}},
		Pages:    []Page{{ID: 10, Title: "Intro", NavigationID: 1}},
	}

	c := orig.Clone()
	c.Children[0].Name = "changed"
	c.Pages[0].Title = "changed"
	*c.ParentID = 42

	if orig.Children[0].Name != "Guides" {
		t.Errorf("child name = %q, want %q", orig.Children[0].Name, "Guides")
	}
	if orig.Pages[0].Title != "Intro" {
		t.Errorf("page title = %q, want %q", orig.Pages[0].Title, "Intro")
	}
	if *orig.ParentID != 9 {
		t.Errorf("parent id = %d, want 9", *orig.ParentID)
	}
}

func TestNavigationCanContain(t *testing.T) {
	if (Navigation{ItemType: ItemTypeMenu}).CanContain() {
		t.Error("MENU node must not contain children")
	}
	if !(Navigation{ItemType: ItemTypeNav}).CanContain() {
		t.Error("NAV node must contain children")
	}
	if !(Navigation{}).CanContain() {
		t.Error("untyped node must contain children")
	}
}

func TestNodeFieldsApply(t *testing.T) {
	n := Navigation{Name: "Old", URL: "/old"}

	NodeFields{}.Apply(&n)
	if n.Name != "Old" || n.URL != "/old" {
		t.Errorf("empty update changed node: %+v", n)
	}

	NodeFields{Name: StringPtr("New")}.Apply(&n)
	if n.Name != "New" {
		t.Errorf("Name = %q, want %q", n.Name, "New")
	}
	if n.URL != "/old" {
		t.Errorf("URL = %q, want %q", n.URL, "/old")
	}
}

func TestSameParent(t *testing.T) {
	if !SameParent(nil, nil) {
		t.Error("nil parents should match")
	}
	if SameParent(nil, Int64Ptr(1)) {
		t.Error("nil and 1 should differ")
	}
	if !SameParent(Int64Ptr(3), Int64Ptr(3)) {
		t.Error("equal parents should match")
	}
}
