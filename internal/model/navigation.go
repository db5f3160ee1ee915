// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the navigation tree shapes shared by the editor
// and the store of record.
package model

// ItemType discriminates what a navigation node may contain.
type ItemType string

// Navigation item types
const (
	ItemTypeNav  ItemType = "NAV"
	ItemTypePage ItemType = "PAGE"
	ItemTypeMenu ItemType = "MENU"
)

// ValidItemTypes contains all valid item types.
var ValidItemTypes = []ItemType{ItemTypeNav, ItemTypePage, ItemTypeMenu}

// Placeholder names used for freshly created entries.
const (
	PlaceholderNavigationName = "New navigation"
	PlaceholderPageTitle      = "New page"
)

// Navigation is a node of the navigation forest.
// Children and pages are owned by value; a node never shares them.
type Navigation struct {
	ID           int64        `json:"id"`
	ClientKey    string       `json:"-"`
	Name         string       `json:"name"`
	URL          string       `json:"url,omitempty"`
	Label        string       `json:"label,omitempty"`
	ExternalLink string       `json:"external_link,omitempty"`
	Position     int          `json:"position"`
	ParentID     *int64       `json:"navigation_parent_id"`
	ItemType     ItemType     `json:"item_type"`
	Children     []Navigation `json:"children"`
	Pages        []Page       `json:"pages"`
}

// IsPersisted reports whether the server has assigned an id to the node.
func (n Navigation) IsPersisted() bool {
	return n.ID != 0
}

// IsMenu reports whether the node is a link-only MENU entry.
func (n Navigation) IsMenu() bool {
	return n.ItemType == ItemTypeMenu
}

// CanContain reports whether the node may own children and pages.
func (n Navigation) CanContain() bool {
	return !n.IsMenu()
}

// Clone returns a deep copy of the node and its subtree.
func (n Navigation) Clone() Navigation {
	c := n
	if n.ParentID != nil {
		c.ParentID = Int64Ptr(*n.ParentID)
	}
	if n.Children != nil {
		c.Children = make([]Navigation, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Pages != nil {
		c.Pages = make([]Page, len(n.Pages))
		copy(c.Pages, n.Pages)
	}
	return c
}

// CloneTree returns a deep copy of a root-level sequence.
func CloneTree(tree []Navigation) []Navigation {
	if tree == nil {
		return nil
	}
	out := make([]Navigation, len(tree))
	for i, n := range tree {
		out[i] = n.Clone()
	}
	return out
}

// IsValidItemType checks if an item type value is valid.
func IsValidItemType(t ItemType) bool {
	for _, v := range ValidItemTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Int64Ptr returns a pointer to a copy of v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// SameParent reports whether two nullable parent references point at the same node.
func SameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
