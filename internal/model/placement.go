// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// Placement is the (id, position, parent) triple the store persists for a node.
type Placement struct {
	ID       int64  `json:"id"`
	Position int    `json:"position"`
	ParentID *int64 `json:"navigation_parent_id"`
}

// Equal reports whether both placements describe the same slot.
func (p Placement) Equal(o Placement) bool {
	return p.ID == o.ID && p.Position == o.Position && SameParent(p.ParentID, o.ParentID)
}

func (p Placement) String() string {
	if p.ParentID == nil {
		return fmt.Sprintf("%d@%d", p.ID, p.Position)
	}
	return fmt.Sprintf("%d@%d/%d", p.ID, p.Position, *p.ParentID)
}

// NodeFields is a partial update of a node's editable fields.
// Nil fields are left untouched.
type NodeFields struct {
	Name         *string `json:"name,omitempty"`
	URL          *string `json:"url,omitempty"`
	Label        *string `json:"label,omitempty"`
	ExternalLink *string `json:"external_link,omitempty"`
}

// IsEmpty reports whether the update carries no field.
func (f NodeFields) IsEmpty() bool {
	return f.Name == nil && f.URL == nil && f.Label == nil && f.ExternalLink == nil
}

// Apply merges the set fields into n.
func (f NodeFields) Apply(n *Navigation) {
	if f.Name != nil {
		n.Name = *f.Name
	}
	if f.URL != nil {
		n.URL = *f.URL
	}
	if f.Label != nil {
		n.Label = *f.Label
	}
	if f.ExternalLink != nil {
		n.ExternalLink = *f.ExternalLink
	}
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
