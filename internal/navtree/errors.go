// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navtree

import "errors"

var (
	// ErrNotFound indicates that a mutation targets a node or page absent from the tree.
	ErrNotFound = errors.New("not found in tree")

	// ErrInvalidParent indicates that a node or page cannot be placed under the given parent,
	// either because the parent is a MENU node or because it lies inside the moved subtree.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrInvalidDirection indicates a move direction other than up or down.
	ErrInvalidDirection = errors.New("invalid move direction")

	// ErrInvariantViolation indicates a tree that breaks sibling ordering or MENU rules.
	// It points at a bug in whatever produced the tree.
	ErrInvariantViolation = errors.New("tree invariant violated")
)
