// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "errors"

var (
	// ErrNavigationNotFound is returned when a navigation id does not exist.
	ErrNavigationNotFound = errors.New("navigation not found")
	// ErrPageNotFound is returned when a page does not exist under the given navigation.
	ErrPageNotFound = errors.New("page not found")
	// ErrInvalidParent is returned for a parent that is missing, a MENU node,
	// or inside the subtree being moved.
	ErrInvalidParent = errors.New("invalid parent")
	// ErrInvalidInput is returned for malformed field values.
	ErrInvalidInput = errors.New("invalid input")
)
