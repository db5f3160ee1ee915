// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navtree

import (
	"fmt"

	"github.com/olegiv/navedit/internal/model"
)

// Validate checks that every sibling sequence (children and pages) holds a
// contiguous 0-based permutation of positions, that persisted children point
// at their structural parent, and that MENU nodes own nothing.
func Validate(tree []model.Navigation) error {
	return validateLevel(tree, nil)
}

func validateLevel(nodes []model.Navigation, parentID *int64) error {
	positions := make([]int, len(nodes))
	for i, n := range nodes {
		positions[i] = n.Position
	}
	if err := checkPermutation(positions); err != nil {
		return fmt.Errorf("%w: children of %s: %v", ErrInvariantViolation, describeParent(parentID), err)
	}

	for _, n := range nodes {
		if n.IsPersisted() && !model.SameParent(n.ParentID, parentID) {
			return fmt.Errorf("%w: navigation %d records parent %s, sits under %s",
				ErrInvariantViolation, n.ID, describeParent(n.ParentID), describeParent(parentID))
		}
		if n.IsMenu() && (len(n.Children) > 0 || len(n.Pages) > 0) {
			return fmt.Errorf("%w: MENU navigation %d owns children or pages", ErrInvariantViolation, n.ID)
		}

		pagePositions := make([]int, len(n.Pages))
		for i, p := range n.Pages {
			pagePositions[i] = p.Position
		}
		if err := checkPermutation(pagePositions); err != nil {
			return fmt.Errorf("%w: pages of navigation %d: %v", ErrInvariantViolation, n.ID, err)
		}

		if err := validateLevel(n.Children, model.Int64Ptr(n.ID)); err != nil {
			return err
		}
	}
	return nil
}

func checkPermutation(positions []int) error {
	seen := make([]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= len(positions) {
			return fmt.Errorf("position %d outside 0..%d", p, len(positions)-1)
		}
		if seen[p] {
			return fmt.Errorf("duplicate position %d", p)
		}
		seen[p] = true
	}
	return nil
}

func describeParent(id *int64) string {
	if id == nil {
		return "root"
	}
	return fmt.Sprintf("navigation %d", *id)
}
