// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"fmt"
	"strings"

	"github.com/olegiv/navedit/internal/model"
)

// MaxImportDepth bounds the nesting accepted by an import.
const MaxImportDepth = 32

// Validate checks import data and returns every problem found.
func Validate(data *ExportData) []ImportError {
	if data == nil {
		return []ImportError{{Path: "$", Message: "no data"}}
	}

	var errs []ImportError
	if data.Version != ExportVersion {
		errs = append(errs, ImportError{
			Path:    "version",
			Message: fmt.Sprintf("unsupported version %q, want %q", data.Version, ExportVersion),
		})
	}
	validateNodes(data.Navigations, "navigations", 1, &errs)
	return errs
}

func validateNodes(nodes []ExportNavigation, path string, depth int, errs *[]ImportError) {
	for idx, n := range nodes {
		p := fmt.Sprintf("%s[%d]", path, idx)
		add := func(msg string) {
			*errs = append(*errs, ImportError{Path: p, Message: msg})
		}

		if depth > MaxImportDepth {
			add(fmt.Sprintf("nested deeper than %d levels", MaxImportDepth))
			return
		}
		if strings.TrimSpace(n.Name) == "" {
			add("name is required")
		}

		itemType := model.ItemType(n.ItemType)
		if n.ItemType != "" && !model.IsValidItemType(itemType) {
			add(fmt.Sprintf("invalid item_type %q", n.ItemType))
		}
		if itemType == model.ItemTypeMenu && (len(n.Children) > 0 || len(n.Pages) > 0) {
			add("a MENU navigation cannot contain children or pages")
		}

		for pi, pg := range n.Pages {
			if strings.TrimSpace(pg.Title) == "" {
				*errs = append(*errs, ImportError{
					Path:    fmt.Sprintf("%s.pages[%d]", p, pi),
					Message: "title is required",
				})
			}
		}

		validateNodes(n.Children, p+".children", depth+1, errs)
	}
}
