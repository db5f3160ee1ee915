// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navsync

import (
	"fmt"
	"strconv"
)

// NavigationsPath is the collection path of navigation nodes.
func NavigationsPath() string {
	return "/navigations"
}

// NavigationPath is the path of a single navigation node.
func NavigationPath(id int64) string {
	return "/navigations/" + strconv.FormatInt(id, 10)
}

// PagesPath is the collection path of a navigation's pages.
func PagesPath(navID int64) string {
	return NavigationPath(navID) + "/pages"
}

// PagePath is the path of a single page.
func PagePath(navID, pageID int64) string {
	return fmt.Sprintf("%s/%d", PagesPath(navID), pageID)
}
