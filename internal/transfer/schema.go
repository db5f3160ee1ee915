// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides import/export of the navigation tree as JSON.
package transfer

import (
	"fmt"
	"time"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// ExportData represents the complete export structure.
// Sibling order is the array order; positions are not exported.
type ExportData struct {
	Version     string             `json:"version"`
	ExportedAt  time.Time          `json:"exported_at"`
	Navigations []ExportNavigation `json:"navigations"`
}

// ExportNavigation represents a navigation node with its subtree.
type ExportNavigation struct {
	Name         string             `json:"name"`
	URL          string             `json:"url,omitempty"`
	Label        string             `json:"label,omitempty"`
	ExternalLink string             `json:"external_link,omitempty"`
	ItemType     string             `json:"item_type"`
	Pages        []ExportPage       `json:"pages,omitempty"`
	Children     []ExportNavigation `json:"children,omitempty"`
}

// ExportPage represents a page of a navigation.
type ExportPage struct {
	Title   string `json:"title"`
	Slug    string `json:"slug,omitempty"`
	Content string `json:"content,omitempty"`
}

// ImportOptions configures how an import is applied.
type ImportOptions struct {
	// DryRun validates and counts without writing.
	DryRun bool
	// Replace deletes the existing tree first; otherwise imported roots are
	// appended after the existing ones.
	Replace bool
}

// ImportError describes one problem found in the import data.
type ImportError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ImportResult summarizes an import.
type ImportResult struct {
	Success     bool          `json:"success"`
	DryRun      bool          `json:"dry_run"`
	Replaced    int           `json:"replaced"`
	Navigations int           `json:"navigations"`
	Pages       int           `json:"pages"`
	Errors      []ImportError `json:"errors,omitempty"`
}

// NewImportResult creates an empty successful result.
func NewImportResult(dryRun bool) *ImportResult {
	return &ImportResult{
		Success: true,
		DryRun:  dryRun,
	}
}

// AddError records a problem and marks the result failed.
func (r *ImportResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ImportError{Path: path, Message: message})
	r.Success = false
}
