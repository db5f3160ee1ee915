// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/navtree"
	"github.com/olegiv/navedit/internal/service"
)

// Exporter handles exporting the navigation tree to JSON format.
type Exporter struct {
	nav    *service.NavigationService
	logger *slog.Logger
}

// NewExporter creates a new Exporter instance.
func NewExporter(nav *service.NavigationService, logger *slog.Logger) *Exporter {
	return &Exporter{
		nav:    nav,
		logger: logger,
	}
}

// Export reads the current tree into an ExportData structure.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	tree, err := e.nav.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tree: %w", err)
	}

	data := &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now().UTC(),
		Navigations: exportNodes(tree),
	}

	e.logger.Info("navigation tree exported", "navigations", navtree.Count(tree))
	return data, nil
}

// ExportToWriter writes the export as JSON to the provided writer.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer) error {
	data, err := e.Export(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportToFile writes the export as JSON to a file.
func (e *Exporter) ExportToFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return e.ExportToWriter(ctx, f)
}

func exportNodes(nodes []model.Navigation) []ExportNavigation {
	out := make([]ExportNavigation, 0, len(nodes))
	for _, n := range nodes {
		en := ExportNavigation{
			Name:         n.Name,
			URL:          n.URL,
			Label:        n.Label,
			ExternalLink: n.ExternalLink,
			ItemType:     string(n.ItemType),
			Children:     exportNodes(n.Children),
		}
		for _, p := range n.Pages {
			en.Pages = append(en.Pages, ExportPage{
				Title:   p.Title,
				Slug:    p.Slug,
				Content: p.Content,
			})
		}
		out = append(out, en)
	}
	return out
}
