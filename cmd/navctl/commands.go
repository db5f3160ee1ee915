// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olegiv/navedit/internal/editor"
	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/navsync"
	"github.com/olegiv/navedit/internal/navtree"
)

const usage = `  tree                                  Print the navigation tree
  add [parent-id]                       Create a navigation at the root or under a parent
  update <id> field=value...            Set name, url, label or link
  delete <id>                           Delete a navigation and its subtree
  move <id> up|down                     Swap a navigation with its neighbour
  reparent <id> <parent-id|root>        Move a navigation under another parent
  add-page <nav-id>                     Create a page
  delete-page <nav-id> <page-id>        Delete a page
  move-page <nav-id> <page-id> up|down  Swap a page with its neighbour`

var errUsage = errors.New("invalid arguments")

// execute runs one command against the editor and prints the result.
// It returns once the remote writes the command issued have finished.
func execute(ctx context.Context, ed *editor.Editor, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "tree":
		printTree(out, ed.Tree(), 0)
		return nil

	case "add":
		var parentID *int64
		if len(rest) > 0 {
			id, err := parseID(rest[0])
			if err != nil {
				return err
			}
			parentID = &id
		}
		task, err := ed.AddNode(parentID)
		if err != nil {
			return err
		}
		created, err := task.Wait(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "created navigation %d\n", created.ID)
		return nil

	case "update":
		if len(rest) < 2 {
			return fmt.Errorf("%w: update <id> field=value...", errUsage)
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		fields, err := parseFields(rest[1:])
		if err != nil {
			return err
		}
		task, err := ed.UpdateNode(id, fields)
		if err != nil {
			return err
		}
		return report(ctx, out, task, fmt.Sprintf("updated navigation %d", id))

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("%w: delete <id>", errUsage)
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		task, err := ed.DeleteNode(id)
		if err != nil {
			return err
		}
		return report(ctx, out, task, fmt.Sprintf("deleted navigation %d", id))

	case "move":
		if len(rest) != 2 {
			return fmt.Errorf("%w: move <id> up|down", errUsage)
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		dir, err := navtree.ParseDirection(rest[1])
		if err != nil {
			return err
		}
		node, ok := navtree.Find(ed.Tree(), id)
		if !ok {
			return fmt.Errorf("navigation %d: %w", id, navtree.ErrNotFound)
		}
		task, err := ed.MoveNode(id, dir, node.ParentID)
		if err != nil {
			return err
		}
		return report(ctx, out, task, fmt.Sprintf("moved navigation %d %s", id, dir))

	case "reparent":
		if len(rest) != 2 {
			return fmt.Errorf("%w: reparent <id> <parent-id|root>", errUsage)
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		var parentID *int64
		if rest[1] != "root" {
			pid, err := parseID(rest[1])
			if err != nil {
				return err
			}
			parentID = &pid
		}
		task, err := ed.ReparentNode(id, parentID)
		if err != nil {
			return err
		}
		return report(ctx, out, task, fmt.Sprintf("reparented navigation %d", id))

	case "add-page":
		if len(rest) != 1 {
			return fmt.Errorf("%w: add-page <nav-id>", errUsage)
		}
		navID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		task, err := ed.AddPage(navID)
		if err != nil {
			return err
		}
		page, err := task.Wait(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "created page %d at %s\n", page.ID, page.FullPath)
		return nil

	case "delete-page":
		if len(rest) != 2 {
			return fmt.Errorf("%w: delete-page <nav-id> <page-id>", errUsage)
		}
		navID, pageID, err := parseIDPair(rest[0], rest[1])
		if err != nil {
			return err
		}
		task, err := ed.DeletePage(navID, pageID)
		if err != nil {
			return err
		}
		return report(ctx, out, task, fmt.Sprintf("deleted page %d", pageID))

	case "move-page":
		if len(rest) != 3 {
			return fmt.Errorf("%w: move-page <nav-id> <page-id> up|down", errUsage)
		}
		navID, pageID, err := parseIDPair(rest[0], rest[1])
		if err != nil {
			return err
		}
		dir, err := navtree.ParseDirection(rest[2])
		if err != nil {
			return err
		}
		task, err := ed.MovePage(navID, pageID, dir)
		if err != nil {
			return err
		}
		return report(ctx, out, task, fmt.Sprintf("moved page %d %s", pageID, dir))
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func report[T any](ctx context.Context, out io.Writer, task *navsync.Task[T], msg string) error {
	if _, err := task.Wait(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, msg)
	return nil
}

func printTree(out io.Writer, nodes []model.Navigation, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		_, _ = fmt.Fprintf(out, "%s- [%d] %s (%s)\n", indent, n.ID, n.Name, n.ItemType)
		for _, p := range n.Pages {
			_, _ = fmt.Fprintf(out, "%s    * [%d] %s %s\n", indent, p.ID, p.Title, p.FullPath)
		}
		printTree(out, n.Children, depth+1)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, s)
	}
	return id, nil
}

func parseIDPair(a, b string) (int64, int64, error) {
	first, err := parseID(a)
	if err != nil {
		return 0, 0, err
	}
	second, err := parseID(b)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func parseFields(args []string) (model.NodeFields, error) {
	var f model.NodeFields
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return f, fmt.Errorf("%w: expected field=value, got %q", errUsage, arg)
		}
		switch key {
		case "name":
			f.Name = model.StringPtr(value)
		case "url":
			f.URL = model.StringPtr(value)
		case "label":
			f.Label = model.StringPtr(value)
		case "link":
			f.ExternalLink = model.StringPtr(value)
		default:
			return f, fmt.Errorf("%w: unknown field %q", errUsage, key)
		}
	}
	return f, nil
}
