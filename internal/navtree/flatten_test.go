// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navtree

import (
	"sort"
	"testing"

	"github.com/olegiv/navedit/internal/model"
)

func TestFlattenAll(t *testing.T) {
	got := FlattenAll(sampleTree())

	want := []model.Placement{
		{ID: 1, Position: 0},
		{ID: 4, Position: 0, ParentID: ptr(1)},
		{ID: 5, Position: 1, ParentID: ptr(1)},
		{ID: 7, Position: 0, ParentID: ptr(5)},
		{ID: 2, Position: 1},
		{ID: 3, Position: 2},
	}

	if len(got) != len(want) {
		t.Fatalf("len(FlattenAll) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("placement[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

// siblingOrder rebuilds the order of the placements under parentID from
// their positions alone.
func siblingOrder(placements []model.Placement, parentID *int64) []int64 {
	var siblings []model.Placement
	for _, p := range placements {
		if model.SameParent(p.ParentID, parentID) {
			siblings = append(siblings, p)
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].Position < siblings[j].Position
	})

	ids := make([]int64, len(siblings))
	for i, p := range siblings {
		ids[i] = p.ID
	}
	return ids
}

func TestFlattenAll_ReconstructsOrder(t *testing.T) {
	tree := sampleTree()
	// Shuffle some order first so array order and stored positions disagree.
	tree, _ = MoveNode(tree, 3, Up, nil)
	tree, _ = MoveNode(tree, 5, Up, model.Int64Ptr(1))

	placements := FlattenAll(tree)

	check := func(nodes []model.Navigation, parentID *int64) {
		t.Helper()
		got := siblingOrder(placements, parentID)
		want := ids(nodes)
		if len(got) != len(want) {
			t.Fatalf("siblingOrder(%v) = %v, want %v", parentID, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("siblingOrder(%v)[%d] = %d, want %d", parentID, i, got[i], want[i])
			}
		}
	}

	check(tree, nil)
	Walk(tree, func(n model.Navigation, _ *int64) {
		check(n.Children, model.Int64Ptr(n.ID))
	})
}

func TestFlattenAll_SkipsUnpersisted(t *testing.T) {
	tree := []model.Navigation{
		{ID: 1},
		{ClientKey: "pending", Children: []model.Navigation{{ClientKey: "pending-child"}}},
		{ID: 2},
	}

	got := FlattenAll(tree)
	if len(got) != 2 {
		t.Fatalf("len(FlattenAll) = %d, want 2", len(got))
	}
	if got[1].ID != 2 || got[1].Position != 2 {
		t.Errorf("placement = %s, want 2@2", got[1])
	}
}

func TestStored(t *testing.T) {
	tree := []model.Navigation{
		{ID: 1, Position: 4},
		{ID: 2, Position: 7, ParentID: ptr(9)},
	}

	got := Stored(tree)
	if got[0].Position != 4 || got[1].Position != 7 {
		t.Errorf("Stored positions = %d,%d, want 4,7", got[0].Position, got[1].Position)
	}
	if got[1].ParentID == nil || *got[1].ParentID != 9 {
		t.Errorf("Stored parent = %v, want 9", got[1].ParentID)
	}
}

func TestChanged(t *testing.T) {
	before := []model.Placement{
		{ID: 1, Position: 0},
		{ID: 2, Position: 1},
		{ID: 3, Position: 0, ParentID: ptr(1)},
	}
	after := []model.Placement{
		{ID: 1, Position: 0},
		{ID: 2, Position: 1, ParentID: ptr(1)},
		{ID: 3, Position: 0, ParentID: ptr(1)},
		{ID: 4, Position: 2},
	}

	got := Changed(before, after)
	if len(got) != 2 {
		t.Fatalf("len(Changed) = %d, want 2: %v", len(got), got)
	}
	if got[0].ID != 2 {
		t.Errorf("Changed[0].ID = %d, want 2 (parent changed)", got[0].ID)
	}
	if got[1].ID != 4 {
		t.Errorf("Changed[1].ID = %d, want 4 (new node)", got[1].ID)
	}
}

func TestDeriveTarget(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		id   int64
		want model.Placement
	}{
		{1, model.Placement{ID: 1, Position: 0}},
		{3, model.Placement{ID: 3, Position: 2}},
		{5, model.Placement{ID: 5, Position: 1, ParentID: ptr(1)}},
		{7, model.Placement{ID: 7, Position: 0, ParentID: ptr(5)}},
	}

	for _, tt := range tests {
		got, err := DeriveTarget(tree, tt.id)
		if err != nil {
			t.Fatalf("DeriveTarget(%d) error: %v", tt.id, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("DeriveTarget(%d) = %s, want %s", tt.id, got, tt.want)
		}
	}

	if _, err := DeriveTarget(tree, 99); err == nil {
		t.Error("DeriveTarget(99) expected error")
	}
}

func TestApplyPlacements_ClosesDeleteGap(t *testing.T) {
	tree, err := DeleteNode(sampleTree(), 4)
	if err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	targets := MoveTargets(tree, tree)
	if len(targets) != 1 || targets[0].ID != 5 || targets[0].Position != 0 {
		t.Fatalf("targets = %v, want [5@0/1]", targets)
	}

	compacted := ApplyPlacements(tree, targets)
	if err := Validate(compacted); err != nil {
		t.Errorf("Validate after compaction: %v", err)
	}
	if got := MoveTargets(compacted, compacted); len(got) != 0 {
		t.Errorf("second pass targets = %v, want none", got)
	}

	b, _ := Find(tree, 5)
	if b.Position != 1 {
		t.Errorf("input tree changed: position = %d, want 1", b.Position)
	}
}
