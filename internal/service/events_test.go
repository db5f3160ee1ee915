// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/store"
	"github.com/olegiv/navedit/internal/testutil"
)

func TestNewEventService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	if svc == nil {
		t.Error("NewEventService returned nil")
	}
}

func TestLogEvent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()

	err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryNavigation, "Test message", map[string]any{
		"key": "value",
	})
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var level, category, message, metadata string
	err = db.QueryRow("SELECT level, category, message, metadata FROM events").Scan(&level, &category, &message, &metadata)
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}

	if level != "info" {
		t.Errorf("level = %q, want %q", level, "info")
	}
	if category != "navigation" {
		t.Errorf("category = %q, want %q", category, "navigation")
	}
	if message != "Test message" {
		t.Errorf("message = %q, want %q", message, "Test message")
	}
	if metadata != `{"key":"value"}` {
		t.Errorf("metadata = %q, want %q", metadata, `{"key":"value"}`)
	}
}

func TestLogEvent_NilMetadata(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	if err := svc.LogEvent(context.Background(), model.EventLevelWarning, model.EventCategorySystem, "Test", nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var metadata string
	if err := db.QueryRow("SELECT metadata FROM events").Scan(&metadata); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if metadata != "{}" {
		t.Errorf("metadata = %q, want %q", metadata, "{}")
	}
}

func TestLogCategoryEvents(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func(*EventService, context.Context) error
		expected string
	}{
		{
			name: "navigation",
			logFn: func(svc *EventService, ctx context.Context) error {
				return svc.LogNavigationEvent(ctx, "Navigation created", nil)
			},
			expected: "navigation",
		},
		{
			name: "page",
			logFn: func(svc *EventService, ctx context.Context) error {
				return svc.LogPageEvent(ctx, "Page created", nil)
			},
			expected: "page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			svc := NewEventService(db)
			if err := tt.logFn(svc, context.Background()); err != nil {
				t.Fatalf("log function failed: %v", err)
			}

			var got string
			if err := db.QueryRow("SELECT category FROM events").Scan(&got); err != nil {
				t.Fatalf("failed to read event: %v", err)
			}
			if got != tt.expected {
				t.Errorf("category = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestListEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		if err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategorySystem, msg, nil); err != nil {
			t.Fatalf("LogEvent(%s): %v", msg, err)
		}
	}

	events, err := svc.ListEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Message != "third" {
		t.Errorf("events[0].Message = %q, want %q", events[0].Message, "third")
	}
}

func TestDeleteOldEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()

	_, err := store.New(db).CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategorySystem,
		Message:   "Old event",
		Metadata:  "{}",
		CreatedAt: time.Now().Add(-31 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to insert old event: %v", err)
	}
	if err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategorySystem, "Recent event", nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	deleted, err := svc.DeleteOldEvents(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOldEvents failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if count != 1 {
		t.Errorf("event count after delete = %d, want 1", count)
	}
}
