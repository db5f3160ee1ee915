// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"time"
)

const maxEventsLimit = 500

// EventResponse represents an event log entry in API responses.
type EventResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// ListEvents handles GET /events?limit=N
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			WriteBadRequest(w, "Invalid limit", map[string]string{"limit": "Must be a positive integer"})
			return
		}
		limit = min(n, maxEventsLimit)
	}

	events, err := h.events.ListEvents(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, r, err, "list events")
		return
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, EventResponse{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}
	WriteSuccess(w, resp, &Meta{Total: len(resp)})
}
