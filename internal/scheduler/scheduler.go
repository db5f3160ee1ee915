// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs for the navigation store.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/navedit/internal/service"
)

// Job names.
const (
	JobCompactPositions = "compact_positions"
	JobCleanupEvents    = "cleanup_events"
)

// jobTimeout bounds a single job run.
const jobTimeout = 2 * time.Minute

// Config holds job schedules. An empty schedule disables the job.
type Config struct {
	CompactionSchedule string
	CleanupSchedule    string
	EventRetention     time.Duration
}

// DefaultConfig returns the schedules used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CompactionSchedule: "@hourly",
		CleanupSchedule:    "@daily",
		EventRetention:     30 * 24 * time.Hour,
	}
}

type job struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	run         func(ctx context.Context) error
}

// JobInfo is the public view of a scheduled job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

// Scheduler handles scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	nav    *service.NavigationService
	events *service.EventService
	cfg    Config
	logger *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*job
}

// New creates a new scheduler.
func New(nav *service.NavigationService, events *service.EventService, logger *slog.Logger, cfg Config) *Scheduler {
	s := &Scheduler{
		cron:   cron.New(),
		nav:    nav,
		events: events,
		cfg:    cfg,
		logger: logger,
		jobs:   make(map[string]*job),
	}

	s.jobs[JobCompactPositions] = &job{
		name:        JobCompactPositions,
		description: "Renumber sibling positions to close gaps",
		schedule:    cfg.CompactionSchedule,
		run:         s.compactPositions,
	}
	s.jobs[JobCleanupEvents] = &job{
		name:        JobCleanupEvents,
		description: "Delete events older than the retention period",
		schedule:    cfg.CleanupSchedule,
		run:         s.cleanupEvents,
	}

	return s
}

// Start registers every enabled job and starts the cron runner.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled := 0
	for _, j := range s.jobs {
		if j.schedule == "" {
			s.logger.Debug("scheduled job disabled", "name", j.name)
			continue
		}
		run := j.run
		name := j.name
		id, err := s.cron.AddFunc(j.schedule, func() {
			s.execute(name, run)
		})
		if err != nil {
			return fmt.Errorf("scheduling %s with %q: %w", j.name, j.schedule, err)
		}
		j.entryID = id
		enabled++
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", enabled)

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Jobs returns all known jobs sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := JobInfo{
			Name:        j.name,
			Description: j.description,
			Schedule:    j.schedule,
		}
		if j.entryID != 0 {
			entry := s.cron.Entry(j.entryID)
			info.NextRun = entry.Next
			info.LastRun = entry.Prev
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, k int) bool {
		return result[i].Name < result[k].Name
	})
	return result
}

// TriggerNow runs a job immediately, regardless of its schedule.
func (s *Scheduler) TriggerNow(ctx context.Context, name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	s.logger.Info("manually triggering job", "name", name)
	return j.run(ctx)
}

func (s *Scheduler) execute(name string, run func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := run(ctx); err != nil {
		s.logger.Error("scheduled job failed", "name", name, "error", err)
	}
}

func (s *Scheduler) compactPositions(ctx context.Context) error {
	changed, err := s.nav.CompactPositions(ctx)
	if err != nil {
		return err
	}
	if changed > 0 {
		s.logger.Info("compacted positions", "rows", changed)
	}
	return nil
}

func (s *Scheduler) cleanupEvents(ctx context.Context) error {
	if s.cfg.EventRetention <= 0 {
		return nil
	}

	deleted, err := s.events.DeleteOldEvents(ctx, s.cfg.EventRetention)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("deleted old events", "count", deleted)
	}
	return nil
}
