// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/giftmatch/internal/logging"
)

// TaskFunc is one run of a periodic maintenance task.
type TaskFunc func(ctx context.Context) error

// PeriodicService runs a maintenance task on a fixed interval. It drives
// the Badger value-log GC of the language store and the DuckDB checkpoint.
//
// A failing run is logged and retried on the next tick; the service only
// returns when its context is canceled, so one bad run never trips the
// supervisor's backoff.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     TaskFunc
}

// NewPeriodicService creates a service that runs task every interval.
// A non-positive interval defaults to 5 minutes.
func NewPeriodicService(name string, interval time.Duration, task TaskFunc) *PeriodicService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *PeriodicService) runOnce(ctx context.Context) {
	start := time.Now()
	if err := s.task(ctx); err != nil {
		logging.Warn().Err(err).Str("service", s.name).Msg("Periodic task failed")
		return
	}
	logging.Debug().Str("service", s.name).Dur("duration", time.Since(start)).Msg("Periodic task completed")
}

// String implements fmt.Stringer for suture log messages.
func (s *PeriodicService) String() string {
	return s.name
}
