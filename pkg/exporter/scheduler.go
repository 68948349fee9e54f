// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// SnapshotPublisher hands completed snapshots from the poll loop to
// concurrent scrape readers. Publication is a single pointer swap under
// the lock; readers take the current pointer and release the lock before
// any metric formatting, and never block on network I/O.
type SnapshotPublisher struct {
	mu      sync.RWMutex
	current *MetricSnapshot
}

func NewSnapshotPublisher() *SnapshotPublisher {
	return &SnapshotPublisher{}
}

// Publish atomically supersedes the current snapshot.
func (p *SnapshotPublisher) Publish(snap *MetricSnapshot) {
	p.mu.Lock()
	p.current = snap
	p.mu.Unlock()
}

// Current returns the latest fully assembled snapshot, or nil before the
// first cycle completes.
func (p *SnapshotPublisher) Current() *MetricSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Scheduler runs poll cycles sequentially on a fixed interval and
// publishes each completed snapshot. Cycles never overlap: a cycle that
// outlives the interval delays the next one instead of spawning a second
// set of in-flight admin requests.
type Scheduler struct {
	client    AdminClient
	publisher *SnapshotPublisher
	interval  time.Duration
	onPublish func(*MetricSnapshot)
}

func NewScheduler(client AdminClient, publisher *SnapshotPublisher, interval time.Duration) *Scheduler {
	return &Scheduler{
		client:    client,
		publisher: publisher,
		interval:  interval,
	}
}

// OnPublish registers a hook invoked after each publication, e.g. for
// pushing the snapshot to NATS. Must be set before Run.
func (s *Scheduler) OnPublish(fn func(*MetricSnapshot)) {
	s.onPublish = fn
}

// Run builds one snapshot immediately so scrapes are served as soon as
// possible, then continues on the ticker until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scrape scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	snap := buildSnapshot(ctx, s.client)
	s.publisher.Publish(snap)

	log.Debug().
		Int("usage_records", len(snap.Usage)).
		Int("buckets", len(snap.Buckets)).
		Int("user_quotas", len(snap.Quotas)).
		Float64("scrape_duration_seconds", snap.ScrapeDuration).
		Msg("snapshot published")

	if s.onPublish != nil {
		s.onPublish(snap)
	}
}
