package enrichment

import (
	"context"
	"time"

	"github.com/pocketmark/api/internal/pkg/log"
	queuerepo "github.com/pocketmark/api/queue/repository"
)

// PollerConfig tunes the background enrichment loop.
type PollerConfig struct {
	Concurrency       int
	PollInterval      time.Duration
	ProcessingTimeout time.Duration
}

// Poller periodically drains the enrichment queue into a bounded pool of
// worker goroutines, and reverts entries abandoned mid-processing.
type Poller struct {
	queue  queuerepo.Repository
	worker *Worker
	cfg    PollerConfig
	sem    chan struct{}
	stopCh chan struct{}
}

// NewPoller creates a poller around the given worker.
func NewPoller(queue queuerepo.Repository, worker *Worker, cfg PollerConfig) *Poller {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.ProcessingTimeout <= 0 {
		cfg.ProcessingTimeout = 5 * time.Minute
	}
	return &Poller{
		queue:  queue,
		worker: worker,
		cfg:    cfg,
		sem:    make(chan struct{}, cfg.Concurrency),
		stopCh: make(chan struct{}),
	}
}

// Start launches the poll loop. It returns immediately; the loop runs until
// Stop is called or the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.sweep(ctx)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the poll loop. In-flight enrichments finish on their own.
func (p *Poller) Stop() {
	close(p.stopCh)
}

// sweep reverts stale claims and dispatches the next eligible entries.
func (p *Poller) sweep(ctx context.Context) {
	reverted, err := p.queue.RevertStale(ctx, p.cfg.ProcessingTimeout)
	if err != nil {
		log.Error("failed to revert stale queue entries: %v", err)
	} else if reverted > 0 {
		log.Warn("reverted %d stale processing entries to pending", reverted)
	}

	ids, err := p.queue.NextPending(ctx, p.cfg.Concurrency)
	if err != nil {
		log.Error("failed to poll enrichment queue: %v", err)
		return
	}

	for _, bookmarkID := range ids {
		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		}

		id := bookmarkID
		go func() {
			defer func() { <-p.sem }()
			// Claim inside Process is the exclusion point, so a concurrent
			// categorize-now call for the same bookmark is harmless.
			if _, err := p.worker.Process(ctx, id); err != nil {
				log.Error("enrichment failed for bookmark %s: %v", id, err)
			}
		}()
	}
}
