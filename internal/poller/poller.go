// Package poller implements the client-side status watch loop for generation
// jobs. Each fetch is awaited before the next tick is scheduled, so a slow
// response can never overlap a newer one, and a stale result can never
// overwrite fresher state. Cancellation is cooperative through the context;
// the loop never outlives its caller.
package poller

import (
	"context"
	"time"

	"echome/internal/domain"
)

// Default intervals: single kit jobs resolve quickly, batch imports run long.
const (
	DefaultKitInterval   = 2 * time.Second
	DefaultBatchInterval = 10 * time.Second
)

// StatusFetcher retrieves the current server-authoritative job state.
type StatusFetcher func(ctx context.Context, jobID string) (*domain.KitJob, error)

// Poller watches one job until it reaches a terminal status.
type Poller struct {
	Interval time.Duration
	Fetch    StatusFetcher

	// OnUpdate fires for every non-terminal response.
	OnUpdate func(job *domain.KitJob)
	// OnCompleted fires exactly once, on the COMPLETED response. Draft
	// clearing hangs off this hook.
	OnCompleted func(job *domain.KitJob)
	// OnFailed fires exactly once, on the FAILED response.
	OnFailed func(job *domain.KitJob)
}

// New returns a kit-job poller with the default interval.
func New(fetch StatusFetcher) *Poller {
	return &Poller{Interval: DefaultKitInterval, Fetch: fetch}
}

// Run polls until the job is terminal, the fetch fails, or ctx is cancelled.
// The first fetch is issued immediately. A fetch failure stops the loop and
// is returned to the caller; there are no automatic retries — re-running is
// an explicit caller action. On a terminal status Run returns the final job.
func (p *Poller) Run(ctx context.Context, jobID string) (*domain.KitJob, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultKitInterval
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		job, err := p.Fetch(ctx, jobID)
		if err != nil {
			return nil, err
		}

		// Results are only applied while the consumer is still live.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		switch job.Status {
		case domain.JobStatusCompleted:
			if p.OnCompleted != nil {
				p.OnCompleted(job)
			}
			return job, nil
		case domain.JobStatusFailed:
			if p.OnFailed != nil {
				p.OnFailed(job)
			}
			return job, nil
		default:
			if p.OnUpdate != nil {
				p.OnUpdate(job)
			}
		}

		timer.Reset(interval)
	}
}

// BatchFetcher retrieves the aggregate state of a batch import.
type BatchFetcher func(ctx context.Context, batchID string) (*domain.BatchJob, error)

// BatchPoller watches a batch until the batch itself is terminal; individual
// items may still be pending or failed while the batch keeps processing.
type BatchPoller struct {
	Interval time.Duration
	Fetch    BatchFetcher

	OnUpdate   func(batch *domain.BatchJob)
	OnTerminal func(batch *domain.BatchJob)
}

// NewBatch returns a batch poller with the default import interval.
func NewBatch(fetch BatchFetcher) *BatchPoller {
	return &BatchPoller{Interval: DefaultBatchInterval, Fetch: fetch}
}

// Run polls the batch until its status is terminal, the fetch fails, or ctx
// is cancelled. Item details are re-ordered ascending by their item order on
// every response, since items resolve out of sequence.
func (p *BatchPoller) Run(ctx context.Context, batchID string) (*domain.BatchJob, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultBatchInterval
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		batch, err := p.Fetch(ctx, batchID)
		if err != nil {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		batch.SortItems()
		if batch.Status.Terminal() {
			if p.OnTerminal != nil {
				p.OnTerminal(batch)
			}
			return batch, nil
		}
		if p.OnUpdate != nil {
			p.OnUpdate(batch)
		}

		timer.Reset(interval)
	}
}
