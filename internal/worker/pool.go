// Package worker builds dayboards for batches of moods on a bounded set of
// goroutines.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/services"
)

// Builder is the part of the orchestrator the pool drives.
type Builder interface {
	BuildDayboardWithProvenance(ctx context.Context, raw string) (domain.Bundle, services.Provenance)
}

// Job is one mood to build a dayboard for.
type Job struct {
	Index int
	Mood  string
}

// Result is the dayboard built for a Job.
type Result struct {
	Index      int
	Mood       string
	Bundle     domain.Bundle
	Provenance services.Provenance
}

// Pool manages background workers for dayboard jobs.
type Pool struct {
	builder Builder
	logger  *zap.Logger
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

// NewPool creates a pool whose job queue and result buffer hold queueSize
// entries each.
func NewPool(builder Builder, queueSize int, logger *zap.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		builder: builder,
		logger:  logger,
		jobs:    make(chan Job, queueSize),
		results: make(chan Result, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- p.process(ctx, job)
			}
		}()
	}
}

// Stop closes the queue, waits for workers to drain it and then closes the
// results channel. Results must be drained concurrently when more than
// queueSize jobs can finish before Stop returns.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Submit queues a job without blocking and reports whether it was accepted.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		p.logger.Warn("worker: dropping dayboard job", zap.String("mood", job.Mood))
		return false
	}
}

// Results yields finished jobs. It is closed by Stop.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) process(ctx context.Context, job Job) Result {
	b, prov := p.builder.BuildDayboardWithProvenance(ctx, job.Mood)
	p.logger.Debug("worker: built dayboard", zap.Int("index", job.Index), zap.String("mood", job.Mood))
	return Result{Index: job.Index, Mood: job.Mood, Bundle: b, Provenance: prov}
}

// BuildAll builds a dayboard for every mood using up to workers goroutines and
// returns the results in input order.
func BuildAll(ctx context.Context, builder Builder, moods []string, workers int, logger *zap.Logger) []Result {
	if len(moods) == 0 {
		return []Result{}
	}
	if workers > len(moods) {
		workers = len(moods)
	}

	p := NewPool(builder, len(moods), logger)
	p.Start(ctx, workers)
	for i, mood := range moods {
		p.Submit(Job{Index: i, Mood: mood})
	}
	p.Stop()

	out := make([]Result, len(moods))
	for r := range p.Results() {
		out[r.Index] = r
	}
	return out
}
