package reconcile

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"transit-manager/core/metrics"
	"transit-manager/core/resolver"
	"transit-manager/core/transit"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run tracks a batch started by UpdateAllFromGetters. All methods are safe for
// concurrent use.
type Run struct {
	workers int
	total   int
	cancel  context.CancelFunc
	ctx     context.Context
	done    chan struct{}
	group   errgroup.Group

	mu          sync.Mutex
	errorIDs    []int
	notSavedIDs []int
	summary     Summary
}

// ErrorIDs returns the ids whose lookup failed, in the order they were recorded.
func (r *Run) ErrorIDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.errorIDs)
}

// NotSavedIDs returns the ids that were found but could not be written.
func (r *Run) NotSavedIDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.notSavedIDs)
}

// Summary returns the counters collected so far.
func (r *Run) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.summary
	s.Total = r.total
	s.Errors = len(r.errorIDs)
	s.NotSaved = len(r.notSavedIDs)
	s.Cancelled = r.ctx.Err() != nil && s.Processed < r.total
	return s
}

// Workers returns the number of workers started. Zero for synchronous runs.
func (r *Run) Workers() int {
	return r.workers
}

// Cancel asks the workers to stop claiming ids. It does not wait.
func (r *Run) Cancel() {
	r.cancel()
}

// Done is closed once every worker has returned.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until every worker has returned.
func (r *Run) Wait() error {
	<-r.done
	return r.group.Wait()
}

// cursor hands out ids in [next, end] exactly once.
type cursor struct {
	mu   sync.Mutex
	next int
	end  int
	done bool
}

func (c *cursor) claim() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done || c.next > c.end {
		return 0, false
	}
	id := c.next
	if id == c.end {
		c.done = true
	} else {
		c.next++
	}
	return id, true
}

// UpdateAllFromGetters fetches every stop in [opts.Start, opts.End] from the online
// Stop Getters and saves it through the Stop Setters.
func UpdateAllFromGetters(ctx context.Context, res Resolver, opts Options, logger *zap.Logger) (*Run, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Start < 0 || opts.End < opts.Start || opts.End == math.MaxInt || opts.Workers < 0 {
		return nil, fmt.Errorf("%w: start=%d end=%d workers=%d", ErrInvalidRange, opts.Start, opts.End, opts.Workers)
	}
	if res.CountStopGetters(resolver.ScopeOnline) == 0 {
		return nil, transit.NewError(transit.KindMissingGetters, "no online stop getters registered")
	}
	if res.CountStopSetters() == 0 {
		return nil, transit.NewError(transit.KindMissingSetters, "no stop setters registered")
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		workers: opts.Workers,
		total:   opts.End - opts.Start + 1,
		cancel:  cancel,
		ctx:     runCtx,
		done:    make(chan struct{}),
	}
	cur := &cursor{next: opts.Start, end: opts.End}
	l := logger.With(zap.Int("start", opts.Start), zap.Int("end", opts.End), zap.Int("workers", opts.Workers))

	// Lookups and writes must complete once started, even after Cancel.
	callCtx := context.WithoutCancel(runCtx)

	work := func() error {
		for runCtx.Err() == nil {
			id, ok := cur.claim()
			if !ok {
				return nil
			}
			run.process(callCtx, res, id, opts, l)
		}
		return nil
	}

	if opts.Workers == 0 {
		l.Info("Reconciling stops sequentially")
		_ = work()
		close(run.done)
		cancel()
		return run, nil
	}

	l.Info("Reconciling stops with workers")
	for i := 0; i < opts.Workers; i++ {
		run.group.Go(work)
	}
	go func() {
		_ = run.group.Wait()
		close(run.done)
		s := run.Summary()
		l.Info("Stop reconciliation finished",
			zap.Int("processed", s.Processed),
			zap.Int("saved", s.Saved),
			zap.Int("errors", s.Errors),
			zap.Int("not_saved", s.NotSaved),
			zap.Bool("cancelled", s.Cancelled),
		)
		cancel()
	}()
	return run, nil
}

func (r *Run) process(ctx context.Context, res Resolver, id int, opts Options, l *zap.Logger) {
	stop, err := res.FindStop(ctx, id, resolver.ScopeOnline, resolver.AutoSaveDisabled)
	switch transit.KindOf(err) {
	case transit.KindNone:
	case transit.KindStopNotFound, transit.KindStopNotExist:
		r.record(func(r *Run) { r.summary.NotFound++ })
		metrics.ObserveReconciled("not_found")
		return
	default:
		l.Warn("Stop lookup failed", zap.Int("stop_id", id), zap.Error(err))
		r.record(func(r *Run) { r.errorIDs = append(r.errorIDs, id) })
		metrics.ObserveReconciled("error")
		return
	}

	if err := res.SaveStop(ctx, stop, opts.Update, opts.FanOut); err != nil {
		l.Warn("Stop could not be saved", zap.Int("stop_id", id), zap.Error(err))
		r.record(func(r *Run) { r.notSavedIDs = append(r.notSavedIDs, id) })
		metrics.ObserveReconciled("not_saved")
		return
	}
	r.record(func(r *Run) { r.summary.Saved++ })
	metrics.ObserveReconciled("saved")
}

func (r *Run) record(update func(r *Run)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	update(r)
	r.summary.Processed++
}
