package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Clock supplies delays to the scheduler. Tests swap in a manual clock.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Task is a handle to one scheduled callback.
type Task struct {
	cancel context.CancelFunc
}

// Cancel stops the task if it has not fired yet. The callback must still check
// its context before mutating, since Cancel can race the timer.
func (t *Task) Cancel() { t.cancel() }

// scheduler runs delayed callbacks on tracked goroutines so Close can wait
// for all of them to exit.
type scheduler struct {
	clock  Clock
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

func newScheduler(clock Clock) *scheduler {
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	return &scheduler{clock: clock, ctx: gctx, cancel: cancel, group: g}
}

// After runs fn once d has elapsed unless the task or the scheduler is
// canceled first. fn receives the task context.
func (s *scheduler) After(d time.Duration, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(s.ctx)
	t := &Task{cancel: cancel}
	s.group.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case <-s.clock.After(d):
		}
		fn(ctx)
		return nil
	})
	return t
}

// Close cancels every pending task and waits for their goroutines.
func (s *scheduler) Close() {
	s.cancel()
	_ = s.group.Wait()
}
