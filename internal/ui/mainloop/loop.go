package mainloop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/dockpop/internal/application/port"
)

const defaultQueueSize = 64

// Loop is a single-goroutine task queue. Everything posted to it, timer
// callbacks included, runs on the goroutine that called Run.
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	stopOnce  sync.Once
	ticks     *Coalescer
	nextTimer atomic.Uint64
}

var _ port.Scheduler = (*Loop)(nil)

// NewLoop creates a loop with a task queue of the given size.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	l := &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	l.ticks = NewCoalescer(func(fn func()) { l.Post(fn) })
	return l
}

// Post queues fn. Returns false once the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Invoke runs fn on the loop and waits for it to return.
func (l *Loop) Invoke(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return fmt.Errorf("main loop stopped")
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return fmt.Errorf("main loop stopped")
	}
}

// Run processes tasks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run and drops queued work. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.ticks.Destroy()
	})
}

type loopTimer struct {
	stopped atomic.Bool
	cancel  func()
}

func (t *loopTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.cancel()
	return true
}

// Every posts fn every interval. Ticks that pile up while the loop is busy
// are merged into one run.
func (l *Loop) Every(interval time.Duration, fn func()) port.Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	key := fmt.Sprintf("timer-%d", l.nextTimer.Add(1))
	quit := make(chan struct{})
	t := &loopTimer{cancel: func() { close(quit) }}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-l.done:
				return
			case <-ticker.C:
				l.ticks.Post(key, func() {
					if !t.stopped.Load() {
						fn()
					}
				})
			}
		}
	}()
	return t
}

// After posts fn once after delay.
func (l *Loop) After(delay time.Duration, fn func()) port.Timer {
	t := &loopTimer{}
	at := time.AfterFunc(delay, func() {
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	t.cancel = func() { at.Stop() }
	return t
}
