package mainloop

import (
	"time"

	"github.com/bnema/dockpop/internal/application/port"
)

// Virtual is a scheduler driven by an explicit clock. Nothing runs until
// Advance is called, and callbacks run on the caller's goroutine in due
// order. Used by tests and the headless demo.
type Virtual struct {
	now    time.Duration
	seq    int
	timers []*virtualTimer
}

var _ port.Scheduler = (*Virtual)(nil)

type virtualTimer struct {
	due      time.Duration
	interval time.Duration
	seq      int
	fn       func()
	stopped  bool
}

func (t *virtualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewVirtual creates a virtual scheduler at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Every runs fn every interval of virtual time.
func (v *Virtual) Every(interval time.Duration, fn func()) port.Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return v.schedule(interval, interval, fn)
}

// After runs fn once, delay from now.
func (v *Virtual) After(delay time.Duration, fn func()) port.Timer {
	if delay < 0 {
		delay = 0
	}
	return v.schedule(delay, 0, fn)
}

func (v *Virtual) schedule(delay, interval time.Duration, fn func()) *virtualTimer {
	v.seq++
	t := &virtualTimer{due: v.now + delay, interval: interval, seq: v.seq, fn: fn}
	v.timers = append(v.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way. Callbacks may schedule or stop timers.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for {
		next := v.nextDue(target)
		if next == nil {
			break
		}
		v.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			next.stopped = true
		}
		next.fn()
	}
	v.now = target
	v.compact()
}

// Pending returns the number of timers that can still fire.
func (v *Virtual) Pending() int {
	n := 0
	for _, t := range v.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (v *Virtual) nextDue(limit time.Duration) *virtualTimer {
	var best *virtualTimer
	for _, t := range v.timers {
		if t.stopped || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (v *Virtual) compact() {
	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(v.timers); i++ {
		v.timers[i] = nil
	}
	v.timers = live
}
