// Package mainloop runs all layout work on one goroutine and provides the
// timers the popout lifecycle schedules on it.
package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks into one posted callback. The
// callback runs the most recently posted function for its key.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer wraps post, the function that hands work to the loop.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post records fn for key and schedules a flush unless one is already
// pending. Returns true when a new flush was scheduled.
func (c *Coalescer) Post(key string, fn func()) bool {
	if fn == nil || key == "" {
		return false
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return false
	}
	_, pending := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()
	if pending {
		return false
	}

	c.post(func() { c.flush(key) })
	return true
}

func (c *Coalescer) flush(key string) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if ok && !destroyed {
		fn()
	}
}

// Pending returns the number of keys waiting for a flush.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

// Destroy drops pending work and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
