package port

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels future runs. Returns false if the timer had already
	// stopped or fired (for one-shot timers).
	Stop() bool
}

// Scheduler runs callbacks on the main loop. Callbacks never run
// concurrently with each other.
type Scheduler interface {
	// Every runs fn repeatedly every interval until the timer is stopped.
	Every(interval time.Duration, fn func()) Timer

	// After runs fn once after delay.
	After(delay time.Duration, fn func()) Timer
}
