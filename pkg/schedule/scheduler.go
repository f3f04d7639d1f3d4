package schedule

import "time"

// CancelFunc stops a pending callback. It is safe to call more than once,
// and after the callback already ran.
type CancelFunc func()

// Scheduler runs callbacks in the future, serialized on one logical thread.
type Scheduler interface {
	// Now returns the current (monotonic) time of the scheduler.
	Now() time.Time

	// AfterFunc arranges for fn to run once d has elapsed. A zero or negative d
	// still defers fn; it never runs synchronously inside AfterFunc.
	AfterFunc(d time.Duration, fn func()) CancelFunc
}
