package stages

import (
	"time"

	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/aretw0/sweetwater/pkg/schedule"
)

// countdown publishes the remaining stage time every frame until it reaches zero,
// then calls onExpire exactly once. A nil onExpire just stops counting.
type countdown struct {
	host     ports.StageHost
	duration time.Duration
	frame    time.Duration
	started  time.Time
	onExpire func()
	cancel   schedule.CancelFunc
	stopped  bool
}

func startCountdown(host ports.StageHost, duration, frame time.Duration, onExpire func()) *countdown {
	c := &countdown{
		host:     host,
		duration: duration,
		frame:    frame,
		started:  host.Scheduler().Now(),
		onExpire: onExpire,
	}
	c.host.SetRemaining(duration.Seconds())
	c.cancel = c.host.Scheduler().AfterFunc(frame, c.tick)
	return c
}

func (c *countdown) tick() {
	if c.stopped {
		return
	}
	elapsed := c.host.Scheduler().Now().Sub(c.started)
	remaining := max(0, c.duration-elapsed)
	c.host.SetRemaining(remaining.Seconds())

	if remaining > 0 {
		c.cancel = c.host.Scheduler().AfterFunc(c.frame, c.tick)
		return
	}
	c.stopped = true
	if c.onExpire != nil {
		c.onExpire()
	}
}

// Stop halts the countdown without calling onExpire.
func (c *countdown) Stop() {
	if c == nil || c.stopped {
		return
	}
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
	}
}
