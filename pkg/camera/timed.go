package camera

import (
	"time"

	"github.com/taigrr/orbit/pkg/math3d"
)

// timedDone is the raw progress past which a transition snaps to its end.
const timedDone = 0.995

// TimedChannel animates one quantity from a start value to an end value over
// a wall-clock duration. Each update hands the bound action the eased
// progress in [0, 1]; the easing is Smootherstep for every channel.
type TimedChannel[T any] struct {
	from, to T
	started  time.Time
	duration time.Duration
	active   bool

	now    func() time.Time
	action func(from, to T, t float64)
}

// NewTimedChannel creates an idle channel. now supplies timestamps and
// defaults to time.Now.
func NewTimedChannel[T any](now func() time.Time, action func(from, to T, t float64)) *TimedChannel[T] {
	if now == nil {
		now = time.Now
	}
	return &TimedChannel[T]{now: now, action: action}
}

// Start begins a transition from -> to. Every channel in suppress is stopped
// first so leftover momentum cannot fight the transition. A non-positive
// duration applies the end value immediately and leaves the channel idle.
func (c *TimedChannel[T]) Start(from, to T, duration time.Duration, suppress ...*DampedChannel) {
	for _, d := range suppress {
		if d != nil {
			d.Stop()
		}
	}
	c.from = from
	c.to = to
	c.duration = duration
	c.started = c.now()
	c.active = duration > 0
	if !c.active {
		c.fire(1)
	}
}

// Update advances an active transition. It returns true if the action ran.
func (c *TimedChannel[T]) Update() bool {
	if !c.active {
		return false
	}
	t := float64(c.now().Sub(c.started)) / float64(c.duration)
	if t > timedDone {
		c.fire(1)
		c.active = false
		return true
	}
	c.fire(math3d.Smootherstep(max(t, 0)))
	return true
}

// Stop ends the transition where it is without running the action.
func (c *TimedChannel[T]) Stop() {
	c.active = false
}

// Active reports whether a transition is in progress.
func (c *TimedChannel[T]) Active() bool {
	return c.active
}

// Target returns the end value of the last transition.
func (c *TimedChannel[T]) Target() T {
	return c.to
}

func (c *TimedChannel[T]) fire(t float64) {
	if c.action != nil {
		c.action(c.from, c.to, t)
	}
}
