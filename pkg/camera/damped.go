package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// dampedThreshold is the squared value below which a channel is at rest.
const dampedThreshold = 1e-6

// maxDamping keeps momentum from coasting forever.
const maxDamping = 0.999

// DampedChannel accumulates impulses on one motion axis and lets them decay
// every update. While the value is significant each update hands it to the
// bound action before decaying it.
//
// By default the decay is geometric: value *= damping. With a spring
// attached the value is instead pulled to zero by a critically damped
// harmonica spring.
type DampedChannel struct {
	value   float64
	damping float64
	action  func(value float64)

	spring   *harmonica.Spring
	velocity float64
}

// NewDampedChannel creates a channel with the given damping factor and
// action. action may be nil.
func NewDampedChannel(damping float64, action func(value float64)) *DampedChannel {
	d := &DampedChannel{action: action}
	d.SetDamping(damping)
	return d
}

// AddForce accumulates force onto the channel. There is no clamping, but
// NaN and infinite forces are dropped since they would never decay.
func (d *DampedChannel) AddForce(force float64) {
	if math.IsNaN(force) || math.IsInf(force, 0) {
		return
	}
	d.value += force
}

// Value returns the accumulated value.
func (d *DampedChannel) Value() float64 {
	return d.value
}

// Damping returns the per-update decay factor.
func (d *DampedChannel) Damping() float64 {
	return d.damping
}

// SetDamping sets the per-update decay factor, clamped to [0, 0.999].
func (d *DampedChannel) SetDamping(damping float64) {
	switch {
	case !(damping >= 0):
		damping = 0
	case damping > maxDamping:
		damping = maxDamping
	}
	d.damping = damping
}

// UseSpring switches the decay to the given spring; nil restores geometric
// decay.
func (d *DampedChannel) UseSpring(s *harmonica.Spring) {
	d.spring = s
	d.velocity = 0
}

// Active reports whether the value is above the rest threshold.
func (d *DampedChannel) Active() bool {
	return d.value*d.value > dampedThreshold
}

// Update runs one step. It returns true if the action ran; a channel at
// rest is zeroed and returns false.
func (d *DampedChannel) Update() bool {
	if !d.Active() {
		d.Stop()
		return false
	}
	if d.action != nil {
		d.action(d.value)
	}
	if d.spring != nil {
		d.value, d.velocity = d.spring.Update(d.value, d.velocity, 0)
	} else {
		d.value *= d.damping
	}
	return true
}

// Stop drops any momentum immediately.
func (d *DampedChannel) Stop() {
	d.value = 0
	d.velocity = 0
}
