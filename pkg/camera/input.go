package camera

import (
	"math"

	"github.com/taigrr/orbit/pkg/math3d"
)

// Viewport is the screen rectangle that accepts mouse input. Coordinates are
// in pixels with Y growing downward.
type Viewport struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies strictly inside the viewport.
func (v Viewport) Contains(x, y float64) bool {
	return x > v.X && x < v.X+v.W && y > v.Y && y < v.Y+v.H
}

// Normalize maps (x, y) into [-1, 1] on both axes relative to the viewport
// center. Points outside are clamped to the edge.
func (v Viewport) Normalize(x, y float64) (nx, ny float64) {
	if v.W <= 0 || v.H <= 0 {
		return 0, 0
	}
	nx = math3d.Clamp((x-v.X-v.W/2)/(v.W/2), -1, 1)
	ny = math3d.Clamp((y-v.Y-v.H/2)/(v.H/2), -1, 1)
	return nx, ny
}

// PointerAction is the kind of mouse event.
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerDrag
	PointerRelease
	PointerWheel
	PointerClick
	PointerMove
)

// Button is a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	numButtons
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// PointerEvent is one mouse event in viewport pixel coordinates.
type PointerEvent struct {
	Action PointerAction
	X, Y   float64
	Button Button
	Mods   Modifier
	// Count is the click count for PointerClick.
	Count int
	// Wheel is the signed notch count for PointerWheel.
	Wheel float64
}

// KeyAction is the kind of key event.
type KeyAction int

const (
	KeyPress KeyAction = iota
	KeyRelease
)

// KeyEvent is a key event reduced to what the controller cares about.
// Constrain is set for the axis-latch key (shift).
type KeyEvent struct {
	Action    KeyAction
	Constrain bool
}

// inputMapper turns pointer events into forces on the damped channels.
// It is owned by a Controller and runs under its lock.
type inputMapper struct {
	dragging bool
	x, y     float64
	latch    Constraint
	bindings [numButtons]DragAction
}

func newInputMapper() inputMapper {
	var m inputMapper
	m.bindings[ButtonLeft] = DragRotate
	m.bindings[ButtonMiddle] = DragPan
	m.bindings[ButtonRight] = DragZoom
	return m
}

// dragAction resolves the button and modifiers to a binding. Meta with the
// left button stands in for the middle button.
func (m *inputMapper) dragAction(b Button, mods Modifier) DragAction {
	switch {
	case b == ButtonMiddle, b == ButtonLeft && mods&ModMeta != 0:
		return m.bindings[ButtonMiddle]
	case b == ButtonLeft:
		return m.bindings[ButtonLeft]
	case b == ButtonRight:
		return m.bindings[ButtonRight]
	}
	return DragNone
}

// handlePointer processes ev. It returns true when the event asks for a
// reset to the reset state.
func (c *Controller) handlePointer(ev PointerEvent) (reset bool) {
	m := &c.input
	px, py := m.x, m.y
	m.x, m.y = ev.X, ev.Y
	dx, dy := -(m.x - px), -(m.y - py)

	switch ev.Action {
	case PointerPress:
		if !c.cfg.Viewport.Contains(ev.X, ev.Y) {
			return false
		}
		m.dragging = true
		m.latch = 0
	case PointerRelease:
		m.dragging = false
		m.latch = 0
	case PointerWheel:
		if c.cfg.Viewport.Contains(ev.X, ev.Y) {
			c.damped[AxisZoom].AddForce(ev.Wheel * c.cfg.WheelScale)
		}
	case PointerClick:
		return ev.Count == 2 && c.cfg.Viewport.Contains(ev.X, ev.Y)
	case PointerDrag:
		if !m.dragging {
			return false
		}
		c.drag(ev, dx, dy)
	}
	return false
}

func (c *Controller) drag(ev PointerEvent, dx, dy float64) {
	m := &c.input
	if ev.Mods&ModShift != 0 && m.latch == 0 && math.Abs(dx-dy) > 1 {
		if math.Abs(dx) > math.Abs(dy) {
			m.latch = ConstrainYaw
		} else {
			m.latch = ConstrainPitch
		}
		c.log.Debugf("drag latched to %s", m.latch)
	}

	constraint := ConstrainAll
	if c.cfg.Constraint != 0 {
		constraint = c.cfg.Constraint
	}
	if m.latch != 0 {
		constraint = m.latch
	}

	switch m.dragAction(ev.Button, ev.Mods) {
	case DragRotate:
		c.dragRotate(constraint, dx, dy)
	case DragPan:
		if constraint.Has(ConstrainYaw) {
			c.damped[AxisPanX].AddForce(dx)
		}
		if constraint.Has(ConstrainPitch) {
			c.damped[AxisPanY].AddForce(dy)
		}
	case DragZoom:
		c.damped[AxisZoom].AddForce(-dy)
	}
}

// dragRotate is the virtual trackball: motion near the viewport center turns
// yaw and pitch, motion near the edges turns roll.
func (c *Controller) dragRotate(constraint Constraint, dx, dy float64) {
	x, y := c.cfg.Viewport.Normalize(c.input.x, c.input.y)
	if constraint.Has(ConstrainYaw) {
		c.damped[AxisRotY].AddForce(dx * (1 - y*y))
	}
	if constraint.Has(ConstrainPitch) {
		c.damped[AxisRotX].AddForce(-dy * (1 - x*x))
	}
	if constraint.Has(ConstrainRoll) {
		c.damped[AxisRotZ].AddForce(-dx*y + dy*x)
	}
}

func (c *Controller) handleKey(ev KeyEvent) {
	if ev.Action == KeyRelease && ev.Constrain {
		c.input.latch = 0
	}
}
