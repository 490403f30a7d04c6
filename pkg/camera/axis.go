package camera

import "strings"

// Axis names one damped motion channel.
type Axis int

const (
	AxisZoom Axis = iota
	AxisPanX
	AxisPanY
	AxisRotX
	AxisRotY
	AxisRotZ
	numAxes
)

// updateOrder is the order damped channels run in each frame.
var updateOrder = [numAxes]Axis{AxisRotX, AxisRotY, AxisRotZ, AxisZoom, AxisPanX, AxisPanY}

func (a Axis) String() string {
	switch a {
	case AxisZoom:
		return "zoom"
	case AxisPanX:
		return "pan-x"
	case AxisPanY:
		return "pan-y"
	case AxisRotX:
		return "rot-x"
	case AxisRotY:
		return "rot-y"
	case AxisRotZ:
		return "rot-z"
	}
	return "unknown"
}

func (a Axis) valid() bool {
	return a >= 0 && a < numAxes
}

// Constraint is a set of rotation axes mouse input may drive.
type Constraint uint8

const (
	ConstrainYaw Constraint = 1 << iota
	ConstrainPitch
	ConstrainRoll

	ConstrainAll = ConstrainYaw | ConstrainPitch | ConstrainRoll
)

// Has reports whether every bit in axes is set.
func (c Constraint) Has(axes Constraint) bool {
	return c&axes == axes
}

func (c Constraint) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(ConstrainYaw) {
		parts = append(parts, "yaw")
	}
	if c.Has(ConstrainPitch) {
		parts = append(parts, "pitch")
	}
	if c.Has(ConstrainRoll) {
		parts = append(parts, "roll")
	}
	return strings.Join(parts, "+")
}

// ParseConstraint reads the names produced by Constraint.String. "all" and
// the empty string are also accepted.
func ParseConstraint(s string) (Constraint, bool) {
	switch s {
	case "", "none":
		return 0, true
	case "all":
		return ConstrainAll, true
	}
	var c Constraint
	for _, part := range strings.Split(s, "+") {
		switch strings.TrimSpace(part) {
		case "yaw":
			c |= ConstrainYaw
		case "pitch":
			c |= ConstrainPitch
		case "roll":
			c |= ConstrainRoll
		default:
			return 0, false
		}
	}
	return c, true
}

// DragAction is what a mouse button drag does.
type DragAction int

const (
	DragNone DragAction = iota
	DragRotate
	DragPan
	DragZoom
)

func (a DragAction) String() string {
	switch a {
	case DragRotate:
		return "rotate"
	case DragPan:
		return "pan"
	case DragZoom:
		return "zoom"
	}
	return "none"
}
