package camera

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/orbit/pkg/math3d"
)

// ErrMalformedState is returned by ParseState for text that is not a state
// dump.
var ErrMalformedState = errors.New("camera: malformed state")

const stateLabel = "orbit state"

// State is a camera pose: the eye sits Distance away from Center along the
// rotated +Z axis, and the rotated +Y axis is up.
//
// State is a plain value. Every copy is independent of the original.
type State struct {
	Distance float64
	Center   math3d.Vec3
	Rotation math3d.Quat
}

// DefaultState is the pose used when nothing else is configured.
func DefaultState() State {
	return State{
		Distance: 500,
		Center:   math3d.Zero3(),
		Rotation: math3d.QuatIdent(),
	}
}

// Eye returns the camera position.
func (s State) Eye() math3d.Vec3 {
	return s.Center.Add(s.Rotation.Rotate(math3d.UnitZ()).Scale(s.Distance))
}

// Up returns the camera up vector.
func (s State) Up() math3d.Vec3 {
	return s.Rotation.Rotate(math3d.UnitY())
}

// String renders the pose in the four-line form read by ParseState.
func (s State) String() string {
	q := s.Rotation.Components()
	var b strings.Builder
	b.WriteString(stateLabel + "\n")
	fmt.Fprintf(&b, "  distance: %.3f\n", s.Distance)
	fmt.Fprintf(&b, "  center: %.3f, %.3f, %.3f\n", s.Center.X, s.Center.Y, s.Center.Z)
	fmt.Fprintf(&b, "  rotation: %.3f,%.3f,%.3f,%.3f", q[0], q[1], q[2], q[3])
	return b.String()
}

// ParseState reads a pose written by State.String. The label line is
// optional and the rotation is renormalized, since the text form only
// carries three decimals.
func ParseState(text string) (State, error) {
	var (
		s                  State
		haveDist, haveCent bool
		haveRot            bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "distance":
			v, err := parseFloats(value, 1)
			if err != nil {
				return State{}, fmt.Errorf("distance: %w", err)
			}
			s.Distance = v[0]
			haveDist = true
		case "center":
			v, err := parseFloats(value, 3)
			if err != nil {
				return State{}, fmt.Errorf("center: %w", err)
			}
			s.Center = math3d.V3(v[0], v[1], v[2])
			haveCent = true
		case "rotation":
			v, err := parseFloats(value, 4)
			if err != nil {
				return State{}, fmt.Errorf("rotation: %w", err)
			}
			s.Rotation = math3d.Q(v[0], v[1], v[2], v[3]).Normalize()
			haveRot = true
		}
	}

	if !haveDist || !haveCent || !haveRot {
		return State{}, fmt.Errorf("missing distance, center or rotation: %w", ErrMalformedState)
	}
	if !(s.Distance > 0) {
		return State{}, fmt.Errorf("distance %v is not positive: %w", s.Distance, ErrMalformedState)
	}
	return s, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values, got %d: %w", n, len(parts), ErrMalformedState)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
		}
		out[i] = v
	}
	return out, nil
}
