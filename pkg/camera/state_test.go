package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orbit/pkg/math3d"
)

func TestStateString(t *testing.T) {
	want := "orbit state\n" +
		"  distance: 500.000\n" +
		"  center: 0.000, 0.000, 0.000\n" +
		"  rotation: 1.000,0.000,0.000,0.000"
	assert.Equal(t, want, DefaultState().String())
}

func TestStateRoundTrip(t *testing.T) {
	s := State{
		Distance: 123.25,
		Center:   math3d.V3(1.5, -2, 30.125),
		Rotation: math3d.FromEulerXYZ(0.3, -0.2, 1.1),
	}

	got, err := ParseState(s.String())
	require.NoError(t, err)

	assert.InDelta(t, s.Distance, got.Distance, 1e-3)
	assertVec3InDelta(t, s.Center, got.Center, 1e-3)
	// Three decimals per component.
	assert.InDelta(t, 1, math.Abs(s.Rotation.Dot(got.Rotation)), 1e-5)
	assert.InDelta(t, 1, got.Rotation.Len(), 1e-12)
}

func TestParseStateWithoutLabel(t *testing.T) {
	got, err := ParseState("distance: 10\ncenter: 1, 2, 3\nrotation: 0,0,1,0\n")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Distance)
	assert.Equal(t, math3d.V3(1, 2, 3), got.Center)
	assert.Equal(t, math3d.Q(0, 0, 1, 0), got.Rotation)
}

func TestParseStateMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing rotation", "distance: 1\ncenter: 0, 0, 0"},
		{"short center", "distance: 1\ncenter: 0, 0\nrotation: 1,0,0,0"},
		{"bad number", "distance: far\ncenter: 0, 0, 0\nrotation: 1,0,0,0"},
		{"zero distance", "distance: 0\ncenter: 0, 0, 0\nrotation: 1,0,0,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseState(tt.in)
			assert.ErrorIs(t, err, ErrMalformedState)
		})
	}
}

func TestStatePose(t *testing.T) {
	s := State{
		Distance: 10,
		Center:   math3d.V3(1, 0, 0),
		Rotation: math3d.QuatAxisAngle(math3d.UnitX(), -math.Pi/2),
	}
	// Tipping the camera forward puts it above the center looking down.
	assertVec3InDelta(t, math3d.V3(1, 10, 0), s.Eye(), 1e-9)
	assertVec3InDelta(t, math3d.V3(0, 0, -1), s.Up(), 1e-9)
}

func assertVec3InDelta(t *testing.T, want, got math3d.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}
