package math3d

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEulerXYZZeroIsIdentity(t *testing.T) {
	assertQuatInDelta(t, QuatIdent(), FromEulerXYZ(0, 0, 0), 1e-12)
	assert.Equal(t, Vec3{}, ToEulerXYZ(QuatIdent()))
}

func TestFromEulerXYZAppliesZFirst(t *testing.T) {
	q := FromEulerXYZ(0.3, -0.6, 1.1)
	v := V3(1, -2, 0.5)
	want := QuatAxisAngle(UnitX(), 0.3).Rotate(
		QuatAxisAngle(UnitY(), -0.6).Rotate(
			QuatAxisAngle(UnitZ(), 1.1).Rotate(v)))
	assertVec3InDelta(t, want, q.Rotate(v), 1e-9)
}

func TestEulerXYZRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		rx, ry, rz float64
	}{
		{"small", 0.1, 0.2, 0.3},
		{"negative", -0.4, -1.2, -0.9},
		{"mixed", 1.3, -0.2, 2.8},
		{"near limit", 0.5, 1.5, -0.5},
		{"x only", 1.0, 0, 0},
		{"z only", 0, 0, -2.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := FromEulerXYZ(tc.rx, tc.ry, tc.rz)
			angles := ToEulerXYZ(q)
			assertVec3InDelta(t, V3(tc.rx, tc.ry, tc.rz), angles, 1e-9)

			back := FromEulerXYZ(angles.X, angles.Y, angles.Z)
			assertQuatInDelta(t, q, back, 1e-9)
		})
	}
}

func TestAnglesReportsGimbalLock(t *testing.T) {
	q := FromEulerXYZ(0.3, math.Pi/2, 0.2)
	_, err := q.Angles(OrderXYZ)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGimbalLock))
}

func TestToEulerXYZFallsBackToYXZ(t *testing.T) {
	q := FromEulerXYZ(0.3, math.Pi/2, 0.2)
	angles := ToEulerXYZ(q)

	for _, a := range []float64{angles.X, angles.Y, angles.Z} {
		assert.False(t, math.IsNaN(a))
	}

	// the fallback angles describe Ry · Rx · Rz
	rebuilt := QuatAxisAngle(UnitY(), angles.Y).
		Mul(QuatAxisAngle(UnitX(), angles.X)).
		Mul(QuatAxisAngle(UnitZ(), angles.Z))
	assert.InDelta(t, 1.0, math.Abs(rebuilt.Dot(q)), 1e-9)
}

func TestAnglesPerOrder(t *testing.T) {
	tests := []struct {
		order RotationOrder
		build func(a, b, c float64) Quat
	}{
		{OrderXYZ, func(a, b, c float64) Quat {
			return QuatAxisAngle(UnitX(), a).Mul(QuatAxisAngle(UnitY(), b)).Mul(QuatAxisAngle(UnitZ(), c))
		}},
		{OrderYXZ, func(a, b, c float64) Quat {
			return QuatAxisAngle(UnitY(), a).Mul(QuatAxisAngle(UnitX(), b)).Mul(QuatAxisAngle(UnitZ(), c))
		}},
		{OrderZXY, func(a, b, c float64) Quat {
			return QuatAxisAngle(UnitZ(), a).Mul(QuatAxisAngle(UnitX(), b)).Mul(QuatAxisAngle(UnitY(), c))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.order.String(), func(t *testing.T) {
			got, err := tc.build(0.7, -0.4, 1.9).Angles(tc.order)
			require.NoError(t, err)
			assertVec3InDelta(t, V3(0.7, -0.4, 1.9), got, 1e-9)
		})
	}
}
