package math3d

import (
	"errors"
	"math"
)

// ErrGimbalLock is returned when a rotation cannot be decomposed under an
// order because its middle angle sits at ±π/2.
var ErrGimbalLock = errors.New("math3d: euler decomposition is singular")

// RotationOrder names a Cardan angle sequence. The angles of a decomposition
// are listed in the order of the name; the rotation they describe is
// R1 · R2 · R3, so the last named axis is applied to a vector first.
type RotationOrder int

const (
	OrderXYZ RotationOrder = iota
	OrderYXZ
	OrderZXY
)

func (o RotationOrder) String() string {
	switch o {
	case OrderXYZ:
		return "XYZ"
	case OrderYXZ:
		return "YXZ"
	case OrderZXY:
		return "ZXY"
	default:
		return "unknown"
	}
}

// singularLimit is the |sin| of the middle angle beyond which a
// decomposition is rejected.
const singularLimit = 0.9999999999

// FromEulerXYZ builds Rx(rx) · Ry(ry) · Rz(rz): z is applied first, then y,
// then x. ToEulerXYZ inverts it for non-singular rotations.
func FromEulerXYZ(rx, ry, rz float64) Quat {
	qx := QuatAxisAngle(UnitX(), rx)
	qy := QuatAxisAngle(UnitY(), ry)
	qz := QuatAxisAngle(UnitZ(), rz)
	return qx.Mul(qy.Mul(qz)).Normalize()
}

// Angles decomposes q under the given order. The returned vector holds the
// angles in sequence: X is the first angle of the order, Y the second and
// Z the third.
func (q Quat) Angles(order RotationOrder) (Vec3, error) {
	m := q.matrix()
	switch order {
	case OrderXYZ:
		// Rx(a)·Ry(b)·Rz(c): m02 = sin b
		if math.Abs(m[0][2]) > singularLimit {
			return Vec3{}, ErrGimbalLock
		}
		return Vec3{
			math.Atan2(-m[1][2], m[2][2]),
			math.Asin(m[0][2]),
			math.Atan2(-m[0][1], m[0][0]),
		}, nil
	case OrderYXZ:
		// Ry(a)·Rx(b)·Rz(c): m12 = -sin b
		if math.Abs(m[1][2]) > singularLimit {
			return Vec3{}, ErrGimbalLock
		}
		return Vec3{
			math.Atan2(m[0][2], m[2][2]),
			math.Asin(-m[1][2]),
			math.Atan2(m[1][0], m[1][1]),
		}, nil
	case OrderZXY:
		// Rz(a)·Rx(b)·Ry(c): m21 = sin b
		if math.Abs(m[2][1]) > singularLimit {
			return Vec3{}, ErrGimbalLock
		}
		return Vec3{
			math.Atan2(-m[0][1], m[1][1]),
			math.Asin(m[2][1]),
			math.Atan2(-m[2][0], m[2][2]),
		}, nil
	}
	return Vec3{}, ErrGimbalLock
}

// ToEulerXYZ returns the X, Y and Z angles of q.
//
// It decomposes under XYZ first. When that is singular it retries under YXZ
// and then ZXY and reports the per-axis angles of whichever succeeds; those
// no longer reproduce q through FromEulerXYZ. If every order fails it
// returns (0, 0, 0). The result is lossy near gimbal lock by construction.
func ToEulerXYZ(q Quat) Vec3 {
	if a, err := q.Angles(OrderXYZ); err == nil {
		return a
	}
	if a, err := q.Angles(OrderYXZ); err == nil {
		return Vec3{X: a.Y, Y: a.X, Z: a.Z}
	}
	if a, err := q.Angles(OrderZXY); err == nil {
		return Vec3{X: a.Y, Y: a.Z, Z: a.X}
	}
	return Vec3{}
}
