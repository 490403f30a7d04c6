package math3d

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quat is a rotation quaternion. Real is the scalar part (q0); Imag, Jmag
// and Kmag are the vector part (q1, q2, q3).
//
// Convention: q.Rotate(v) computes q·v·q*, a right-handed rotation of v by
// the encoded angle. Composition reads right to left: a.Mul(b) rotates by b
// first and then by a.
type Quat quat.Number

// Q creates a quaternion from its scalar and vector parts. The result is not
// normalized.
func Q(q0, q1, q2, q3 float64) Quat {
	return Quat{Real: q0, Imag: q1, Jmag: q2, Kmag: q3}
}

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat{Real: 1}
}

// QuatAxisAngle returns the rotation by angle radians around axis.
// A zero axis yields the identity.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	if axis.LenSq() == 0 {
		return QuatIdent()
	}
	s, c := math.Sincos(angle / 2)
	return Quat{Real: c, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

func (q Quat) number() quat.Number {
	return quat.Number(q)
}

// Mul composes two rotations: the result rotates by r first, then by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat(quat.Mul(q.number(), r.number()))
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	n := q.number()
	r := quat.Mul(quat.Mul(n, p), quat.Conj(n))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// Len returns the quaternion magnitude.
func (q Quat) Len() float64 {
	return quat.Abs(q.number())
}

// Normalize returns q scaled to unit length. A zero (or non-finite)
// quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return QuatIdent()
	}
	return Quat(quat.Scale(1/l, q.number()))
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat(quat.Conj(q.number()))
}

// Negate returns -q, which encodes the same rotation.
func (q Quat) Negate() Quat {
	return Quat(quat.Scale(-1, q.number()))
}

// Dot returns the 4D dot product of q and r.
func (q Quat) Dot(r Quat) float64 {
	return q.Real*r.Real + q.Imag*r.Imag + q.Jmag*r.Jmag + q.Kmag*r.Kmag
}

// Components returns (q0, q1, q2, q3).
func (q Quat) Components() [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

// Angle returns the rotation angle in [0, π] encoded by a unit quaternion.
func (q Quat) Angle() float64 {
	w := math.Abs(Clamp(q.Real, -1, 1))
	return 2 * math.Acos(w)
}

// Slerp interpolates along the shorter arc from a (t=0) to b (t=1).
// Nearly parallel inputs fall back to a normalized linear blend.
func Slerp(a, b Quat, t float64) Quat {
	cosTheta := a.Dot(b)
	if cosTheta < 0 {
		b = b.Negate()
		cosTheta = -cosTheta
	}
	cosTheta = math.Min(cosTheta, 1)

	theta := math.Acos(cosTheta)
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)

	w1, w2 := 1-t, t
	if sinTheta > 0.001 {
		w1 = math.Sin((1-t)*theta) / sinTheta
		w2 = math.Sin(t*theta) / sinTheta
	}

	n := quat.Add(quat.Scale(w1, a.number()), quat.Scale(w2, b.number()))
	return Quat(n).Normalize()
}

// Mat4 returns the homogeneous rotation matrix of a unit quaternion.
func (q Quat) Mat4() Mat4 {
	r := q.matrix()
	return Mat4{
		r[0][0], r[1][0], r[2][0], 0,
		r[0][1], r[1][1], r[2][1], 0,
		r[0][2], r[1][2], r[2][2], 0,
		0, 0, 0, 1,
	}
}

// matrix returns the 3x3 rotation matrix of a unit quaternion, indexed
// [row][col], acting on column vectors.
func (q Quat) matrix() [3][3]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}
