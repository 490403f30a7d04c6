package math3d

import (
	"testing"
)

func BenchmarkQuatMul(b *testing.B) {
	q1 := FromEulerXYZ(0.1, 0.2, 0.3)
	q2 := QuatAxisAngle(UnitY(), 0.5)

	for b.Loop() {
		_ = q1.Mul(q2)
	}
}

func BenchmarkQuatRotate(b *testing.B) {
	q := FromEulerXYZ(0.1, 0.2, 0.3)
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = q.Rotate(v)
	}
}

func BenchmarkSlerp(b *testing.B) {
	q1 := FromEulerXYZ(0.1, 0.2, 0.3)
	q2 := FromEulerXYZ(-0.5, 0.8, 0.1)

	for b.Loop() {
		_ = Slerp(q1, q2, 0.37)
	}
}

func BenchmarkToEulerXYZ(b *testing.B) {
	q := FromEulerXYZ(0.4, -0.9, 1.2)

	for b.Loop() {
		_ = ToEulerXYZ(q)
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(0, 0, 10)
	target := V3(0, 0, 0)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 0, 10), Zero3(), UnitY())
	proj := Perspective(1.0, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
