package math3d

import (
	"testing"
)

func BenchmarkMatrix4Mul(b *testing.B) {
	m1 := Translate(1, 2, 3)
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMatrix4MulVector4(b *testing.B) {
	m := Translate(1, 2, 3).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVector4(v)
	}
}

func BenchmarkMatrix4Invert(b *testing.B) {
	m := Translate(1, 2, 3).Mul(RotateY(0.5)).Mul(ScaleUniform(2))

	for b.Loop() {
		_, _ = m.Invert()
	}
}

func BenchmarkVector4Normalize(b *testing.B) {
	v := V4(1, 2, 3, 0)

	for b.Loop() {
		_, _ = v.Normalize()
	}
}

func BenchmarkVector4Cross3(b *testing.B) {
	v1 := V4(1, 2, 3, 0)
	v2 := V4(4, 5, 6, 0)

	for b.Loop() {
		_ = v1.Cross3(v2)
	}
}

func BenchmarkPerspective(b *testing.B) {
	for b.Loop() {
		_ = Perspective(1.0471975, 1.333, 0.1, 100.0)
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V4(0, 0, 10, 1)
	target := V4(0, 0, 0, 1)
	up := V4(0, 1, 0, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	eye := V4(0, 0, 10, 1)
	target := V4(0, 0, 0, 1)
	up := V4(0, 1, 0, 0)
	view := LookAt(eye, target, up)
	proj := Perspective(1.0471975, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
