package math3d

import (
	"fmt"
	"math"
)

// Matrix4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Matrix4 [16]float32

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float32) Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// ScaleXYZ creates a non-uniform scaling matrix.
func ScaleXYZ(x, y, z float32) Matrix4 {
	return Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float32) Matrix4 {
	return ScaleXYZ(s, s, s)
}

// RotateX creates a rotation matrix around the X axis (radians).
func RotateX(rad float32) Matrix4 {
	c, s := float32(math.Cos(float64(rad))), float32(math.Sin(float64(rad)))
	return Matrix4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis (radians).
func RotateY(rad float32) Matrix4 {
	c, s := float32(math.Cos(float64(rad))), float32(math.Sin(float64(rad)))
	return Matrix4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis (radians).
func RotateZ(rad float32) Matrix4 {
	c, s := float32(math.Cos(float64(rad))), float32(math.Sin(float64(rad)))
	return Matrix4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective builds a right-handed perspective projection for a camera
// looking down -z. fovy is the full vertical field of view in radians. The
// resulting w-component of a transformed point carries its view-space
// depth -z (a point at z=-5 gets w=5), and after the perspective divide the
// z range is [0,1] (0 at the near plane, 1 at far).
func Perspective(fovy, aspect, near, far float32) Matrix4 {
	tanHalfFovy := float32(math.Tan(float64(fovy) / 2))
	zRange := far - near

	m := Matrix4{}
	m[0] = 1 / (tanHalfFovy * aspect)
	m[5] = 1 / tanHalfFovy
	m[10] = -far / zRange
	m[11] = -1
	m[14] = -(far * near) / zRange
	return m
}

// Orthographic builds an orthographic projection mapping [l,r]x[b,t]x[n,f]
// into the clip cube.
func Orthographic(l, r, b, t, n, f float32) Matrix4 {
	m := Identity()
	m[0] = 2 / (r - l)
	m[5] = 2 / (t - b)
	m[10] = -2 / (f - n)
	m[12] = -(r + l) / (r - l)
	m[13] = -(t + b) / (t - b)
	m[14] = -(f + n) / (f - n)
	return m
}

// ScreenSpace builds the bit-exact screen-space mapping: it maps NDC
// x,y in [-1,+1] to pixel-center coordinates translate(W/2-0.5, H/2-0.5, 0)
// * scale(W/2, -H/2, 1). The y scale is negative so NDC +1 (up) maps to
// screen row 0 (top).
func ScreenSpace(width, height int) Matrix4 {
	halfW := float32(width) / 2
	halfH := float32(height) / 2
	m := Identity()
	m[0] = halfW
	m[5] = -halfH
	m[12] = halfW - 0.5
	m[13] = halfH - 0.5
	return m
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, center, up Vector4) Matrix4 {
	f, err := center.Sub(eye).Normalize3()
	if err != nil {
		f = Vector4{0, 0, -1, 0}
	}
	s, err := f.Cross3(up).Normalize3()
	if err != nil {
		s = Vector4{1, 0, 0, 0}
	}
	u := s.Cross3(f)

	return Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot3(eye), -u.Dot3(eye), f.Dot3(eye), 1,
	}
}

// Get returns the element at (row, col).
func (m Matrix4) Get(row, col int) float32 {
	return m[col*4+row]
}

// Set returns a copy of m with (row, col) replaced.
func (m Matrix4) Set(row, col int, v float32) Matrix4 {
	m[col*4+row] = v
	return m
}

// Mul returns m * other (applying other first, then m).
//
//nolint:st1016 // a*b naming convention is clearer for matrix operations
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.Get(row, k) * other.Get(k, col)
			}
			out = out.Set(row, col, sum)
		}
	}
	return out
}

// MulVector4 transforms a Vector4 by m.
func (m Matrix4) MulVector4(v Vector4) Vector4 {
	return Vector4{
		m.Get(0, 0)*v.X + m.Get(0, 1)*v.Y + m.Get(0, 2)*v.Z + m.Get(0, 3)*v.W,
		m.Get(1, 0)*v.X + m.Get(1, 1)*v.Y + m.Get(1, 2)*v.Z + m.Get(1, 3)*v.W,
		m.Get(2, 0)*v.X + m.Get(2, 1)*v.Y + m.Get(2, 2)*v.Z + m.Get(2, 3)*v.W,
		m.Get(3, 0)*v.X + m.Get(3, 1)*v.Y + m.Get(3, 2)*v.Z + m.Get(3, 3)*v.W,
	}
}

// Transpose returns the transpose of m.
func (m Matrix4) Transpose() Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out = out.Set(col, row, m.Get(row, col))
		}
	}
	return out
}

// Determinant computes the 4x4 determinant via cofactor expansion.
func (m Matrix4) Determinant() float32 {
	a, b, c, d := m.Get(0, 0), m.Get(0, 1), m.Get(0, 2), m.Get(0, 3)
	e, f, g, h := m.Get(1, 0), m.Get(1, 1), m.Get(1, 2), m.Get(1, 3)
	i, j, k, l := m.Get(2, 0), m.Get(2, 1), m.Get(2, 2), m.Get(2, 3)
	n, o, p, q := m.Get(3, 0), m.Get(3, 1), m.Get(3, 2), m.Get(3, 3)

	return a*cofactor3(f, g, h, j, k, l, o, p, q) -
		b*cofactor3(e, g, h, i, k, l, n, p, q) +
		c*cofactor3(e, f, h, i, j, l, n, o, q) -
		d*cofactor3(e, f, g, i, j, k, n, o, p)
}

func cofactor3(a, b, c, d, e, f, g, h, i float32) float32 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Invert returns the inverse of m. Returns ErrNonFinite for a singular
// (or near-singular) matrix rather than silently returning identity.
func (m Matrix4) Invert() (Matrix4, error) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return Matrix4{}, fmt.Errorf("math3d: invert: %w", ErrNonFinite)
	}
	invDet := 1 / det

	var adj Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sub := m.minor3x3(row, col)
			sign := float32(1)
			if (row+col)%2 == 1 {
				sign = -1
			}
			// adjugate is the transpose of the cofactor matrix
			adj = adj.Set(col, row, sign*sub*invDet)
		}
	}
	return adj, nil
}

// minor3x3 returns the determinant of the 3x3 matrix formed by deleting
// the given row and column.
func (m Matrix4) minor3x3(row, col int) float32 {
	var vals [9]float32
	idx := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			vals[idx] = m.Get(r, c)
			idx++
		}
	}
	return cofactor3(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7], vals[8])
}

// Translation returns the translation component as a Vector4 (w=1).
func (m Matrix4) Translation() Vector4 {
	return Vector4{m.Get(0, 3), m.Get(1, 3), m.Get(2, 3), 1}
}
