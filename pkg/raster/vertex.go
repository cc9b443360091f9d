package raster

import "github.com/voxelwright/rasterkit/pkg/math3d"

// Vertex bundles the per-vertex attributes carried through the pipeline.
// ShadowCoords is only meaningful when a Light is drawing; it is computed
// from the vertex's local-space position before the main MVP transform is
// applied (see Renderer.DrawMesh).
type Vertex struct {
	Position     math3d.Vector4
	TexCoords    math3d.Vector4
	Normal       math3d.Vector4
	ShadowCoords math3d.Vector4
}

// Transform multiplies Position by mvp and Normal by normalMatrix,
// leaving TexCoords and ShadowCoords untouched.
func (v Vertex) Transform(mvp, normalMatrix math3d.Matrix4) Vertex {
	v.Position = mvp.MulVector4(v.Position)
	v.Normal = normalMatrix.MulVector4(v.Normal)
	return v
}

// PerspectiveDivide divides Position's x,y,z by w, leaving w unchanged so
// it keeps carrying the pre-divide view-space z.
func (v Vertex) PerspectiveDivide() Vertex {
	v.Position = v.Position.PerspectiveDivide()
	return v
}

// Lerp interpolates every attribute by t.
func (v Vertex) Lerp(other Vertex, t float32) Vertex {
	return Vertex{
		Position:     v.Position.Lerp(other.Position, t),
		TexCoords:    v.TexCoords.Lerp(other.TexCoords, t),
		Normal:       v.Normal.Lerp(other.Normal, t),
		ShadowCoords: v.ShadowCoords.Lerp(other.ShadowCoords, t),
	}
}

// InsideViewFrustum reports whether Position lies within the homogeneous
// clip volume |x|<=|w|, |y|<=|w|, |z|<=|w|.
func (v Vertex) InsideViewFrustum() bool {
	return v.Position.InsideViewFrustum()
}

// Get returns component i (0=x,1=y,2=z,3=w) of Position, used by the
// clipper for axis-indexed comparisons.
func (v Vertex) Get(i int) float32 {
	return v.Position.Get(i)
}

// TriangleAreaTimesTwo returns the signed area * 2 of the screen-space
// triangle (v, b, c), using only the x,y components of Position. Positive
// for a counter-clockwise winding in a y-down coordinate system.
func (v Vertex) TriangleAreaTimesTwo(b, c Vertex) float32 {
	return (c.Position.X-v.Position.X)*(b.Position.Y-v.Position.Y) -
		(b.Position.X-v.Position.X)*(c.Position.Y-v.Position.Y)
}
