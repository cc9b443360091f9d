package scene

import "github.com/voxelwright/rasterkit/pkg/math3d"

// plane represents Ax+By+Cz+D=0, with the normal pointing inward.
type plane struct {
	Normal math3d.Vector4
	D      float32
}

func (p *plane) normalize() {
	l := p.Normal.Len3()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

func (p plane) distanceToPoint(point math3d.Vector4) float32 {
	return p.Normal.Dot3(point) + p.D
}

// Frustum is the 6 planes of a view frustum (left, right, bottom, top,
// near, far), used upstream of the core rasterizer to skip whole
// instances that cannot contribute any pixels. It never replaces the
// core's own per-triangle clip/cull: it can only skip what the core would
// also have discarded entirely.
type Frustum struct {
	planes [6]plane
}

// NewFrustumFromMatrix extracts the frustum planes from a combined
// view-projection matrix using the Gribb/Hartmann method.
func NewFrustumFromMatrix(m math3d.Matrix4) Frustum {
	var f Frustum

	row := func(i int) (float32, float32, float32, float32) {
		return m.Get(i, 0), m.Get(i, 1), m.Get(i, 2), m.Get(i, 3)
	}
	r0x, r0y, r0z, r0w := row(0)
	r1x, r1y, r1z, r1w := row(1)
	r2x, r2y, r2z, r2w := row(2)
	r3x, r3y, r3z, r3w := row(3)

	f.planes[0] = plane{math3d.V4(r3x+r0x, r3y+r0y, r3z+r0z, 0), r3w + r0w} // left
	f.planes[1] = plane{math3d.V4(r3x-r0x, r3y-r0y, r3z-r0z, 0), r3w - r0w} // right
	f.planes[2] = plane{math3d.V4(r3x+r1x, r3y+r1y, r3z+r1z, 0), r3w + r1w} // bottom
	f.planes[3] = plane{math3d.V4(r3x-r1x, r3y-r1y, r3z-r1z, 0), r3w - r1w} // top
	f.planes[4] = plane{math3d.V4(r3x+r2x, r3y+r2y, r3z+r2z, 0), r3w + r2w} // near
	f.planes[5] = plane{math3d.V4(r3x-r2x, r3y-r2y, r3z-r2z, 0), r3w - r2w} // far

	for i := range f.planes {
		f.planes[i].normalize()
	}
	return f
}

// IntersectsAABB reports whether the box [min,max] in local space, after
// transform, intersects or lies inside the frustum. Uses the
// positive-vertex rejection test.
func (f Frustum) IntersectsAABB(transform math3d.Matrix4, min, max math3d.Vector4) bool {
	corners := [8]math3d.Vector4{
		math3d.V4(min.X, min.Y, min.Z, 1),
		math3d.V4(max.X, min.Y, min.Z, 1),
		math3d.V4(min.X, max.Y, min.Z, 1),
		math3d.V4(max.X, max.Y, min.Z, 1),
		math3d.V4(min.X, min.Y, max.Z, 1),
		math3d.V4(max.X, min.Y, max.Z, 1),
		math3d.V4(min.X, max.Y, max.Z, 1),
		math3d.V4(max.X, max.Y, max.Z, 1),
	}

	worldMin := transform.MulVector4(corners[0])
	worldMax := worldMin
	for i := 1; i < 8; i++ {
		c := transform.MulVector4(corners[i])
		worldMin = componentMin(worldMin, c)
		worldMax = componentMax(worldMax, c)
	}

	for _, pl := range f.planes {
		positive := math3d.V4(
			selectF(pl.Normal.X >= 0, worldMax.X, worldMin.X),
			selectF(pl.Normal.Y >= 0, worldMax.Y, worldMin.Y),
			selectF(pl.Normal.Z >= 0, worldMax.Z, worldMin.Z),
			1,
		)
		if pl.distanceToPoint(positive) < 0 {
			return false
		}
	}
	return true
}

func selectF(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
