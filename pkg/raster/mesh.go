package raster

import "github.com/voxelwright/rasterkit/pkg/math3d"

// Mesh is an immutable, indexed triangle mesh. It is created once and
// shared under ordinary Go reference semantics (a *Mesh) across multiple
// Instances and frames; the renderer never mutates it.
type Mesh struct {
	Vertices []Vertex
	Indices  []int
}

// Validate checks the Mesh invariant used at DrawMesh's entry: the index
// count is a multiple of 3 and every index is in range.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return ErrInvariantViolation
	}
	for _, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return ErrInvariantViolation
		}
	}
	return nil
}

// TriangleCount returns the number of triangles described by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Material pairs a texture with whether Lambertian lighting should be
// applied when shading it.
type Material struct {
	LightEnabled bool
	Texture      *Bitmap[Color]
}

// Light is a shadow-casting light: a clip-space transform (its own
// projection * view, already composed) and the depth bitmap produced by
// rendering the scene from the light's point of view.
type Light struct {
	Projection  math3d.Matrix4
	DepthBitmap *Bitmap[float32]
}
