package raster

import (
	"testing"

	"github.com/voxelwright/rasterkit/pkg/math3d"
)

func TestClipTriangleFullyInsideFastPath(t *testing.T) {
	v1 := Vertex{Position: math3d.V4(-0.5, -0.5, 0, 1)}
	v2 := Vertex{Position: math3d.V4(0.5, -0.5, 0, 1)}
	v3 := Vertex{Position: math3d.V4(0, 0.5, 0, 1)}

	if !v1.InsideViewFrustum() || !v2.InsideViewFrustum() || !v3.InsideViewFrustum() {
		t.Fatal("test fixture expected to be fully inside the frustum")
	}

	tris := ClipTriangle(v1, v2, v3)
	if len(tris) != 1 {
		t.Fatalf("ClipTriangle of a fully-inside triangle returned %d triangles, want 1", len(tris))
	}
	if tris[0] != (Triangle{v1, v2, v3}) {
		t.Errorf("ClipTriangle of a fully-inside triangle altered the vertices")
	}
}

func TestClipTriangleOneVertexOutsideLeftPlane(t *testing.T) {
	outside := Vertex{Position: math3d.V4(-2, 0, 0, 1), TexCoords: math3d.V4(0, 0, 0, 0)}
	inside1 := Vertex{Position: math3d.V4(0, -0.5, 0, 1), TexCoords: math3d.V4(1, 0, 0, 0)}
	inside2 := Vertex{Position: math3d.V4(0, 0.5, 0, 1), TexCoords: math3d.V4(1, 1, 0, 0)}

	tris := ClipTriangle(outside, inside1, inside2)
	if len(tris) != 2 {
		t.Fatalf("ClipTriangle with one vertex outside = %d triangles, want 2", len(tris))
	}

	for _, tri := range tris {
		for _, v := range tri {
			if !v.InsideViewFrustum() {
				t.Errorf("clip result contains a vertex outside the frustum: %+v", v.Position)
			}
		}
	}
}

func TestClipTriangleFullyOutside(t *testing.T) {
	v1 := Vertex{Position: math3d.V4(-2, 0, 0, 1)}
	v2 := Vertex{Position: math3d.V4(-3, 0, 0, 1)}
	v3 := Vertex{Position: math3d.V4(-2.5, 1, 0, 1)}

	tris := ClipTriangle(v1, v2, v3)
	if tris != nil {
		t.Errorf("ClipTriangle of a fully-outside triangle = %v, want nil", tris)
	}
}

func TestClipTriangleIntroducedVertexLerp(t *testing.T) {
	// prev (outside, x=-2) -> curr (inside, x=0): the intersection vertex
	// should land exactly on the x=-w plane with texcoords linearly
	// interpolated by the same t used for position.
	outside := Vertex{Position: math3d.V4(-2, 0, 0, 1), TexCoords: math3d.V4(0, 0, 0, 0)}
	inside := Vertex{Position: math3d.V4(0, 0, 0, 1), TexCoords: math3d.V4(1, 0, 0, 0)}

	// b = prev.w - prev.x*(-1) = 1 - 2 = -1
	// c = curr.w - curr.x*(-1) = 1 - 0 = 1
	// t = b / (b - c) = -1 / -2 = 0.5
	want := outside.Lerp(inside, 0.5)

	// Against the x=-w plane, polygon (inside, outside) clips to
	// [outside->inside intersection, inside, inside->outside intersection].
	clipped := clipPolygonComponent([]Vertex{inside, outside}, 0, -1)
	if len(clipped) != 3 {
		t.Fatalf("clipPolygonComponent returned %d vertices, want 3", len(clipped))
	}
	got := clipped[0]
	if got.TexCoords != want.TexCoords {
		t.Errorf("lerp texcoords = %+v, want %+v", got.TexCoords, want.TexCoords)
	}
	if got.Position.X < -1.001 || got.Position.X > -0.999 {
		t.Errorf("expected lerped position to land on the x=-w plane, got x=%v", got.Position.X)
	}
}
