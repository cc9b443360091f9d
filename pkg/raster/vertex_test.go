package raster

import (
	"testing"

	"github.com/voxelwright/rasterkit/pkg/math3d"
)

func TestVertexPerspectiveDivide(t *testing.T) {
	v := Vertex{Position: math3d.V4(4, 8, 12, 4)}
	got := v.PerspectiveDivide()
	want := math3d.V4(1, 2, 3, 4)
	if got.Position != want {
		t.Errorf("PerspectiveDivide: Position = %+v, want %+v", got.Position, want)
	}
}

func TestVertexInsideViewFrustum(t *testing.T) {
	cases := []struct {
		name string
		pos  math3d.Vector4
		want bool
	}{
		{"center", math3d.V4(0, 0, 0, 1), true},
		{"left boundary", math3d.V4(-1, 0, 0, 1), true},
		{"outside left", math3d.V4(-2, 0, 0, 1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := Vertex{Position: c.pos}
			if got := v.InsideViewFrustum(); got != c.want {
				t.Errorf("InsideViewFrustum(%+v) = %v, want %v", c.pos, got, c.want)
			}
		})
	}
}

func TestVertexLerp(t *testing.T) {
	a := Vertex{
		Position:  math3d.V4(0, 0, 0, 1),
		TexCoords: math3d.V4(0, 0, 0, 0),
	}
	b := Vertex{
		Position:  math3d.V4(10, 0, 0, 1),
		TexCoords: math3d.V4(1, 1, 0, 0),
	}

	got := a.Lerp(b, 0.5)
	if got.Position.X != 5 {
		t.Errorf("Lerp: Position.X = %v, want 5", got.Position.X)
	}
	if got.TexCoords.X != 0.5 {
		t.Errorf("Lerp: TexCoords.X = %v, want 0.5", got.TexCoords.X)
	}
}

func TestTriangleAreaTimesTwoWinding(t *testing.T) {
	// Clockwise in screen space (y-down): negative area, front-facing.
	cw := []Vertex{
		{Position: math3d.V4(0, 0, 0, 1)},
		{Position: math3d.V4(1, 0, 0, 1)},
		{Position: math3d.V4(0, 1, 0, 1)},
	}
	area := cw[0].TriangleAreaTimesTwo(cw[1], cw[2])
	if area >= 0 {
		t.Errorf("clockwise triangle area*2 = %v, want < 0", area)
	}

	ccw := []Vertex{
		{Position: math3d.V4(0, 0, 0, 1)},
		{Position: math3d.V4(0, 1, 0, 1)},
		{Position: math3d.V4(1, 0, 0, 1)},
	}
	area = ccw[0].TriangleAreaTimesTwo(ccw[1], ccw[2])
	if area <= 0 {
		t.Errorf("counter-clockwise triangle area*2 = %v, want > 0", area)
	}
}
