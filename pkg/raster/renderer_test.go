package raster

import (
	"testing"

	"github.com/voxelwright/rasterkit/pkg/math3d"
)

func quadMesh(z float32, uvFlip bool) *Mesh {
	a := math3d.V4(-0.5, -0.5, z, 1)
	b := math3d.V4(0.5, -0.5, z, 1)
	c := math3d.V4(0.5, 0.5, z, 1)
	d := math3d.V4(-0.5, 0.5, z, 1)

	uvA, uvB, uvC, uvD := math3d.V4(0, 0, 0, 0), math3d.V4(1, 0, 0, 0), math3d.V4(1, 1, 0, 0), math3d.V4(0, 1, 0, 0)
	if uvFlip {
		uvA, uvC = uvC, uvA
	}

	return &Mesh{
		Vertices: []Vertex{
			{Position: a, TexCoords: uvA},
			{Position: b, TexCoords: uvB},
			{Position: c, TexCoords: uvC},
			{Position: d, TexCoords: uvD},
		},
		// Front-facing per the renderer's screen-space winding convention
		// (clockwise in screen space, y-down): A,C,B and A,D,C.
		Indices: []int{0, 2, 1, 0, 3, 2},
	}
}

// TestDrawMeshCenteredQuad covers spec scenario 1: a centered axis-aligned
// quad under identity transforms leaves the middle of the buffer written
// and the outer ring untouched.
func TestDrawMeshCenteredQuad(t *testing.T) {
	r := NewRenderer(8, 8)
	mesh := quadMesh(0, false)
	tex := NewCheckerTexture(2, 2, Color{R: 255, A: 255}, Color{G: 255, A: 255})
	material := Material{Texture: tex}

	if err := r.DrawMesh(mesh, math3d.Identity(), math3d.Identity(), material, nil); err != nil {
		t.Fatalf("DrawMesh returned error: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inCenter := x >= 2 && x <= 5 && y >= 2 && y <= 5
			depth := r.DepthBuffer[x+y*8]
			if inCenter {
				if depth >= 1.0 {
					t.Errorf("center pixel (%d,%d) depth = %v, want < 1.0", x, y, depth)
				}
			} else {
				if depth != 1.0 {
					t.Errorf("outer pixel (%d,%d) depth = %v, want 1.0 (untouched)", x, y, depth)
				}
			}
		}
	}
}

// TestDrawMeshDepthOrderingIndependentOfDrawOrder covers spec scenario 2.
func TestDrawMeshDepthOrderingIndependentOfDrawOrder(t *testing.T) {
	near := quadMesh(0.3, false)
	far := quadMesh(0.7, false)
	nearMat := Material{Texture: NewBitmap(1, 1, Color{R: 255, A: 255})}
	farMat := Material{Texture: NewBitmap(1, 1, Color{G: 255, A: 255})}

	farThenNear := NewRenderer(8, 8)
	_ = farThenNear.DrawMesh(far, math3d.Identity(), math3d.Identity(), farMat, nil)
	_ = farThenNear.DrawMesh(near, math3d.Identity(), math3d.Identity(), nearMat, nil)

	nearThenFar := NewRenderer(8, 8)
	_ = nearThenFar.DrawMesh(near, math3d.Identity(), math3d.Identity(), nearMat, nil)
	_ = nearThenFar.DrawMesh(far, math3d.Identity(), math3d.Identity(), farMat, nil)

	for i := range farThenNear.DepthBuffer {
		if farThenNear.DepthBuffer[i] != nearThenFar.DepthBuffer[i] {
			t.Fatalf("depth buffers diverge at pixel %d depending on draw order: %v vs %v",
				i, farThenNear.DepthBuffer[i], nearThenFar.DepthBuffer[i])
		}
		if farThenNear.ColorBuffer.Pixels[i] != nearThenFar.ColorBuffer.Pixels[i] {
			t.Fatalf("color buffers diverge at pixel %d depending on draw order", i)
		}
	}

	center := 4 + 4*8
	if farThenNear.DepthBuffer[center] < 0.29 || farThenNear.DepthBuffer[center] > 0.31 {
		t.Errorf("center depth = %v, want ~0.3 (the near triangle)", farThenNear.DepthBuffer[center])
	}
}

// TestDrawMeshBackFaceCulling covers spec scenario 4: of two coplanar
// triangles sharing an edge with opposite winding, exactly one rasterizes.
func TestDrawMeshBackFaceCulling(t *testing.T) {
	front := quadMesh(0, false)
	reversed := &Mesh{
		Vertices: front.Vertices,
		Indices:  []int{1, 2, 0, 2, 3, 0},
	}
	tex := NewBitmap(1, 1, Color{R: 255, A: 255})

	onlyReversed := NewRenderer(8, 8)
	_ = onlyReversed.DrawMesh(reversed, math3d.Identity(), math3d.Identity(), Material{Texture: tex}, nil)
	for _, d := range onlyReversed.DepthBuffer {
		if d != 1.0 {
			t.Fatalf("back-facing-only mesh wrote a depth value: %v", d)
		}
	}

	onlyFront := NewRenderer(8, 8)
	_ = onlyFront.DrawMesh(front, math3d.Identity(), math3d.Identity(), Material{Texture: tex}, nil)
	wrote := false
	for _, d := range onlyFront.DepthBuffer {
		if d != 1.0 {
			wrote = true
			break
		}
	}
	if !wrote {
		t.Fatal("front-facing mesh wrote no depth values")
	}
}

// TestSampleShadowHitAndMiss covers spec scenario 5.
func TestSampleShadowHitAndMiss(t *testing.T) {
	depth := NewBitmap(4, 4, float32(0.5))
	light := &Light{DepthBitmap: depth}

	amount, inBounds := SampleShadow(light, 0, 0, 0.2)
	if !inBounds {
		t.Fatal("center sample reported out of bounds")
	}
	if amount != 1.0 {
		t.Errorf("center sample amount = %v, want 1.0 (lit)", amount)
	}

	// Boundary: (sx,sy) = (-1,1) maps to u=0,v=0 -> srcX=0,srcY=0, which
	// is <= 0 and therefore out of bounds per spec 4.5.
	_, inBounds = SampleShadow(light, -1, 1, 0.2)
	if inBounds {
		t.Error("boundary sample reported in bounds, want OutOfBounds")
	}
}

// TestDrawMeshDegenerateTriangleSkipped covers spec scenario 6.
func TestDrawMeshDegenerateTriangleSkipped(t *testing.T) {
	mesh := &Mesh{
		Vertices: []Vertex{
			{Position: math3d.V4(-0.5, 0, 0, 1)},
			{Position: math3d.V4(0, 0, 0, 1)},
			{Position: math3d.V4(0.5, 0, 0, 1)},
		},
		Indices: []int{0, 1, 2},
	}
	r := NewRenderer(8, 8)
	tex := NewBitmap(1, 1, Color{R: 255, A: 255})

	if err := r.DrawMesh(mesh, math3d.Identity(), math3d.Identity(), Material{Texture: tex}, nil); err != nil {
		t.Fatalf("DrawMesh of a degenerate triangle returned an error: %v", err)
	}
	for _, d := range r.DepthBuffer {
		if d != 1.0 {
			t.Fatalf("degenerate triangle wrote a depth value: %v", d)
		}
	}
}

func TestDrawMeshRejectsMalformedIndices(t *testing.T) {
	r := NewRenderer(4, 4)
	tex := NewBitmap(1, 1, Color{})

	bad := &Mesh{Vertices: []Vertex{{}}, Indices: []int{0, 1}}
	if err := r.DrawMesh(bad, math3d.Identity(), math3d.Identity(), Material{Texture: tex}, nil); err == nil {
		t.Error("expected an error for an index count not a multiple of 3")
	}

	outOfRange := &Mesh{Vertices: []Vertex{{}, {}, {}}, Indices: []int{0, 1, 5}}
	if err := r.DrawMesh(outOfRange, math3d.Identity(), math3d.Identity(), Material{Texture: tex}, nil); err == nil {
		t.Error("expected an error for an out-of-range index")
	}
}

func TestClearDepthResetsToOne(t *testing.T) {
	r := NewRenderer(4, 4)
	for i := range r.DepthBuffer {
		r.DepthBuffer[i] = 0
	}
	r.ClearDepth()
	for i, d := range r.DepthBuffer {
		if d != 1.0 {
			t.Fatalf("DepthBuffer[%d] = %v after ClearDepth, want 1.0", i, d)
		}
	}
}
