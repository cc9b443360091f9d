package raster

import (
	"fmt"
	"math"

	"github.com/voxelwright/rasterkit/pkg/math3d"
)

// DebugFlags enumerates the renderer's optional diagnostic overlays. All
// default to off; none of them is part of the core contract. ScanlineFill
// is carried but not read by the renderer: setting it changes no output.
type DebugFlags struct {
	Wireframe    bool
	Solid        bool
	Depth        bool
	DepthMiss    bool
	ScanlineFill bool
}

// Renderer owns a color buffer and a depth buffer for its lifetime and
// rasterizes meshes into them. It is re-entrant across distinct Renderer
// instances but not safe for concurrent use on a single instance: it
// mutates its own buffers without synchronization.
type Renderer struct {
	Width, Height int
	ScreenMatrix  math3d.Matrix4
	ColorBuffer   *Bitmap[Color]
	DepthBuffer   []float32
	Debug         DebugFlags
}

// NewRenderer allocates a width x height renderer with a cleared depth
// buffer and a black, fully-transparent color buffer.
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		Width:        width,
		Height:       height,
		ScreenMatrix: math3d.ScreenSpace(width, height),
		ColorBuffer:  NewBitmap(width, height, Color{}),
		DepthBuffer:  make([]float32, width*height),
	}
	r.ClearDepth()
	return r
}

// ClearDepth resets every depth buffer entry to 1.0 ("empty/far").
func (r *Renderer) ClearDepth() {
	for i := range r.DepthBuffer {
		r.DepthBuffer[i] = 1.0
	}
}

// ClearColor resets the color buffer to c.
func (r *Renderer) ClearColor(c Color) {
	r.ColorBuffer.Fill(c)
}

// DrawMesh rasterizes mesh under view-projection V and model transform M,
// shaded with material and (optionally) shadow-tested against light.
func (r *Renderer) DrawMesh(mesh *Mesh, viewProjection, transform math3d.Matrix4, material Material, light *Light) error {
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("raster: DrawMesh: %w", err)
	}

	mvp := viewProjection.Mul(transform)
	identity := math3d.Identity()

	var lightViewModel math3d.Matrix4
	if light != nil {
		lightViewModel = light.Projection.Mul(transform)
	}

	for t := 0; t < mesh.TriangleCount(); t++ {
		i0, i1, i2 := mesh.Indices[t*3], mesh.Indices[t*3+1], mesh.Indices[t*3+2]
		v1, v2, v3 := mesh.Vertices[i0], mesh.Vertices[i1], mesh.Vertices[i2]

		if light != nil {
			v1.ShadowCoords = lightViewModel.MulVector4(v1.Position)
			v2.ShadowCoords = lightViewModel.MulVector4(v2.Position)
			v3.ShadowCoords = lightViewModel.MulVector4(v3.Position)
		}

		v1 = v1.Transform(mvp, identity)
		v2 = v2.Transform(mvp, identity)
		v3 = v3.Transform(mvp, identity)

		if v1.InsideViewFrustum() && v2.InsideViewFrustum() && v3.InsideViewFrustum() {
			r.fillTriangle(v1, v2, v3, material, light)
			continue
		}

		for _, tri := range ClipTriangle(v1, v2, v3) {
			r.fillTriangle(tri[0], tri[1], tri[2], material, light)
		}
	}
	return nil
}

func (r *Renderer) fillTriangle(v1, v2, v3 Vertex, material Material, light *Light) {
	v1 = v1.Transform(r.ScreenMatrix, math3d.Identity()).PerspectiveDivide()
	v2 = v2.Transform(r.ScreenMatrix, math3d.Identity()).PerspectiveDivide()
	v3 = v3.Transform(r.ScreenMatrix, math3d.Identity()).PerspectiveDivide()

	if v1.TriangleAreaTimesTwo(v2, v3) >= 0 {
		return
	}

	min, mid, max := v1, v2, v3
	if max.Position.Y < mid.Position.Y {
		mid, max = max, mid
	}
	if mid.Position.Y < min.Position.Y {
		min, mid = mid, min
	}
	if max.Position.Y < mid.Position.Y {
		mid, max = max, mid
	}

	handedness := min.TriangleAreaTimesTwo(mid, max) >= 0

	gradients, ok := NewGradients(min, mid, max, DefaultLightDir)
	if !ok {
		return
	}

	minToMax := NewEdge(gradients, min, max, 0)
	minToMid := NewEdge(gradients, min, mid, 0)
	midToMax := NewEdge(gradients, mid, max, 1)

	r.scanHalf(gradients, minToMax, minToMid, handedness, material, light)
	r.scanHalf(gradients, minToMax, midToMax, handedness, material, light)
}

func (r *Renderer) scanHalf(g Gradients, edgeA, edgeB Edge, handedness bool, material Material, light *Light) {
	left, right := edgeA, edgeB
	if handedness {
		left, right = edgeB, edgeA
	}

	yStart := maxInt(left.YStart, right.YStart)
	yEnd := minInt(left.YEnd, right.YEnd)

	for y := yStart; y < yEnd; y++ {
		r.drawScanLine(g, &left, &right, y, material, light)
		left.Step()
		right.Step()
	}
}

func (r *Renderer) drawScanLine(g Gradients, left, right *Edge, y int, material Material, light *Light) {
	xMin := ceilF(left.X)
	xMax := ceilF(right.X)
	xPrestep := float32(xMin) - left.X

	oneOverZ := left.OneOverZ.Value + g.OneOverZ.StepX*xPrestep
	depth := left.Depth.Value + g.Depth.StepX*xPrestep
	lightAmount := left.LightAmount.Value + g.LightAmount.StepX*xPrestep
	texCoords := left.TexCoords.Value.Add(g.TexCoords.StepX.Scale(xPrestep))
	shadowCoords := left.ShadowCoords.Value.Add(g.ShadowCoords.StepX.Scale(xPrestep))

	for x := xMin; x < xMax; x++ {
		if x >= 0 && x < r.Width && y >= 0 && y < r.Height {
			idx := x + y*r.Width
			if depth < r.DepthBuffer[idx] {
				r.DepthBuffer[idx] = depth
				r.shadePixel(x, y, oneOverZ, depth, lightAmount, texCoords, shadowCoords, material, light)
			} else if r.Debug.DepthMiss && (x+y)%2 == 0 {
				BlendPixel(r.ColorBuffer, x, y, Color{0, 0, 255, 128})
			}
		}

		oneOverZ += g.OneOverZ.StepX
		depth += g.Depth.StepX
		lightAmount += g.LightAmount.StepX
		texCoords = texCoords.Add(g.TexCoords.StepX)
		shadowCoords = shadowCoords.Add(g.ShadowCoords.StepX)
	}

	if r.Debug.Wireframe {
		BlendPixel(r.ColorBuffer, xMin, y, Color{255, 255, 255, 3})
		BlendPixel(r.ColorBuffer, xMax, y, Color{255, 255, 255, 3})
	}
}

func (r *Renderer) shadePixel(x, y int, oneOverZ, depth, lightAmount float32, texCoords, shadowCoords math3d.Vector4, material Material, light *Light) {
	if r.Debug.Depth {
		BlendPixel(r.ColorBuffer, x, y, ColorFromFloats(depth, depth, 1-depth, 0.5))
		return
	}

	z := 1 / oneOverZ
	u := texCoords.X * z
	v := texCoords.Y * z

	tex := material.Texture
	srcX := clampInt(floorToInt(u*float32(tex.Width-1)+0.5), 0, tex.Width-1)
	srcY := clampInt(floorToInt(v*float32(tex.Height-1)+0.5), 0, tex.Height-1)
	texPixel := GetColor(tex, srcX, srcY)

	if light != nil {
		sx := shadowCoords.X * z
		sy := shadowCoords.Y * z
		sz := shadowCoords.Z * z
		amount, inBounds := SampleShadow(light, sx, sy, sz)
		if inBounds {
			if amount <= 0.5 {
				texPixel = MultiplyColor(texPixel, 0.6)
			}
		} else {
			texPixel = MultiplyGreen(texPixel, 0.4)
		}
	}

	if material.LightEnabled {
		texPixel = MultiplyColor(texPixel, lightAmount)
	}

	if r.Debug.Solid && x%4 == 0 && y%4 == 0 {
		texPixel = Color{0, 255, 0, 255}
	}

	BlendPixel(r.ColorBuffer, x, y, texPixel)
}

// SampleShadow performs a hard-edged depth comparison against light's
// depth bitmap at homogeneous-style sample point (sx,sy,sz). Returns
// inBounds=false when the sample falls within one texel of the shadow
// map's border.
func SampleShadow(light *Light, sx, sy, sz float32) (amount float32, inBounds bool) {
	u := sx*0.5 + 0.5
	v := -sy*0.5 + 0.5

	w := light.DepthBitmap.Width
	h := light.DepthBitmap.Height
	srcX := floorToInt(u*float32(w-1) + 0.5)
	srcY := floorToInt(v*float32(h-1) + 0.5)

	if srcX <= 0 || srcX >= w-1 || srcY <= 0 || srcY >= h-1 {
		return 0, false
	}

	const bias = 0.01
	stored := light.DepthBitmap.Get(srcX, srcY)
	if stored >= sz-bias {
		return 1.0, true
	}
	return 0.0, true
}

func floorToInt(v float32) int {
	return int(math.Floor(float64(v)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
