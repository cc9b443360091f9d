package raster

import "github.com/voxelwright/rasterkit/pkg/math3d"

// DefaultLightDir is the fixed Lambertian light direction the Renderer
// passes to NewGradients for every triangle. NewGradients normalizes
// whatever direction it is given, regardless of its own length.
var DefaultLightDir = math3d.V4(0.1, 0.6, 0.3, 1.0)

// ScalarGradient is a plane equation for one scalar interpolant across a
// triangle: value[i] is its value at (min, mid, max), and StepX/StepY are
// its partial derivatives with respect to screen-space x and y.
type ScalarGradient struct {
	Value       [3]float32
	StepX, StepY float32
}

// At evaluates the plane at (x,y) relative to the min vertex (x0,y0).
func (g ScalarGradient) At(x, y, x0, y0 float32) float32 {
	return g.Value[0] + g.StepX*(x-x0) + g.StepY*(y-y0)
}

// VectorGradient is the Vector4-valued equivalent of ScalarGradient,
// computed componentwise.
type VectorGradient struct {
	Value        [3]math3d.Vector4
	StepX, StepY math3d.Vector4
}

// Gradients is the full per-triangle interpolant bundle built from sorted
// screen-space vertices (min, mid, max).
type Gradients struct {
	OneOverZ     ScalarGradient
	Depth        ScalarGradient
	LightAmount  ScalarGradient
	TexCoords    VectorGradient
	ShadowCoords VectorGradient
}

// NewGradients builds the plane equations for (min, mid, max), already in
// screen space with positions carrying their original view-space z in W.
// Returns ok=false for a degenerate (zero-area) triangle, which the caller
// must skip without dividing.
func NewGradients(min, mid, max Vertex, lightDir math3d.Vector4) (Gradients, bool) {
	normalizedLightDir, err := lightDir.Normalize3()
	if err != nil {
		normalizedLightDir = lightDir
	}

	minY, midY, maxY := min.Position.Y, mid.Position.Y, max.Position.Y
	minX, midX, maxX := min.Position.X, mid.Position.X, max.Position.X

	a := midX - maxX
	b := minY - maxY
	c := minX - maxX
	d := midY - maxY
	denominator := a*b - c*d
	if denominator == 0 {
		return Gradients{}, false
	}
	invDx := 1 / denominator
	invDy := -invDx

	oneOverZ := [3]float32{
		1 / min.Position.W,
		1 / mid.Position.W,
		1 / max.Position.W,
	}
	depth := [3]float32{min.Position.Z, mid.Position.Z, max.Position.Z}
	lightAmount := [3]float32{
		lambertAmount(min.Normal, normalizedLightDir),
		lambertAmount(mid.Normal, normalizedLightDir),
		lambertAmount(max.Normal, normalizedLightDir),
	}
	texCoords := [3]math3d.Vector4{
		min.TexCoords.Scale(oneOverZ[0]),
		mid.TexCoords.Scale(oneOverZ[1]),
		max.TexCoords.Scale(oneOverZ[2]),
	}
	shadowCoords := [3]math3d.Vector4{
		min.ShadowCoords.Scale(oneOverZ[0]),
		mid.ShadowCoords.Scale(oneOverZ[1]),
		max.ShadowCoords.Scale(oneOverZ[2]),
	}

	return Gradients{
		OneOverZ:     scalarGradient(oneOverZ, minX, midX, maxX, minY, midY, maxY, invDx, invDy),
		Depth:        scalarGradient(depth, minX, midX, maxX, minY, midY, maxY, invDx, invDy),
		LightAmount:  scalarGradient(lightAmount, minX, midX, maxX, minY, midY, maxY, invDx, invDy),
		TexCoords:    vectorGradient(texCoords, minX, midX, maxX, minY, midY, maxY, invDx, invDy),
		ShadowCoords: vectorGradient(shadowCoords, minX, midX, maxX, minY, midY, maxY, invDx, invDy),
	}, true
}

func lambertAmount(normal, lightDir math3d.Vector4) float32 {
	amt := math3d.Clamp(normal.Dot3(lightDir), 0, 1)
	return amt*0.75 + 0.25
}

func scalarGradient(v [3]float32, minX, midX, maxX, minY, midY, maxY, invDx, invDy float32) ScalarGradient {
	return ScalarGradient{
		Value: v,
		StepX: ((v[1]-v[2])*(minY-maxY) - (v[0]-v[2])*(midY-maxY)) * invDx,
		StepY: ((v[1]-v[2])*(minX-maxX) - (v[0]-v[2])*(midX-maxX)) * invDy,
	}
}

func vectorGradient(v [3]math3d.Vector4, minX, midX, maxX, minY, midY, maxY, invDx, invDy float32) VectorGradient {
	diff12 := v[1].Sub(v[2])
	diff02 := v[0].Sub(v[2])
	return VectorGradient{
		Value: v,
		StepX: diff12.Scale(minY - maxY).Sub(diff02.Scale(midY - maxY)).Scale(invDx),
		StepY: diff12.Scale(minX - maxX).Sub(diff02.Scale(midX - maxX)).Scale(invDy),
	}
}
