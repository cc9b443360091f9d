package raster

import "github.com/voxelwright/rasterkit/pkg/math3d"

// ScalarStepper walks a single scalar interpolant one scan line at a time.
type ScalarStepper struct {
	Value, Step float32
}

func newScalarStepper(g ScalarGradient, startIndex int, xPrestep, yPrestep, xStep float32) ScalarStepper {
	return ScalarStepper{
		Value: g.Value[startIndex] + g.StepX*xPrestep + g.StepY*yPrestep,
		Step:  g.StepY + g.StepX*xStep,
	}
}

func (s *ScalarStepper) step() {
	s.Value += s.Step
}

// VectorStepper is the Vector4-valued equivalent of ScalarStepper.
type VectorStepper struct {
	Value, Step math3d.Vector4
}

func newVectorStepper(g VectorGradient, startIndex int, xPrestep, yPrestep, xStep float32) VectorStepper {
	return VectorStepper{
		Value: g.Value[startIndex].Add(g.StepX.Scale(xPrestep)).Add(g.StepY.Scale(yPrestep)),
		Step:  g.StepY.Add(g.StepX.Scale(xStep)),
	}
}

func (s *VectorStepper) step() {
	s.Value = s.Value.Add(s.Step)
}

// Edge walks one side of a triangle scanline by scanline: x is the
// current intersection column, and each interpolant is pre-stepped to the
// pixel center of scan line YStart.
type Edge struct {
	YStart, YEnd int
	X, XStep     float32

	OneOverZ, Depth, LightAmount ScalarStepper
	TexCoords, ShadowCoords      VectorStepper
}

// NewEdge builds the edge walker for the segment from start to end.
// startIndex selects which of the triangle's three gradient slots (0=min,
// 1=mid) anchors this edge's initial interpolant values.
func NewEdge(g Gradients, start, end Vertex, startIndex int) Edge {
	yStart := ceilF(start.Position.Y)
	yEnd := ceilF(end.Position.Y)

	yDist := end.Position.Y - start.Position.Y
	xDist := end.Position.X - start.Position.X
	xStep := xDist / yDist

	yPrestep := float32(yStart) - start.Position.Y
	x := start.Position.X + yPrestep*xStep
	xPrestep := x - start.Position.X

	return Edge{
		YStart:      yStart,
		YEnd:        yEnd,
		X:           x,
		XStep:       xStep,
		OneOverZ:    newScalarStepper(g.OneOverZ, startIndex, xPrestep, yPrestep, xStep),
		Depth:       newScalarStepper(g.Depth, startIndex, xPrestep, yPrestep, xStep),
		LightAmount: newScalarStepper(g.LightAmount, startIndex, xPrestep, yPrestep, xStep),
		TexCoords:   newVectorStepper(g.TexCoords, startIndex, xPrestep, yPrestep, xStep),
		ShadowCoords: newVectorStepper(g.ShadowCoords, startIndex, xPrestep, yPrestep, xStep),
	}
}

// Step advances the edge by one scan line.
func (e *Edge) Step() {
	e.X += e.XStep
	e.OneOverZ.step()
	e.Depth.step()
	e.LightAmount.step()
	e.TexCoords.step()
	e.ShadowCoords.step()
}

func ceilF(v float32) int {
	i := int(v)
	if float32(i) < v {
		i++
	}
	return i
}
