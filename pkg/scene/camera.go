package scene

import (
	"math"

	"github.com/voxelwright/rasterkit/pkg/math3d"
)

// Camera is the scene-composition helper that turns a position and Euler
// orientation into the view/projection matrices pkg/raster.Renderer.DrawMesh
// needs. It is orchestration around the core, not part of it.
type Camera struct {
	Position math3d.Vector4

	Pitch, Yaw, Roll float64

	FOV         float64
	AspectRatio float64
	Near, Far   float64

	viewMatrix     math3d.Matrix4
	projMatrix     math3d.Matrix4
	viewProjMatrix math3d.Matrix4
	viewDirty      bool
	projDirty      bool
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V4(0, 0, 0, 1),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

func (c *Camera) SetPosition(pos math3d.Vector4) {
	c.Position = pos
	c.viewDirty = true
}

func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch, c.Yaw, c.Roll = pitch, yaw, roll
	c.viewDirty = true
}

func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.projDirty = true
}

// Forward returns the camera's forward direction in world space.
func (c *Camera) Forward() math3d.Vector4 {
	return math3d.V4(
		float32(-math.Sin(c.Yaw)*math.Cos(c.Pitch)),
		float32(math.Sin(c.Pitch)),
		float32(-math.Cos(c.Yaw)*math.Cos(c.Pitch)),
		0,
	)
}

// LookAt points the camera at target, keeping roll at zero.
func (c *Camera) LookAt(target math3d.Vector4) {
	dir := target.Sub(c.Position)
	dir, err := dir.Normalize3()
	if err != nil {
		return
	}
	c.Pitch = math.Asin(float64(dir.Y))
	c.Yaw = math.Atan2(float64(-dir.X), float64(-dir.Z))
	c.Roll = 0
	c.viewDirty = true
}

// ViewMatrix returns the (possibly cached) view matrix.
func (c *Camera) ViewMatrix() math3d.Matrix4 {
	if c.viewDirty {
		rot := math3d.RotateZ(float32(-c.Roll)).
			Mul(math3d.RotateX(float32(-c.Pitch))).
			Mul(math3d.RotateY(float32(-c.Yaw)))
		trans := math3d.Translate(-c.Position.X, -c.Position.Y, -c.Position.Z)
		c.viewMatrix = rot.Mul(trans)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the (possibly cached) perspective matrix.
func (c *Camera) ProjectionMatrix() math3d.Matrix4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(float32(c.FOV), float32(c.AspectRatio), float32(c.Near), float32(c.Far))
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Matrix4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
