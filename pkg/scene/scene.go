// Package scene is a thin facade binding a mesh, a material, a transform
// and an optional light to the core raster.Renderer, plus bookkeeping for
// submitting a whole frame's worth of draws in a fixed order.
package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/voxelwright/rasterkit/pkg/math3d"
	"github.com/voxelwright/rasterkit/pkg/raster"
)

// Instance is one drawable placement of a shared Mesh: a position and
// orientation, a material, and the state used to smooth both toward a
// moving target across frames.
type Instance struct {
	Mesh     *raster.Mesh
	Material raster.Material
	CastsShadow bool

	Position    math3d.Vector4
	Orientation math3d.Quaternion
	Scale       float32

	TargetPosition    math3d.Vector4
	TargetOrientation math3d.Quaternion
	posSpring         harmonica.Spring
	posVelocity       math3d.Vector4
}

// orientationSmoothing is the per-frame slerp fraction SmoothTransform
// takes from Orientation toward TargetOrientation. A quaternion's
// components can't be springed independently without denormalizing the
// rotation, so orientation gets a fixed-rate chase rather than the
// critically damped spring used for position.
const orientationSmoothing = 0.3

// NewInstance creates an instance at the identity pose with a critically
// damped position spring running at the given frame rate.
func NewInstance(mesh *raster.Mesh, material raster.Material, fps float64) *Instance {
	return &Instance{
		Mesh:              mesh,
		Material:          material,
		Orientation:       math3d.IdentityQuaternion(),
		TargetOrientation: math3d.IdentityQuaternion(),
		Scale:             1,
		posSpring:         harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// SmoothTransform advances the instance's position toward TargetPosition
// using the harmonica spring and its orientation toward TargetOrientation
// by orientationSmoothing, then returns the resulting model transform
// (scale * rotation * translation).
func (inst *Instance) SmoothTransform() math3d.Matrix4 {
	px, pvx := inst.posSpring.Update(float64(inst.Position.X), float64(inst.posVelocity.X), float64(inst.TargetPosition.X))
	py, pvy := inst.posSpring.Update(float64(inst.Position.Y), float64(inst.posVelocity.Y), float64(inst.TargetPosition.Y))
	pz, pvz := inst.posSpring.Update(float64(inst.Position.Z), float64(inst.posVelocity.Z), float64(inst.TargetPosition.Z))

	inst.Position = math3d.V4(float32(px), float32(py), float32(pz), 1)
	inst.posVelocity = math3d.V4(float32(pvx), float32(pvy), float32(pvz), 0)

	inst.Orientation = inst.Orientation.Slerp(inst.TargetOrientation, orientationSmoothing)

	scale := inst.Scale
	if scale == 0 {
		scale = 1
	}

	return math3d.Translate(inst.Position.X, inst.Position.Y, inst.Position.Z).
		Mul(inst.Orientation.ToMatrix4()).
		Mul(math3d.ScaleUniform(scale))
}

// DrawStats reports per-frame bounding-volume culling counts.
type DrawStats struct {
	InstancesSubmitted int
	InstancesCulled    int
}

// Scene owns a main renderer, an optional shadow-pass renderer, and the
// ordered list of instances drawn each frame.
type Scene struct {
	Renderer       *raster.Renderer
	ShadowRenderer *raster.Renderer
	Instances      []*Instance
}

// NewScene allocates a width x height main renderer. Call EnableShadows to
// add a shadow pass.
func NewScene(width, height int) *Scene {
	return &Scene{Renderer: raster.NewRenderer(width, height)}
}

// EnableShadows allocates a shadowRes x shadowRes depth-only renderer used
// as the shadow pass's target.
func (s *Scene) EnableShadows(shadowRes int) {
	s.ShadowRenderer = raster.NewRenderer(shadowRes, shadowRes)
}

// AddInstance appends inst to the submission order.
func (s *Scene) AddInstance(inst *Instance) {
	s.Instances = append(s.Instances, inst)
}

// DrawFrame runs the optional shadow pass followed by the main pass, in
// instance submission order, and returns bounding-volume culling stats.
// lightViewProjection is nil when no instance casts a shadow this frame.
func (s *Scene) DrawFrame(viewProjection math3d.Matrix4, lightViewProjection *math3d.Matrix4, frustum *Frustum) DrawStats {
	var stats DrawStats
	var light *raster.Light

	// Advance each instance's smoothing once per frame; both passes use the
	// same transform.
	transforms := make([]math3d.Matrix4, len(s.Instances))
	for i, inst := range s.Instances {
		transforms[i] = inst.SmoothTransform()
	}

	if s.ShadowRenderer != nil && lightViewProjection != nil {
		s.ShadowRenderer.ClearDepth()
		s.ShadowRenderer.ClearColor(raster.Color{})

		for i, inst := range s.Instances {
			if !inst.CastsShadow {
				continue
			}
			transform := transforms[i]
			_ = s.ShadowRenderer.DrawMesh(inst.Mesh, *lightViewProjection, transform, raster.Material{Texture: inst.Material.Texture}, nil)
		}

		light = &raster.Light{
			Projection:  *lightViewProjection,
			DepthBitmap: depthAsBitmap(s.ShadowRenderer),
		}
	}

	s.Renderer.ClearDepth()
	for i, inst := range s.Instances {
		stats.InstancesSubmitted++
		transform := transforms[i]

		if frustum != nil {
			min, max := meshBounds(inst.Mesh)
			if !frustum.IntersectsAABB(transform, min, max) {
				stats.InstancesCulled++
				continue
			}
		}

		var instLight *raster.Light
		if light != nil {
			instLight = light
		}
		_ = s.Renderer.DrawMesh(inst.Mesh, viewProjection, transform, inst.Material, instLight)
	}

	return stats
}

// depthAsBitmap copies the shadow renderer's flat depth buffer into the
// Bitmap[float32] shape raster.Light expects.
func depthAsBitmap(r *raster.Renderer) *raster.Bitmap[float32] {
	bm := raster.NewBitmap(r.Width, r.Height, float32(1))
	copy(bm.Pixels, r.DepthBuffer)
	return bm
}

// MeshBounds returns the axis-aligned bounding box of a mesh's vertex
// positions, in the mesh's local space.
func MeshBounds(mesh *raster.Mesh) (min, max math3d.Vector4) {
	return meshBounds(mesh)
}

func meshBounds(mesh *raster.Mesh) (min, max math3d.Vector4) {
	if len(mesh.Vertices) == 0 {
		return
	}
	min = mesh.Vertices[0].Position
	max = mesh.Vertices[0].Position
	for _, v := range mesh.Vertices[1:] {
		min = componentMin(min, v.Position)
		max = componentMax(max, v.Position)
	}
	return
}

func componentMin(a, b math3d.Vector4) math3d.Vector4 {
	return math3d.V4(minF(a.X, b.X), minF(a.Y, b.Y), minF(a.Z, b.Z), 1)
}

func componentMax(a, b math3d.Vector4) math3d.Vector4 {
	return math3d.V4(maxF(a.X, b.X), maxF(a.Y, b.Y), maxF(a.Z, b.Z), 1)
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
