package scene

import (
	"math"
	"testing"

	"github.com/voxelwright/rasterkit/pkg/math3d"
)

func TestFrustumFromPerspectivePlanesNormalized(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	frustum := NewFrustumFromMatrix(proj)

	for i, pl := range frustum.planes {
		length := pl.Normal.Len3()
		if math.Abs(float64(length)-1.0) > 1e-5 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 1.0, 100.0)
	frustum := NewFrustumFromMatrix(proj)

	tests := []struct {
		name     string
		min, max math3d.Vector4
		expected bool
	}{
		{"fully inside", math3d.V4(-1, -1, -10, 0), math3d.V4(1, 1, -5, 0), true},
		{"behind camera", math3d.V4(-1, -1, 5, 0), math3d.V4(1, 1, 10, 0), false},
		{"beyond far plane", math3d.V4(-1, -1, -150, 0), math3d.V4(1, 1, -120, 0), false},
		{"far to the right", math3d.V4(100, -1, -10, 0), math3d.V4(110, 1, -5, 0), false},
		{"large box containing frustum", math3d.V4(-200, -200, -200, 0), math3d.V4(200, 200, 200, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := frustum.IntersectsAABB(math3d.Identity(), tc.min, tc.max)
			if got != tc.expected {
				t.Errorf("IntersectsAABB(%v, %v) = %v, want %v", tc.min, tc.max, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsAABBWithTranslation(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 1.0, 100.0)
	frustum := NewFrustumFromMatrix(proj)

	localBox := math3d.V4(-1, -1, -1, 0)
	localMax := math3d.V4(1, 1, 1, 0)

	farAway := math3d.Translate(0, 0, -500)
	if frustum.IntersectsAABB(farAway, localBox, localMax) {
		t.Error("a box translated far behind the far plane should not intersect")
	}

	inView := math3d.Translate(0, 0, -10)
	if !frustum.IntersectsAABB(inView, localBox, localMax) {
		t.Error("a box translated into view should intersect")
	}
}
