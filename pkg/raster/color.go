package raster

import (
	"image/color"
	"math/rand"
)

// Color is an 8-bit RGBA color, aliased to the standard library's type so
// textures and framebuffers interoperate with image.Image without copying.
type Color = color.RGBA

// Black is fully opaque black, the sentinel GetColor returns for
// out-of-range coordinates.
var Black = Color{0, 0, 0, 255}

// ColorFromFloats builds a Color from components in [0,1], saturating.
func ColorFromFloats(r, g, b, a float32) Color {
	return Color{
		R: saturate(r),
		G: saturate(g),
		B: saturate(b),
		A: saturate(a),
	}
}

func saturate(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ColorFromHex builds a Color from a packed 0xRRGGBBAA value.
func ColorFromHex(v uint32) Color {
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// RandomColor draws a uniformly random opaque color using rng.
func RandomColor(rng *rand.Rand) Color {
	return Color{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
}

// MultiplyColor scales the RGB channels by amt, clamping at 255.
func MultiplyColor(c Color, amt float32) Color {
	return Color{
		R: mulChannel(c.R, amt),
		G: mulChannel(c.G, amt),
		B: mulChannel(c.B, amt),
		A: c.A,
	}
}

func mulChannel(v uint8, amt float32) uint8 {
	f := float32(v) * amt
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

// MultiplyGreen scales only the green channel, used for the
// shadow-sampler's out-of-bounds warning tint.
func MultiplyGreen(c Color, amt float32) Color {
	return Color{R: c.R, G: mulChannel(c.G, amt), B: c.B, A: c.A}
}
