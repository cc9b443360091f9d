package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadTexture decodes a PNG or JPEG file into a Bitmap[Color]. Image
// decoding itself is an external collaborator (spec scope excludes it);
// this is the thin adapter the core's Material.Texture expects.
func LoadTexture(path string) (*Bitmap[Color], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: load texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("raster: decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts any image.Image into a Bitmap[Color].
func TextureFromImage(img image.Image) *Bitmap[Color] {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	bm := NewBitmap(w, h, Color{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			bm.Set(x, y, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
	return bm
}

// NewCheckerTexture builds a square-checker procedural texture, used by
// the end-to-end test scenarios and the demo viewer when no texture file
// is supplied.
func NewCheckerTexture(size, squares int, a, b Color) *Bitmap[Color] {
	bm := NewBitmap(size, size, Color{})
	cell := size / squares
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				bm.Set(x, y, a)
			} else {
				bm.Set(x, y, b)
			}
		}
	}
	return bm
}

// NewGradientTexture builds a procedural texture that ramps linearly
// across each axis: red with x, green with y, blue fixed at 128.
func NewGradientTexture(size int) *Bitmap[Color] {
	bm := NewBitmap(size, size, Color{})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			bm.Set(x, y, Color{
				R: uint8(255 * x / maxInt(size-1, 1)),
				G: uint8(255 * y / maxInt(size-1, 1)),
				B: 128,
				A: 255,
			})
		}
	}
	return bm
}
