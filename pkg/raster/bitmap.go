package raster

// Bitmap is a typed 2-D pixel grid with bounds-checked access. The color
// buffer is Bitmap[Color]; the light depth texture and the renderer's own
// depth buffer use Bitmap[float32]/a plain []float32 respectively.
type Bitmap[T any] struct {
	Width, Height int
	Pixels        []T
}

// NewBitmap allocates a Width x Height bitmap with every pixel set to fill.
func NewBitmap[T any](width, height int, fill T) *Bitmap[T] {
	b := &Bitmap[T]{
		Width:  width,
		Height: height,
		Pixels: make([]T, width*height),
	}
	for i := range b.Pixels {
		b.Pixels[i] = fill
	}
	return b
}

func (b *Bitmap[T]) inBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *Bitmap[T]) index(x, y int) int {
	return y*b.Width + x
}

// Set overwrites the pixel at (x,y). Out-of-range coordinates are silently
// discarded.
func (b *Bitmap[T]) Set(x, y int, v T) {
	if !b.inBounds(x, y) {
		return
	}
	b.Pixels[b.index(x, y)] = v
}

// Get fetches the pixel at (x,y). Out-of-range coordinates return the zero
// value of T (for Color this is transparent black, not the opaque-black
// sentinel GetColor returns for Color specifically).
func (b *Bitmap[T]) Get(x, y int) T {
	if !b.inBounds(x, y) {
		var zero T
		return zero
	}
	return b.Pixels[b.index(x, y)]
}

// Fill overwrites every pixel with v.
func (b *Bitmap[T]) Fill(v T) {
	for i := range b.Pixels {
		b.Pixels[i] = v
	}
}

// GetColor fetches a Color pixel, returning opaque black (not the zero
// value) when out of range, matching the spec's Bitmap<T> contract for the
// color buffer.
func GetColor(b *Bitmap[Color], x, y int) Color {
	if !b.inBounds(x, y) {
		return Black
	}
	return b.Pixels[b.index(x, y)]
}

// BlendPixel writes c over the pixel at (x,y), using c's alpha channel as
// the blend factor against the current stored color, and forcing the
// stored alpha to fully opaque. Out-of-range coordinates are silently
// discarded.
func BlendPixel(b *Bitmap[Color], x, y int, c Color) {
	if !b.inBounds(x, y) {
		return
	}
	idx := b.index(x, y)
	prev := b.Pixels[idx]
	blend := float32(c.A) / 255

	b.Pixels[idx] = Color{
		R: lerpChannel(prev.R, c.R, blend),
		G: lerpChannel(prev.G, c.G, blend),
		B: lerpChannel(prev.B, c.B, blend),
		A: 255,
	}
}

func lerpChannel(a, b uint8, t float32) uint8 {
	v := float32(a)*(1-t) + float32(b)*t
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
