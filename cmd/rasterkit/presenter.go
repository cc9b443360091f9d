package main

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/voxelwright/rasterkit/pkg/raster"
)

// drawToScreen blits a color buffer to a terminal cell grid using upper-half
// block characters: each terminal row packs two framebuffer rows, with the
// top pixel as foreground and the bottom pixel as background. cb's height
// must be at least 2*area height.
//
// A terminal cell can only show one opaque color per half, so any pixel
// that isn't fully opaque is alpha-composited over backdrop first -- unlike
// a real compositor, there's no layer beneath the cell to show through.
func drawToScreen(cb *raster.Bitmap[raster.Color], backdrop raster.Color, scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < cb.Width; col++ {
			top := compositeOverBackdrop(raster.GetColor(cb, col, topY), backdrop)
			bot := compositeOverBackdrop(raster.GetColor(cb, col, botY), backdrop)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: top,
					Bg: bot,
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// compositeOverBackdrop source-over blends c onto backdrop using c's alpha
// channel, flattening it to the fully opaque color a terminal cell can
// actually display.
func compositeOverBackdrop(c, backdrop raster.Color) raster.Color {
	switch c.A {
	case 255:
		return c
	case 0:
		return backdrop
	}
	t := float32(c.A) / 255
	return raster.ColorFromFloats(
		lerpChannel8(backdrop.R, c.R, t),
		lerpChannel8(backdrop.G, c.G, t),
		lerpChannel8(backdrop.B, c.B, t),
		1,
	)
}

func lerpChannel8(a, b uint8, t float32) float32 {
	return (float32(a)*(1-t) + float32(b)*t) / 255
}
