package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/milk9111/spritearena/common"
)

// PlaceholderAtlas paints a rows x columns grid of frameW x frameH cells for
// hosts that have no sprite sheet on disk. Every cell gets a border and a
// marker whose position moves with the column, so frame changes are visible.
func PlaceholderAtlas(rows, columns, frameW, frameH int, base color.RGBA) *image.RGBA {
	if rows <= 0 || columns <= 0 || frameW <= 0 || frameH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewRGBA(image.Rect(0, 0, columns*frameW, rows*frameH))
	border := shade(base, 0.5)
	marker := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for row := 0; row < rows; row++ {
		fill := shade(base, 1-0.15*float64(row%4))
		for col := 0; col < columns; col++ {
			cell := image.Rect(col*frameW, row*frameH, (col+1)*frameW, (row+1)*frameH)
			draw.Draw(img, cell, &image.Uniform{C: border}, image.Point{}, draw.Src)
			inner := cell.Inset(1)
			draw.Draw(img, inner, &image.Uniform{C: fill}, image.Point{}, draw.Src)

			mw := frameW / 4
			mh := frameH / 4
			if mw < 1 {
				mw = 1
			}
			if mh < 1 {
				mh = 1
			}
			mx := cell.Min.X + (frameW-mw)*col/max(columns-1, 1)
			my := cell.Min.Y + (frameH-mh)/2
			draw.Draw(img, image.Rect(mx, my, mx+mw, my+mh), &image.Uniform{C: marker}, image.Point{}, draw.Src)
		}
	}
	return img
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(common.Clamp(float64(c.R)*f, 0, 255)),
		G: uint8(common.Clamp(float64(c.G)*f, 0, 255)),
		B: uint8(common.Clamp(float64(c.B)*f, 0, 255)),
		A: c.A,
	}
}
