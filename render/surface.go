package render

import (
	"image"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/component"
)

// DrawOp places a source region on a surface. The region is scaled and
// rotated about Origin (in region-local pixels), and Origin lands on Position.
type DrawOp struct {
	Position cp.Vector
	Origin   cp.Vector
	Rotation float64
	Scale    float64
	Tint     color.Color
}

// Surface receives draw calls. Implementations own all pixel work.
type Surface interface {
	DrawImage(img component.Image, src image.Rectangle, op DrawOp)
}

// DrawCall is one recorded DrawImage call.
type DrawCall struct {
	Image component.Image
	Src   image.Rectangle
	Op    DrawOp
}

// Recorder is a Surface that only remembers what it was asked to draw.
type Recorder struct {
	Calls []DrawCall
}

func (r *Recorder) DrawImage(img component.Image, src image.Rectangle, op DrawOp) {
	r.Calls = append(r.Calls, DrawCall{Image: img, Src: src, Op: op})
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
