package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spritearena/component"
)

// EbitenSurface draws onto an *ebiten.Image.
type EbitenSurface struct {
	Target *ebiten.Image
	Filter ebiten.Filter
}

// NewEbitenSurface wraps target with nearest-neighbour filtering.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{Target: target, Filter: ebiten.FilterNearest}
}

// DrawImage draws the src region of img. Non-ebiten images are converted
// once and cached.
func (s *EbitenSurface) DrawImage(img component.Image, src image.Rectangle, op DrawOp) {
	if s == nil || s.Target == nil {
		return
	}
	eimg := ToEbiten(img)
	if eimg == nil || src.Empty() {
		return
	}
	sub, ok := eimg.SubImage(src).(*ebiten.Image)
	if !ok || sub == nil {
		return
	}

	dop := &ebiten.DrawImageOptions{}
	dop.GeoM = GeoM(op)
	if op.Tint != nil {
		dop.ColorScale.ScaleWithColor(op.Tint)
	}
	dop.Filter = s.Filter
	s.Target.DrawImage(sub, dop)
}

// GeoM builds the transform for op: origin to (0,0), scale, rotate, then
// move to Position.
func GeoM(op DrawOp) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-op.Origin.X, -op.Origin.Y)
	g.Scale(op.Scale, op.Scale)
	g.Rotate(op.Rotation)
	g.Translate(op.Position.X, op.Position.Y)
	return g
}

// ToEbiten returns img as an *ebiten.Image, converting (and caching) stdlib
// images on first use.
func ToEbiten(img component.Image) *ebiten.Image {
	switch v := img.(type) {
	case nil:
		return nil
	case *ebiten.Image:
		return v
	case image.Image:
		if cached := converted[v]; cached != nil {
			return cached
		}
		e := ebiten.NewImageFromImage(v)
		converted[v] = e
		return e
	default:
		return nil
	}
}
