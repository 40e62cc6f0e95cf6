package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Normalize returns v scaled to unit length. A zero (or non-finite) vector
// has no heading and yields the zero vector.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// BoundingRadius is the radius of the circle used for overlap tests of a
// w x h frame drawn at the given scale.
func BoundingRadius(w, h int, scale float64) float64 {
	return math.Max(float64(w), float64(h)) * math.Abs(scale) / 2
}

// CirclesOverlap reports whether two circles intersect. Touching circles do
// not overlap.
func CirclesOverlap(a cp.Vector, ra float64, b cp.Vector, rb float64) bool {
	r := ra + rb
	return a.DistanceSq(b) < r*r
}

// CenteredBB returns the axis aligned box of a w x h extent centred on c.
func CenteredBB(c cp.Vector, w, h float64) cp.BB {
	return cp.NewBBForExtents(c, math.Abs(w)/2, math.Abs(h)/2)
}

// RectsOverlap reports whether two boxes share any area or edge.
func RectsOverlap(a, b cp.BB) bool {
	return a.Intersects(b)
}
