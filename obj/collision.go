package obj

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/spritearena/common"
)

type collisionPair struct {
	kind CollisionKind
	a    *Sprite
	b    *Sprite
}

// CollisionDetector checks a fixed list of sprite pairs once per tick.
// Sprites never reference their partners; the detector owns the pairing.
type CollisionDetector struct {
	Queue *EventQueue

	pairs  []collisionPair
	logger *log.Logger
}

func NewCollisionDetector(queue *EventQueue) *CollisionDetector {
	return &CollisionDetector{Queue: queue, logger: log.Default()}
}

// SetLogger replaces the logger used for collision diagnostics.
func (d *CollisionDetector) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Watch registers a pair to be checked by Detect.
func (d *CollisionDetector) Watch(kind CollisionKind, a, b *Sprite) {
	if d == nil || a == nil || b == nil || a == b {
		return
	}
	d.pairs = append(d.pairs, collisionPair{kind: kind, a: a, b: b})
}

// Reset forgets every watched pair.
func (d *CollisionDetector) Reset() {
	d.pairs = nil
}

// Pairs returns how many pairs are watched.
func (d *CollisionDetector) Pairs() int { return len(d.pairs) }

// Detect returns an event for every watched pair that collides now, in
// registration order, and pushes each onto Queue.
func (d *CollisionDetector) Detect() []CollisionEvent {
	if d == nil {
		return nil
	}
	var out []CollisionEvent
	for _, p := range d.pairs {
		if !Overlapping(p.a, p.b) {
			continue
		}
		evt := CollisionEvent{Kind: p.kind, A: p.a, B: p.b, Index: -1}
		d.logger.Debug("collision", "kind", p.kind, "a", p.a.Name, "b", p.b.Name)
		d.Queue.Push(evt)
		out = append(out, evt)
	}
	return out
}

// Overlapping is HasCollided with a box broad phase in front of the circle
// test.
func Overlapping(a, b *Sprite) bool {
	if !a.IsActive() || !b.IsActive() {
		return false
	}
	ra, rb := a.Radius(), b.Radius()
	if !common.RectsOverlap(
		common.CenteredBB(a.Position, 2*ra, 2*ra),
		common.CenteredBB(b.Position, 2*rb, 2*rb),
	) {
		return false
	}
	return a.HasCollided(b)
}
