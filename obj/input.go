package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Direction is the resolved four-way movement input for one tick.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Animation keys used by four-directional sprites.
const (
	KeyUp    = "Up"
	KeyDown  = "Down"
	KeyLeft  = "Left"
	KeyRight = "Right"
)

// Key returns the animation key for d, or "" for DirectionNone.
func (d Direction) Key() string {
	switch d {
	case DirectionUp:
		return KeyUp
	case DirectionDown:
		return KeyDown
	case DirectionLeft:
		return KeyLeft
	case DirectionRight:
		return KeyRight
	default:
		return ""
	}
}

// Vector returns the unit heading for d in screen space (y grows downward).
func (d Direction) Vector() cp.Vector {
	switch d {
	case DirectionUp:
		return cp.Vector{X: 0, Y: -1}
	case DirectionDown:
		return cp.Vector{X: 0, Y: 1}
	case DirectionLeft:
		return cp.Vector{X: -1, Y: 0}
	case DirectionRight:
		return cp.Vector{X: 1, Y: 0}
	default:
		return cp.Vector{}
	}
}

func (d Direction) String() string {
	if k := d.Key(); k != "" {
		return k
	}
	return "None"
}

// DirectionFromKey is the inverse of Direction.Key.
func DirectionFromKey(key string) (Direction, bool) {
	switch key {
	case KeyUp:
		return DirectionUp, true
	case KeyDown:
		return DirectionDown, true
	case KeyLeft:
		return DirectionLeft, true
	case KeyRight:
		return DirectionRight, true
	default:
		return DirectionNone, false
	}
}

// ResolveDirection picks one direction from simultaneously held keys.
// Precedence is up > down > left > right.
func ResolveDirection(up, down, left, right bool) Direction {
	switch {
	case up:
		return DirectionUp
	case down:
		return DirectionDown
	case left:
		return DirectionLeft
	case right:
		return DirectionRight
	default:
		return DirectionNone
	}
}

// Input is the host-sampled control state for one tick. Rotational sprites
// read RotateLeft/RotateRight/Thrust, four-directional sprites read Move.
type Input struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
	Move        Direction
}

// PollShipInput samples the keyboard for a rotational sprite: A/D rotate,
// Space thrusts.
func PollShipInput() Input {
	return Input{
		RotateLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		RotateRight: ebiten.IsKeyPressed(ebiten.KeyD),
		Thrust:      ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// PollWalkerInput samples the arrow keys for a four-directional sprite.
func PollWalkerInput() Input {
	return Input{
		Move: ResolveDirection(
			ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		),
	}
}
