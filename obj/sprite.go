package obj

import (
	"image"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/common"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/render"
)

// ControlMode selects how a sprite reacts to Input.
type ControlMode int

const (
	// ControlNone moves at constant velocity and spin; input is ignored.
	ControlNone ControlMode = iota
	// ControlRotational turns left/right and thrusts along its rotation.
	ControlRotational
	// ControlFourDirectional walks up/down/left/right and shows the
	// matching animation.
	ControlFourDirectional
)

func (m ControlMode) String() string {
	switch m {
	case ControlRotational:
		return "rotational"
	case ControlFourDirectional:
		return "four_directional"
	default:
		return "none"
	}
}

// Sprite is a movable, drawable, rotatable entity. A nil Animation makes it
// static (drawn from Image); Control picks its input behaviour.
type Sprite struct {
	Name string

	// Position is the centre of the sprite.
	Position cp.Vector
	// Direction is the heading; only its angle matters.
	Direction     cp.Vector
	Speed         float64 // pixels per second
	Scale         float64
	Rotation      float64 // radians
	RotationSpeed float64 // radians per second
	Tint          color.Color

	Image     component.Image
	Animation *component.Animator

	Control ControlMode
	// CanWalk gates translation of four-directional sprites.
	CanWalk bool

	state Lifecycle
}

// NewSprite creates a static sprite centred at (x, y).
func NewSprite(img component.Image, x, y float64) *Sprite {
	return &Sprite{
		Position: cp.Vector{X: x, Y: y},
		Scale:    1,
		Tint:     color.White,
		Image:    img,
	}
}

// NewAnimatedSprite creates a sprite playing the set built by ctrl.
func NewAnimatedSprite(ctrl *component.AnimationController, frameDuration, x, y float64) (*Sprite, error) {
	s := NewSprite(nil, x, y)
	if err := s.Attach(ctrl, frameDuration); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPlayerSprite creates a static sprite steered by rotate/thrust input.
func NewPlayerSprite(img component.Image, x, y float64) *Sprite {
	s := NewSprite(img, x, y)
	s.Control = ControlRotational
	return s
}

// NewAnimatedPlayer creates an animated sprite walking in four directions.
func NewAnimatedPlayer(ctrl *component.AnimationController, frameDuration, x, y float64) (*Sprite, error) {
	s, err := NewAnimatedSprite(ctrl, frameDuration, x, y)
	if err != nil {
		return nil, err
	}
	s.Control = ControlFourDirectional
	s.CanWalk = true
	return s, nil
}

// Attach binds the set built by ctrl, showing frame 0 of its first key.
func (s *Sprite) Attach(ctrl *component.AnimationController, frameDuration float64) error {
	anim, err := ctrl.NewAnimator(frameDuration)
	if err != nil {
		return err
	}
	s.Animation = anim
	return nil
}

func (s *Sprite) State() Lifecycle { return s.state }

// IsActive reports whether the sprite takes part in updates and collisions.
func (s *Sprite) IsActive() bool { return s != nil && s.state.active() }

// IsAlive reports the game-logic alive state.
func (s *Sprite) IsAlive() bool { return s != nil && s.state == Alive }

// IsVisible reports whether Draw paints the sprite.
func (s *Sprite) IsVisible() bool { return s != nil && s.state.visible() }

// Halt freezes a live sprite: it stops moving and colliding but stays on
// screen.
func (s *Sprite) Halt() bool { return s.transition(Dying) }

// Kill deactivates the sprite and hides it in one step.
func (s *Sprite) Kill() bool { return s.transition(Inactive) }

func (s *Sprite) transition(next Lifecycle) bool {
	if s == nil || !s.state.advance(next) {
		return false
	}
	s.state = next
	return true
}

// FrameSize returns the unscaled size of one frame.
func (s *Sprite) FrameSize() (int, int) {
	if s.Animation != nil {
		return s.Animation.Set().FrameSize()
	}
	if s.Image != nil {
		b := s.Image.Bounds()
		return b.Dx(), b.Dy()
	}
	return 0, 0
}

// Radius is the bounding circle radius: half the larger frame side, scaled.
func (s *Sprite) Radius() float64 {
	w, h := s.FrameSize()
	return common.BoundingRadius(w, h, s.Scale)
}

// Bounds returns the scaled, unrotated frame box around Position.
func (s *Sprite) Bounds() cp.BB {
	w, h := s.FrameSize()
	return common.CenteredBB(s.Position, float64(w)*s.Scale, float64(h)*s.Scale)
}

// PlayAnimation switches the animation to key. Static sprites and unknown
// keys are left untouched.
func (s *Sprite) PlayAnimation(key string) bool {
	if s == nil || s.Animation == nil {
		return false
	}
	return s.Animation.Play(key)
}

// Update advances the sprite by dt seconds with no input.
func (s *Sprite) Update(dt float64) {
	s.Step(dt, Input{})
}

// Step advances the sprite by dt seconds under the given input. Inactive
// sprites do not change; bad dt values count as zero.
func (s *Sprite) Step(dt float64, in Input) {
	if !s.IsActive() {
		return
	}
	dt = common.SanitizeDelta(dt)

	switch s.Control {
	case ControlRotational:
		s.stepRotational(dt, in)
	case ControlFourDirectional:
		s.stepFourDirectional(dt, in)
	default:
		s.translate(dt)
		s.Rotation += s.RotationSpeed * dt
		s.Animation.Update(dt)
	}
}

// stepRotational turns on rotate input regardless of thrust, and only moves
// while thrusting.
func (s *Sprite) stepRotational(dt float64, in Input) {
	if in.RotateLeft {
		s.Rotation -= s.RotationSpeed * dt
	}
	if in.RotateRight {
		s.Rotation += s.RotationSpeed * dt
	}
	if in.Thrust {
		s.Direction = cp.ForAngle(s.Rotation)
		s.translate(dt)
	}
	s.Animation.Update(dt)
}

// stepFourDirectional faces and animates toward the input direction. With no
// input the sprite holds its last direction and frame.
func (s *Sprite) stepFourDirectional(dt float64, in Input) {
	if in.Move == DirectionNone {
		return
	}
	s.Direction = in.Move.Vector()
	s.PlayAnimation(in.Move.Key())
	if !s.CanWalk {
		return
	}
	s.translate(dt)
	s.Animation.Update(dt)
}

func (s *Sprite) translate(dt float64) {
	if s.Speed == 0 || dt == 0 {
		return
	}
	s.Position = s.Position.Add(common.Normalize(s.Direction).Mult(s.Speed * dt))
}

// HasCollided reports whether both sprites are active and their bounding
// circles overlap.
func (s *Sprite) HasCollided(other *Sprite) bool {
	if s == nil || other == nil || s == other {
		return false
	}
	if !s.IsActive() || !other.IsActive() {
		return false
	}
	return common.CirclesOverlap(s.Position, s.Radius(), other.Position, other.Radius())
}

// Draw paints the current frame centred on Position.
func (s *Sprite) Draw(surface render.Surface) {
	if surface == nil || !s.IsVisible() {
		return
	}
	img, src := s.currentFrame()
	if img == nil || src.Empty() {
		return
	}
	surface.DrawImage(img, src, render.DrawOp{
		Position: s.Position,
		Origin:   cp.Vector{X: float64(src.Dx()) / 2, Y: float64(src.Dy()) / 2},
		Rotation: s.Rotation,
		Scale:    s.Scale,
		Tint:     s.Tint,
	})
}

func (s *Sprite) currentFrame() (component.Image, image.Rectangle) {
	if s.Animation != nil {
		f, ok := s.Animation.Frame()
		if !ok {
			return nil, image.Rectangle{}
		}
		return s.Animation.Set().Atlas(), f.Rect
	}
	if s.Image == nil {
		return nil, image.Rectangle{}
	}
	return s.Image, s.Image.Bounds()
}
