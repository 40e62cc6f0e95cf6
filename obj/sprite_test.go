package obj

import (
	"image"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/render"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearVec(a, b cp.Vector) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func square(size int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, size, size))
}

// walkerController builds a 4 column x 4 row sheet with the four walking keys.
func walkerController(t *testing.T) *component.AnimationController {
	t.Helper()
	ctrl, err := component.NewAnimationController(image.NewRGBA(image.Rect(0, 0, 128, 128)), 4, 4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := ctrl.AssignDirectionKeys(KeyDown, KeyLeft, KeyRight, KeyUp); err != nil {
		t.Fatalf("assign: %v", err)
	}
	return ctrl
}

func TestSpriteZeroElapsedIsIdempotent(t *testing.T) {
	static := NewSprite(square(32), 10, 20)
	static.Direction = cp.Vector{X: 1, Y: 1}
	static.Speed = 100
	static.RotationSpeed = 2

	animated, err := NewAnimatedSprite(walkerController(t), 0.125, 5, 5)
	if err != nil {
		t.Fatalf("animated: %v", err)
	}
	animated.Direction = cp.Vector{X: -1}
	animated.Speed = 50

	ship := NewPlayerSprite(square(32), 0, 0)
	ship.Speed = 200
	ship.RotationSpeed = 3

	walker, err := NewAnimatedPlayer(walkerController(t), 0.125, 0, 0)
	if err != nil {
		t.Fatalf("walker: %v", err)
	}
	walker.Speed = 200

	for _, s := range []*Sprite{static, animated, ship, walker} {
		t.Run(s.Control.String(), func(t *testing.T) {
			pos, rot := s.Position, s.Rotation
			var frame int
			if s.Animation != nil {
				frame = s.Animation.Index()
			}
			for i := 0; i < 10; i++ {
				s.Update(0)
			}
			if s.Position != pos || s.Rotation != rot {
				t.Fatalf("zero-time update moved sprite: %v/%v -> %v/%v", pos, rot, s.Position, s.Rotation)
			}
			if s.Animation != nil && s.Animation.Index() != frame {
				t.Fatalf("zero-time update advanced frame")
			}
		})
	}
}

func TestSpriteUpdateTranslatesAndRotates(t *testing.T) {
	cases := []struct {
		name    string
		dir     cp.Vector
		speed   float64
		rotSpd  float64
		dt      float64
		wantPos cp.Vector
		wantRot float64
	}{
		{"left", cp.Vector{X: -1}, 100, 2, 0.5, cp.Vector{X: 1150, Y: 500}, 1},
		{"unnormalised_heading", cp.Vector{X: 0, Y: 10}, 100, 0, 1, cp.Vector{X: 1200, Y: 600}, 0},
		{"zero_heading", cp.Vector{}, 100, 1, 1, cp.Vector{X: 1200, Y: 500}, 1},
		{"negative_dt_clamped", cp.Vector{X: -1}, 100, 2, -3, cp.Vector{X: 1200, Y: 500}, 0},
		{"nan_dt_clamped", cp.Vector{X: -1}, 100, 2, math.NaN(), cp.Vector{X: 1200, Y: 500}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSprite(square(64), 1200, 500)
			s.Direction = c.dir
			s.Speed = c.speed
			s.RotationSpeed = c.rotSpd
			s.Update(c.dt)
			if !nearVec(s.Position, c.wantPos) {
				t.Fatalf("expected position %v, got %v", c.wantPos, s.Position)
			}
			if !near(s.Rotation, c.wantRot) {
				t.Fatalf("expected rotation %v, got %v", c.wantRot, s.Rotation)
			}
		})
	}
}

func TestInactiveSpriteDoesNotUpdate(t *testing.T) {
	s := NewSprite(square(64), 0, 0)
	s.Direction = cp.Vector{X: 1}
	s.Speed = 100
	s.Halt()
	s.Update(1)
	if s.Position != (cp.Vector{}) {
		t.Fatalf("dying sprite moved to %v", s.Position)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	cases := []struct {
		name                   string
		steps                  []func(*Sprite) bool
		want                   Lifecycle
		active, alive, visible bool
	}{
		{"fresh", nil, Alive, true, true, true},
		{"halt", []func(*Sprite) bool{(*Sprite).Halt}, Dying, false, false, true},
		{"kill", []func(*Sprite) bool{(*Sprite).Kill}, Inactive, false, false, false},
		{"halt_then_kill", []func(*Sprite) bool{(*Sprite).Halt, (*Sprite).Kill}, Inactive, false, false, false},
		{"kill_then_halt", []func(*Sprite) bool{(*Sprite).Kill, (*Sprite).Halt}, Inactive, false, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSprite(square(8), 0, 0)
			for _, step := range c.steps {
				step(s)
			}
			if s.State() != c.want {
				t.Fatalf("expected %v, got %v", c.want, s.State())
			}
			if s.IsActive() != c.active || s.IsAlive() != c.alive || s.IsVisible() != c.visible {
				t.Fatalf("flags active=%v alive=%v visible=%v", s.IsActive(), s.IsAlive(), s.IsVisible())
			}
		})
	}

	s := NewSprite(square(8), 0, 0)
	s.Kill()
	if s.Halt() {
		t.Fatalf("an inactive sprite must not come back to dying")
	}
}

func TestHasCollidedScenario(t *testing.T) {
	a := NewSprite(square(64), 0, 0)
	b := NewSprite(square(64), 60, 0)

	if a.Radius() != 32 || b.Radius() != 32 {
		t.Fatalf("expected radius 32, got %v and %v", a.Radius(), b.Radius())
	}
	if !a.HasCollided(b) {
		t.Fatalf("distance 60 < 64 should collide")
	}

	b.Position = cp.Vector{X: 100, Y: 0}
	if a.HasCollided(b) {
		t.Fatalf("distance 100 > 64 should not collide")
	}
}

func TestHasCollidedSymmetric(t *testing.T) {
	positions := []cp.Vector{{X: 0}, {X: 30, Y: 30}, {X: 63.9}, {X: 64}, {X: -10, Y: 200}}
	scales := []float64{0.5, 1, 2}

	for _, pa := range positions {
		for _, pb := range positions {
			for _, sc := range scales {
				a := NewSprite(square(64), pa.X, pa.Y)
				b := NewSprite(image.NewRGBA(image.Rect(0, 0, 16, 40)), pb.X, pb.Y)
				b.Scale = sc
				if a.HasCollided(b) != b.HasCollided(a) {
					t.Fatalf("asymmetric at %v / %v scale %v", pa, pb, sc)
				}
			}
		}
	}
}

func TestDeactivatedSpriteNeverCollides(t *testing.T) {
	cases := []struct {
		name  string
		apply func(*Sprite) bool
	}{
		{"halted", (*Sprite).Halt},
		{"killed", (*Sprite).Kill},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewSprite(square(64), 0, 0)
			b := NewSprite(square(64), 0, 0)
			c.apply(b)
			if a.HasCollided(b) || b.HasCollided(a) {
				t.Fatalf("deactivated sprite reported a collision")
			}
		})
	}

	a := NewSprite(square(64), 0, 0)
	if a.HasCollided(a) {
		t.Fatalf("a sprite must not collide with itself")
	}
	if a.HasCollided(nil) {
		t.Fatalf("nil partner must not collide")
	}
}

func TestRotationalControl(t *testing.T) {
	t.Run("rotate_without_thrust_holds_position", func(t *testing.T) {
		s := NewPlayerSprite(square(32), 200, 500)
		s.Speed = 200
		s.RotationSpeed = 2
		s.Step(0.5, Input{RotateRight: true})
		if !near(s.Rotation, 1) {
			t.Fatalf("expected rotation 1, got %v", s.Rotation)
		}
		if s.Position != (cp.Vector{X: 200, Y: 500}) {
			t.Fatalf("ship moved without thrust: %v", s.Position)
		}
		s.Step(0.25, Input{RotateLeft: true})
		if !near(s.Rotation, 0.5) {
			t.Fatalf("expected rotation 0.5, got %v", s.Rotation)
		}
	})

	t.Run("no_input_does_not_spin", func(t *testing.T) {
		s := NewPlayerSprite(square(32), 0, 0)
		s.RotationSpeed = 2
		s.Update(1)
		if s.Rotation != 0 {
			t.Fatalf("rotational sprite spun without input: %v", s.Rotation)
		}
	})

	t.Run("thrust_follows_rotation", func(t *testing.T) {
		s := NewPlayerSprite(square(32), 0, 0)
		s.Speed = 100
		s.Direction = cp.Vector{X: 1}
		s.Rotation = math.Pi / 2
		s.Step(1, Input{Thrust: true})
		if !nearVec(s.Position, cp.Vector{X: 0, Y: 100}) {
			t.Fatalf("expected (0,100), got %v", s.Position)
		}
		if !nearVec(s.Direction, cp.Vector{X: 0, Y: 1}) {
			t.Fatalf("direction not recomputed from rotation: %v", s.Direction)
		}
	})

	t.Run("left_and_right_cancel", func(t *testing.T) {
		s := NewPlayerSprite(square(32), 0, 0)
		s.RotationSpeed = 2
		s.Step(1, Input{RotateLeft: true, RotateRight: true})
		if !near(s.Rotation, 0) {
			t.Fatalf("expected no net rotation, got %v", s.Rotation)
		}
	})
}

func TestFourDirectionalControl(t *testing.T) {
	t.Run("walk_right", func(t *testing.T) {
		s, err := NewAnimatedPlayer(walkerController(t), 0.125, 200, 200)
		if err != nil {
			t.Fatalf("player: %v", err)
		}
		s.Speed = 200
		s.Step(0.25, Input{Move: DirectionRight})
		if !nearVec(s.Position, cp.Vector{X: 250, Y: 200}) {
			t.Fatalf("expected (250,200), got %v", s.Position)
		}
		if s.Animation.Key() != KeyRight || s.Animation.Index() != 2 {
			t.Fatalf("expected Right/2, got %s/%d", s.Animation.Key(), s.Animation.Index())
		}
	})

	t.Run("cannot_walk", func(t *testing.T) {
		s, err := NewAnimatedPlayer(walkerController(t), 0.125, 200, 200)
		if err != nil {
			t.Fatalf("player: %v", err)
		}
		s.Speed = 200
		s.CanWalk = false
		s.Step(1, Input{Move: DirectionRight})
		if s.Position != (cp.Vector{X: 200, Y: 200}) {
			t.Fatalf("position changed while CanWalk=false: %v", s.Position)
		}
		if s.Direction != (cp.Vector{X: 1, Y: 0}) {
			t.Fatalf("direction not updated: %v", s.Direction)
		}
		if s.Animation.Key() != KeyRight {
			t.Fatalf("animation not switched: %s", s.Animation.Key())
		}
	})

	t.Run("no_input_freezes_last_frame", func(t *testing.T) {
		s, err := NewAnimatedPlayer(walkerController(t), 0.125, 0, 0)
		if err != nil {
			t.Fatalf("player: %v", err)
		}
		s.Speed = 100
		s.Step(0.375, Input{Move: DirectionLeft})
		pos := s.Position
		if s.Animation.Key() != KeyLeft || s.Animation.Index() != 3 {
			t.Fatalf("expected Left/3, got %s/%d", s.Animation.Key(), s.Animation.Index())
		}

		for i := 0; i < 20; i++ {
			s.Update(0.125)
		}
		if s.Position != pos {
			t.Fatalf("sprite moved without input: %v -> %v", pos, s.Position)
		}
		if s.Animation.Key() != KeyLeft || s.Animation.Index() != 3 {
			t.Fatalf("idle reset the pose to %s/%d", s.Animation.Key(), s.Animation.Index())
		}
		if s.Direction != (cp.Vector{X: -1}) {
			t.Fatalf("idle changed direction to %v", s.Direction)
		}
	})

	t.Run("same_direction_keeps_frame", func(t *testing.T) {
		s, err := NewAnimatedPlayer(walkerController(t), 0.125, 0, 0)
		if err != nil {
			t.Fatalf("player: %v", err)
		}
		s.Speed = 10
		s.Step(0.125, Input{Move: DirectionUp})
		s.Step(0.125, Input{Move: DirectionUp})
		if s.Animation.Index() != 2 {
			t.Fatalf("expected frame 2, got %d", s.Animation.Index())
		}
		s.Step(0.125, Input{Move: DirectionDown})
		if s.Animation.Key() != KeyDown || s.Animation.Index() != 1 {
			t.Fatalf("switch should restart then advance one frame, got %s/%d", s.Animation.Key(), s.Animation.Index())
		}
	})
}

func TestResolveDirectionPrecedence(t *testing.T) {
	cases := []struct {
		name                  string
		up, down, left, right bool
		want                  Direction
	}{
		{"none", false, false, false, false, DirectionNone},
		{"right_only", false, false, false, true, DirectionRight},
		{"all", true, true, true, true, DirectionUp},
		{"down_left", false, true, true, false, DirectionDown},
		{"left_right", false, false, true, true, DirectionLeft},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ResolveDirection(c.up, c.down, c.left, c.right); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestDirectionKeysRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight} {
		got, ok := DirectionFromKey(d.Key())
		if !ok || got != d {
			t.Fatalf("round trip of %v gave %v", d, got)
		}
		if v := d.Vector(); !near(v.Length(), 1) {
			t.Fatalf("%v vector is not unit length: %v", d, v)
		}
	}
	if _, ok := DirectionFromKey("Sideways"); ok {
		t.Fatalf("unknown key should not resolve")
	}
}

func TestPlayAnimationUnknownKeyIsNoop(t *testing.T) {
	ctrl, err := component.NewAnimationController(image.NewRGBA(image.Rect(0, 0, 128, 96)), 3, 4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := ctrl.AssignDirectionKeys(KeyDown, KeyLeft, KeyRight); err != nil {
		t.Fatalf("assign: %v", err)
	}
	s, err := NewAnimatedSprite(ctrl, 0.125, 0, 0)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	var events component.AnimationEventLog
	s.Animation.Emitter = &component.AnimationEventEmitter{}
	s.Animation.Emitter.Subscribe(events.Handler())

	s.Update(0.125)
	if s.PlayAnimation(KeyUp) {
		t.Fatalf("Up is not in the set")
	}
	if s.Animation.Key() != KeyDown || s.Animation.Index() != 1 {
		t.Fatalf("state changed to %s/%d", s.Animation.Key(), s.Animation.Index())
	}
	if events.Count(component.AnimationEventUnknownDirection) != 1 {
		t.Fatalf("expected an unknown direction event")
	}

	static := NewSprite(square(8), 0, 0)
	if static.PlayAnimation(KeyDown) {
		t.Fatalf("static sprites have no animations")
	}
}

func TestSpriteDraw(t *testing.T) {
	t.Run("static", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 40, 20))
		s := NewSprite(img, 100, 50)
		s.Scale = 0.5
		s.Rotation = 1.5

		var rec render.Recorder
		s.Draw(&rec)
		if len(rec.Calls) != 1 {
			t.Fatalf("expected 1 draw call, got %d", len(rec.Calls))
		}
		call := rec.Calls[0]
		if call.Src != img.Bounds() {
			t.Fatalf("expected full image, got %v", call.Src)
		}
		if call.Op.Origin != (cp.Vector{X: 20, Y: 10}) {
			t.Fatalf("expected centred origin, got %v", call.Op.Origin)
		}
		if call.Op.Position != s.Position || call.Op.Scale != 0.5 || call.Op.Rotation != 1.5 {
			t.Fatalf("unexpected op %+v", call.Op)
		}
	})

	t.Run("animated_frame", func(t *testing.T) {
		s, err := NewAnimatedSprite(walkerController(t), 0.125, 0, 0)
		if err != nil {
			t.Fatalf("attach: %v", err)
		}
		s.PlayAnimation(KeyRight)
		s.Update(0.25)

		var rec render.Recorder
		s.Draw(&rec)
		if want := image.Rect(64, 64, 96, 96); rec.Calls[0].Src != want {
			t.Fatalf("expected frame %v, got %v", want, rec.Calls[0].Src)
		}
	})

	t.Run("visibility", func(t *testing.T) {
		var rec render.Recorder
		s := NewSprite(square(8), 0, 0)
		s.Halt()
		s.Draw(&rec)
		if len(rec.Calls) != 1 {
			t.Fatalf("dying sprites stay visible")
		}
		s.Kill()
		s.Draw(&rec)
		if len(rec.Calls) != 1 {
			t.Fatalf("inactive sprites are not drawn")
		}
	})
}

func TestBoundsAndFrameSize(t *testing.T) {
	s := NewSprite(image.NewRGBA(image.Rect(0, 0, 40, 20)), 100, 100)
	s.Scale = 2
	bb := s.Bounds()
	if bb.L != 60 || bb.R != 140 || bb.B != 80 || bb.T != 120 {
		t.Fatalf("unexpected bounds %+v", bb)
	}

	empty := NewSprite(nil, 0, 0)
	if w, h := empty.FrameSize(); w != 0 || h != 0 {
		t.Fatalf("expected empty frame size, got %dx%d", w, h)
	}
	var rec render.Recorder
	empty.Draw(&rec)
	if len(rec.Calls) != 0 {
		t.Fatalf("sprite without image must not draw")
	}
}
