package system

import (
	"image"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/obj"
	"github.com/milk9111/spritearena/prefabs"
)

func patrolEnemy(t *testing.T, x, heading float64) *obj.Sprite {
	t.Helper()
	ctrl, err := component.NewAnimationController(image.NewRGBA(image.Rect(0, 0, 96, 128)), 4, 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := ctrl.AssignDirectionKeys(obj.KeyDown, obj.KeyLeft, obj.KeyRight, obj.KeyUp); err != nil {
		t.Fatalf("assign: %v", err)
	}
	s, err := obj.NewAnimatedSprite(ctrl, 0.125, x, 200)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	s.Direction = cp.Vector{X: heading}
	s.Speed = 50
	return s
}

func TestPatrolScriptSteers(t *testing.T) {
	p, err := LoadPatrolScript(prefabs.PatrolSpec{Script: "patrol.tengo", MinX: 600, MaxX: 1100})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		name     string
		x        float64
		heading  float64
		wantDir  cp.Vector
		wantAnim string
	}{
		{"inside_keeps_left", 900, -1, cp.Vector{X: -1}, obj.KeyDown},
		{"inside_keeps_right", 900, 1, cp.Vector{X: 1}, obj.KeyDown},
		{"turns_at_min", 600, -1, cp.Vector{X: 1}, obj.KeyRight},
		{"turns_past_max", 1150, 1, cp.Vector{X: -1}, obj.KeyLeft},
		{"starts_left", 900, 0, cp.Vector{X: -1}, obj.KeyLeft},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := patrolEnemy(t, c.x, c.heading)
			if err := p.Steer(s); err != nil {
				t.Fatalf("steer: %v", err)
			}
			if s.Direction != c.wantDir {
				t.Fatalf("expected direction %v, got %v", c.wantDir, s.Direction)
			}
			if s.Animation.Key() != c.wantAnim {
				t.Fatalf("expected animation %s, got %s", c.wantAnim, s.Animation.Key())
			}
			if s.Speed != 50 || s.Position.X != c.x {
				t.Fatalf("steering must only change the heading")
			}
		})
	}
}

func TestPatrolWalksBackAndForth(t *testing.T) {
	p, err := NewPatrolScript([]byte(`if x <= min_x { heading = 1.0 } else if x >= max_x { heading = -1.0 }`), 0, 100)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := patrolEnemy(t, 50, -1)

	minX, maxX := s.Position.X, s.Position.X
	for i := 0; i < 400; i++ {
		if err := p.Steer(s); err != nil {
			t.Fatalf("steer: %v", err)
		}
		s.Update(0.1)
		if s.Position.X < minX {
			minX = s.Position.X
		}
		if s.Position.X > maxX {
			maxX = s.Position.X
		}
	}
	if minX < -5 || maxX > 105 {
		t.Fatalf("patrol left its bounds: [%v, %v]", minX, maxX)
	}
	if minX > 5 || maxX < 95 {
		t.Fatalf("patrol did not reach both ends: [%v, %v]", minX, maxX)
	}
}

func TestPatrolIgnoresInactive(t *testing.T) {
	p, err := NewPatrolScript([]byte(`heading = 1.0`), 0, 100)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := patrolEnemy(t, 50, -1)
	s.Halt()
	if err := p.Steer(s); err != nil {
		t.Fatalf("steer: %v", err)
	}
	if s.Direction.X != -1 {
		t.Fatalf("a halted sprite must not be steered")
	}

	var none *PatrolScript
	if err := none.Steer(s); err != nil {
		t.Fatalf("nil patrol should be a no-op")
	}
}

func TestPatrolScriptSeesBoundVariables(t *testing.T) {
	src := []byte(`heading = (x - min_x) > (max_x - x) ? -1.0 : 1.0`)
	p, err := NewPatrolScript(src, 100, 500)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		name    string
		x       float64
		heading float64
		want    string
	}{
		{"near_max_turns_left", 450, 1, obj.KeyLeft},
		{"near_min_turns_right", 150, -1, obj.KeyRight},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := patrolEnemy(t, c.x, c.heading)
			if err := p.Steer(s); err != nil {
				t.Fatalf("steer: %v", err)
			}
			if s.Animation.Key() != c.want {
				t.Fatalf("expected %s, got %s", c.want, s.Animation.Key())
			}
		})
	}
}

func TestPatrolCompileErrors(t *testing.T) {
	if _, err := NewPatrolScript([]byte(`heading = `), 0, 1); err == nil {
		t.Fatalf("expected a compile error")
	}
	if _, err := LoadPatrolScript(prefabs.PatrolSpec{Script: "missing.tengo"}); err == nil {
		t.Fatalf("expected a load error")
	}
}
