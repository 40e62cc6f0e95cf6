package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/obj"
	"github.com/milk9111/spritearena/prefabs"
)

// PatrolScript runs a compiled tengo script that picks the horizontal
// heading of a scripted actor. The script reads x, heading, min_x and max_x
// and writes heading.
type PatrolScript struct {
	path     string
	compiled *tengo.Compiled
	MinX     float64
	MaxX     float64
}

// LoadPatrolScript compiles the script named by spec.
func LoadPatrolScript(spec prefabs.PatrolSpec) (*PatrolScript, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("system: load patrol %s: %w", spec.Script, err)
	}
	p, err := NewPatrolScript(src, spec.MinX, spec.MaxX)
	if err != nil {
		return nil, fmt.Errorf("system: compile patrol %s: %w", spec.Script, err)
	}
	p.path = spec.Script
	return p, nil
}

// NewPatrolScript compiles src.
func NewPatrolScript(src []byte, minX, maxX float64) (*PatrolScript, error) {
	script := tengo.NewScript(src)
	vars := []struct {
		name  string
		value float64
	}{
		{"x", 0},
		{"heading", 0},
		{"min_x", minX},
		{"max_x", maxX},
	}
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("system: bind %s: %w", v.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &PatrolScript{compiled: compiled, MinX: minX, MaxX: maxX}, nil
}

// Steer runs the script for s and turns it to face the returned heading.
// Only the heading changes; the actor keeps its speed and stays scripted.
func (p *PatrolScript) Steer(s *obj.Sprite) error {
	if p == nil || !s.IsActive() {
		return nil
	}

	heading := 0.0
	switch {
	case s.Direction.X < 0:
		heading = -1
	case s.Direction.X > 0:
		heading = 1
	}

	if err := p.compiled.Set("x", s.Position.X); err != nil {
		return err
	}
	if err := p.compiled.Set("heading", heading); err != nil {
		return err
	}
	if err := p.compiled.Run(); err != nil {
		return fmt.Errorf("system: run patrol %s: %w", p.path, err)
	}

	next := p.compiled.Get("heading").Float()
	if next == heading || next == 0 {
		return nil
	}

	dir := obj.DirectionRight
	if next < 0 {
		dir = obj.DirectionLeft
	}
	s.Direction = cp.Vector{X: dir.Vector().X, Y: 0}
	s.PlayAnimation(dir.Key())
	return nil
}
