package main

import (
	"testing"

	"github.com/milk9111/spritearena/prefabs"
	"github.com/milk9111/spritearena/system"
)

func newTestWorld(t *testing.T) (*prefabs.SceneSpec, *system.World) {
	t.Helper()
	spec, err := prefabs.LoadSceneSpec(prefabs.DefaultScene)
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	w, err := system.NewWorld(spec, system.Options{})
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return spec, w
}

func TestHUDLayout(t *testing.T) {
	spec, w := newTestWorld(t)
	hud := NewHUD(spec)
	w.Score = 30
	w.Energy = 50

	lines := hud.Lines(w)
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}

	cases := []struct {
		i    int
		text string
	}{
		{0, "Score = 30"},
		{1, "Game Name"},
		{2, "Energy = 50%"},
		{3, "BNU CO453 2021"},
		{4, "Derek & Andrei"},
		{5, "App05: C# MonoGame"},
	}
	for _, c := range cases {
		if lines[c.i].text != c.text {
			t.Fatalf("line %d: expected %q, got %q", c.i, c.text, lines[c.i].text)
		}
	}

	width := float64(spec.Window.Width)
	if lines[0].x != hudSideMargin || lines[0].y != hudTopMargin {
		t.Fatalf("score should be top-left, got (%v,%v)", lines[0].x, lines[0].y)
	}
	if right := lines[2].x + hud.measure(lines[2].text); right != width-hudSideMargin {
		t.Fatalf("energy should end at the right margin, got %v", right)
	}
	if mid := lines[1].x + hud.measure(lines[1].text)/2; mid != width/2 {
		t.Fatalf("game name should be centred, got %v", mid)
	}
	if lines[3].y != float64(spec.Window.Height)-hudBottomMargin {
		t.Fatalf("footer should sit at the bottom margin, got %v", lines[3].y)
	}
}

func TestHUDShowsGameOver(t *testing.T) {
	spec, w := newTestWorld(t)
	hud := NewHUD(spec)
	w.State = system.StateEnding

	lines := hud.Lines(w)
	if last := lines[len(lines)-1]; last.text != "GAME OVER" {
		t.Fatalf("expected a game over banner, got %q", last.text)
	}
}

func TestLoadSceneFallsBackToEmbedded(t *testing.T) {
	spec, err := loadScene("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "app05" {
		t.Fatalf("unexpected scene %q", spec.Name)
	}
	if _, err := loadScene("does/not/exist.yaml"); err == nil {
		t.Fatalf("expected an error for a missing scene file")
	}
}
