package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/spritearena/prefabs"
	"github.com/milk9111/spritearena/system"
)

const (
	hudTopMargin    = 4
	hudSideMargin   = 50
	hudBottomMargin = 30
)

type hudLine struct {
	text string
	x, y float64
	clr  color.Color
}

// HUD draws the status bar (score, game name, energy) and the credits footer.
type HUD struct {
	face   text.Face
	footer prefabs.FooterSpec
	width  float64
	height float64
}

func NewHUD(spec *prefabs.SceneSpec) *HUD {
	return &HUD{
		face:   text.NewGoXFace(basicfont.Face7x13),
		footer: spec.Footer,
		width:  float64(spec.Window.Width),
		height: float64(spec.Window.Height),
	}
}

func (h *HUD) measure(s string) float64 {
	w, _ := text.Measure(s, h.face, 0)
	return w
}

// Lines lays out every string the HUD draws for the current world.
func (h *HUD) Lines(w *system.World) []hudLine {
	score := fmt.Sprintf("Score = %d", w.Score)
	energy := fmt.Sprintf("Energy = %d%%", w.Energy)
	bottom := h.height - hudBottomMargin

	lines := []hudLine{
		{score, hudSideMargin, hudTopMargin, color.White},
		{h.footer.GameName, (h.width - h.measure(h.footer.GameName)) / 2, hudTopMargin, color.White},
		{energy, h.width - h.measure(energy) - hudSideMargin, hudTopMargin, color.White},
		{h.footer.Module, hudBottomMargin, bottom, colornames.Yellow},
		{h.footer.Authors, (h.width - h.measure(h.footer.Authors)) / 2, bottom, colornames.Yellow},
		{h.footer.App, h.width - h.measure(h.footer.App) - hudBottomMargin, bottom, colornames.Yellow},
	}
	if w.State == system.StateEnding {
		msg := "GAME OVER"
		lines = append(lines, hudLine{msg, (h.width - h.measure(msg)) / 2, h.height / 2, colornames.Red})
	}
	return lines
}

func (h *HUD) Draw(screen *ebiten.Image, w *system.World) {
	for _, l := range h.Lines(w) {
		if l.text == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(l.x, l.y)
		op.ColorScale.ScaleWithColor(l.clr)
		text.Draw(screen, l.text, h.face, op)
	}
}
