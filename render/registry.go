package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spritearena/component"
)

var (
	images    = map[string]component.Image{}
	converted = map[image.Image]*ebiten.Image{}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img component.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) component.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// ResetImages drops every registered and converted image.
func ResetImages() {
	images = map[string]component.Image{}
	converted = map[image.Image]*ebiten.Image{}
}
