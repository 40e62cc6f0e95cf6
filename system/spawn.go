package system

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/obj"
	"github.com/milk9111/spritearena/prefabs"
	"github.com/milk9111/spritearena/render"
)

// ImageSource resolves a scene image by name. The host loads files; tests and
// missing assets fall back to PlaceholderImages.
type ImageSource func(name string, spec prefabs.ImageSpec) (component.Image, error)

// PlaceholderImages draws a labelled grid matching the image's sheet layout.
func PlaceholderImages(_ string, spec prefabs.ImageSpec) (component.Image, error) {
	rows, cols := spec.Grid()
	if spec.Width <= 0 || spec.Height <= 0 || spec.Width%cols != 0 || spec.Height%rows != 0 {
		return nil, fmt.Errorf("system: placeholder %dx%d for %dx%d grid: %w",
			spec.Width, spec.Height, rows, cols, component.ErrInvalidAtlasDimensions)
	}
	base, _ := color.NRGBAModel.Convert(spec.Placeholder.Or(color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF})).(color.NRGBA)
	return render.PlaceholderAtlas(rows, cols, spec.Width/cols, spec.Height/rows,
		color.RGBA{R: base.R, G: base.G, B: base.B, A: 0xFF}), nil
}

type imageCache struct {
	spec   *prefabs.SceneSpec
	source ImageSource
	loaded map[string]component.Image
}

func (c *imageCache) get(name string) (component.Image, prefabs.ImageSpec, error) {
	spec, ok := c.spec.Images[name]
	if !ok {
		return nil, spec, fmt.Errorf("system: unknown image %q", name)
	}
	if img, ok := c.loaded[name]; ok {
		return img, spec, nil
	}
	img, err := c.source(name, spec)
	if err != nil {
		return nil, spec, fmt.Errorf("system: image %q: %w", name, err)
	}
	c.loaded[name] = img
	return img, spec, nil
}

// spawnActor builds a sprite from an actor spec. Actors with an animation get
// their own AnimationController cut from the named image.
func spawnActor(images *imageCache, spec prefabs.ActorSpec) (*obj.Sprite, error) {
	img, imgSpec, err := images.get(spec.Image)
	if err != nil {
		return nil, err
	}

	var s *obj.Sprite
	if spec.Animation != nil {
		ctrl, err := buildController(img, imgSpec, spec.Animation.Keys)
		if err != nil {
			return nil, fmt.Errorf("system: %s: %w", spec.Name, err)
		}
		s, err = obj.NewAnimatedSprite(ctrl, spec.Animation.FrameDuration, spec.Transform.X, spec.Transform.Y)
		if err != nil {
			return nil, fmt.Errorf("system: %s: %w", spec.Name, err)
		}
		if spec.Animation.Play != "" {
			s.PlayAnimation(spec.Animation.Play)
		}
	} else {
		s = obj.NewSprite(img, spec.Transform.X, spec.Transform.Y)
	}

	s.Name = spec.Name
	s.Direction = cp.Vector{X: spec.Direction.X, Y: spec.Direction.Y}
	s.Speed = spec.Speed
	s.Scale = spec.Transform.ScaleOrDefault()
	s.Rotation = spec.Transform.Rotation
	s.RotationSpeed = spec.RotationSpeed
	s.Tint = spec.Tint.Or(color.White)
	return s, nil
}

func buildController(img component.Image, spec prefabs.ImageSpec, keys []string) (*component.AnimationController, error) {
	rows, cols := spec.Grid()
	ctrl, err := component.NewAnimationController(img, rows, cols)
	if err != nil {
		return nil, err
	}
	if _, err := ctrl.AssignDirectionKeys(keys...); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// spawnCoins fills a CoinsController from the coin spec. A non-zero seed
// scatters the coins randomly regardless of the configured placement.
func spawnCoins(images *imageCache, spec prefabs.CoinsSpec, seed int64) (*obj.CoinsController, error) {
	coins := obj.NewCoinsController(0, 0, spec.Animation.Keys, spec.Animation.FrameDuration)
	if spec.Scale != 0 {
		coins.Scale = spec.Scale
	}
	if spec.Count == 0 {
		return coins, nil
	}

	img, imgSpec, err := images.get(spec.Image)
	if err != nil {
		return nil, err
	}
	coins.Rows, coins.Columns = imgSpec.Grid()

	if err := coins.Spawn(img, spec.Count, placementFor(spec.Placement, seed)); err != nil {
		return nil, err
	}
	return coins, nil
}

func placementFor(spec prefabs.PlacementSpec, seed int64) obj.PlacementFunc {
	area := cp.BB{L: spec.Area.MinX, B: spec.Area.MinY, R: spec.Area.MaxX, T: spec.Area.MaxY}
	if seed != 0 {
		return obj.RandomPlacement(rand.New(rand.NewSource(seed)), area)
	}

	switch spec.Kind {
	case prefabs.PlacementFixed:
		points := make([]cp.Vector, 0, len(spec.Points))
		for _, p := range spec.Points {
			points = append(points, cp.Vector{X: p.X, Y: p.Y})
		}
		return obj.FixedPlacement(points...)
	case prefabs.PlacementRandom:
		return obj.RandomPlacement(rand.New(rand.NewSource(1)), area)
	default:
		return obj.GridPlacement(
			cp.Vector{X: spec.Origin.X, Y: spec.Origin.Y},
			cp.Vector{X: spec.Spacing.X, Y: spec.Spacing.Y},
			spec.PerRow,
		)
	}
}
