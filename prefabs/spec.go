package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/spritearena/common"
)

// DefaultScene is the embedded scene used when no path is given.
const DefaultScene = "scene.yaml"

// ErrInvalidScene is returned by Validate for scenes the world cannot build.
var ErrInvalidScene = errors.New("invalid scene")

// SceneSpec describes everything the world builds: window, images, actors,
// coins, sounds and the rules that score collisions.
type SceneSpec struct {
	Name       string               `yaml:"name"`
	Window     WindowSpec           `yaml:"window"`
	Background *YAMLColor           `yaml:"background"`
	Images     map[string]ImageSpec `yaml:"images"`
	Ship       ActorSpec            `yaml:"ship"`
	Asteroid   ActorSpec            `yaml:"asteroid"`
	Player     ActorSpec            `yaml:"player"`
	Enemy      ActorSpec            `yaml:"enemy"`
	Coins      CoinsSpec            `yaml:"coins"`
	Sounds     []AudioSpec          `yaml:"sounds"`
	Music      *AudioSpec           `yaml:"music"`
	Rules      RulesSpec            `yaml:"rules"`
	Footer     FooterSpec           `yaml:"footer"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ImageSpec names an image file under the assets directory. Rows and Columns
// describe the sprite-sheet grid; Width/Height and Placeholder are used to
// generate a stand-in when the file cannot be loaded.
type ImageSpec struct {
	File        string     `yaml:"file"`
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Rows        int        `yaml:"rows"`
	Columns     int        `yaml:"columns"`
	Placeholder *YAMLColor `yaml:"placeholder"`
}

// Grid returns Rows/Columns with a single cell as the default.
func (s ImageSpec) Grid() (int, int) {
	rows, cols := s.Rows, s.Columns
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return rows, cols
}

type ActorSpec struct {
	Name          string         `yaml:"name"`
	Image         string         `yaml:"image"`
	Animation     *AnimationSpec `yaml:"animation"`
	Transform     TransformSpec  `yaml:"transform"`
	Direction     VectorSpec     `yaml:"direction"`
	Speed         float64        `yaml:"speed"`
	RotationSpeed float64        `yaml:"rotation_speed"`
	CanWalk       *bool          `yaml:"can_walk"`
	Tint          *YAMLColor     `yaml:"tint"`
	Patrol        *PatrolSpec    `yaml:"patrol"`
}

// Walks reports CanWalk, defaulting to true.
func (a ActorSpec) Walks() bool {
	return a.CanWalk == nil || *a.CanWalk
}

// AnimationSpec assigns direction keys to the rows of the actor's image.
type AnimationSpec struct {
	Keys          []string `yaml:"keys"`
	FrameDuration float64  `yaml:"frame_duration"`
	Play          string   `yaml:"play"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Scale    float64 `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

// ScaleOrDefault returns Scale, or 1 when unset.
func (t TransformSpec) ScaleOrDefault() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PatrolSpec binds a tengo script that steers the actor between MinX and
// MaxX.
type PatrolSpec struct {
	Script string  `yaml:"script"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
}

type CoinsSpec struct {
	Image     string        `yaml:"image"`
	Animation AnimationSpec `yaml:"animation"`
	Count     int           `yaml:"count"`
	Value     int           `yaml:"value"`
	Scale     float64       `yaml:"scale"`
	Placement PlacementSpec `yaml:"placement"`
}

// Placement kinds.
const (
	PlacementGrid   = "grid"
	PlacementFixed  = "fixed"
	PlacementRandom = "random"
)

type PlacementSpec struct {
	Kind    string       `yaml:"kind"`
	Origin  VectorSpec   `yaml:"origin"`
	Spacing VectorSpec   `yaml:"spacing"`
	PerRow  int          `yaml:"per_row"`
	Points  []VectorSpec `yaml:"points"`
	Area    AreaSpec     `yaml:"area"`
}

type AreaSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// RulesSpec tunes the collision responses.
type RulesSpec struct {
	Energy         int    `yaml:"energy"`
	AsteroidDamage int    `yaml:"asteroid_damage"`
	ShipSound      string `yaml:"ship_sound"`
	CoinSound      string `yaml:"coin_sound"`
	EnemySound     string `yaml:"enemy_sound"`
}

type FooterSpec struct {
	GameName string `yaml:"game_name"`
	Module   string `yaml:"module"`
	Authors  string `yaml:"authors"`
	App      string `yaml:"app"`
}

// LoadSceneSpec loads a scene by name from the prefabs directory, falling
// back to the embedded copy.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	if name == "" {
		name = DefaultScene
	}
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseSceneSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

// LoadSceneFile loads a scene from an explicit path on disk.
func LoadSceneFile(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	spec, err := ParseSceneSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", path, err)
	}
	return spec, nil
}

// ParseSceneSpec decodes and validates a scene document.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// applyDefaults fills in an unset window size.
func (s *SceneSpec) applyDefaults() {
	if s.Window.Width == 0 && s.Window.Height == 0 {
		s.Window.Width = common.BaseWidth
		s.Window.Height = common.BaseHeight
	}
}

// Validate checks references and grid shapes.
func (s *SceneSpec) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window %dx%d: %w", s.Window.Width, s.Window.Height, ErrInvalidScene)
	}
	for name, img := range s.Images {
		if img.Rows < 0 || img.Columns < 0 {
			return fmt.Errorf("image %q: negative grid: %w", name, ErrInvalidScene)
		}
		if img.File == "" && (img.Width <= 0 || img.Height <= 0) {
			return fmt.Errorf("image %q: needs a file or a placeholder size: %w", name, ErrInvalidScene)
		}
	}

	actors := []struct {
		role string
		spec ActorSpec
	}{
		{"ship", s.Ship},
		{"asteroid", s.Asteroid},
		{"player", s.Player},
		{"enemy", s.Enemy},
	}
	for _, a := range actors {
		if err := s.validateImageRef(a.role, a.spec.Image, a.spec.Animation); err != nil {
			return err
		}
		if p := a.spec.Patrol; p != nil && p.MinX >= p.MaxX {
			return fmt.Errorf("%s: patrol min_x %v >= max_x %v: %w", a.role, p.MinX, p.MaxX, ErrInvalidScene)
		}
	}
	if s.Player.Animation == nil {
		return fmt.Errorf("player: animation required: %w", ErrInvalidScene)
	}
	if s.Enemy.Animation == nil {
		return fmt.Errorf("enemy: animation required: %w", ErrInvalidScene)
	}

	if s.Coins.Count < 0 {
		return fmt.Errorf("coins: negative count %d: %w", s.Coins.Count, ErrInvalidScene)
	}
	if s.Coins.Count > 0 {
		if err := s.validateImageRef("coins", s.Coins.Image, &s.Coins.Animation); err != nil {
			return err
		}
		switch s.Coins.Placement.Kind {
		case "", PlacementGrid, PlacementRandom:
		case PlacementFixed:
			if len(s.Coins.Placement.Points) == 0 {
				return fmt.Errorf("coins: fixed placement without points: %w", ErrInvalidScene)
			}
		default:
			return fmt.Errorf("coins: unknown placement %q: %w", s.Coins.Placement.Kind, ErrInvalidScene)
		}
	}

	seen := make(map[string]bool, len(s.Sounds))
	for _, snd := range s.Sounds {
		if snd.Name == "" || snd.File == "" {
			return fmt.Errorf("sound %q: name and file required: %w", snd.Name, ErrInvalidScene)
		}
		if seen[snd.Name] {
			return fmt.Errorf("sound %q: duplicate: %w", snd.Name, ErrInvalidScene)
		}
		seen[snd.Name] = true
	}
	if s.Music != nil && (s.Music.Name == "" || s.Music.File == "") {
		return fmt.Errorf("music %q: name and file required: %w", s.Music.Name, ErrInvalidScene)
	}
	return nil
}

func (s *SceneSpec) validateImageRef(role, name string, anim *AnimationSpec) error {
	img, ok := s.Images[name]
	if !ok {
		return fmt.Errorf("%s: unknown image %q: %w", role, name, ErrInvalidScene)
	}
	if anim == nil {
		return nil
	}
	rows, _ := img.Grid()
	if len(anim.Keys) == 0 || len(anim.Keys) > rows {
		return fmt.Errorf("%s: %d keys for %d rows: %w", role, len(anim.Keys), rows, ErrInvalidScene)
	}
	return nil
}

// YAMLColor decodes "#RRGGBB" or "#RRGGBBAA".
type YAMLColor struct {
	color.Color
}

// Or returns the decoded colour, or def when c is nil.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
