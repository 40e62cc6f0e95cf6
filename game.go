package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/spritearena/assets"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/obj"
	"github.com/milk9111/spritearena/prefabs"
	"github.com/milk9111/spritearena/render"
	"github.com/milk9111/spritearena/system"
)

// GameConfig is everything NewGame needs from the command line.
type GameConfig struct {
	ScenePath string
	Loader    *assets.Loader
	Logger    *log.Logger
	Seed      int64
	Debug     bool
}

type Game struct {
	cfg GameConfig

	spec   *prefabs.SceneSpec
	world  *system.World
	sounds *system.SoundBoard
	music  *system.Music
	hud    *HUD
	ui     *ebitenui.UI

	watcher *prefabs.Watcher
	quit    bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	g := &Game{cfg: cfg}
	spec, err := loadScene(cfg.ScenePath)
	if err != nil {
		return nil, err
	}
	if err := g.build(spec); err != nil {
		return nil, err
	}
	g.ui = NewQuitUI(g)
	return g, nil
}

func loadScene(path string) (*prefabs.SceneSpec, error) {
	if path == "" {
		return prefabs.LoadSceneSpec(prefabs.DefaultScene)
	}
	return prefabs.LoadSceneFile(path)
}

// build replaces the world, sounds and HUD with ones built from spec.
func (g *Game) build(spec *prefabs.SceneSpec) error {
	world, err := system.NewWorld(spec, system.Options{
		Images: g.loadImage,
		Seed:   g.cfg.Seed,
		Logger: g.cfg.Logger,
	})
	if err != nil {
		return err
	}

	g.spec = spec
	g.world = world
	g.sounds = g.loadSounds(spec)
	if g.music != nil {
		g.music.Reset()
	}
	g.music = g.loadMusic(spec)
	g.hud = NewHUD(spec)
	return nil
}

// loadImage resolves a scene image from the registry, the assets directory,
// or a generated placeholder, in that order.
func (g *Game) loadImage(name string, spec prefabs.ImageSpec) (component.Image, error) {
	if img := render.GetImage(name); img != nil {
		return img, nil
	}

	var img component.Image
	if spec.File != "" {
		loaded, err := g.cfg.Loader.LoadImage(spec.File)
		if err != nil {
			g.cfg.Logger.Warn("image unavailable, using placeholder", "image", name, "err", err)
		} else {
			img = loaded
		}
	}
	if img == nil {
		placeholder, err := system.PlaceholderImages(name, spec)
		if err != nil {
			return nil, err
		}
		img = render.ToEbiten(placeholder)
	}

	render.RegisterImage(name, img)
	return img, nil
}

func (g *Game) loadSounds(spec *prefabs.SceneSpec) *system.SoundBoard {
	board := system.NewSoundBoard()
	board.SetLogger(g.cfg.Logger)
	for _, s := range spec.Sounds {
		p, err := g.cfg.Loader.LoadSound(s.File)
		if err != nil {
			g.cfg.Logger.Warn("sound unavailable", "sound", s.Name, "err", err)
			continue
		}
		board.Add(s.Name, p, s.Volume)
	}
	board.Bind(system.KindShipAsteroid, spec.Rules.ShipSound)
	board.Bind(system.KindPlayerEnemy, spec.Rules.EnemySound)
	board.Bind(system.KindCoin, spec.Rules.CoinSound)
	return board
}

// loadMusic starts the scene's background track, if it has one.
func (g *Game) loadMusic(spec *prefabs.SceneSpec) *system.Music {
	music := system.NewMusic()
	music.SetLogger(g.cfg.Logger)
	if spec.Music == nil {
		return music
	}
	p, err := g.cfg.Loader.LoadMusic(spec.Music.File)
	if err != nil {
		g.cfg.Logger.Warn("music unavailable", "track", spec.Music.Name, "err", err)
		return music
	}
	music.Add(spec.Music.Name, p, spec.Music.Volume)
	music.Play(spec.Music.Name)
	return music
}

// reload rebuilds the scene after a watched file changed. A broken scene
// keeps the current one running.
func (g *Game) reload() {
	name, ok := g.watcher.Changed()
	if !ok {
		return
	}
	spec, err := loadScene(g.cfg.ScenePath)
	if err != nil {
		g.cfg.Logger.Warn("scene reload failed", "file", name, "err", err)
		return
	}
	render.ResetImages()
	if err := g.build(spec); err != nil {
		g.cfg.Logger.Warn("scene rebuild failed", "file", name, "err", err)
		return
	}
	g.cfg.Logger.Info("scene reloaded", "file", name)
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.watcher != nil {
		g.reload()
	}

	g.ui.Update()

	dt := 1 / float64(ebiten.TPS())
	g.world.Update(dt, obj.PollShipInput(), obj.PollWalkerInput())
	g.sounds.HandleCollisions(g.world.Events.Drain())
	g.sounds.Update()
	g.music.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background())
	g.world.Draw(render.NewEbitenSurface(screen))
	g.hud.Draw(screen, g.world)
	g.ui.Draw(screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  state: %s", ebiten.ActualFPS(), g.world.State), 4, 24)
	}
}

func (g *Game) background() color.Color {
	return g.spec.Background.Or(colornames.Lawngreen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.Window.Width, g.spec.Window.Height
}
