package system

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/obj"
	"github.com/milk9111/spritearena/prefabs"
	"github.com/milk9111/spritearena/render"
)

// Collision kinds handled by the world.
const (
	KindShipAsteroid obj.CollisionKind = "ship_asteroid"
	KindPlayerEnemy  obj.CollisionKind = "player_enemy"
	KindCoin         obj.CollisionKind = "coin"
)

// GameState is the coarse state of a round.
type GameState int

const (
	StateStarting GameState = iota
	StatePlaying
	StateEnding
)

func (s GameState) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StatePlaying:
		return "playing"
	case StateEnding:
		return "ending"
	default:
		return "unknown"
	}
}

// Options configures NewWorld. The zero value uses placeholder images, the
// configured coin placement and log.Default().
type Options struct {
	Images ImageSource
	Seed   int64
	Logger *log.Logger
}

// World owns the actors of both demo scenarios, the pair rules between them,
// and the score/energy bookkeeping.
type World struct {
	Spec *prefabs.SceneSpec

	Ship     *obj.Sprite
	Asteroid *obj.Sprite
	Player   *obj.Sprite
	Enemy    *obj.Sprite
	Coins    *obj.CoinsController

	Patrol   *PatrolScript
	Detector *obj.CollisionDetector
	Events   *obj.EventQueue

	Score  int
	Energy int
	State  GameState

	logger *log.Logger
}

// NewWorld builds every actor described by spec.
func NewWorld(spec *prefabs.SceneSpec, opts Options) (*World, error) {
	if spec == nil {
		return nil, fmt.Errorf("system: nil scene")
	}
	if opts.Images == nil {
		opts.Images = PlaceholderImages
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	images := &imageCache{spec: spec, source: opts.Images, loaded: make(map[string]component.Image)}
	w := &World{
		Spec:   spec,
		Events: &obj.EventQueue{},
		Energy: spec.Rules.Energy,
		State:  StateStarting,
		logger: opts.Logger,
	}

	var err error
	if w.Ship, err = spawnActor(images, spec.Ship); err != nil {
		return nil, err
	}
	w.Ship.Control = obj.ControlRotational

	if w.Asteroid, err = spawnActor(images, spec.Asteroid); err != nil {
		return nil, err
	}

	if w.Player, err = spawnActor(images, spec.Player); err != nil {
		return nil, err
	}
	w.Player.Control = obj.ControlFourDirectional
	w.Player.CanWalk = spec.Player.Walks()

	if w.Enemy, err = spawnActor(images, spec.Enemy); err != nil {
		return nil, err
	}
	if spec.Enemy.Patrol != nil {
		if w.Patrol, err = LoadPatrolScript(*spec.Enemy.Patrol); err != nil {
			return nil, err
		}
	}

	if w.Coins, err = spawnCoins(images, spec.Coins, opts.Seed); err != nil {
		return nil, fmt.Errorf("system: coins: %w", err)
	}
	w.Coins.SetLogger(opts.Logger)

	w.Detector = obj.NewCollisionDetector(w.Events)
	w.Detector.SetLogger(opts.Logger)
	w.Detector.Watch(KindShipAsteroid, w.Ship, w.Asteroid)
	w.Detector.Watch(KindPlayerEnemy, w.Player, w.Enemy)

	opts.Logger.Info("scene built", "name", spec.Name, "coins", w.Coins.Len(), "energy", w.Energy)
	return w, nil
}

// Update advances one tick: the asteroid scenario, then the chase scenario,
// then coins. Collision responses are applied before coins are checked, so a
// player caught this tick collects nothing. It returns this tick's events,
// which are also queued on Events.
func (w *World) Update(dt float64, ship, walker obj.Input) []obj.CollisionEvent {
	if w.State == StateEnding {
		return nil
	}
	w.State = StatePlaying

	w.Ship.Step(dt, ship)
	w.Asteroid.Update(dt)

	w.Player.Step(dt, walker)
	if err := w.Patrol.Steer(w.Enemy); err != nil {
		w.logger.Warn("patrol disabled", "err", err)
		w.Patrol = nil
	}
	w.Enemy.Update(dt)

	w.Coins.Update(dt)

	events := w.Detector.Detect()
	for _, evt := range events {
		w.resolve(evt)
	}

	for _, i := range w.Coins.DetectCollisions(w.Player) {
		evt := obj.CollisionEvent{Kind: KindCoin, A: w.Player, B: w.Coins.Coin(i), Index: i}
		w.Events.Push(evt)
		w.resolve(evt)
		events = append(events, evt)
	}

	if w.over() {
		w.State = StateEnding
		w.logger.Info("round over", "score", w.Score, "energy", w.Energy)
	}
	return events
}

func (w *World) resolve(evt obj.CollisionEvent) {
	switch evt.Kind {
	case KindShipAsteroid:
		evt.A.Kill()
		w.Energy -= w.Spec.Rules.AsteroidDamage
		if w.Energy < 0 {
			w.Energy = 0
		}
	case KindPlayerEnemy:
		evt.A.Kill()
		evt.B.Halt()
	case KindCoin:
		w.Score += w.Spec.Coins.Value
	}
}

// over reports whether the round has ended: both controllable actors are
// gone, or energy has run out.
func (w *World) over() bool {
	if w.Spec.Rules.Energy > 0 && w.Energy <= 0 {
		return true
	}
	return !w.Ship.IsAlive() && !w.Player.IsAlive()
}

// Draw paints the actors back to front: ship, asteroid, player, coins, enemy.
func (w *World) Draw(surface render.Surface) {
	w.Ship.Draw(surface)
	w.Asteroid.Draw(surface)
	w.Player.Draw(surface)
	w.Coins.Draw(surface)
	w.Enemy.Draw(surface)
}

// Sprites returns the four actors in paint order.
func (w *World) Sprites() []*obj.Sprite {
	return []*obj.Sprite{w.Ship, w.Asteroid, w.Player, w.Enemy}
}
