package obj

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritearena/component"
	"github.com/milk9111/spritearena/render"
)

// PlacementFunc returns the position for the i-th spawned coin.
type PlacementFunc func(i int) cp.Vector

// FixedPlacement cycles through points.
func FixedPlacement(points ...cp.Vector) PlacementFunc {
	pts := append([]cp.Vector(nil), points...)
	return func(i int) cp.Vector {
		if len(pts) == 0 {
			return cp.Vector{}
		}
		return pts[i%len(pts)]
	}
}

// GridPlacement lays coins out row by row, perRow to a row, starting at
// origin.
func GridPlacement(origin, spacing cp.Vector, perRow int) PlacementFunc {
	if perRow <= 0 {
		perRow = 1
	}
	return func(i int) cp.Vector {
		return cp.Vector{
			X: origin.X + float64(i%perRow)*spacing.X,
			Y: origin.Y + float64(i/perRow)*spacing.Y,
		}
	}
}

// RandomPlacement scatters coins uniformly inside area using rng.
func RandomPlacement(rng *rand.Rand, area cp.BB) PlacementFunc {
	return func(int) cp.Vector {
		return cp.Vector{
			X: area.L + rng.Float64()*(area.R-area.L),
			Y: area.B + rng.Float64()*(area.T-area.B),
		}
	}
}

// CoinsController owns a collection of collectible animated sprites. Coins
// are never removed; collected coins are marked inactive so indices stay
// stable.
type CoinsController struct {
	Rows          int
	Columns       int
	Keys          []string
	FrameDuration float64
	Scale         float64

	coins  []*Sprite
	logger *log.Logger
}

// NewCoinsController describes how coin atlases are cut: rows x columns with
// keys assigned to the first rows.
func NewCoinsController(rows, columns int, keys []string, frameDuration float64) *CoinsController {
	return &CoinsController{
		Rows:          rows,
		Columns:       columns,
		Keys:          append([]string(nil), keys...),
		FrameDuration: frameDuration,
		Scale:         1,
		logger:        log.Default(),
	}
}

// SetLogger replaces the logger used for spawn/collect diagnostics.
func (c *CoinsController) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Spawn adds count coins. Each coin gets its own AnimationSet cut from the
// shared atlas and is placed by place(index).
func (c *CoinsController) Spawn(atlas component.Image, count int, place PlacementFunc) error {
	if count <= 0 {
		return nil
	}
	if place == nil {
		return fmt.Errorf("obj: spawn coins: nil placement")
	}

	spawned := make([]*Sprite, 0, count)
	for i := 0; i < count; i++ {
		ctrl, err := component.NewAnimationController(atlas, c.Rows, c.Columns)
		if err != nil {
			return fmt.Errorf("obj: spawn coins: %w", err)
		}
		if _, err := ctrl.AssignDirectionKeys(c.Keys...); err != nil {
			return fmt.Errorf("obj: spawn coins: %w", err)
		}
		idx := len(c.coins) + i
		pos := place(idx)
		coin, err := NewAnimatedSprite(ctrl, c.FrameDuration, pos.X, pos.Y)
		if err != nil {
			return fmt.Errorf("obj: spawn coins: %w", err)
		}
		coin.Name = fmt.Sprintf("coin-%d", idx)
		coin.Scale = c.Scale
		spawned = append(spawned, coin)
	}
	c.coins = append(c.coins, spawned...)
	c.logger.Debug("spawned coins", "count", count, "total", len(c.coins))
	return nil
}

// Update advances every active coin.
func (c *CoinsController) Update(dt float64) {
	for _, coin := range c.coins {
		coin.Update(dt)
	}
}

// DetectCollisions returns the indices of coins touching target and
// deactivates them. A collected coin is never reported again.
func (c *CoinsController) DetectCollisions(target *Sprite) []int {
	var hit []int
	for i, coin := range c.coins {
		if !Overlapping(coin, target) {
			continue
		}
		coin.Kill()
		hit = append(hit, i)
	}
	if len(hit) > 0 {
		c.logger.Debug("coins collected", "indices", hit, "remaining", c.Active())
	}
	return hit
}

// Draw paints every visible coin.
func (c *CoinsController) Draw(surface render.Surface) {
	for _, coin := range c.coins {
		coin.Draw(surface)
	}
}

// Coins returns the coins in spawn order.
func (c *CoinsController) Coins() []*Sprite {
	return append([]*Sprite(nil), c.coins...)
}

// Coin returns the coin at index i, or nil.
func (c *CoinsController) Coin(i int) *Sprite {
	if i < 0 || i >= len(c.coins) {
		return nil
	}
	return c.coins[i]
}

func (c *CoinsController) Len() int { return len(c.coins) }

// Active returns how many coins are still collectible.
func (c *CoinsController) Active() int {
	n := 0
	for _, coin := range c.coins {
		if coin.IsActive() {
			n++
		}
	}
	return n
}
