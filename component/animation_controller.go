package component

import (
	"fmt"
	"image"
)

// AnimationController cuts an atlas into a rows x columns grid and turns the
// rows into named frame sequences. It keeps no playback state; every
// animator it hands out shares the same AnimationSet.
type AnimationController struct {
	atlas   Image
	rows    int
	columns int
	frameW  int
	frameH  int
	cells   []Frame
	set     *AnimationSet
}

// NewAnimationController partitions atlas into rows*columns equal cells in
// row-major order. The atlas must divide evenly into the grid.
func NewAnimationController(atlas Image, rows, columns int) (*AnimationController, error) {
	if atlas == nil {
		return nil, fmt.Errorf("component: build atlas: nil image: %w", ErrInvalidAtlasDimensions)
	}
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("component: build atlas: grid %dx%d: %w", rows, columns, ErrInvalidAtlasDimensions)
	}

	b := atlas.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || w%columns != 0 || h%rows != 0 {
		return nil, fmt.Errorf("component: build atlas: %dx%d image into %d rows x %d columns: %w",
			w, h, rows, columns, ErrInvalidAtlasDimensions)
	}

	c := &AnimationController{
		atlas:   atlas,
		rows:    rows,
		columns: columns,
		frameW:  w / columns,
		frameH:  h / rows,
		cells:   make([]Frame, 0, rows*columns),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			sx := b.Min.X + col*c.frameW
			sy := b.Min.Y + row*c.frameH
			c.cells = append(c.cells, Frame{
				Row:  row,
				Col:  col,
				Rect: image.Rect(sx, sy, sx+c.frameW, sy+c.frameH),
			})
		}
	}
	return c, nil
}

// Grid returns the row/column count.
func (c *AnimationController) Grid() (int, int) { return c.rows, c.columns }

// FrameSize returns the cell width/height.
func (c *AnimationController) FrameSize() (int, int) { return c.frameW, c.frameH }

// Cells returns every cell in row-major order.
func (c *AnimationController) Cells() []Frame {
	return append([]Frame(nil), c.cells...)
}

// AssignDirectionKeys maps keys onto the first len(keys) rows, each row
// becoming one sequence. Rows past the last key are left unused.
func (c *AnimationController) AssignDirectionKeys(keys ...string) (*AnimationSet, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("component: assign keys: none given: %w", ErrKeyCountMismatch)
	}
	if len(keys) > c.rows {
		return nil, fmt.Errorf("component: assign keys: %d keys for %d rows: %w", len(keys), c.rows, ErrKeyCountMismatch)
	}

	set := &AnimationSet{
		atlas:     c.atlas,
		frameW:    c.frameW,
		frameH:    c.frameH,
		keys:      make([]string, 0, len(keys)),
		sequences: make(map[string][]Frame, len(keys)),
	}
	for row, key := range keys {
		if key == "" {
			return nil, fmt.Errorf("component: assign keys: empty key for row %d: %w", row, ErrKeyCountMismatch)
		}
		if _, dup := set.sequences[key]; dup {
			return nil, fmt.Errorf("component: assign keys: duplicate key %q: %w", key, ErrKeyCountMismatch)
		}
		start := row * c.columns
		set.keys = append(set.keys, key)
		set.sequences[key] = append([]Frame(nil), c.cells[start:start+c.columns]...)
	}
	c.set = set
	return set, nil
}

// Set returns the last set built by AssignDirectionKeys, or nil.
func (c *AnimationController) Set() *AnimationSet { return c.set }

// NewAnimator binds the built set to a new playback state on the first key
// at frame 0.
func (c *AnimationController) NewAnimator(frameDuration float64) (*Animator, error) {
	if c == nil || c.set == nil {
		return nil, fmt.Errorf("component: attach: no direction keys assigned: %w", ErrKeyCountMismatch)
	}
	return NewAnimator(c.set, frameDuration), nil
}
