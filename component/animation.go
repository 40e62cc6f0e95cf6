package component

import (
	"image"
	"math"

	"github.com/milk9111/spritearena/common"
)

// Image is an opaque handle to pre-decoded pixel data. *ebiten.Image and any
// image.Image satisfy it.
type Image interface {
	Bounds() image.Rectangle
}

// Frame is one cell of an atlas.
type Frame struct {
	Row  int
	Col  int
	Rect image.Rectangle
}

// AnimationSet maps direction keys to frame sequences cut from one atlas.
// It is never modified after AssignDirectionKeys returns, so any number of
// animators may share it.
type AnimationSet struct {
	atlas     Image
	frameW    int
	frameH    int
	keys      []string
	sequences map[string][]Frame
}

// Atlas returns the image the frames are cut from.
func (s *AnimationSet) Atlas() Image {
	if s == nil {
		return nil
	}
	return s.atlas
}

// FrameSize returns the frame width/height.
func (s *AnimationSet) FrameSize() (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.frameW, s.frameH
}

// Keys returns the direction keys in row order.
func (s *AnimationSet) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// DefaultKey is the key of the first assigned row.
func (s *AnimationSet) DefaultKey() string {
	if s == nil || len(s.keys) == 0 {
		return ""
	}
	return s.keys[0]
}

func (s *AnimationSet) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.sequences[key]
	return ok
}

// Len returns the number of frames in the sequence for key.
func (s *AnimationSet) Len(key string) int {
	if s == nil {
		return 0
	}
	return len(s.sequences[key])
}

// Frame returns frame i of the sequence for key.
func (s *AnimationSet) Frame(key string, i int) (Frame, bool) {
	if s == nil {
		return Frame{}, false
	}
	seq := s.sequences[key]
	if i < 0 || i >= len(seq) {
		return Frame{}, false
	}
	return seq[i], true
}

// frameEpsilon absorbs float rounding when elapsed times that should sum to a
// whole number of frames land just short of it. It is a fraction of the frame
// duration.
const frameEpsilon = 1e-9

// Animator plays the sequences of a shared AnimationSet for one sprite. The
// current index is always valid for the current key.
type Animator struct {
	Emitter *AnimationEventEmitter

	set      *AnimationSet
	key      string
	index    int
	timer    float64
	duration float64
}

// NewAnimator binds set to a fresh playback state showing frame 0 of the
// default key. Non-positive or non-finite durations use
// common.DefaultFrameDuration.
func NewAnimator(set *AnimationSet, frameDuration float64) *Animator {
	if frameDuration <= 0 || math.IsNaN(frameDuration) || math.IsInf(frameDuration, 0) {
		frameDuration = common.DefaultFrameDuration
	}
	return &Animator{
		set:      set,
		key:      set.DefaultKey(),
		duration: frameDuration,
	}
}

func (a *Animator) Set() *AnimationSet { return a.set }

// Key returns the current direction key.
func (a *Animator) Key() string { return a.key }

// Index returns the current frame index within the current sequence.
func (a *Animator) Index() int { return a.index }

func (a *Animator) Timer() float64 { return a.timer }

func (a *Animator) FrameDuration() float64 { return a.duration }

// Play switches to the sequence for key, restarting it at frame 0. Playing
// the current key does nothing. An unknown key leaves the state untouched and
// only reports an AnimationEventUnknownDirection.
func (a *Animator) Play(key string) bool {
	if a == nil {
		return false
	}
	if key == a.key {
		return true
	}
	if !a.set.Has(key) {
		logger.Debug("unknown animation direction", "key", key, "current", a.key)
		a.Emitter.Emit(a, AnimationEvent{Type: AnimationEventUnknownDirection, Key: key, Frame: a.index})
		return false
	}
	a.key = key
	a.index = 0
	a.timer = 0
	a.Emitter.Emit(a, AnimationEvent{Type: AnimationEventDirectionChanged, Key: key})
	return true
}

// Update advances the frame timer by dt seconds, stepping one frame for every
// whole frame duration and wrapping at the end of the sequence. The cost does
// not depend on how many frames dt spans.
func (a *Animator) Update(dt float64) {
	if a == nil {
		return
	}
	dt = common.SanitizeDelta(dt)
	n := a.set.Len(a.key)
	if n == 0 || dt == 0 {
		return
	}

	total := a.timer + dt
	steps := math.Floor((total + frameEpsilon*a.duration) / a.duration)
	if steps < 1 {
		a.timer = total
		return
	}
	if math.IsInf(steps, 0) {
		a.timer = 0
		return
	}

	wrapped := float64(a.index)+steps >= float64(n)
	a.index = (a.index + int(math.Mod(steps, float64(n)))) % n
	a.timer = total - steps*a.duration
	if a.timer < 0 || a.timer+frameEpsilon*a.duration >= a.duration {
		a.timer = 0
	}
	if wrapped {
		a.Emitter.Emit(a, AnimationEvent{Type: AnimationEventLooped, Key: a.key})
	}
}

// Reset sets the animation back to the first frame of the current key.
func (a *Animator) Reset() {
	if a == nil {
		return
	}
	a.index = 0
	a.timer = 0
}

// Frame returns the frame currently on display.
func (a *Animator) Frame() (Frame, bool) {
	if a == nil {
		return Frame{}, false
	}
	return a.set.Frame(a.key, a.index)
}
