package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/spritearena/obj"
)

// Sound is the subset of *audio.Player the board drives.
type Sound interface {
	IsPlaying() bool
	Rewind() error
	Play()
	SetVolume(volume float64)
}

type boardSound struct {
	sound  Sound
	volume float64
}

// SoundBoard plays named sound effects in response to collision events.
// Triggered sounds are queued and started on the next Update.
type SoundBoard struct {
	sounds  map[string]boardSound
	rules   map[obj.CollisionKind]string
	pending []string
	logger  *log.Logger
}

func NewSoundBoard() *SoundBoard {
	return &SoundBoard{
		sounds: make(map[string]boardSound),
		rules:  make(map[obj.CollisionKind]string),
		logger: log.Default(),
	}
}

func (b *SoundBoard) SetLogger(l *log.Logger) {
	if l != nil {
		b.logger = l
	}
}

// Add registers a sound under name.
func (b *SoundBoard) Add(name string, s Sound, volume float64) {
	if s == nil {
		return
	}
	b.sounds[name] = boardSound{sound: s, volume: volume}
}

// Bind plays sound whenever a collision of kind is handled.
func (b *SoundBoard) Bind(kind obj.CollisionKind, sound string) {
	if sound == "" {
		return
	}
	b.rules[kind] = sound
}

// Trigger queues name for the next Update. Unknown names are dropped.
func (b *SoundBoard) Trigger(name string) {
	if _, ok := b.sounds[name]; !ok {
		b.logger.Debug("no such sound", "name", name)
		return
	}
	b.pending = append(b.pending, name)
}

// HandleCollisions triggers the sound bound to each event's kind.
func (b *SoundBoard) HandleCollisions(events []obj.CollisionEvent) {
	for _, evt := range events {
		if name, ok := b.rules[evt.Kind]; ok {
			b.Trigger(name)
		}
	}
}

// Pending returns the queued sound names.
func (b *SoundBoard) Pending() []string {
	return append([]string(nil), b.pending...)
}

// Update starts every queued sound that is not already playing.
func (b *SoundBoard) Update() {
	for _, name := range b.pending {
		s := b.sounds[name]
		if s.sound.IsPlaying() {
			continue
		}
		s.sound.SetVolume(s.volume)
		if err := s.sound.Rewind(); err != nil {
			b.logger.Warn("rewind sound", "name", name, "err", err)
			continue
		}
		s.sound.Play()
	}
	b.pending = b.pending[:0]
}
