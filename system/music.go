package system

import (
	"strings"

	"github.com/charmbracelet/log"
)

const (
	defaultMusicVolume     = 1.0
	defaultMusicFadeFrames = 30
)

// Track is a looping music player. *audio.Player satisfies it.
type Track interface {
	Sound
	Pause()
}

// Music plays one background track at a time. Switching tracks fades the
// current one out over a number of updates before the next one starts.
type Music struct {
	tracks  map[string]Track
	volumes map[string]float64
	logger  *log.Logger

	current string
	volume  float64

	next     string
	fading   bool
	fadeLeft int
	fadeStep float64
}

func NewMusic() *Music {
	return &Music{
		tracks:  make(map[string]Track),
		volumes: make(map[string]float64),
		logger:  log.Default(),
	}
}

func (m *Music) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Add registers a track. Volumes outside (0, 1] fall back to full volume or
// are capped at it.
func (m *Music) Add(name string, t Track, volume float64) {
	name = strings.TrimSpace(name)
	if name == "" || t == nil {
		return
	}
	if volume <= 0 {
		volume = defaultMusicVolume
	}
	if volume > 1 {
		volume = 1
	}
	m.tracks[name] = t
	m.volumes[name] = volume
}

// Current returns the track playing or fading out, or "".
func (m *Music) Current() string { return m.current }

// Play switches to name. With nothing playing it starts at once.
func (m *Music) Play(name string) {
	name = strings.TrimSpace(name)
	if _, ok := m.tracks[name]; !ok {
		m.logger.Debug("no such track", "name", name)
		return
	}
	m.request(name)
}

// Stop fades the current track out.
func (m *Music) Stop() {
	m.request("")
}

// Reset silences the current track immediately and forgets any switch in
// progress.
func (m *Music) Reset() {
	if t := m.tracks[m.current]; t != nil {
		t.Pause()
	}
	m.current = ""
	m.volume = 0
	m.next = ""
	m.fading = false
}

func (m *Music) request(name string) {
	if !m.fading && name == m.current {
		return
	}
	m.next = name
	m.fading = true
	if m.tracks[m.current] == nil {
		m.switchToNext()
		return
	}
	m.fadeLeft = defaultMusicFadeFrames
	m.fadeStep = m.volume / float64(defaultMusicFadeFrames)
}

// Update advances a fade in progress, or restarts the current track if it
// stopped on its own.
func (m *Music) Update() {
	if m.fading {
		m.fade()
		return
	}
	t := m.tracks[m.current]
	if t == nil || t.IsPlaying() {
		return
	}
	m.start(t)
}

func (m *Music) fade() {
	t := m.tracks[m.current]
	if t == nil {
		m.switchToNext()
		return
	}

	m.fadeLeft--
	if m.fadeLeft > 0 {
		m.volume -= m.fadeStep
		if m.volume < 0 {
			m.volume = 0
		}
		t.SetVolume(m.volume)
		return
	}

	t.SetVolume(0)
	t.Pause()
	if err := t.Rewind(); err != nil {
		m.logger.Warn("rewind track", "name", m.current, "err", err)
	}
	m.switchToNext()
}

func (m *Music) switchToNext() {
	name := m.next
	m.next = ""
	m.fading = false
	m.fadeLeft = 0
	m.fadeStep = 0

	m.current = name
	if name == "" {
		m.volume = 0
		return
	}
	m.volume = m.volumes[name]
	m.start(m.tracks[name])
}

func (m *Music) start(t Track) {
	if err := t.Rewind(); err != nil {
		m.logger.Warn("rewind track", "name", m.current, "err", err)
		return
	}
	t.SetVolume(m.volume)
	t.Play()
}
