package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is used when no audio context exists yet.
const SampleRate = 44100

// Loader reads images and sound effects from an assets tree.
type Loader struct {
	FS fs.FS

	once sync.Once
	ctx  *audio.Context
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// ReadFile loads an asset by assets-relative path.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	if l == nil || l.FS == nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, fs.ErrNotExist)
	}
	b, err := fs.ReadFile(l.FS, cleanAssetPath(path))
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return b, nil
}

// DecodeImage decodes a PNG asset without uploading it to the GPU.
func (l *Loader) DecodeImage(path string) (image.Image, error) {
	b, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadImage decodes a PNG asset into an *ebiten.Image.
func (l *Loader) LoadImage(path string) (*ebiten.Image, error) {
	img, err := l.DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// DecodeWAV decodes a WAV asset resampled to sampleRate.
func (l *Loader) DecodeWAV(path string, sampleRate int) (*wav.Stream, error) {
	b, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %s: %w", path, err)
	}
	return stream, nil
}

// LoadSound decodes a WAV asset and wraps it in a player on the shared audio
// context.
func (l *Loader) LoadSound(path string) (*audio.Player, error) {
	ctx := l.audioContext()
	stream, err := l.DecodeWAV(path, ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	p, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("assets: player %s: %w", path, err)
	}
	return p, nil
}

// DecodeLoop decodes a WAV asset into a stream that restarts at the end
// instead of reporting EOF.
func (l *Loader) DecodeLoop(path string, sampleRate int) (*audio.InfiniteLoop, error) {
	stream, err := l.DecodeWAV(path, sampleRate)
	if err != nil {
		return nil, err
	}
	return audio.NewInfiniteLoop(stream, stream.Length()), nil
}

// LoadMusic loads a looping track player on the shared audio context.
func (l *Loader) LoadMusic(path string) (*audio.Player, error) {
	ctx := l.audioContext()
	loop, err := l.DecodeLoop(path, ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	p, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("assets: player %s: %w", path, err)
	}
	return p, nil
}

func (l *Loader) audioContext() *audio.Context {
	l.once.Do(func() {
		if l.ctx = audio.CurrentContext(); l.ctx == nil {
			l.ctx = audio.NewContext(SampleRate)
		}
	})
	return l.ctx
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return strings.TrimPrefix(s, "./")
}
