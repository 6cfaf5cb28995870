// Package assets embeds the game clips and loads them into Ebiten players.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/soundctl/channel"
)

// SampleRate is the rate the shared audio context runs at.
const SampleRate = 44100

// bytesPerFrame is the size of one frame of Ebiten's native 16-bit stereo PCM.
const bytesPerFrame = 4

var ErrUnknownClip = errors.New("assets: unknown clip")

//go:embed *.wav
var assetsFS embed.FS

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, path)
	}
	return b, err
}

// Clips lists the embedded clip names.
func Clips() []string {
	entries, err := fs.ReadDir(assetsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// Player is an Ebiten audio player that knows its clip length.
type Player struct {
	*audio.Player
	length float64
}

// Length returns the clip length in seconds.
func (p *Player) Length() float64 {
	return p.length
}

// Loader turns embedded clips into channel devices backed by one shared
// audio context.
type Loader struct {
	ctx *audio.Context
}

// NewLoader creates a loader for ctx. Ebiten allows a single context per
// process, so the caller owns it.
func NewLoader(ctx *audio.Context) *Loader {
	return &Loader{ctx: ctx}
}

// Load decodes clip and wraps it in a fresh player.
func (l *Loader) Load(clip string) (channel.Device, error) {
	if l == nil || l.ctx == nil {
		return nil, fmt.Errorf("assets: no audio context for %q", clip)
	}
	b, err := LoadAudio(clip)
	if err != nil {
		return nil, err
	}

	sampleRate := l.ctx.SampleRate()
	reader := bytes.NewReader(b)

	if strings.HasSuffix(strings.ToLower(cleanAssetPath(clip)), ".wav") {
		stream, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", clip, err)
		}
		player, err := l.ctx.NewPlayer(stream)
		if err != nil {
			return nil, fmt.Errorf("player for %q: %w", clip, err)
		}
		return &Player{Player: player, length: streamSeconds(stream.Length(), sampleRate)}, nil
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return &Player{
		Player: l.ctx.NewPlayerFromBytes(b),
		length: streamSeconds(int64(len(b)), sampleRate),
	}, nil
}

func streamSeconds(size int64, sampleRate int) float64 {
	if size <= 0 || sampleRate <= 0 {
		return 0
	}
	return float64(size) / float64(bytesPerFrame*sampleRate)
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
	return s
}
