// Package manager holds the orchestrators that apply game policy on top of
// channels: looping background music, fire-and-forget effects and the
// speed-driven engine sound, plus the registry that ticks them every frame.
package manager

import (
	"github.com/milk9111/soundctl/channel"
	"github.com/milk9111/soundctl/fade"
)

const (
	defaultMusicVolume  = 1.0
	defaultMusicFadeOut = 0.5
)

// MusicConfig configures the background music channel.
type MusicConfig struct {
	Clip     string
	Volume   float64
	Loop     bool
	AutoPlay bool
	// FadeOut is the default fade used by FadeOut(0), in seconds.
	FadeOut float64
}

// Music owns the single background music channel.
type Music struct {
	ch  *channel.Channel
	cfg MusicConfig

	// OnStart runs at the end of Start, after the startup policy is applied.
	OnStart func(m *Music)
}

// NewMusic creates the music channel. The clip is loaded immediately; playback
// waits for Start.
func NewMusic(loader channel.Loader, cfg MusicConfig) *Music {
	if cfg.FadeOut <= 0 {
		cfg.FadeOut = defaultMusicFadeOut
	}
	return &Music{
		ch: channel.New("music", loader, channel.Options{
			Clip:   cfg.Clip,
			Volume: cfg.Volume,
			Loop:   cfg.Loop,
		}),
		cfg: cfg,
	}
}

// Start applies the session start policy: loop as configured, rest at the
// base volume and play when AutoPlay is set.
func (m *Music) Start() {
	m.ch.SetLoop(m.cfg.Loop)
	m.ch.SetVolume(m.ch.Base())
	if m.cfg.AutoPlay {
		m.ch.Play()
	}
	if m.OnStart != nil {
		m.OnStart(m)
	}
}

// Resume continues playback. A stopped channel restarts at its base volume.
func (m *Music) Resume() {
	if m.ch.State() == channel.Stopped {
		m.ch.SetVolume(m.ch.Base())
	}
	m.ch.Play()
}

// Pause halts the music keeping the position.
func (m *Music) Pause() {
	m.ch.Pause()
}

// Toggle pauses playing music and resumes anything else.
func (m *Music) Toggle() {
	if m.ch.IsPlaying() {
		m.Pause()
		return
	}
	m.Resume()
}

// Stop halts and rewinds the music.
func (m *Music) Stop() {
	m.ch.Stop()
}

// FadeOut fades to silence over duration seconds and then stops. A
// non-positive duration uses the configured default.
func (m *Music) FadeOut(duration float64) {
	if duration <= 0 {
		duration = m.cfg.FadeOut
	}
	m.ch.StartSequence(fade.NewSequence(fade.Fade(m.ch.Volume(), 0, duration)))
}

// FadeIn starts playback from silence and ramps up to the base volume.
func (m *Music) FadeIn(duration float64) {
	if m.ch.State() != channel.Playing {
		m.ch.SetVolume(0)
		m.ch.Play()
	}
	m.ch.StartRamp(m.ch.Base(), duration)
}

// FadeTo ramps the volume to v without touching playback.
func (m *Music) FadeTo(v, duration float64) {
	m.ch.StartRamp(v, duration)
}

// SetVolume changes the base volume and applies it right away.
func (m *Music) SetVolume(v float64) {
	m.ch.SetBase(v)
	m.ch.SetVolume(v)
}

// Channel exposes the underlying channel.
func (m *Music) Channel() *channel.Channel {
	return m.ch
}

// DefaultMusicConfig returns the music settings used when nothing is
// configured.
func DefaultMusicConfig() MusicConfig {
	return MusicConfig{
		Volume:   defaultMusicVolume,
		Loop:     true,
		AutoPlay: true,
		FadeOut:  defaultMusicFadeOut,
	}
}
