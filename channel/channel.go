// Package channel drives one logical sound emitter: clip assignment,
// play/pause/stop and the volume transition currently applied to it.
package channel

import (
	"fmt"
	"math"

	"github.com/milk9111/soundctl/fade"
	"github.com/milk9111/soundctl/logging"
	"github.com/sirupsen/logrus"
)

// State is the playback state of a channel.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configure a channel at construction.
type Options struct {
	Clip   string
	Volume float64
	Loop   bool
}

// FadeSpec describes a fade-in, hold, fade-out envelope.
type FadeSpec struct {
	Start   float64
	Peak    float64
	End     float64
	FadeIn  float64
	Hold    float64
	FadeOut float64
}

// Channel owns a device handle and at most one active transition. Starting a
// transition replaces whatever was running. It is not safe for concurrent use;
// every call is expected on the frame loop.
type Channel struct {
	name   string
	loader Loader
	device Device
	clip   string

	loop   bool
	base   float64
	volume float64
	state  State

	ramp *fade.Ramp
	seq  *fade.Sequence

	closed bool
	log    *logrus.Entry
}

// New creates a channel and loads opts.Clip when set. A clip that fails to
// load leaves the channel silent; the failure is logged.
func New(name string, loader Loader, opts Options) *Channel {
	c := &Channel{
		name:   name,
		loader: loader,
		loop:   opts.Loop,
		base:   fade.Clamp01(opts.Volume),
		volume: fade.Clamp01(opts.Volume),
		log:    logging.For("channel").WithField("channel", name),
	}
	if opts.Clip != "" {
		_ = c.SetClip(opts.Clip)
	}
	return c
}

// SetClip swaps the clip. Playback stops; the volume and any running
// transition are kept. When the new clip cannot be loaded the current clip
// stays in place untouched.
func (c *Channel) SetClip(clip string) error {
	if c == nil || c.closed {
		return nil
	}
	if clip == c.clip && c.device != nil {
		return nil
	}

	if c.loader == nil {
		c.log.WithField("clip", clip).Warn("no loader, clip unchanged")
		return ErrNoLoader
	}

	device, err := c.loader.Load(clip)
	if err != nil || device == nil {
		if err == nil {
			err = ErrNoClip
		}
		c.log.WithFields(logrus.Fields{
			"clip":  clip,
			"error": err,
		}).Warn("clip load failed, clip unchanged")
		return fmt.Errorf("channel %s: load %q: %w", c.name, clip, err)
	}

	c.stopDevice()
	c.releaseDevice()
	c.state = Stopped

	c.device = device
	c.clip = clip
	c.device.SetVolume(c.volume)
	return nil
}

// Play starts or resumes playback. It is a no-op while already playing and
// when no clip is assigned.
func (c *Channel) Play() {
	if c == nil || c.closed {
		return
	}
	if c.device == nil {
		c.log.Warn("play without clip")
		return
	}

	switch c.state {
	case Playing:
		if c.device.IsPlaying() {
			return
		}
		c.rewind()
	case Stopped:
		c.rewind()
	}

	c.device.SetVolume(c.volume)
	c.device.Play()
	c.state = Playing
}

// Pause halts playback keeping the position.
func (c *Channel) Pause() {
	if c == nil || c.state != Playing {
		return
	}
	if c.device != nil {
		c.device.Pause()
	}
	c.state = Paused
}

// Stop halts playback, rewinds and drops any running transition.
func (c *Channel) Stop() {
	if c == nil || c.state == Stopped {
		return
	}
	c.stopDevice()
	c.state = Stopped
	c.Cancel()
}

// SetVolume applies v immediately, clamped to [0,1]. A running transition is
// cancelled.
func (c *Channel) SetVolume(v float64) {
	if c == nil {
		return
	}
	c.Cancel()
	c.apply(v)
}

// SetBase changes the resting volume used by orchestrators.
func (c *Channel) SetBase(v float64) {
	if c == nil {
		return
	}
	c.base = fade.Clamp01(v)
}

// StartRamp moves the volume from its current value to target over duration
// seconds. A non-positive duration snaps immediately.
func (c *Channel) StartRamp(target, duration float64) {
	if c == nil || c.closed {
		return
	}
	target = fade.Clamp01(target)
	c.seq = nil
	if !(duration > 0) {
		c.ramp = nil
		c.apply(target)
		return
	}
	c.ramp = fade.NewRamp(c.volume, target, duration)
	c.log.WithFields(logrus.Fields{
		"from":     c.volume,
		"to":       target,
		"duration": duration,
	}).Debug("ramp started")
}

// StartSequence hands the volume over to seq. When the sequence finishes the
// channel stops and settles on the sequence's end value. A nil sequence just
// cancels the current transition.
func (c *Channel) StartSequence(seq *fade.Sequence) {
	if c == nil || c.closed {
		return
	}
	c.ramp = nil
	c.seq = seq
	if seq == nil {
		return
	}
	c.apply(seq.Value())
	c.log.WithFields(logrus.Fields{
		"phases":   seq.Len(),
		"duration": seq.Duration(),
	}).Debug("fade sequence started")
}

// StartFade runs the three phase envelope described by f.
func (c *Channel) StartFade(f FadeSpec) {
	c.StartSequence(fade.Triangle(f.Start, f.Peak, f.End, f.FadeIn, f.Hold, f.FadeOut))
}

// PlayStinger restarts the clip with a fade from silence up to peak, a hold
// and a fade back to silence that lines up with the end of the clip. The hold
// is max(0, length-2*fade); fades longer than half the clip are shortened.
func (c *Channel) PlayStinger(peak, fadeDuration float64) {
	if c == nil || c.closed {
		return
	}
	if c.device == nil {
		c.log.Warn("stinger without clip")
		return
	}

	length := c.device.Length()
	if fadeDuration < 0 {
		fadeDuration = 0
	}
	if length > 0 && 2*fadeDuration > length {
		fadeDuration = length / 2
	}
	hold := math.Max(0, length-2*fadeDuration)

	c.Stop()
	c.StartFade(FadeSpec{
		Start:   0,
		Peak:    fade.Clamp01(peak),
		End:     0,
		FadeIn:  fadeDuration,
		Hold:    hold,
		FadeOut: fadeDuration,
	})
	c.Play()
}

// Cancel drops the running transition, leaving the volume where it is.
func (c *Channel) Cancel() {
	if c == nil {
		return
	}
	c.ramp = nil
	c.seq = nil
}

// Tick advances the active transition by dt seconds and reconciles the
// channel state with the device: looped clips restart when they run out,
// other clips fall back to Stopped.
func (c *Channel) Tick(dt float64) {
	if c == nil || c.closed {
		return
	}

	switch {
	case c.ramp != nil:
		c.apply(c.ramp.Advance(dt))
		if c.ramp.Done() {
			c.ramp = nil
		}
	case c.seq != nil:
		v, done := c.seq.Advance(dt)
		if done {
			c.finishSequence()
		} else {
			c.apply(v)
		}
	}

	if c.state != Playing || c.device == nil || c.device.IsPlaying() {
		return
	}
	if c.loop {
		c.rewind()
		c.device.Play()
		return
	}
	c.state = Stopped
	if c.seq != nil {
		c.finishSequence()
	}
}

// Close stops playback and releases the device. The channel ignores every
// call afterwards.
func (c *Channel) Close() {
	if c == nil || c.closed {
		return
	}
	c.Stop()
	c.releaseDevice()
	c.closed = true
}

// SetLoop toggles looping.
func (c *Channel) SetLoop(loop bool) {
	if c != nil {
		c.loop = loop
	}
}

func (c *Channel) Name() string { return c.name }
func (c *Channel) Clip() string { return c.clip }
func (c *Channel) Loop() bool { return c.loop }
func (c *Channel) Base() float64 { return c.base }
func (c *Channel) Volume() float64 { return c.volume }
func (c *Channel) State() State { return c.state }
func (c *Channel) IsPlaying() bool { return c.state == Playing }
func (c *Channel) Closed() bool { return c.closed }
func (c *Channel) Transitioning() bool { return c.ramp != nil || c.seq != nil }
func (c *Channel) HasClip() bool { return c.device != nil }
func (c *Channel) Sequence() *fade.Sequence { return c.seq }

// Length returns the clip length in seconds, 0 without a clip.
func (c *Channel) Length() float64 {
	if c == nil || c.device == nil {
		return 0
	}
	return c.device.Length()
}

func (c *Channel) finishSequence() {
	end := c.seq.End()
	c.seq = nil
	c.Stop()
	c.apply(end)
}

func (c *Channel) apply(v float64) {
	c.volume = fade.Clamp01(v)
	if c.device != nil {
		c.device.SetVolume(c.volume)
	}
}

func (c *Channel) rewind() {
	if err := c.device.Rewind(); err != nil {
		c.log.WithError(err).Warn("rewind failed")
	}
}

func (c *Channel) stopDevice() {
	if c.device == nil {
		return
	}
	c.device.Pause()
	c.rewind()
}

func (c *Channel) releaseDevice() {
	if c.device == nil {
		return
	}
	if err := c.device.Close(); err != nil {
		c.log.WithError(err).Debug("device close failed")
	}
	c.device = nil
	c.clip = ""
}
