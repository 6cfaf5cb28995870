package manager

import (
	"github.com/milk9111/soundctl/channel"
	"github.com/milk9111/soundctl/logging"
	"github.com/sirupsen/logrus"
)

// EffectConfig names one sound effect clip.
type EffectConfig struct {
	Name   string
	Clip   string
	Volume float64
}

// Effects owns one independent channel per named sound effect.
type Effects struct {
	names    []string
	byName   map[string]*channel.Channel
	channels []*channel.Channel
	volumes  []float64
	log      *logrus.Entry
}

// NewEffects creates a channel for every configured effect. Entries with an
// empty or repeated name are skipped.
func NewEffects(loader channel.Loader, cfgs []EffectConfig) *Effects {
	e := &Effects{
		byName: make(map[string]*channel.Channel, len(cfgs)),
		log:    logging.For("effects"),
	}
	for i, cfg := range cfgs {
		if cfg.Name == "" {
			e.log.WithField("index", i).Warn("effect without a name, skipping")
			continue
		}
		if _, ok := e.byName[cfg.Name]; ok {
			e.log.WithField("effect", cfg.Name).Warn("duplicate effect name, skipping")
			continue
		}
		ch := channel.New("sfx:"+cfg.Name, loader, channel.Options{
			Clip:   cfg.Clip,
			Volume: cfg.Volume,
		})
		e.names = append(e.names, cfg.Name)
		e.byName[cfg.Name] = ch
		e.channels = append(e.channels, ch)
		e.volumes = append(e.volumes, ch.Base())
	}
	return e
}

// Trigger plays the named effect from the start unless it is already
// playing. It reports whether playback was started.
func (e *Effects) Trigger(name string) bool {
	idx := e.index(name)
	if idx < 0 {
		e.log.WithField("effect", name).Warn("unknown effect")
		return false
	}
	return e.trigger(idx)
}

// TriggerAt is Trigger addressed by configuration order.
func (e *Effects) TriggerAt(i int) bool {
	if i < 0 || i >= len(e.channels) {
		e.log.WithFields(logrus.Fields{
			"index": i,
			"count": len(e.channels),
		}).Warn("effect index out of range")
		return false
	}
	return e.trigger(i)
}

// Stinger plays the named effect with a fade-in, hold and fade-out envelope
// fitted to the clip length.
func (e *Effects) Stinger(name string, peak, fadeDuration float64) {
	ch := e.Channel(name)
	if ch == nil {
		e.log.WithField("effect", name).Warn("unknown effect")
		return
	}
	ch.PlayStinger(peak, fadeDuration)
}

// Stop halts a single effect.
func (e *Effects) Stop(name string) {
	if ch := e.Channel(name); ch != nil {
		ch.Stop()
	}
}

// StopAll halts every effect.
func (e *Effects) StopAll() {
	for _, ch := range e.channels {
		ch.Stop()
	}
}

// Names lists the effects in configuration order.
func (e *Effects) Names() []string {
	return append([]string(nil), e.names...)
}

// Channel returns the named effect channel, or nil.
func (e *Effects) Channel(name string) *channel.Channel {
	return e.byName[name]
}

// Channels returns every effect channel in configuration order.
func (e *Effects) Channels() []*channel.Channel {
	return append([]*channel.Channel(nil), e.channels...)
}

func (e *Effects) trigger(i int) bool {
	ch := e.channels[i]
	if ch.IsPlaying() {
		return false
	}
	if !ch.HasClip() {
		e.log.WithField("effect", e.names[i]).Warn("effect has no clip")
		return false
	}
	ch.SetVolume(e.volumes[i])
	ch.Play()
	return ch.IsPlaying()
}

func (e *Effects) index(name string) int {
	for i, n := range e.names {
		if n == name {
			return i
		}
	}
	return -1
}
