package manager

import (
	"errors"

	"github.com/milk9111/soundctl/channel"
	"github.com/milk9111/soundctl/logging"
	"github.com/sirupsen/logrus"
)

var ErrDuplicateEngine = errors.New("manager: engine sound already registered")

type tracked struct {
	ch         *channel.Channel
	persistent bool
}

// Registry owns every live channel of a session and ticks them once per
// frame. It also holds the single authoritative Engine, which survives scene
// unloads. Pass it by reference; it is not safe for concurrent use.
type Registry struct {
	channels []tracked
	engine   *Engine
	log      *logrus.Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{log: logging.For("registry")}
}

// Track adds channels to the per-frame tick. Persistent channels survive
// UnloadScene.
func (r *Registry) Track(persistent bool, chs ...*channel.Channel) {
	for _, ch := range chs {
		if ch == nil || ch.Closed() || r.tracks(ch) {
			continue
		}
		r.channels = append(r.channels, tracked{ch: ch, persistent: persistent})
	}
}

// AddMusic tracks the music channel for the current scene.
func (r *Registry) AddMusic(m *Music) {
	if m != nil {
		r.Track(false, m.Channel())
	}
}

// AddEffects tracks every effect channel for the current scene.
func (r *Registry) AddEffects(e *Effects) {
	if e != nil {
		r.Track(false, e.Channels()...)
	}
}

// RegisterEngine installs e as the authoritative engine. When one is already
// registered the newcomer is closed and ErrDuplicateEngine is returned; the
// original stays in place.
func (r *Registry) RegisterEngine(e *Engine) error {
	if e == nil {
		return nil
	}
	if r.engine != nil {
		if e != r.engine {
			r.log.Warn("duplicate engine sound, closing the newcomer")
			e.Close()
		}
		return ErrDuplicateEngine
	}
	r.engine = e
	r.Track(true, e.Channel())
	r.log.WithField("clip", e.Channel().Clip()).Info("engine sound registered")
	return nil
}

// EnsureEngine returns the registered engine, creating and registering one
// from cfg on first use. Later calls ignore cfg.
func (r *Registry) EnsureEngine(loader channel.Loader, cfg EngineConfig) *Engine {
	if r.engine != nil {
		return r.engine
	}
	e := NewEngine(loader, cfg)
	_ = r.RegisterEngine(e)
	return e
}

// Engine returns the registered engine, or nil.
func (r *Registry) Engine() *Engine {
	return r.engine
}

// Tick advances every live channel by dt seconds and forgets channels that
// were closed elsewhere.
func (r *Registry) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	live := r.channels[:0]
	for _, t := range r.channels {
		if t.ch.Closed() {
			continue
		}
		t.ch.Tick(dt)
		live = append(live, t)
	}
	clear(r.channels[len(live):])
	r.channels = live
}

// UnloadScene closes every channel that is not persistent. The engine keeps
// running.
func (r *Registry) UnloadScene() {
	kept := r.channels[:0]
	closed := 0
	for _, t := range r.channels {
		if t.persistent {
			kept = append(kept, t)
			continue
		}
		t.ch.Close()
		closed++
	}
	clear(r.channels[len(kept):])
	r.channels = kept
	r.log.WithFields(logrus.Fields{
		"closed": closed,
		"kept":   len(kept),
	}).Info("scene audio unloaded")
}

// Close releases every channel, the engine included.
func (r *Registry) Close() {
	for _, t := range r.channels {
		t.ch.Close()
	}
	r.channels = nil
	r.engine = nil
}

// Channels returns the live channels in tick order.
func (r *Registry) Channels() []*channel.Channel {
	out := make([]*channel.Channel, 0, len(r.channels))
	for _, t := range r.channels {
		out = append(out, t.ch)
	}
	return out
}

// Len returns the number of tracked channels.
func (r *Registry) Len() int {
	return len(r.channels)
}

func (r *Registry) tracks(ch *channel.Channel) bool {
	for _, t := range r.channels {
		if t.ch == ch {
			return true
		}
	}
	return false
}
