package manager

import (
	"github.com/milk9111/soundctl/channel"
	"github.com/milk9111/soundctl/logging"
	"github.com/milk9111/soundctl/speed"
	"github.com/sirupsen/logrus"
)

const defaultLerpDuration = 0.5

// EngineConfig configures the continuous engine sound.
type EngineConfig struct {
	Clip   string
	Volume float64
	// LerpDuration is how long a speed change takes to reach its new volume,
	// in seconds.
	LerpDuration float64
	Speeds       map[speed.Class]float64
	Classifier   speed.Classifier
}

// DefaultEngineConfig returns the engine settings used when nothing is
// configured.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Volume:       speed.DefaultVolume(speed.Idle),
		LerpDuration: defaultLerpDuration,
		Classifier:   speed.DefaultClassifier,
	}
}

// Engine drives the looping engine channel from speed tier changes. Only one
// Engine is authoritative per Registry.
type Engine struct {
	ch         *channel.Channel
	table      *speed.Table
	lerp       float64
	classifier speed.Classifier

	class    speed.Class
	hasClass bool
	log      *logrus.Entry
}

// NewEngine creates the engine channel and its speed table. Prefer
// Registry.EnsureEngine, which refuses to build a second engine.
func NewEngine(loader channel.Loader, cfg EngineConfig) *Engine {
	e := &Engine{
		ch: channel.New("engine", loader, channel.Options{
			Clip:   cfg.Clip,
			Volume: cfg.Volume,
			Loop:   true,
		}),
		table:      speed.NewTable(cfg.Speeds),
		classifier: cfg.Classifier,
		log:        logging.For("engine"),
	}
	e.SetLerpDuration(cfg.LerpDuration)
	if e.classifier == (speed.Classifier{}) {
		e.classifier = speed.DefaultClassifier
	}
	return e
}

// Start loops the engine clip and settles on the idle volume unless a speed
// tier was already reported.
func (e *Engine) Start() {
	e.ch.SetLoop(true)
	e.ch.Play()
	if !e.hasClass {
		e.SetSpeed(speed.Idle)
	}
}

// SetSpeed ramps the engine volume to the volume configured for c. Repeating
// the current tier does nothing.
func (e *Engine) SetSpeed(c speed.Class) {
	if e.hasClass && c == e.class {
		return
	}
	target := e.table.Lookup(c)
	e.log.WithFields(logrus.Fields{
		"class":  c.String(),
		"target": target,
	}).Debug("speed class changed")
	e.class = c
	e.hasClass = true
	e.ch.StartRamp(target, e.lerp)
}

// SetSpeedValue classifies a raw speed and forwards it to SetSpeed.
func (e *Engine) SetSpeedValue(v float64) {
	e.SetSpeed(e.classifier.Classify(v))
}

// Refresh ramps towards the table volume of the current tier again, after the
// table was changed.
func (e *Engine) Refresh() {
	if !e.hasClass {
		return
	}
	e.ch.StartRamp(e.table.Lookup(e.class), e.lerp)
}

// SetLerpDuration changes the speed transition time. Non-positive values make
// transitions instantaneous.
func (e *Engine) SetLerpDuration(d float64) {
	if d <= 0 {
		e.log.WithField("lerp_duration", d).Warn("non-positive lerp duration, speed changes will snap")
		d = 0
	}
	e.lerp = d
}

// SetClassifier replaces the speed thresholds.
func (e *Engine) SetClassifier(c speed.Classifier) {
	e.classifier = c
}

// Class returns the last reported tier.
func (e *Engine) Class() (speed.Class, bool) {
	return e.class, e.hasClass
}

func (e *Engine) LerpDuration() float64 { return e.lerp }
func (e *Engine) Table() *speed.Table { return e.table }
func (e *Engine) Channel() *channel.Channel { return e.ch }
func (e *Engine) Classifier() speed.Classifier { return e.classifier }

// Close stops the engine and releases its channel.
func (e *Engine) Close() {
	e.ch.Close()
}
