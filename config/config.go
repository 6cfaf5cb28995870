// Package config loads the audio settings from YAML and applies reloads to
// running orchestrators.
package config

import (
	"fmt"
	"os"

	"github.com/milk9111/soundctl/fade"
	"github.com/milk9111/soundctl/logging"
	"github.com/milk9111/soundctl/manager"
	"github.com/milk9111/soundctl/speed"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file shipped with the binary.
const DefaultFile = "audio.yaml"

const defaultVolume = 1.0

var log = logging.For("config")

// Audio is the top level audio configuration.
type Audio struct {
	LogLevel string       `yaml:"log_level"`
	Music    MusicSpec    `yaml:"music"`
	Engine   EngineSpec   `yaml:"engine"`
	Effects  []EffectSpec `yaml:"effects"`
}

type MusicSpec struct {
	Clip     string   `yaml:"clip"`
	Volume   *float64 `yaml:"volume"`
	Loop     *bool    `yaml:"loop"`
	AutoPlay *bool    `yaml:"auto_play"`
	FadeOut  float64  `yaml:"fade_out"`
}

type EngineSpec struct {
	Clip         string             `yaml:"clip"`
	Volume       *float64           `yaml:"volume"`
	LerpDuration float64            `yaml:"lerp_duration"`
	Speeds       map[string]float64 `yaml:"speeds"`
	Thresholds   ThresholdSpec      `yaml:"thresholds"`
}

// ThresholdSpec holds the speeds at which the engine switches tier.
type ThresholdSpec struct {
	Normal float64 `yaml:"normal"`
	Boost  float64 `yaml:"boost"`
}

type EffectSpec struct {
	Name   string   `yaml:"name"`
	Clip   string   `yaml:"clip"`
	Volume *float64 `yaml:"volume"`
}

// LoadAudio reads and parses a config file by name, see Load.
func LoadAudio(name string) (*Audio, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", name, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return cfg, nil
}

// LoadFile parses the config at an explicit path.
func LoadFile(path string) (*Audio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into an Audio config. Only malformed YAML is an error.
// Values are kept as written; the MusicConfig, EngineConfig and EffectConfigs
// conversions fill defaults, clamp volumes and skip unknown speed names.
func Parse(data []byte) (*Audio, error) {
	var cfg Audio
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &cfg, nil
}

// MusicConfig converts the music section, filling defaults.
func (a *Audio) MusicConfig() manager.MusicConfig {
	cfg := manager.DefaultMusicConfig()
	cfg.Clip = a.Music.Clip
	cfg.Volume = volumeOr(a.Music.Volume, defaultVolume)
	if a.Music.Loop != nil {
		cfg.Loop = *a.Music.Loop
	}
	if a.Music.AutoPlay != nil {
		cfg.AutoPlay = *a.Music.AutoPlay
	}
	if a.Music.FadeOut > 0 {
		cfg.FadeOut = a.Music.FadeOut
	}
	return cfg
}

// EngineConfig converts the engine section, filling defaults.
func (a *Audio) EngineConfig() manager.EngineConfig {
	cfg := manager.DefaultEngineConfig()
	cfg.Clip = a.Engine.Clip
	cfg.Volume = volumeOr(a.Engine.Volume, cfg.Volume)

	switch {
	case a.Engine.LerpDuration > 0:
		cfg.LerpDuration = a.Engine.LerpDuration
	case a.Engine.LerpDuration < 0:
		log.WithField("lerp_duration", a.Engine.LerpDuration).Warn("negative lerp duration, using default")
	}

	cfg.Speeds = a.SpeedVolumes()
	cfg.Classifier = a.Classifier()
	return cfg
}

// SpeedVolumes returns the configured speed entries keyed by tier.
func (a *Audio) SpeedVolumes() map[speed.Class]float64 {
	out := make(map[speed.Class]float64, len(a.Engine.Speeds))
	for name, v := range a.Engine.Speeds {
		c, err := speed.ParseClass(name)
		if err != nil {
			log.WithFields(logrus.Fields{
				"class":  name,
				"volume": v,
			}).Warn("unknown speed class in config")
			continue
		}
		out[c] = fade.Clamp01(v)
	}
	return out
}

// Classifier returns the configured thresholds, or the defaults when they are
// missing or inconsistent.
func (a *Audio) Classifier() speed.Classifier {
	t := a.Engine.Thresholds
	if t == (ThresholdSpec{}) {
		return speed.DefaultClassifier
	}
	if t.Normal < 0 || t.Boost < t.Normal {
		log.WithFields(logrus.Fields{
			"normal": t.Normal,
			"boost":  t.Boost,
		}).Warn("inconsistent speed thresholds, using defaults")
		return speed.DefaultClassifier
	}
	return speed.Classifier{NormalAt: t.Normal, BoostAt: t.Boost}
}

// EffectConfigs converts the effects section.
func (a *Audio) EffectConfigs() []manager.EffectConfig {
	out := make([]manager.EffectConfig, 0, len(a.Effects))
	for _, fx := range a.Effects {
		out = append(out, manager.EffectConfig{
			Name:   fx.Name,
			Clip:   fx.Clip,
			Volume: volumeOr(fx.Volume, defaultVolume),
		})
	}
	return out
}

// Apply pushes the reloadable settings to running orchestrators: log level,
// engine speed table, lerp duration and thresholds, and music volume. Clip
// changes only take effect on the next session. Nil targets are skipped.
func (a *Audio) Apply(engine *manager.Engine, music *manager.Music) {
	logging.SetLevel(a.LogLevel)

	if engine != nil {
		ecfg := a.EngineConfig()
		table := engine.Table()
		for _, c := range speed.Classes {
			v, ok := ecfg.Speeds[c]
			if !ok {
				v = speed.DefaultVolume(c)
			}
			table.Update(c, v)
		}
		engine.SetLerpDuration(ecfg.LerpDuration)
		engine.SetClassifier(ecfg.Classifier)
		engine.Refresh()
	}

	if music != nil {
		music.SetVolume(volumeOr(a.Music.Volume, defaultVolume))
	}

	log.Info("audio config applied")
}

func volumeOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return fade.Clamp01(*v)
}
