package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/soundctl/channel"
	"github.com/milk9111/soundctl/config"
	"github.com/milk9111/soundctl/logging"
	"github.com/milk9111/soundctl/manager"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 640
	baseHeight = 360

	acceleration = 12.0
	drag         = 6.0
	maxSpeed     = 40.0
	stingerFade  = 0.4
)

// Game is a minimal driving loop that feeds the audio layer: the arrow keys
// change speed, a few keys fire effects and N simulates a scene change.
type Game struct {
	frames int
	scene  int
	speed  float64

	cfg        *config.Audio
	configPath string
	loader     channel.Loader
	watcher    *config.Watcher

	registry *manager.Registry
	engine   *manager.Engine
	music    *manager.Music
	effects  *manager.Effects

	log *logrus.Entry
}

func NewGame(cfg *config.Audio, configPath string, loader channel.Loader, watcher *config.Watcher) *Game {
	g := &Game{
		cfg:        cfg,
		configPath: configPath,
		loader:     loader,
		watcher:    watcher,
		registry:   manager.NewRegistry(),
		log:        logging.For("game"),
	}
	g.loadScene()
	return g
}

// loadScene builds the scene-scoped orchestrators. The engine is created on
// the first scene only and carries over afterwards.
func (g *Game) loadScene() {
	g.scene++

	g.engine = g.registry.EnsureEngine(g.loader, g.cfg.EngineConfig())
	if _, started := g.engine.Class(); !started {
		g.engine.Start()
	}

	g.music = manager.NewMusic(g.loader, g.cfg.MusicConfig())
	g.effects = manager.NewEffects(g.loader, g.cfg.EffectConfigs())
	g.registry.AddMusic(g.music)
	g.registry.AddEffects(g.effects)
	g.music.Start()

	g.log.WithFields(logrus.Fields{
		"scene":    g.scene,
		"channels": g.registry.Len(),
	}).Info("scene loaded")
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float64(ebiten.TPS())

	g.reloadConfig()
	g.handleInput(dt)

	g.engine.SetSpeedValue(g.speed)
	g.registry.Tick(dt)
	return nil
}

func (g *Game) handleInput(dt float64) {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.speed = math.Min(maxSpeed, g.speed+acceleration*dt)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.speed = math.Max(0, g.speed-2*acceleration*dt)
	default:
		g.speed = math.Max(0, g.speed-drag*dt)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.effects.Trigger("horn")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.effects.Trigger("boost")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.effects.Stinger("stinger", 1, stingerFade)
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(key) {
			g.effects.TriggerAt(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.music.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.music.FadeOut(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.effects.StopAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.registry.UnloadScene()
		g.loadScene()
	}
}

// reloadConfig drains the watcher and applies the newest config file. Only
// runs on the update goroutine, so channels are never touched concurrently.
func (g *Game) reloadConfig() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		if _, ok := g.watcher.Poll(); !ok {
			break
		}
		changed = true
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.WithError(err).Warn("config watcher error")
		}
	default:
	}
	if !changed {
		return
	}

	cfg, err := g.loadConfig()
	if err != nil {
		g.log.WithError(err).Warn("config reload failed, keeping previous settings")
		return
	}
	g.cfg = cfg
	cfg.Apply(g.engine, g.music)
}

func (g *Game) loadConfig() (*config.Audio, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.LoadAudio(config.DefaultFile)
}

func (g *Game) Draw(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    TPS: %.2f    Scene: %d\n", g.frames, ebiten.ActualTPS(), g.scene)
	class, _ := g.engine.Class()
	fmt.Fprintf(&b, "Speed: %5.1f  (%s)\n\n", g.speed, class)
	for _, ch := range g.registry.Channels() {
		fmt.Fprintf(&b, "%-12s %-8s vol %.2f", ch.Name(), ch.State(), ch.Volume())
		if ch.Transitioning() {
			b.WriteString("  ~")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nUp/Down: speed  Space: horn  B: boost  S: stinger  1-4: effect by slot\n")
	b.WriteString("M: toggle music  F: fade music  X: stop effects  N: next scene")
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// Close releases every channel and stops the config watcher.
func (g *Game) Close() {
	g.registry.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
