package main

import (
	"flag"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/soundctl/assets"
	"github.com/milk9111/soundctl/config"
	"github.com/milk9111/soundctl/logging"
)

func main() {
	configPath := flag.String("config", "", "audio config file (defaults to config/audio.yaml, falling back to the embedded copy)")
	watch := flag.Bool("watch", false, "reload the config file when it changes on disk")
	logLevel := flag.String("log", "", "log level override (debug/info/warn/error)")
	flag.Parse()

	log := logging.For("main")

	var (
		cfg *config.Audio
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.LoadAudio(config.DefaultFile)
	}
	if err != nil {
		log.WithError(err).Fatal("load audio config")
	}

	logging.SetLevel(cfg.LogLevel)
	if *logLevel != "" {
		logging.SetLevel(*logLevel)
	}

	var watcher *config.Watcher
	if *watch {
		dir := config.Dir
		if *configPath != "" {
			dir = filepath.Dir(*configPath)
		}
		watcher, err = config.NewWatcher(dir)
		if err != nil {
			log.WithError(err).Warn("config watcher disabled")
			watcher = nil
		}
	}

	loader := assets.NewLoader(audio.NewContext(assets.SampleRate))

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("soundctl")

	game := NewGame(cfg, *configPath, loader, watcher)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("run game")
	}
}
