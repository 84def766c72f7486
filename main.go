package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/logging"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "start with the physics debug overlay and FPS counter")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "tilemap key from prefabs/load.yaml (defaults to the first)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	watch := flag.Bool("watch", false, "hot reload prefabs from the prefabs/ directory")
	scale := flag.Float64("scale", 1, "window scale relative to 1280x720")
	flag.Parse()

	logger, err := logging.New(*logLevel, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.DiskDir)
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.String("dir", prefabs.DiskDir), zap.Error(err))
		} else {
			defer watcher.Close()
			logger.Info("watching prefabs", zap.String("dir", prefabs.DiskDir))
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if *scale <= 0 {
		*scale = 1
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(baseWidth*(*scale)), int(baseHeight*(*scale)))
	ebiten.SetWindowTitle("platformer")

	game := NewGame(GameOptions{
		Level:   *levelName,
		Debug:   *debug,
		Log:     logger,
		Watcher: watcher,
	})

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
