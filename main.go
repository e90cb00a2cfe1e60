package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/movement"
	"github.com/milk9111/travel/prefabs"
)

func main() {
	sceneName := flag.String("scene", "linear", "scene name in prefabs/ (basename, .yaml optional)")
	flat := flag.Bool("2d", false, "restrict movement to the XY plane")
	physics := flag.Bool("physics", false, "enable the rigid-body solver")
	ticks := flag.Int("ticks", 0, "simulation ticks per second (0 keeps settings.yaml)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	debug := flag.Bool("debug", false, "draw solver shapes and the HUD")
	watch := flag.Bool("watch", true, "reload prefabs when they change on disk")
	mute := flag.Bool("mute", false, "do not chime on arrivals")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "travel"})
	log.SetDefault(logger)

	base, err := movement.LoadConfig()
	if err != nil {
		log.Fatal("load settings", "err", err)
	}

	overrides := prefabs.SettingsSpec{TickRate: *ticks, LogLevel: *logLevel}
	if *flat {
		overrides.SpatialMode = "2d"
	}
	if *physics {
		overrides.PhysicsEnabled = physics
	}

	var chime *Chime
	if !*mute {
		chime = NewChime(0.3)
	}

	game, err := NewGame(*sceneName, base, overrides, *debug, chime, logger)
	if err != nil {
		log.Fatal("start", "scene", *sceneName, "err", err)
	}
	if *watch {
		if err := game.Watch(); err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		}
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("travel")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal("run", "err", err)
	}
}
