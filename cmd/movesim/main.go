// Command movesim runs a scene without a window for a fixed number of ticks
// and logs every arrival and the final positions.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"github.com/milk9111/travel/ecs/entity"
	"github.com/milk9111/travel/movement"
	"github.com/milk9111/travel/prefabs"
)

func main() {
	sceneName := flag.String("scene", "linear", "scene name in prefabs/ (basename, .yaml optional)")
	steps := flag.Int("steps", 600, "number of ticks to simulate")
	flat := flag.Bool("2d", false, "restrict movement to the XY plane")
	physics := flag.Bool("physics", false, "enable the rigid-body solver")
	ticks := flag.Int("ticks", 0, "simulation ticks per second (0 keeps settings.yaml)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	seed := flag.Int64("seed", 1, "seed for arrival scripts")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "movesim"})

	base, err := movement.LoadConfig()
	if err != nil {
		logger.Fatal("load settings", "err", err)
	}

	w := ecs.NewWorld()
	scene, _, err := entity.LoadScene(w, *sceneName)
	if err != nil {
		logger.Fatal("load scene", "scene", *sceneName, "err", err)
	}

	overrides := prefabs.SettingsSpec{TickRate: *ticks, LogLevel: *logLevel}
	if *flat {
		overrides.SpatialMode = "2d"
	}
	if *physics {
		overrides.PhysicsEnabled = physics
	}
	cfg := base.Apply(scene.Settings).Apply(overrides)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config", "err", err)
	}
	logger.SetLevel(cfg.Level())

	s := &ecs.Scheduler{}
	if cfg.PhysicsEnabled {
		s.AddStage(movement.StagePhysics, false, movement.NewSolver(cfg, logger))
	}
	if _, err := movement.Install(w, s, cfg, movement.WithLogger(logger), movement.WithSeed(*seed)); err != nil {
		logger.Fatal("install", "err", err)
	}

	w.Events().Subscribe(ecs.EventArrived, func(w *ecs.World, evt ecs.Event) {
		logger.Info("arrived", "tick", w.Tick(), "entity", nameOf(w, evt.Entity), "position", positionOf(w, evt.Entity))
	})

	delta := cfg.TickDelta()
	for i := 0; i < *steps; i++ {
		w.Advance(delta)
		s.Update(w)
	}

	for _, e := range w.Query(component.TransformComponent.Kind()) {
		if !isMover(w, e) {
			continue
		}
		logger.Info("final", "entity", nameOf(w, e), "position", positionOf(w, e))
	}
}

func isMover(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.KinematicMovementComponent.Kind()) ||
		ecs.Has(w, e, component.CircularMovementComponent.Kind()) ||
		ecs.Has(w, e, component.PhysicsMovementComponent.Kind())
}

func nameOf(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}

func positionOf(w *ecs.World, e ecs.Entity) [3]float64 {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return [3]float64(t.Position)
	}
	return [3]float64{}
}
