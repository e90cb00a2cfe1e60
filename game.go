package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"github.com/milk9111/travel/ecs/entity"
	"github.com/milk9111/travel/ecs/render"
	"github.com/milk9111/travel/ecs/system"
	"github.com/milk9111/travel/movement"
	"github.com/milk9111/travel/prefabs"
	"golang.org/x/image/colornames"
)

const stagePoll = "poll"

type Game struct {
	sceneName string
	base      movement.Config
	overrides prefabs.SettingsSpec
	logger    *log.Logger

	cfg       movement.Config
	world     *ecs.World
	scheduler *ecs.Scheduler
	systems   *movement.Systems
	solver    *system.PhysicsSystem

	debug   render.Debug
	chime   *Chime
	paused  bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(sceneName string, base movement.Config, overrides prefabs.SettingsSpec, debug bool, chime *Chime, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		sceneName: sceneName,
		base:      base,
		overrides: overrides,
		logger:    logger,
		debug:     render.Debug{Physics: debug, HUD: debug},
		chime:     chime,
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// load rebuilds the world and scheduler from the scene. The running world is
// only replaced once everything succeeded.
func (g *Game) load() error {
	w := ecs.NewWorld()
	scene, _, err := entity.LoadScene(w, g.sceneName)
	if err != nil {
		return err
	}

	cfg := g.base.Apply(scene.Settings).Apply(g.overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := entity.EnsureCamera(w); err != nil {
		return err
	}
	if len(w.Query(component.PointerComponent.Kind())) == 0 {
		if err := ecs.Add(w, ecs.CreateEntity(w), component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
			return fmt.Errorf("game: add pointer: %w", err)
		}
	}

	s := &ecs.Scheduler{}
	s.AddStage(stagePoll, false, render.NewInputSystem(func() (int, int) {
		return common.BaseWidth, common.BaseHeight
	}))

	var solver *system.PhysicsSystem
	if cfg.PhysicsEnabled {
		solver = movement.NewSolver(cfg, g.logger)
		s.AddStage(movement.StagePhysics, false, solver)
	}

	systems, err := movement.Install(w, s, cfg,
		movement.WithLogger(g.logger),
		movement.WithSeed(time.Now().UnixNano()),
	)
	if err != nil {
		return err
	}

	if g.chime != nil {
		w.Events().Subscribe(ecs.EventArrived, g.chime.OnArrived)
	}

	g.logger.SetLevel(cfg.Level())
	ebiten.SetTPS(cfg.TickRate)

	g.cfg = cfg
	g.world = w
	g.scheduler = s
	g.systems = systems
	g.solver = solver
	g.logger.Info("scene loaded", "scene", scene.Name, "entities", len(ecs.Entities(w)), "mode", cfg.Mode(), "physics", cfg.PhysicsEnabled)
	return nil
}

// Watch starts reloading the scene and scripts when prefabs change on disk.
func (g *Game) Watch() error {
	watcher, err := prefabs.NewWatcher()
	if err != nil {
		return err
	}
	g.watcher = watcher
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.Reload()
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.world.Advance(g.cfg.TickDelta())
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	var space *cp.Space
	if g.solver != nil {
		space = g.solver.Space()
	}
	g.debug.Draw(g.world, screen, space)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Reload rebuilds the scene, keeping the current one when the new one fails.
func (g *Game) Reload() {
	if err := g.load(); err != nil {
		g.logger.Error("reload failed", "scene", g.sceneName, "err", err)
	}
}

// SetFrozen freezes or resumes every kinematic and circular mover.
func (g *Game) SetFrozen(frozen bool) {
	for _, e := range ecs.Entities(g.world) {
		system.SetFrozen(g.world, e, frozen)
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	name := change.Name()
	if change.Script {
		g.systems.Scripts.Invalidate(name)
		g.systems.Scripts.Invalidate(strings.TrimPrefix(name, "scripts/"))
		g.logger.Info("script reloaded", "path", name)
		return
	}
	g.logger.Info("prefab changed", "path", name)
	g.Reload()
}
