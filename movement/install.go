package movement

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/system"
)

// ErrSolverMissing is returned by Install when physics is enabled but no
// scheduled system integrates rigid bodies.
var ErrSolverMissing = errors.New("movement: physics enabled without a rigid-body solver")

const (
	StageInput    = "input"
	StageMovement = "movement"
	StagePhysics  = "physics"
)

type installOptions struct {
	logger *log.Logger
	load   system.ScriptLoader
	seed   int64
}

type Option func(*installOptions)

func WithLogger(logger *log.Logger) Option {
	return func(o *installOptions) { o.logger = logger }
}

// WithScriptLoader replaces the prefabs loader used for arrival scripts.
func WithScriptLoader(load system.ScriptLoader) Option {
	return func(o *installOptions) { o.load = load }
}

// WithSeed seeds the rand() function exposed to arrival scripts.
func WithSeed(seed int64) Option {
	return func(o *installOptions) { o.seed = seed }
}

// Systems are the systems Install scheduled. Physics is nil when physics is
// disabled.
type Systems struct {
	Pointer   *system.PointerTargetSystem
	Kinematic *system.KinematicMovementSystem
	Circular  *system.CircularMovementSystem
	Physics   *system.PhysicsMovementSystem
	Scripts   *system.ArrivalScriptSystem
}

// NewSolver builds the rigid-body solver matching cfg. Schedule it in
// StagePhysics before calling Install.
func NewSolver(cfg Config, logger *log.Logger) *system.PhysicsSystem {
	return system.NewPhysicsSystem(cfg.Gravity, system.WithSpatialMode(cfg.Mode()), system.WithLogger(logger))
}

// Install schedules the movement strategies on s and subscribes arrival
// scripts on w. Nothing is scheduled when it returns an error.
func Install(w *ecs.World, s *ecs.Scheduler, cfg Config, opts ...Option) (*Systems, error) {
	if w == nil || s == nil {
		return nil, fmt.Errorf("movement: install: world and scheduler are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.PhysicsEnabled && !s.Find(isSolver) {
		return nil, ErrSolverMissing
	}

	o := installOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	common := []system.Option{system.WithSpatialMode(cfg.Mode()), system.WithLogger(o.logger)}
	kinematicOpts := append(append([]system.Option{}, common...), system.WithRigidBodies(cfg.PhysicsEnabled))

	installed := &Systems{
		Pointer:   system.NewPointerTargetSystem(common...),
		Kinematic: system.NewKinematicMovementSystem(kinematicOpts...),
		Circular:  system.NewCircularMovementSystem(common...),
		Scripts:   system.NewArrivalScriptSystem(o.load, o.seed, common...),
	}
	movers := []ecs.System{installed.Kinematic, installed.Circular}
	if cfg.PhysicsEnabled {
		installed.Physics = system.NewPhysicsMovementSystem(common...)
		movers = append(movers, installed.Physics)
	}

	s.AddStageBefore(StagePhysics, StageMovement, true, movers...)
	s.AddStageBefore(StageMovement, StageInput, false, installed.Pointer, installed.Scripts)
	installed.Scripts.Subscribe(w)

	o.logger.Info("movement installed", "mode", cfg.Mode(), "physics", cfg.PhysicsEnabled)
	return installed, nil
}

func isSolver(s ecs.System) bool {
	_, ok := s.(ecs.RigidBodySolver)
	return ok
}
