package movement

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"github.com/milk9111/travel/ecs/entity"
	"github.com/milk9111/travel/ecs/system"
)

func quietLogger() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func stageNames(t *testing.T, s *ecs.Scheduler, names ...string) []bool {
	t.Helper()
	out := make([]bool, len(names))
	for i, name := range names {
		_, out[i] = s.Stage(name)
	}
	return out
}

func TestInstallRequiresSolverWhenPhysicsEnabled(t *testing.T) {
	w := ecs.NewWorld()
	s := &ecs.Scheduler{}
	cfg := DefaultConfig()
	cfg.PhysicsEnabled = true

	installed, err := Install(w, s, cfg, WithLogger(quietLogger()))
	if !errors.Is(err, ErrSolverMissing) {
		t.Fatalf("expected ErrSolverMissing, got %v", err)
	}
	if installed != nil {
		t.Fatalf("expected no systems on error")
	}
	if len(s.Systems()) != 0 {
		t.Fatalf("failed install should not schedule anything, got %d systems", len(s.Systems()))
	}
}

func TestInstallStages(t *testing.T) {
	cases := []struct {
		name    string
		physics bool
	}{
		{"kinematic_only", false},
		{"with_physics", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			s := &ecs.Scheduler{}
			cfg := DefaultConfig()
			cfg.PhysicsEnabled = c.physics
			if c.physics {
				s.AddStage(StagePhysics, false, NewSolver(cfg, quietLogger()))
			}

			installed, err := Install(w, s, cfg, WithLogger(quietLogger()))
			if err != nil {
				t.Fatalf("Install: %v", err)
			}
			if (installed.Physics != nil) != c.physics {
				t.Fatalf("physics movement scheduled=%v, want %v", installed.Physics != nil, c.physics)
			}
			for i, ok := range stageNames(t, s, StageInput, StageMovement) {
				if !ok {
					t.Fatalf("stage %d missing", i)
				}
			}
			movement, _ := s.Stage(StageMovement)
			if !movement.Parallel() {
				t.Fatalf("movement stage should run in parallel")
			}

			systems := s.Systems()
			if _, ok := systems[0].(*system.PointerTargetSystem); !ok {
				t.Fatalf("pointer targeting should run first, got %T", systems[0])
			}
			if c.physics {
				if _, ok := systems[len(systems)-1].(*system.PhysicsSystem); !ok {
					t.Fatalf("solver should run last, got %T", systems[len(systems)-1])
				}
			}
		})
	}
}

func TestInstallRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpatialMode = "flat"
	if _, err := Install(ecs.NewWorld(), &ecs.Scheduler{}, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func countArrivals(w *ecs.World) *int {
	n := 0
	w.Events().Subscribe(ecs.EventArrived, func(*ecs.World, ecs.Event) { n++ })
	return &n
}

func TestLinearSceneWandersAfterArrival(t *testing.T) {
	w := ecs.NewWorld()
	s := &ecs.Scheduler{}
	cfg := DefaultConfig()

	if _, _, err := entity.LoadScene(w, "linear"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if _, err := Install(w, s, cfg, WithLogger(quietLogger()), WithSeed(7)); err != nil {
		t.Fatalf("Install: %v", err)
	}
	arrivals := countArrivals(w)

	cube := w.Query(component.KinematicMovementComponent.Kind())[0]
	for i := 0; i < 60; i++ {
		w.Advance(cfg.TickDelta())
		s.Update(w)
	}

	if *arrivals == 0 {
		t.Fatalf("expected an arrival at (4,4,4)")
	}
	m, _ := ecs.Get(w, cube, component.KinematicMovementComponent.Kind())
	next, ok := m.Queue.Front()
	if !ok {
		t.Fatalf("arrival script should have queued a new destination")
	}
	if next.Position == (mgl64.Vec3{4, 4, 4}) {
		t.Fatalf("expected a fresh random destination")
	}
	for i := 0; i < 3; i++ {
		if next.Position[i] < -5 || next.Position[i] > 5 {
			t.Fatalf("random destination %v outside [-5, 5]", next.Position)
		}
	}
}

func TestPhysicSceneLoopsThroughWaypoints(t *testing.T) {
	w := ecs.NewWorld()
	s := &ecs.Scheduler{}
	cfg := DefaultConfig()

	scene, _, err := entity.LoadScene(w, "physic")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	cfg = cfg.Apply(scene.Settings)
	if !cfg.PhysicsEnabled {
		t.Fatalf("physic scene should enable physics")
	}
	s.AddStage(StagePhysics, false, NewSolver(cfg, quietLogger()))
	if _, err := Install(w, s, cfg, WithLogger(quietLogger())); err != nil {
		t.Fatalf("Install: %v", err)
	}
	arrivals := countArrivals(w)

	cube := w.Query(component.PhysicsMovementComponent.Kind())[0]
	for i := 0; i < 10*cfg.TickRate && *arrivals == 0; i++ {
		w.Advance(cfg.TickDelta())
		s.Update(w)
	}

	if *arrivals == 0 {
		t.Fatalf("expected the cube to reach its first waypoint")
	}
	tr, _ := ecs.Get(w, cube, component.TransformComponent.Kind())
	if tr.Position.Sub(mgl64.Vec3{4, 4, 4}).Len() > 0.5 {
		t.Fatalf("arrival far from (4,4,4): %v", tr.Position)
	}
	m, _ := ecs.Get(w, cube, component.PhysicsMovementComponent.Kind())
	if m.Queue.Len() != 4 {
		t.Fatalf("looping queue should keep four waypoints, got %d", m.Queue.Len())
	}
	if front, _ := m.Queue.Front(); front.Position != (mgl64.Vec3{1, 1, 1}) {
		t.Fatalf("expected (1,1,1) next, got %v", front.Position)
	}
	if f, ok := ecs.Get(w, cube, component.ExternalForceComponent.Kind()); ok && f.Active {
		t.Fatalf("arrival should clear the steering force")
	}
}
