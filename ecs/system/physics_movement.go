package system

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

type ForceAction int

const (
	// ForceKeep leaves the applied force as it is.
	ForceKeep ForceAction = iota
	ForceSet
	ForceClear
)

func (a ForceAction) String() string {
	switch a {
	case ForceSet:
		return "set"
	case ForceClear:
		return "clear"
	default:
		return "keep"
	}
}

// ForceCommand is the steering decision for one tick.
type ForceCommand struct {
	Action ForceAction
	Force  mgl64.Vec3
}

// ClosingSpeed projects velocity onto goal. It returns the projection and
// the angle between the two, both zero when velocity has no direction.
func ClosingSpeed(goal, velocity mgl64.Vec3) (closing, angle float64) {
	angle = common.AngleBetween(goal, velocity)
	return velocity.Len() * math.Cos(angle), angle
}

// Steer decides the force for a body travelling along goal, the vector from
// its position to the target. At or below MinSpeed it thrusts toward
// maxSpeed while cancelling lateral drift. At or above maxSpeed it coasts.
// In between the previous force stays.
func Steer(m *component.PhysicsMovement, goal, velocity mgl64.Vec3, maxSpeed, mass float64) ForceCommand {
	closing, _ := ClosingSpeed(goal, velocity)
	switch {
	case closing <= m.MinSpeed:
		dir, ok := common.Direction(goal)
		if !ok {
			return ForceCommand{Action: ForceClear}
		}
		force := mgl64.Vec3{}
		if m.AccelTime > 0 {
			force = force.Add(dir.Mul((maxSpeed - closing) / m.AccelTime * mass))
		}
		if m.BrakeTime > 0 {
			lateral := velocity.Sub(dir.Mul(velocity.Dot(dir)))
			force = force.Sub(lateral.Mul(mass / m.BrakeTime))
		}
		return ForceCommand{Action: ForceSet, Force: force}
	case closing >= maxSpeed:
		return ForceCommand{Action: ForceClear}
	default:
		return ForceCommand{Action: ForceKeep}
	}
}

// PhysicsMovementSystem steers rigid bodies toward their queue head by
// setting an ExternalForce. The solver owns position and velocity.
type PhysicsMovementSystem struct {
	opts     options
	detector ArrivalDetector

	mu     sync.Mutex
	world  *ecs.World
	warned map[ecs.Entity]bool
}

func NewPhysicsMovementSystem(opts ...Option) *PhysicsMovementSystem {
	o := buildOptions("physics_movement", opts)
	return &PhysicsMovementSystem{
		opts:     o,
		detector: ArrivalDetector{Mode: o.mode},
		warned:   map[ecs.Entity]bool{},
	}
}

func (s *PhysicsMovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.pruneWarned(w)
	dt := w.DeltaSeconds()
	ecs.ForEach3(w, component.PhysicsMovementComponent.Kind(), component.TransformComponent.Kind(), component.RigidBodyComponent.Kind(), func(e ecs.Entity, m *component.PhysicsMovement, t *component.Transform, rb *component.RigidBody) {
		wp, ok := m.Queue.Front()
		if !ok {
			return
		}
		s.checkConfig(e, m)

		goal := s.detector.Project(wp.Position.Sub(t.Position))
		velocity := s.detector.Project(rb.Velocity)
		closing, _ := ClosingSpeed(goal, velocity)

		if ReachedPredictive(goal.Len(), m.Epsilon, closing, dt) {
			s.apply(w, e, ForceCommand{Action: ForceClear})
			if s.detector.Advance(w, e, &m.Queue, m.Loop) {
				s.opts.logger.Debug("arrived", "entity", e, "queue", m.Queue.Len())
			}
			return
		}

		mass := EntityMass(w, e, s.opts.mode)
		s.apply(w, e, Steer(m, goal, velocity, wp.SpeedOr(m.MaxSpeed), mass))
	})
}

func (s *PhysicsMovementSystem) apply(w *ecs.World, e ecs.Entity, cmd ForceCommand) {
	if cmd.Action == ForceKeep {
		return
	}
	if f, ok := ecs.Get(w, e, component.ExternalForceComponent.Kind()); ok {
		if cmd.Action == ForceSet {
			f.Set(cmd.Force)
		} else {
			f.Clear()
		}
		return
	}
	if cmd.Action != ForceSet {
		return
	}
	force := cmd.Force
	w.Defer(func(w *ecs.World) {
		_ = ecs.Add(w, e, component.ExternalForceComponent.Kind(), &component.ExternalForce{Force: force, Active: true})
	})
}

// pruneWarned forgets destroyed entities, and every entity when the system
// is run against a different world.
func (s *PhysicsMovementSystem) pruneWarned(w *ecs.World) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world != w {
		s.world = w
		clear(s.warned)
		return
	}
	for e := range s.warned {
		if !w.IsAlive(e) {
			delete(s.warned, e)
		}
	}
}

// checkConfig warns once per entity about settings that stall or disable
// part of the controller.
func (s *PhysicsMovementSystem) checkConfig(e ecs.Entity, m *component.PhysicsMovement) {
	if m.MinSpeed <= m.MaxSpeed && m.AccelTime > 0 && m.BrakeTime > 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned[e] {
		return
	}
	s.warned[e] = true
	s.opts.logger.Warn("suspicious physics movement settings",
		"entity", e,
		"min_speed", m.MinSpeed,
		"max_speed", m.MaxSpeed,
		"accel_time", m.AccelTime,
		"brake_time", m.BrakeTime,
	)
}
