package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// KinematicMovementSystem moves transforms straight at their queue head.
// Speed is applied per millisecond of tick time.
type KinematicMovementSystem struct {
	opts     options
	detector ArrivalDetector
}

func NewKinematicMovementSystem(opts ...Option) *KinematicMovementSystem {
	o := buildOptions("kinematic", opts)
	return &KinematicMovementSystem{opts: o, detector: ArrivalDetector{Mode: o.mode}}
}

func (s *KinematicMovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dtMillis := w.DeltaMillis()
	dtSeconds := w.DeltaSeconds()
	ecs.ForEach2(w, component.KinematicMovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.KinematicMovement, t *component.Transform) {
		if s.opts.rigidBodies {
			if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok && !rb.Static {
				s.updateBody(w, e, m, t, rb, dtSeconds)
				return
			}
		}

		if m.Frozen {
			return
		}
		wp, ok := m.Queue.Front()
		if !ok {
			return
		}
		target := s.target(t.Position, wp.Position.Add(m.Offset))
		t.Position = StepKinematic(t.Position, target, wp.SpeedOr(m.Speed), dtMillis)
		s.arrive(w, e, m, t)
	})
}

// updateBody steers through the solver. A frozen mover or one whose queue
// ran out stops the body it was driving.
func (s *KinematicMovementSystem) updateBody(w *ecs.World, e ecs.Entity, m *component.KinematicMovement, t *component.Transform, rb *component.RigidBody, dtSeconds float64) {
	wp, ok := m.Queue.Front()
	if m.Frozen || !ok {
		haltBody(m, rb)
		return
	}

	target := s.target(t.Position, wp.Position.Add(m.Offset))
	s.driveBody(t, rb, target, wp.SpeedOr(m.Speed), dtSeconds)
	m.Driving = true
	s.arrive(w, e, m, t)
	if m.Queue.Empty() {
		haltBody(m, rb)
	}
}

// haltBody zeroes the velocity of a body the mover was driving. Bodies it
// never drove keep whatever velocity the solver gave them.
func haltBody(m *component.KinematicMovement, rb *component.RigidBody) {
	if !m.Driving {
		return
	}
	rb.SetVelocity(mgl64.Vec3{})
	m.Driving = false
}

// StepKinematic returns position moved toward target by at most
// speed*dtMillis.
func StepKinematic(position, target mgl64.Vec3, speed, dtMillis float64) mgl64.Vec3 {
	return common.MoveTowards(position, target, speed*dtMillis)
}

func (s *KinematicMovementSystem) target(position, target mgl64.Vec3) mgl64.Vec3 {
	if s.opts.mode == Spatial2D {
		return mgl64.Vec3{target.X(), target.Y(), position.Z()}
	}
	return target
}

// driveBody hands the step to the solver as a velocity. Within one step of
// the target the body is stopped and placed on it.
func (s *KinematicMovementSystem) driveBody(t *component.Transform, rb *component.RigidBody, target mgl64.Vec3, speed, dtSeconds float64) {
	delta := target.Sub(t.Position)
	if delta.Len() <= speed*dtSeconds {
		rb.SetVelocity(mgl64.Vec3{})
		t.Position = target
		rb.Teleport()
		return
	}
	dir, ok := common.Direction(delta)
	if !ok {
		return
	}
	rb.SetVelocity(dir.Mul(speed))
}

func (s *KinematicMovementSystem) arrive(w *ecs.World, e ecs.Entity, m *component.KinematicMovement, t *component.Transform) {
	if s.detector.AdvanceIfArrived(w, e, &m.Queue, t.Position, m.Offset, m.Epsilon, m.Repeat) {
		s.opts.logger.Debug("arrived", "entity", e, "queue", m.Queue.Len())
	}
}
