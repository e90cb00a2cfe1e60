package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// CircularMovementSystem orbits transforms around their anchor.
type CircularMovementSystem struct {
	opts options
}

func NewCircularMovementSystem(opts ...Option) *CircularMovementSystem {
	return &CircularMovementSystem{opts: buildOptions("circular", opts)}
}

func (s *CircularMovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach2(w, component.CircularMovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.CircularMovement, t *component.Transform) {
		if m.Frozen {
			return
		}
		axis := m.Axis
		// 2-D orbits stay in the XY plane whatever axis was configured
		if s.opts.mode == Spatial2D {
			axis = mgl64.Vec3{0, 0, 1}
		}
		t.Position = Orbit(t.Position, m.Anchor, axis, m.AngularSpeed*dt)
	})
}

// Orbit rotates position around anchor about axis by angle radians. A zero
// axis or a position sitting on the anchor is returned unchanged.
func Orbit(position, anchor, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	unit, ok := common.Direction(axis)
	if !ok {
		return position
	}
	offset := position.Sub(anchor)
	return anchor.Add(mgl64.QuatRotate(angle, unit).Rotate(offset))
}
