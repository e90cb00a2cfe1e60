package component

import "github.com/go-gl/mathgl/mgl64"

// CircularMovement orbits an entity around Anchor about Axis at
// AngularSpeed radians per second. It ignores destination queues.
type CircularMovement struct {
	AngularSpeed float64
	Anchor       mgl64.Vec3
	Axis         mgl64.Vec3
	Frozen       bool
}

func NewCircularMovement(angularSpeed float64, anchor mgl64.Vec3) CircularMovement {
	return CircularMovement{
		AngularSpeed: angularSpeed,
		Anchor:       anchor,
		Axis:         mgl64.Vec3{0, 0, 1},
	}
}

func (m *CircularMovement) Freeze() {
	m.Frozen = true
}

func (m *CircularMovement) Go() {
	m.Frozen = false
}

var CircularMovementComponent = NewComponent[CircularMovement]()
