package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// RigidBody is integrated by the physics solver. Velocity is owned by the
// solver; other systems request changes through SetVelocity and Teleport.
type RigidBody struct {
	Velocity     mgl64.Vec3
	Static       bool
	Friction     float64
	Elasticity   float64
	GravityScale float64

	// Runtime data owned by the solver.
	Body  *cp.Body
	Shape *cp.Shape

	pendingVelocity *mgl64.Vec3
	teleport        bool
}

func NewRigidBody() RigidBody {
	return RigidBody{GravityScale: 1}
}

// SetVelocity overrides the solver velocity before its next step.
func (rb *RigidBody) SetVelocity(v mgl64.Vec3) {
	rb.Velocity = v
	rb.pendingVelocity = &v
}

// Teleport asks the solver to move the body to the transform position.
func (rb *RigidBody) Teleport() {
	rb.teleport = true
}

// TakePending returns and clears the requested velocity and teleport flag.
func (rb *RigidBody) TakePending() (velocity *mgl64.Vec3, teleport bool) {
	velocity, teleport = rb.pendingVelocity, rb.teleport
	rb.pendingVelocity = nil
	rb.teleport = false
	return velocity, teleport
}

var RigidBodyComponent = NewComponent[RigidBody]()

// ExternalForce is a persistent force applied by the solver every step
// until cleared.
type ExternalForce struct {
	Force  mgl64.Vec3
	Active bool
}

func (f *ExternalForce) Set(force mgl64.Vec3) {
	f.Force = force
	f.Active = true
}

func (f *ExternalForce) Clear() {
	f.Force = mgl64.Vec3{}
	f.Active = false
}

var ExternalForceComponent = NewComponent[ExternalForce]()
