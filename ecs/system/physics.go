package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

const solverIterations = 20

// PhysicsSystem is the rigid-body solver. Chipmunk integrates the XY plane;
// the Z axis is integrated here from the Z part of gravity and the external
// force.
type PhysicsSystem struct {
	opts    options
	space   *cp.Space
	gravity mgl64.Vec3

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	mass   float64
	scale  float64
	vz     float64
}

func NewPhysicsSystem(gravity mgl64.Vec3, opts ...Option) *PhysicsSystem {
	ps := &PhysicsSystem{
		opts:     buildOptions("physics", opts),
		gravity:  gravity,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
	ps.space = newSpace(gravity)
	return ps
}

func newSpace(gravity mgl64.Vec3) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{X: gravity.X(), Y: gravity.Y()})
	return space
}

// SolvesRigidBodies marks the system as the rigid-body solver.
func (ps *PhysicsSystem) SolvesRigidBodies() {}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace(ps.gravity)
	}

	ps.syncEntities(w)
	ps.pushState(w)

	dt := w.DeltaSeconds()
	if dt <= 0 {
		return
	}
	ps.space.Step(dt)
	ps.pullState(w, dt)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.RigidBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		collider, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(*transform, rb, *collider, EntityMass(w, e, ps.opts.mode))
		if info == nil {
			continue
		}
		ps.entities[e] = info
		rb.Body = info.body
		rb.Shape = info.shape
		ps.opts.logger.Debug("body added", "entity", e, "shape", collider.Shape, "static", info.static, "mass", info.mass)
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, rb *component.RigidBody, collider component.Collider, mass float64) *bodyInfo {
	pos := cp.Vector{X: transform.Position.X(), Y: transform.Position.Y()}
	info := &bodyInfo{static: rb.Static, mass: mass, scale: rb.GravityScale}

	if rb.Static {
		// static shapes hang off the space's static body at their world offset
		info.body = ps.space.StaticBody
		info.shape = newShape(ps.space.StaticBody, collider, pos)
	} else {
		body := cp.NewBody(mass, math.Inf(1))
		body.SetPosition(pos)
		body.SetVelocity(rb.Velocity.X(), rb.Velocity.Y())
		scale := rb.GravityScale
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
		})
		ps.space.AddBody(body)
		info.body = body
		info.shape = newShape(body, collider, cp.Vector{})
		info.vz = rb.Velocity.Z()
	}
	if info.shape == nil {
		return nil
	}
	info.shape.SetFriction(rb.Friction)
	info.shape.SetElasticity(rb.Elasticity)
	ps.space.AddShape(info.shape)
	return info
}

func newShape(body *cp.Body, c component.Collider, offset cp.Vector) *cp.Shape {
	switch c.Shape {
	case component.ShapeSphere:
		if c.Radius <= 0 {
			return nil
		}
		return cp.NewCircle(body, c.Radius, offset)
	case component.ShapeCuboid:
		hx, hy := c.HalfExtents.X(), c.HalfExtents.Y()
		if hx <= 0 || hy <= 0 {
			return nil
		}
		if offset == (cp.Vector{}) {
			return cp.NewBox(body, 2*hx, 2*hy, 0)
		}
		bb := cp.BB{L: offset.X - hx, B: offset.Y - hy, R: offset.X + hx, T: offset.Y + hy}
		return cp.NewBox2(body, bb, 0)
	case component.ShapeCapsule:
		a := offset.Add(cp.Vector{Y: -c.HalfHeight})
		b := offset.Add(cp.Vector{Y: c.HalfHeight})
		return cp.NewSegment(body, a, b, c.Radius)
	}
	return nil
}

// pushState hands pending velocity writes, teleports and external forces to
// chipmunk. Forces are cleared by every step so they are applied each tick.
func (ps *PhysicsSystem) pushState(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		if !ok {
			continue
		}
		if v, teleport := rb.TakePending(); v != nil || teleport {
			if v != nil {
				info.body.SetVelocity(v.X(), v.Y())
				info.vz = v.Z()
			}
			if teleport {
				if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
					info.body.SetPosition(cp.Vector{X: t.Position.X(), Y: t.Position.Y()})
				}
			}
			info.body.Activate()
		}

		if f, ok := ecs.Get(w, e, component.ExternalForceComponent.Kind()); ok && f.Active {
			info.body.SetForce(cp.Vector{X: f.Force.X(), Y: f.Force.Y()})
			info.body.Activate()
		} else {
			info.body.SetForce(cp.Vector{})
		}
	}
}

func (ps *PhysicsSystem) pullState(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		z := t.Position.Z()
		if ps.opts.mode == Spatial3D {
			az := ps.gravity.Z() * info.scale
			if f, ok := ecs.Get(w, e, component.ExternalForceComponent.Kind()); ok && f.Active && info.mass > 0 {
				az += f.Force.Z() / info.mass
			}
			// same order as chipmunk: position from the previous velocity
			z += info.vz * dt
			info.vz += az * dt
		} else {
			info.vz = 0
		}

		pos := info.body.Position()
		vel := info.body.Velocity()
		t.Position = mgl64.Vec3{pos.X, pos.Y, z}
		rb.Velocity = mgl64.Vec3{vel.X, vel.Y, info.vz}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.RigidBodyComponent.Kind()) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		ps.opts.logger.Debug("body removed", "entity", e)
	}
}
