package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// DefaultMass is used when nothing on the entity contributes mass.
const DefaultMass = 1.0

// Measure returns the collider's volume in 3D or its XY cross-section area
// in 2D.
func Measure(c component.Collider, mode SpatialMode) float64 {
	if mode == Spatial2D {
		switch c.Shape {
		case component.ShapeSphere:
			return cp.AreaForCircle(0, c.Radius)
		case component.ShapeCuboid:
			hx, hy := c.HalfExtents.X(), c.HalfExtents.Y()
			verts := []cp.Vector{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}}
			return cp.AreaForPoly(len(verts), verts, 0)
		case component.ShapeCapsule:
			return cp.AreaForSegment(cp.Vector{Y: -c.HalfHeight}, cp.Vector{Y: c.HalfHeight}, c.Radius)
		}
		return 0
	}

	switch c.Shape {
	case component.ShapeSphere:
		return sphereVolume(c.Radius)
	case component.ShapeCuboid:
		return 8 * c.HalfExtents.X() * c.HalfExtents.Y() * c.HalfExtents.Z()
	case component.ShapeCapsule:
		return math.Pi*c.Radius*c.Radius*2*c.HalfHeight + sphereVolume(c.Radius)
	}
	return 0
}

func sphereVolume(r float64) float64 {
	return 4.0 / 3.0 * math.Pi * r * r * r
}

// ResolveMass sums the collider's mass and any additional mass. The
// collider contributes density times its measure unless colliderMass names
// an explicit mass. A nil colliderMass means density 1. A non-positive total
// falls back to DefaultMass.
func ResolveMass(collider *component.Collider, colliderMass *component.ColliderMassProperties, additional *component.AdditionalMassProperties, mode SpatialMode) float64 {
	total := 0.0
	if collider != nil {
		total += colliderTerm(*collider, colliderMass, mode)
	}
	if additional != nil {
		switch additional.Mode {
		case component.MassFromProperties:
			total += additional.Properties.Mass
		default:
			total += additional.Mass
		}
	}
	if total <= 0 || math.IsNaN(total) {
		return DefaultMass
	}
	return total
}

func colliderTerm(c component.Collider, props *component.ColliderMassProperties, mode SpatialMode) float64 {
	if props == nil {
		return Measure(c, mode)
	}
	switch props.Mode {
	case component.MassExplicit:
		return props.Mass
	case component.MassFromProperties:
		return props.Properties.Mass
	default:
		density := props.Density
		if density <= 0 {
			density = 1
		}
		return density * Measure(c, mode)
	}
}

// EntityMass resolves the mass of e from its collider and mass overrides.
func EntityMass(w *ecs.World, e ecs.Entity, mode SpatialMode) float64 {
	collider, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	colliderMass, _ := ecs.Get(w, e, component.ColliderMassPropertiesComponent.Kind())
	additional, _ := ecs.Get(w, e, component.AdditionalMassPropertiesComponent.Kind())
	return ResolveMass(collider, colliderMass, additional, mode)
}
