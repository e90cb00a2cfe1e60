package component

import "github.com/go-gl/mathgl/mgl64"

type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeCuboid
	ShapeCapsule
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeCuboid:
		return "cuboid"
	case ShapeCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// Collider describes the body shape. Cuboids use HalfExtents; spheres use
// Radius; capsules use Radius and HalfHeight along local Y.
type Collider struct {
	Shape       ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
	HalfHeight  float64
}

func Sphere(radius float64) Collider {
	return Collider{Shape: ShapeSphere, Radius: radius}
}

func Cuboid(hx, hy, hz float64) Collider {
	return Collider{Shape: ShapeCuboid, HalfExtents: mgl64.Vec3{hx, hy, hz}}
}

func Capsule(halfHeight, radius float64) Collider {
	return Collider{Shape: ShapeCapsule, HalfHeight: halfHeight, Radius: radius}
}

var ColliderComponent = NewComponent[Collider]()

type MassMode int

const (
	MassFromDensity MassMode = iota
	MassExplicit
	MassFromProperties
)

// MassProperties is an explicit mass description; only Mass participates in
// linear force computation.
type MassProperties struct {
	Mass             float64
	CenterOfMass     mgl64.Vec3
	PrincipalInertia mgl64.Vec3
}

// ColliderMassProperties overrides how the collider contributes mass. When
// absent the collider uses density 1.
type ColliderMassProperties struct {
	Mode       MassMode
	Density    float64
	Mass       float64
	Properties MassProperties
}

var ColliderMassPropertiesComponent = NewComponent[ColliderMassProperties]()

// AdditionalMassProperties adds mass on top of the collider's.
type AdditionalMassProperties struct {
	Mode       MassMode
	Mass       float64
	Properties MassProperties
}

var AdditionalMassPropertiesComponent = NewComponent[AdditionalMassProperties]()
