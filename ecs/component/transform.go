package component

import "github.com/go-gl/mathgl/mgl64"

type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform places an unrotated, unit-scale transform at p.
func NewTransform(p mgl64.Vec3) Transform {
	return Transform{Position: p, Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}}
}

// Up returns the transform's local +Y axis in world space.
func (t Transform) Up() mgl64.Vec3 {
	r := t.Rotation
	if r.Len() == 0 {
		r = mgl64.QuatIdent()
	}
	return r.Normalize().Rotate(mgl64.Vec3{0, 1, 0})
}

var TransformComponent = NewComponent[Transform]()
