package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Epsilon is the length below which a vector carries no direction.
const Epsilon = 1e-9

// MoveTowards moves current toward target by at most maxDelta and never
// past target. A non-positive maxDelta leaves current unchanged.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	if maxDelta <= 0 {
		return current
	}
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist < Epsilon {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// AngleBetween returns the unsigned angle between a and b in radians, or 0
// when either vector has no direction.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	c := mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(c)
}

// Direction returns the unit vector of v and false when v is degenerate.
func Direction(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// FlattenXY drops the Z component.
func FlattenXY(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), v.Y(), 0}
}
