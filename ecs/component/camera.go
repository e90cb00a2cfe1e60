package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera turns cursor positions into world-space rays. The camera looks
// from its transform position toward LookAt.
type Camera struct {
	Projection Projection
	FovY       float64
	Near       float64
	Far        float64
	LookAt     mgl64.Vec3
	Up         mgl64.Vec3
	// OrthoScale is the half height of the orthographic view volume.
	OrthoScale float64
}

func NewPerspectiveCamera(lookAt mgl64.Vec3) Camera {
	return Camera{
		Projection: Perspective,
		FovY:       math.Pi / 4,
		Near:       0.1,
		Far:        1000,
		LookAt:     lookAt,
		Up:         mgl64.Vec3{0, 1, 0},
	}
}

func NewOrthographicCamera(lookAt mgl64.Vec3, scale float64) Camera {
	return Camera{
		Projection: Orthographic,
		Near:       0.1,
		Far:        1000,
		LookAt:     lookAt,
		Up:         mgl64.Vec3{0, 1, 0},
		OrthoScale: scale,
	}
}

// View returns the view matrix for a camera placed at eye.
func (c Camera) View(eye mgl64.Vec3) mgl64.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(eye, c.LookAt, up)
}

// Proj returns the projection matrix for a viewport of the given size.
func (c Camera) Proj(width, height float64) mgl64.Mat4 {
	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	if c.Projection == Orthographic {
		h := c.OrthoScale
		if h <= 0 {
			h = 1
		}
		return mgl64.Ortho(-h*aspect, h*aspect, -h, h, c.Near, c.Far)
	}
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

var CameraComponent = NewComponent[Camera]()
