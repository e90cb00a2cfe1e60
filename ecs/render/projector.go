package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// Projector maps world points to screen pixels through a camera.
type Projector struct {
	Eye    mgl64.Vec3
	Up     mgl64.Vec3
	view   mgl64.Mat4
	proj   mgl64.Mat4
	width  int
	height int
}

func NewProjector(cam component.Camera, eye mgl64.Vec3, width, height int) Projector {
	up := cam.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	return Projector{
		Eye:    eye,
		Up:     up.Normalize(),
		view:   cam.View(eye),
		proj:   cam.Proj(float64(width), float64(height)),
		width:  width,
		height: height,
	}
}

// CameraProjector builds a projector from the first camera in w.
func CameraProjector(w *ecs.World, width, height int) (Projector, bool) {
	if w == nil || width <= 0 || height <= 0 {
		return Projector{}, false
	}
	for _, e := range w.Query(component.CameraComponent.Kind(), component.TransformComponent.Kind()) {
		cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if cam == nil || t == nil {
			continue
		}
		return NewProjector(*cam, t.Position, width, height), true
	}
	return Projector{}, false
}

// ToScreen returns the pixel position of v with y growing downward. ok is
// false for points behind the camera.
func (p Projector) ToScreen(v mgl64.Vec3) (x, y float64, ok bool) {
	clip := p.proj.Mul4(p.view).Mul4x1(v.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	win := mgl64.Project(v, p.view, p.proj, 0, 0, p.width, p.height)
	return win.X(), float64(p.height) - win.Y(), true
}

// ScreenRadius is the on-screen size of a sphere of radius r at center.
func (p Projector) ScreenRadius(center mgl64.Vec3, r float64) (float64, bool) {
	cx, cy, ok := p.ToScreen(center)
	if !ok {
		return 0, false
	}
	ex, ey, ok := p.ToScreen(center.Add(p.Up.Mul(r)))
	if !ok {
		return 0, false
	}
	dx, dy := ex-cx, ey-cy
	return mgl64.Vec2{dx, dy}.Len(), true
}
