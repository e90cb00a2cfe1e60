package system

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// CursorRay builds the world-space ray under a cursor given in window
// pixels with a top-left origin.
func CursorRay(cam component.Camera, eye mgl64.Vec3, cursorX, cursorY, width, height float64) (Ray, bool) {
	if width <= 0 || height <= 0 {
		return Ray{}, false
	}
	view := cam.View(eye)
	proj := cam.Proj(width, height)
	w, h := int(width), int(height)
	// window space is bottom-up
	winY := height - cursorY

	near, err := mgl64.UnProject(mgl64.Vec3{cursorX, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{cursorX, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, false
	}
	dir, ok := common.Direction(far.Sub(near))
	if !ok {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir}, true
}

// IntersectPlane returns where r crosses the plane through point with the
// given normal. Rays parallel to the plane or pointing away from it miss.
func IntersectPlane(r Ray, point, normal mgl64.Vec3) (mgl64.Vec3, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < common.Epsilon {
		return mgl64.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}

// Catcher is a click plane in resolution order.
type Catcher struct {
	Entity   ecs.Entity
	Priority int
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// SortCatchers orders catchers by ascending priority, then entity id.
func SortCatchers(catchers []Catcher) {
	sort.SliceStable(catchers, func(i, j int) bool {
		if catchers[i].Priority != catchers[j].Priority {
			return catchers[i].Priority < catchers[j].Priority
		}
		return catchers[i].Entity.ID() < catchers[j].Entity.ID()
	})
}

// ResolveClick returns the first hit among catchers, which must already be
// sorted. Catchers the ray misses are skipped.
func ResolveClick(r Ray, catchers []Catcher) (mgl64.Vec3, bool) {
	for _, c := range catchers {
		if p, ok := IntersectPlane(r, c.Point, c.Normal); ok {
			return p, true
		}
	}
	return mgl64.Vec3{}, false
}

// PointerTargetSystem turns a click into a destination for every
// MovementObject. Chained objects get the point appended; the rest have
// their queue replaced.
type PointerTargetSystem struct {
	opts options
}

func NewPointerTargetSystem(opts ...Option) *PointerTargetSystem {
	return &PointerTargetSystem{opts: buildOptions("pointer", opts)}
}

func (s *PointerTargetSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	pointerEnt, ok := w.First(component.PointerComponent.Kind())
	if !ok {
		return
	}
	pointer, _ := ecs.Get(w, pointerEnt, component.PointerComponent.Kind())
	if !pointer.JustPressed {
		return
	}

	ray, ok := s.cameraRay(w, pointer)
	if !ok {
		return
	}
	point, ok := ResolveClick(ray, collectCatchers(w))
	if !ok {
		return
	}

	for _, e := range w.Query(component.MovementObjectComponent.Kind()) {
		mo, _ := ecs.Get(w, e, component.MovementObjectComponent.Kind())
		AssignTarget(w, e, component.WaypointAt(point), mo.Chain)
	}
	s.opts.logger.Debug("click resolved", "point", point)
}

func (s *PointerTargetSystem) cameraRay(w *ecs.World, pointer *component.Pointer) (Ray, bool) {
	cams := w.Query(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if len(cams) == 0 {
		return Ray{}, false
	}
	cam, _ := ecs.Get(w, cams[0], component.CameraComponent.Kind())
	t, _ := ecs.Get(w, cams[0], component.TransformComponent.Kind())
	return CursorRay(*cam, t.Position, pointer.CursorX, pointer.CursorY, pointer.ViewportW, pointer.ViewportH)
}

func collectCatchers(w *ecs.World) []Catcher {
	ents := w.Query(component.ClickCatcherComponent.Kind(), component.TransformComponent.Kind())
	out := make([]Catcher, 0, len(ents))
	for _, e := range ents {
		cc, _ := ecs.Get(w, e, component.ClickCatcherComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		out = append(out, Catcher{Entity: e, Priority: cc.Priority, Point: t.Position, Normal: t.Up()})
	}
	SortCatchers(out)
	return out
}

// AssignTarget appends wp to the entity's movement queue when chain is set
// and replaces the queue otherwise. It reports false when the entity has no
// queue-driven movement.
func AssignTarget(w *ecs.World, e ecs.Entity, wp component.Waypoint, chain bool) bool {
	q := queueOf(w, e)
	if q == nil {
		return false
	}
	if chain {
		q.Push(wp)
	} else {
		q.Replace(wp)
	}
	return true
}
