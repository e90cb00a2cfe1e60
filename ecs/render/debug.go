package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	catcherGridLines    = 10
)

var (
	kinematicColor = colornames.Deepskyblue
	circularColor  = colornames.Orange
	physicsColor   = colornames.Tomato
	staticColor    = colornames.Gray
	catcherColor   = colornames.Darkolivegreen
	waypointColor  = colornames.Gold
	anchorColor    = colornames.Violet
)

// Debug draws a wireframe view of the scene through its camera.
type Debug struct {
	// Physics overlays the rigid-body solver's shapes on the z = 0 plane.
	Physics bool

	// HUD prints tick and mover counts in the corner.
	HUD bool
}

func (d *Debug) Draw(w *ecs.World, screen *ebiten.Image, space *cp.Space) {
	if d == nil || w == nil || screen == nil {
		return
	}
	size := screen.Bounds().Size()
	p, ok := CameraProjector(w, size.X, size.Y)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.ClickCatcherComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ClickCatcher, t *component.Transform) {
		half := 5.0
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && c.Shape == component.ShapeCuboid {
			half = math.Max(c.HalfExtents.X(), c.HalfExtents.Z())
		}
		drawPlaneGrid(screen, p, *t, half, catcherColor)
	})

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, t *component.Transform) {
		if ecs.Has(w, e, component.ClickCatcherComponent.Kind()) {
			return
		}
		drawCollider(screen, p, *c, *t, colorFor(w, e))
	})

	ecs.ForEach2(w, component.KinematicMovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.KinematicMovement, t *component.Transform) {
		drawRoute(screen, p, t.Position, m.Queue.Waypoints(), m.Offset)
	})
	ecs.ForEach2(w, component.PhysicsMovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.PhysicsMovement, t *component.Transform) {
		drawRoute(screen, p, t.Position, m.Queue.Waypoints(), mgl64.Vec3{})
	})
	ecs.ForEach(w, component.CircularMovementComponent.Kind(), func(e ecs.Entity, m *component.CircularMovement) {
		drawDot(screen, p, m.Anchor, anchorColor)
	})

	if d.Physics && space != nil {
		cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, proj: p})
	}

	if d.HUD {
		movers := len(w.Query(component.KinematicMovementComponent.Kind())) +
			len(w.Query(component.CircularMovementComponent.Kind())) +
			len(w.Query(component.PhysicsMovementComponent.Kind()))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick %d  movers %d  tps %.0f", w.Tick(), movers, ebiten.ActualTPS()), 10, 10)
	}
}

func colorFor(w *ecs.World, e ecs.Entity) color.Color {
	switch {
	case ecs.Has(w, e, component.PhysicsMovementComponent.Kind()):
		return physicsColor
	case ecs.Has(w, e, component.KinematicMovementComponent.Kind()):
		return kinematicColor
	case ecs.Has(w, e, component.CircularMovementComponent.Kind()):
		return circularColor
	default:
		return staticColor
	}
}

func drawCollider(screen *ebiten.Image, p Projector, c component.Collider, t component.Transform, clr color.Color) {
	switch c.Shape {
	case component.ShapeSphere:
		drawSphere(screen, p, t.Position, c.Radius, clr)
	case component.ShapeCapsule:
		up := t.Up().Mul(c.HalfHeight)
		a, b := t.Position.Add(up), t.Position.Sub(up)
		drawSphere(screen, p, a, c.Radius, clr)
		drawSphere(screen, p, b, c.Radius, clr)
		drawLine(screen, p, a, b, clr)
	case component.ShapeCuboid:
		drawBox(screen, p, t, c.HalfExtents, clr)
	}
}

func drawBox(screen *ebiten.Image, p Projector, t component.Transform, half mgl64.Vec3, clr color.Color) {
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	var corners [8]mgl64.Vec3
	for i := range corners {
		local := mgl64.Vec3{half.X(), half.Y(), half.Z()}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		corners[i] = t.Position.Add(rot.Rotate(local))
	}
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				drawLine(screen, p, corners[i], corners[j], clr)
			}
		}
	}
}

func drawPlaneGrid(screen *ebiten.Image, p Projector, t component.Transform, half float64, clr color.Color) {
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	u := rot.Rotate(mgl64.Vec3{1, 0, 0})
	v := rot.Rotate(mgl64.Vec3{0, 0, 1})
	step := 2 * half / catcherGridLines
	for i := 0; i <= catcherGridLines; i++ {
		off := -half + float64(i)*step
		drawLine(screen, p, t.Position.Add(u.Mul(off)).Sub(v.Mul(half)), t.Position.Add(u.Mul(off)).Add(v.Mul(half)), clr)
		drawLine(screen, p, t.Position.Add(v.Mul(off)).Sub(u.Mul(half)), t.Position.Add(v.Mul(off)).Add(u.Mul(half)), clr)
	}
}

func drawRoute(screen *ebiten.Image, p Projector, from mgl64.Vec3, route []component.Waypoint, offset mgl64.Vec3) {
	prev := from
	for _, wp := range route {
		next := wp.Position.Add(offset)
		drawLine(screen, p, prev, next, waypointColor)
		drawDot(screen, p, next, waypointColor)
		prev = next
	}
}

func drawSphere(screen *ebiten.Image, p Projector, center mgl64.Vec3, r float64, clr color.Color) {
	x, y, ok := p.ToScreen(center)
	if !ok {
		return
	}
	sr, ok := p.ScreenRadius(center, r)
	if !ok {
		return
	}
	vector.StrokeCircle(screen, float32(x), float32(y), float32(sr), 1, clr, true)
}

func drawDot(screen *ebiten.Image, p Projector, at mgl64.Vec3, clr color.Color) {
	x, y, ok := p.ToScreen(at)
	if !ok {
		return
	}
	vector.FillCircle(screen, float32(x), float32(y), debugDotSize/2, clr, true)
}

func drawLine(screen *ebiten.Image, p Projector, a, b mgl64.Vec3, clr color.Color) {
	x1, y1, ok := p.ToScreen(a)
	if !ok {
		return
	}
	x2, y2, ok := p.ToScreen(b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, clr, true)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	proj   Projector
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	drawDot(d.screen, d.proj, mgl64.Vec3{pos.X, pos.Y, 0}, toNRGBA(fill))
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr cp.FColor) {
	drawLine(d.screen, d.proj, mgl64.Vec3{a.X, a.Y, 0}, mgl64.Vec3{b.X, b.Y, 0}, toNRGBA(clr))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, clr cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, clr cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
