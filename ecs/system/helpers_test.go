package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

const tolerance = 1e-9

// vecNear compares component-wise with an absolute tolerance.
func vecNear(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], value *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, value); err != nil {
		t.Fatalf("add %s: %v", kind.Name(), err)
	}
}

func spawnAt(t *testing.T, w *ecs.World, p mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(p)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &tr)
	return e
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr
}

func positions(q *component.DestinationQueue) []mgl64.Vec3 {
	out := []mgl64.Vec3{}
	for _, wp := range q.Waypoints() {
		out = append(out, wp.Position)
	}
	return out
}
