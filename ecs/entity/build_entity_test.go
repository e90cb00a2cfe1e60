package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"github.com/milk9111/travel/prefabs"
)

func TestBuildEntityComponents(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, prefabs.EntityBuildSpec{
		Name: "cube",
		Components: map[string]any{
			"transform": map[string]any{"position": []any{1, 2, 3}},
			"collider":  map[string]any{"shape": "cuboid", "half_extents": []any{0.5, 0.5, 0.5}},
			"kinematic_movement": map[string]any{
				"speed":  0.01,
				"repeat": true,
				"waypoints": []any{
					map[string]any{"position": []any{4, 4, 4}},
					map[string]any{"position": map[string]any{"x": -1, "z": 2}, "speed": 0.5},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}

	name, ok := ecs.Get(w, e, component.NameComponent.Kind())
	if !ok || name.Value != "cube" {
		t.Fatalf("expected name cube, got %+v", name)
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("unexpected transform %+v", tr)
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok || c.Shape != component.ShapeCuboid || c.HalfExtents != (mgl64.Vec3{0.5, 0.5, 0.5}) {
		t.Fatalf("unexpected collider %+v", c)
	}
	m, ok := ecs.Get(w, e, component.KinematicMovementComponent.Kind())
	if !ok {
		t.Fatalf("kinematic movement missing")
	}
	if m.Speed != 0.01 || !m.Repeat || m.Epsilon != component.DefaultArrivalEpsilon {
		t.Fatalf("unexpected movement %+v", m)
	}
	wps := m.Queue.Waypoints()
	if len(wps) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(wps))
	}
	if wps[0].Speed != nil {
		t.Fatalf("first waypoint should not override speed")
	}
	if wps[1].Position != (mgl64.Vec3{-1, 0, 2}) || wps[1].SpeedOr(0) != 0.5 {
		t.Fatalf("unexpected second waypoint %+v", wps[1])
	}
}

func TestBuildEntityErrors(t *testing.T) {
	cases := []struct {
		name       string
		components map[string]any
		wantErr    error
	}{
		{
			name: "conflicting_movement",
			components: map[string]any{
				"kinematic_movement": map[string]any{"speed": 1},
				"circular_movement":  map[string]any{"angular_speed": 1},
			},
			wantErr: ErrConflictingMovement,
		},
		{
			name:       "unknown_component",
			components: map[string]any{"sprite": map[string]any{}},
		},
		{
			name:       "physics_without_body",
			components: map[string]any{"physics_movement": map[string]any{"max_speed": 5}},
		},
		{
			name:       "bad_shape",
			components: map[string]any{"collider": map[string]any{"shape": "torus"}},
		},
		{
			name:       "negative_speed",
			components: map[string]any{"kinematic_movement": map[string]any{"speed": -1}},
		},
		{
			name: "two_mass_modes",
			components: map[string]any{
				"collider_mass": map[string]any{"density": 2, "mass": 3},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntity(w, prefabs.EntityBuildSpec{Name: c.name, Components: c.components})
			if err == nil {
				t.Fatalf("expected error")
			}
			if c.wantErr != nil && !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
			if got := len(ecs.Entities(w)); got != 0 {
				t.Fatalf("failed build left %d entities behind", got)
			}
		})
	}
}

func TestBuildEntityPhysics(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, prefabs.EntityBuildSpec{
		Name: "mover",
		Components: map[string]any{
			"transform":     map[string]any{},
			"rigid_body":    map[string]any{"gravity_scale": 0, "velocity": []any{1, 0, 0}},
			"collider":      map[string]any{"shape": "sphere", "radius": 0.5},
			"collider_mass": map[string]any{"mass": 3},
			"physics_movement": map[string]any{
				"min_speed": 1, "max_speed": 5, "loop": true, "accel_time": 0.5,
				"waypoints": []any{map[string]any{"position": []any{4, 4, 4}}},
			},
		},
	})
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}

	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	if rb.GravityScale != 0 {
		t.Fatalf("expected gravity scale 0, got %v", rb.GravityScale)
	}
	if v, _ := rb.TakePending(); v == nil || *v != (mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("expected pending initial velocity, got %v", v)
	}
	mass, _ := ecs.Get(w, e, component.ColliderMassPropertiesComponent.Kind())
	if mass.Mode != component.MassExplicit || mass.Mass != 3 {
		t.Fatalf("unexpected collider mass %+v", mass)
	}
	m, _ := ecs.Get(w, e, component.PhysicsMovementComponent.Kind())
	if !m.Loop || m.MinSpeed != 1 || m.MaxSpeed != 5 || m.AccelTime != 0.5 || m.BrakeTime != component.DefaultBrakeTime {
		t.Fatalf("unexpected physics movement %+v", m)
	}
}

func TestBuildEntityTransformRotation(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, prefabs.EntityBuildSpec{
		Name: "ramp",
		Components: map[string]any{
			"transform":     map[string]any{"rotation_axis": []any{1, 0, 0}, "rotation_angle": 90},
			"click_catcher": map[string]any{"priority": 2},
		},
	})
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	up := tr.Up()
	if math.Abs(up.Y()) > 1e-9 || math.Abs(up.Z()-1) > 1e-9 {
		t.Fatalf("expected up to rotate onto +Z, got %v", up)
	}
	cc, _ := ecs.Get(w, e, component.ClickCatcherComponent.Kind())
	if cc.Priority != 2 {
		t.Fatalf("expected priority 2, got %d", cc.Priority)
	}
}

func TestBuildCameraSpec(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, prefabs.EntityBuildSpec{
		Name: "cam",
		Components: map[string]any{
			"transform": map[string]any{"position": []any{0, 7, 14}},
			"camera":    map[string]any{"projection": "orthographic", "ortho_scale": 5, "look_at": []any{0, 1, 0}},
		},
	})
	if err != nil {
		t.Fatalf("BuildEntity: %v", err)
	}
	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	if cam.Projection != component.Orthographic || cam.OrthoScale != 5 || cam.LookAt != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("unexpected camera %+v", cam)
	}

	got, err := EnsureCamera(w)
	if err != nil || got != e {
		t.Fatalf("EnsureCamera should return the scene camera, got %v err %v", got, err)
	}
}

func TestEnsureCameraCreatesDefault(t *testing.T) {
	w := ecs.NewWorld()
	e, err := EnsureCamera(w)
	if err != nil {
		t.Fatalf("EnsureCamera: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position != DefaultCameraEye {
		t.Fatalf("expected eye %v, got %v", DefaultCameraEye, tr.Position)
	}
	again, _ := EnsureCamera(w)
	if again != e {
		t.Fatalf("second EnsureCamera created another camera")
	}
}

func TestBuildSceneRollsBack(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildScene(w, prefabs.SceneSpec{
		Name: "broken",
		Entities: []prefabs.EntityBuildSpec{
			{Name: "ok", Components: map[string]any{"transform": map[string]any{}}},
			{Name: "bad", Components: map[string]any{"collider": map[string]any{"shape": "torus"}}},
		},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("expected rollback, %d entities left", got)
	}
}

func TestShippedScenesBuild(t *testing.T) {
	scenes := prefabs.Scenes()
	if len(scenes) == 0 {
		t.Fatalf("no scenes embedded")
	}
	for _, name := range scenes {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			scene, built, err := LoadScene(w, name)
			if err != nil {
				t.Fatalf("LoadScene: %v", err)
			}
			if len(built) != len(scene.Entities) {
				t.Fatalf("built %d of %d entities", len(built), len(scene.Entities))
			}
			if len(w.Query(component.CameraComponent.Kind())) != 1 {
				t.Fatalf("scene %s should define one camera", name)
			}
		})
	}
}
