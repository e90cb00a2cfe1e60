package entity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
	"github.com/milk9111/travel/prefabs"
)

// ErrConflictingMovement is returned when an entity spec names more than one
// movement strategy.
var ErrConflictingMovement = errors.New("entity: more than one movement strategy")

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	Name string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":               addName,
	"transform":          addTransform,
	"collider":           addCollider,
	"collider_mass":      addColliderMass,
	"additional_mass":    addAdditionalMass,
	"rigid_body":         addRigidBody,
	"kinematic_movement": addKinematicMovement,
	"circular_movement":  addCircularMovement,
	"physics_movement":   addPhysicsMovement,
	"camera":             addCamera,
	"pointer":            addPointer,
	"click_catcher":      addClickCatcher,
	"movement_object":    addMovementObject,
	"arrival_script":     addArrivalScript,
}

var componentBuildOrder = []string{
	"name",
	"transform",
	"collider",
	"collider_mass",
	"additional_mass",
	"rigid_body",
	"kinematic_movement",
	"circular_movement",
	"physics_movement",
	"camera",
	"pointer",
	"click_catcher",
	"movement_object",
	"arrival_script",
}

var movementComponents = []string{"kinematic_movement", "circular_movement", "physics_movement"}

// BuildEntityFromPrefab loads a single entity spec from prefabs and builds it.
func BuildEntityFromPrefab(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if spec.Name == "" {
		spec.Name = prefabPath
	}
	return BuildEntity(w, spec)
}

func BuildEntity(w *ecs.World, spec entityPrefabSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	var movements []string
	for _, name := range movementComponents {
		if _, ok := spec.Components[name]; ok {
			movements = append(movements, name)
		}
	}
	if len(movements) > 1 {
		return 0, fmt.Errorf("build entity: %q: %s: %w", spec.Name, strings.Join(movements, ", "), ErrConflictingMovement)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Name: spec.Name}

	remaining := make(map[string]any, len(spec.Components)+1)
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if _, ok := remaining["name"]; !ok && spec.Name != "" {
		remaining["name"] = nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, names[0])
	}

	return e, nil
}

func vec(v prefabs.Vec3Spec) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func waypoints(specs []prefabs.WaypointSpec) []component.Waypoint {
	out := make([]component.Waypoint, 0, len(specs))
	for _, s := range specs {
		wp := component.WaypointAt(vec(s.Position))
		if s.Speed != nil {
			wp = wp.WithSpeed(*s.Speed)
		}
		out = append(out, wp)
	}
	return out
}

func massProperties(s prefabs.MassPropertiesSpec) component.MassProperties {
	return component.MassProperties{
		Mass:             s.Mass,
		CenterOfMass:     vec(s.CenterOfMass),
		PrincipalInertia: vec(s.PrincipalInertia),
	}
}

func addName(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	name := ctx.Name
	if s, ok := raw.(string); ok && s != "" {
		name = s
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}

	t := component.NewTransform(vec(spec.Position))
	if spec.Scale != nil {
		t.Scale = vec(*spec.Scale)
	}
	if spec.RotationAxis != nil && spec.RotationAngle != 0 {
		axis := vec(*spec.RotationAxis)
		if axis.Len() == 0 {
			return fmt.Errorf("transform: rotation axis is zero")
		}
		t.Rotation = mgl64.QuatRotate(mgl64.DegToRad(spec.RotationAngle), axis.Normalize())
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}

	var c component.Collider
	switch strings.ToLower(strings.TrimSpace(spec.Shape)) {
	case "sphere", "ball":
		c = component.Sphere(spec.Radius)
	case "cuboid", "box":
		c = component.Cuboid(spec.HalfExtents[0], spec.HalfExtents[1], spec.HalfExtents[2])
	case "capsule":
		c = component.Capsule(spec.HalfHeight, spec.Radius)
	default:
		return fmt.Errorf("collider: unknown shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &c)
}

func addColliderMass(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderMassComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider_mass spec: %w", err)
	}

	set := 0
	props := component.ColliderMassProperties{Mode: component.MassFromDensity, Density: 1}
	if spec.Density != nil {
		props = component.ColliderMassProperties{Mode: component.MassFromDensity, Density: *spec.Density}
		set++
	}
	if spec.Mass != nil {
		props = component.ColliderMassProperties{Mode: component.MassExplicit, Mass: *spec.Mass}
		set++
	}
	if spec.Properties != nil {
		props = component.ColliderMassProperties{Mode: component.MassFromProperties, Properties: massProperties(*spec.Properties)}
		set++
	}
	if set > 1 {
		return fmt.Errorf("collider_mass: set only one of density, mass or properties")
	}
	return ecs.Add(w, e, component.ColliderMassPropertiesComponent.Kind(), &props)
}

func addAdditionalMass(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AdditionalMassComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode additional_mass spec: %w", err)
	}
	if spec.Mass != nil && spec.Properties != nil {
		return fmt.Errorf("additional_mass: set only one of mass or properties")
	}

	var props component.AdditionalMassProperties
	switch {
	case spec.Mass != nil:
		props = component.AdditionalMassProperties{Mode: component.MassExplicit, Mass: *spec.Mass}
	case spec.Properties != nil:
		props = component.AdditionalMassProperties{Mode: component.MassFromProperties, Properties: massProperties(*spec.Properties)}
	default:
		props = component.AdditionalMassProperties{Mode: component.MassExplicit}
	}
	return ecs.Add(w, e, component.AdditionalMassPropertiesComponent.Kind(), &props)
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}

	rb := component.NewRigidBody()
	rb.Static = spec.Static
	rb.Velocity = vec(spec.Velocity)
	rb.Friction = spec.Friction
	rb.Elasticity = spec.Elasticity
	if spec.GravityScale != nil {
		rb.GravityScale = *spec.GravityScale
	}
	if rb.Velocity.Len() > 0 {
		rb.SetVelocity(rb.Velocity)
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &rb)
}

func addKinematicMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.KinematicMovementComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode kinematic_movement spec: %w", err)
	}
	if spec.Speed < 0 || math.IsNaN(spec.Speed) {
		return fmt.Errorf("kinematic_movement: speed must be non-negative, got %v", spec.Speed)
	}

	m := component.NewKinematicMovement(spec.Speed, waypoints(spec.Waypoints)...)
	m.Repeat = spec.Repeat
	m.Frozen = spec.Frozen
	m.Offset = vec(spec.Offset)
	if spec.Epsilon != nil {
		m.Epsilon = *spec.Epsilon
	}
	return ecs.Add(w, e, component.KinematicMovementComponent.Kind(), &m)
}

func addCircularMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CircularMovementComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode circular_movement spec: %w", err)
	}

	m := component.NewCircularMovement(spec.AngularSpeed, vec(spec.Anchor))
	m.Frozen = spec.Frozen
	if spec.Axis != nil {
		m.Axis = vec(*spec.Axis)
	}
	return ecs.Add(w, e, component.CircularMovementComponent.Kind(), &m)
}

func addPhysicsMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsMovementComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_movement spec: %w", err)
	}
	if !ecs.Has(w, e, component.RigidBodyComponent.Kind()) {
		return fmt.Errorf("physics_movement requires rigid_body on the same entity")
	}

	m := component.NewPhysicsMovement(spec.MinSpeed, spec.MaxSpeed, waypoints(spec.Waypoints)...)
	m.Loop = spec.Loop
	if spec.Epsilon != nil {
		m.Epsilon = *spec.Epsilon
	}
	if spec.AccelTime != nil {
		m.AccelTime = *spec.AccelTime
	}
	if spec.BrakeTime != nil {
		m.BrakeTime = *spec.BrakeTime
	}
	return ecs.Add(w, e, component.PhysicsMovementComponent.Kind(), &m)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}

	var cam component.Camera
	switch strings.ToLower(strings.TrimSpace(spec.Projection)) {
	case "", "perspective":
		cam = component.NewPerspectiveCamera(vec(spec.LookAt))
		if spec.FovY > 0 {
			cam.FovY = mgl64.DegToRad(spec.FovY)
		}
	case "orthographic", "ortho":
		cam = component.NewOrthographicCamera(vec(spec.LookAt), spec.OrthoScale)
	default:
		return fmt.Errorf("camera: unknown projection %q", spec.Projection)
	}
	if spec.Near > 0 {
		cam.Near = spec.Near
	}
	if spec.Far > 0 {
		cam.Far = spec.Far
	}
	if spec.Up != nil {
		cam.Up = vec(*spec.Up)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &cam)
}

func addPointer(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{})
}

func addClickCatcher(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ClickCatcherComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode click_catcher spec: %w", err)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return fmt.Errorf("click_catcher requires transform on the same entity")
	}
	return ecs.Add(w, e, component.ClickCatcherComponent.Kind(), &component.ClickCatcher{Priority: spec.Priority})
}

func addMovementObject(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementObjectComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode movement_object spec: %w", err)
	}
	return ecs.Add(w, e, component.MovementObjectComponent.Kind(), &component.MovementObject{Chain: spec.Chain})
}

func addArrivalScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ArrivalScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode arrival_script spec: %w", err)
	}
	if strings.TrimSpace(spec.Path) == "" {
		return fmt.Errorf("arrival_script: path is empty")
	}
	return ecs.Add(w, e, component.ArrivalScriptComponent.Kind(), &component.ArrivalScript{Path: spec.Path})
}
