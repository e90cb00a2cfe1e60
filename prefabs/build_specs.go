package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TransformComponentSpec takes its rotation as an axis and an angle in
// degrees.
type TransformComponentSpec struct {
	Position      Vec3Spec  `yaml:"position"`
	Scale         *Vec3Spec `yaml:"scale"`
	RotationAxis  *Vec3Spec `yaml:"rotation_axis"`
	RotationAngle float64   `yaml:"rotation_angle"`
}

type WaypointSpec struct {
	Position Vec3Spec `yaml:"position"`
	Speed    *float64 `yaml:"speed"`
}

type KinematicMovementComponentSpec struct {
	Speed     float64        `yaml:"speed"`
	Waypoints []WaypointSpec `yaml:"waypoints"`
	Repeat    bool           `yaml:"repeat"`
	Frozen    bool           `yaml:"frozen"`
	Epsilon   *float64       `yaml:"epsilon"`
	Offset    Vec3Spec       `yaml:"offset"`
}

type CircularMovementComponentSpec struct {
	AngularSpeed float64   `yaml:"angular_speed"`
	Anchor       Vec3Spec  `yaml:"anchor"`
	Axis         *Vec3Spec `yaml:"axis"`
	Frozen       bool      `yaml:"frozen"`
}

type PhysicsMovementComponentSpec struct {
	Waypoints []WaypointSpec `yaml:"waypoints"`
	Loop      bool           `yaml:"loop"`
	Epsilon   *float64       `yaml:"epsilon"`
	MinSpeed  float64        `yaml:"min_speed"`
	MaxSpeed  float64        `yaml:"max_speed"`
	AccelTime *float64       `yaml:"accel_time"`
	BrakeTime *float64       `yaml:"brake_time"`
}

type RigidBodyComponentSpec struct {
	Static       bool     `yaml:"static"`
	Velocity     Vec3Spec `yaml:"velocity"`
	Friction     float64  `yaml:"friction"`
	Elasticity   float64  `yaml:"elasticity"`
	GravityScale *float64 `yaml:"gravity_scale"`
}

type ColliderComponentSpec struct {
	Shape       string   `yaml:"shape"`
	Radius      float64  `yaml:"radius"`
	HalfExtents Vec3Spec `yaml:"half_extents"`
	HalfHeight  float64  `yaml:"half_height"`
}

type MassPropertiesSpec struct {
	Mass             float64  `yaml:"mass"`
	CenterOfMass     Vec3Spec `yaml:"center_of_mass"`
	PrincipalInertia Vec3Spec `yaml:"principal_inertia"`
}

// ColliderMassComponentSpec sets exactly one of density, mass or properties.
type ColliderMassComponentSpec struct {
	Density    *float64            `yaml:"density"`
	Mass       *float64            `yaml:"mass"`
	Properties *MassPropertiesSpec `yaml:"properties"`
}

type AdditionalMassComponentSpec struct {
	Mass       *float64            `yaml:"mass"`
	Properties *MassPropertiesSpec `yaml:"properties"`
}

type CameraComponentSpec struct {
	Projection string    `yaml:"projection"`
	FovY       float64   `yaml:"fov_y"`
	Near       float64   `yaml:"near"`
	Far        float64   `yaml:"far"`
	LookAt     Vec3Spec  `yaml:"look_at"`
	Up         *Vec3Spec `yaml:"up"`
	OrthoScale float64   `yaml:"ortho_scale"`
}

type ClickCatcherComponentSpec struct {
	Priority int `yaml:"priority"`
}

type MovementObjectComponentSpec struct {
	Chain bool `yaml:"chain"`
}

type ArrivalScriptComponentSpec struct {
	Path string `yaml:"path"`
}
