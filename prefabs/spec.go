package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SettingsFile holds the runtime defaults every scene starts from.
const SettingsFile = "settings.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SettingsSpec mirrors the runtime configuration. Pointer fields are unset
// when a scene does not override them.
type SettingsSpec struct {
	SpatialMode    string    `yaml:"spatial_mode"`
	PhysicsEnabled *bool     `yaml:"physics_enabled"`
	Gravity        *Vec3Spec `yaml:"gravity"`
	TickRate       int       `yaml:"tick_rate"`
	LogLevel       string    `yaml:"log_level"`
}

func LoadSettingsSpec() (SettingsSpec, error) {
	return LoadSpec[SettingsSpec](SettingsFile)
}

// SceneSpec is a named set of entities plus settings overrides.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Settings SettingsSpec      `yaml:"settings"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

func LoadSceneSpec(name string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return SceneSpec{}, err
	}
	if len(spec.Entities) == 0 {
		return SceneSpec{}, fmt.Errorf("prefabs: scene %s defines no entities", name)
	}
	return spec, nil
}

// Vec3Spec decodes `[x, y]`, `[x, y, z]` or `{x: .., y: .., z: ..}`.
type Vec3Spec [3]float64

func (v *Vec3Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var vals []float64
		if err := value.Decode(&vals); err != nil {
			return err
		}
		if len(vals) < 2 || len(vals) > 3 {
			return fmt.Errorf("vec3: expected 2 or 3 components, got %d", len(vals))
		}
		*v = Vec3Spec{}
		copy(v[:], vals)
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
			Z float64 `yaml:"z"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		*v = Vec3Spec{m.X, m.Y, m.Z}
		return nil
	default:
		return fmt.Errorf("vec3: unsupported yaml node at line %d", value.Line)
	}
}

// MarshalYAML keeps the flow form so DecodeComponentSpec round-trips.
func (v Vec3Spec) MarshalYAML() (any, error) {
	return []float64{v[0], v[1], v[2]}, nil
}
