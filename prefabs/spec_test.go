package prefabs

import (
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestVec3SpecDecode(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    Vec3Spec
		wantErr bool
	}{
		{name: "sequence3", input: "[1, 2, 3]", want: Vec3Spec{1, 2, 3}},
		{name: "sequence2", input: "[1.5, -2]", want: Vec3Spec{1.5, -2, 0}},
		{name: "mapping", input: "{x: 4, z: -1}", want: Vec3Spec{4, 0, -1}},
		{name: "too_short", input: "[1]", wantErr: true},
		{name: "too_long", input: "[1, 2, 3, 4]", wantErr: true},
		{name: "scalar", input: "7", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got Vec3Spec
			err := yaml.Unmarshal([]byte(c.input), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{
		"speed":  0.25,
		"repeat": true,
		"waypoints": []any{
			map[string]any{"position": []any{1, 2, 3}, "speed": 2},
		},
	}
	spec, err := DecodeComponentSpec[KinematicMovementComponentSpec](raw)
	if err != nil {
		t.Fatalf("DecodeComponentSpec: %v", err)
	}
	if spec.Speed != 0.25 || !spec.Repeat || len(spec.Waypoints) != 1 {
		t.Fatalf("unexpected spec %+v", spec)
	}
	wp := spec.Waypoints[0]
	if wp.Position != (Vec3Spec{1, 2, 3}) || wp.Speed == nil || *wp.Speed != 2 {
		t.Fatalf("unexpected waypoint %+v", wp)
	}

	empty, err := DecodeComponentSpec[KinematicMovementComponentSpec](nil)
	if err != nil || empty.Speed != 0 || empty.Waypoints != nil {
		t.Fatalf("nil raw should decode to the zero spec, got %+v err %v", empty, err)
	}
}

func TestScenesExcludeSettings(t *testing.T) {
	scenes := Scenes()
	for _, want := range []string{"linear", "linear_circle", "physic", "mouse_control"} {
		if !slices.Contains(scenes, want) {
			t.Fatalf("expected scene %s in %v", want, scenes)
		}
	}
	if slices.Contains(scenes, "settings") {
		t.Fatalf("settings listed as a scene: %v", scenes)
	}
}

func TestLoadSettingsSpec(t *testing.T) {
	spec, err := LoadSettingsSpec()
	if err != nil {
		t.Fatalf("LoadSettingsSpec: %v", err)
	}
	if spec.SpatialMode != "3d" || spec.TickRate != 60 {
		t.Fatalf("unexpected settings %+v", spec)
	}
	if spec.PhysicsEnabled == nil || *spec.PhysicsEnabled {
		t.Fatalf("physics should be explicitly disabled, got %v", spec.PhysicsEnabled)
	}
	if spec.Gravity == nil || *spec.Gravity != (Vec3Spec{0, -9.81, 0}) {
		t.Fatalf("unexpected gravity %v", spec.Gravity)
	}
}

func TestLoadSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec("physic")
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if spec.Settings.PhysicsEnabled == nil || !*spec.Settings.PhysicsEnabled {
		t.Fatalf("physic scene should enable physics")
	}

	if _, err := LoadSceneSpec("missing_scene"); err == nil {
		t.Fatalf("expected error for a missing scene")
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		script bool
		want   string
	}{
		{name: "bare_scene", input: "linear", want: "linear.yaml"},
		{name: "prefixed_scene", input: "prefabs/physic.yaml", want: "physic.yaml"},
		{name: "bare_script", input: "patrol.tengo", script: true, want: "scripts/patrol.tengo"},
		{name: "scripts_prefix", input: "scripts/patrol.tengo", script: true, want: "scripts/patrol.tengo"},
		{name: "full_prefix", input: "prefabs/scripts/patrol.tengo", script: true, want: "scripts/patrol.tengo"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := cleanPrefabPath(c.input)
			if c.script {
				got = cleanScriptPath(c.input)
			}
			if got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestChangeName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{path: "/repo/prefabs/linear.yaml", want: "linear.yaml"},
		{path: "/repo/prefabs/scripts/patrol.tengo", want: "scripts/patrol.tengo"},
		{path: "other/file.yaml", want: "file.yaml"},
	}
	for _, c := range cases {
		if got := (Change{Path: c.path}).Name(); got != c.want {
			t.Fatalf("Name(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestLoadScript(t *testing.T) {
	data, err := LoadScript("random_wander.tengo")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("script is empty")
	}
}
