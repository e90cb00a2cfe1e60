package entity

import (
	"fmt"

	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/prefabs"
)

// BuildScene builds every entity in scene. On failure the entities built so
// far are destroyed and the world is left as it was.
func BuildScene(w *ecs.World, scene prefabs.SceneSpec) ([]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}

	built := make([]ecs.Entity, 0, len(scene.Entities))
	for i, spec := range scene.Entities {
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("%s[%d]", scene.Name, i)
		}
		e, err := BuildEntity(w, spec)
		if err != nil {
			for _, prev := range built {
				ecs.DestroyEntity(w, prev)
			}
			return nil, fmt.Errorf("build scene %q: %w", scene.Name, err)
		}
		built = append(built, e)
	}
	return built, nil
}

// LoadScene loads a scene from prefabs and builds it into w.
func LoadScene(w *ecs.World, name string) (prefabs.SceneSpec, []ecs.Entity, error) {
	scene, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return prefabs.SceneSpec{}, nil, fmt.Errorf("load scene: %w", err)
	}
	if scene.Name == "" {
		scene.Name = name
	}
	built, err := BuildScene(w, scene)
	if err != nil {
		return prefabs.SceneSpec{}, nil, err
	}
	return scene, built, nil
}
