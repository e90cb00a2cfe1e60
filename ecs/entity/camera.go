package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// DefaultCameraEye and DefaultCameraLookAt frame the shipped scenes.
var (
	DefaultCameraEye    = mgl64.Vec3{0, 7, 14}
	DefaultCameraLookAt = mgl64.Vec3{0, 1, 0}
)

func NewCamera(w *ecs.World, eye, lookAt mgl64.Vec3) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)

	t := component.NewTransform(eye)
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &t); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	cam := component.NewPerspectiveCamera(lookAt)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &cam); err != nil {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

// EnsureCamera returns the first camera in w, creating the default one when
// the scene did not define any.
func EnsureCamera(w *ecs.World) (ecs.Entity, error) {
	if found := w.Query(component.CameraComponent.Kind(), component.TransformComponent.Kind()); len(found) > 0 {
		return found[0], nil
	}
	return NewCamera(w, DefaultCameraEye, DefaultCameraLookAt)
}
