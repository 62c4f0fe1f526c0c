package entity

import (
	"fmt"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// NewCamera adds the arena camera. It only carries screen shake; the arena
// fits the screen.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{Zoom: 1}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraShakeComponent.Kind(), &component.CameraShake{}); err != nil {
		return 0, fmt.Errorf("camera: add camera shake: %w", err)
	}
	return camera, nil
}
