package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// CameraSystem applies screen shake to the camera offset.
type CameraSystem struct {
	camEntity ecs.Entity
	tps       float64
}

func NewCameraSystem(tps float64) *CameraSystem {
	if tps <= 0 {
		tps = combat.DefaultFrameRate
	}
	return &CameraSystem{tps: tps}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraTagComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	shake, ok := ecs.Get(w, cs.camEntity, component.CameraShakeComponent.Kind())
	if !ok || !shake.Active {
		cam.Offset = cp.Vector{}
		return
	}

	shake.Phase += shake.Speed / cs.tps
	angle := 2 * math.Pi * shake.Phase
	cam.Offset = cp.Vector{
		X: math.Sin(angle) * shake.Magnitude,
		Y: math.Cos(angle*1.3) * shake.Magnitude * 0.5,
	}
}
