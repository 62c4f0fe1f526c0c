package entity

import (
	"fmt"
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"golang.org/x/image/colornames"
)

// particlePreset describes a burst of debug particles. Angles are in degrees
// for a right-facing spawner, 0 pointing forward and 90 pointing down.
type particlePreset struct {
	Angles []float64
	Speed  float64
	Size   float64
	Frames int
	Color  color.NRGBA
}

var particlePresets = map[string]particlePreset{
	"spark": {
		Angles: []float64{-60, -30, 0, 30, 60},
		Speed:  220,
		Size:   4,
		Frames: 12,
		Color:  color.NRGBA(colornames.Gold),
	},
	"dust": {
		Angles: []float64{-170, -150, -20, -10},
		Speed:  70,
		Size:   6,
		Frames: 20,
		Color:  color.NRGBA{R: 170, G: 160, B: 150, A: 200},
	},
}

// particleLayer draws particles above every fighter.
const particleLayer = 100

// SpawnParticles emits the named burst at a world position.
func SpawnParticles(w *ecs.World, effect string, at cp.Vector, facingLeft bool) error {
	preset, ok := particlePresets[effect]
	if !ok {
		return fmt.Errorf("unknown particle effect %q", effect)
	}
	for _, deg := range preset.Angles {
		rad := deg * math.Pi / 180
		v := cp.Vector{X: math.Cos(rad) * preset.Speed, Y: math.Sin(rad) * preset.Speed}
		if facingLeft {
			v.X = -v.X
		}

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(at.X, at.Y)); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{
			Effect:   effect,
			Velocity: v,
			Size:     preset.Size,
			Color:    preset.Color,
		}); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: preset.Frames}); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: particleLayer}); err != nil {
			return err
		}
	}
	return nil
}
