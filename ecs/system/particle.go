package system

import (
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// ParticleSystem drifts particles by their velocity, following the arena
// time scale.
type ParticleSystem struct {
	arena *combat.Arena
}

func NewParticleSystem(arena *combat.Arena) *ParticleSystem {
	return &ParticleSystem{arena: arena}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	dt := 1 / combat.DefaultFrameRate
	if s.arena != nil {
		dt = s.arena.TimeScale().Scale() / s.arena.FrameRate()
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ParticleComponent.Kind(), func(_ ecs.Entity, t *component.Transform, p *component.Particle) {
		t.X += p.Velocity.X * dt
		t.Y += p.Velocity.Y * dt
	})
}
