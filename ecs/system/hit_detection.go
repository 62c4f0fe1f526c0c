package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// HitDetectionSystem reports hitbox and hurtbox overlaps to the arena. The
// arena filters teams and repeated hits.
type HitDetectionSystem struct {
	arena *combat.Arena
}

func NewHitDetectionSystem(arena *combat.Arena) *HitDetectionSystem {
	return &HitDetectionSystem{arena: arena}
}

func (s *HitDetectionSystem) Update(w *ecs.World) {
	if s == nil || s.arena == nil || w == nil {
		return
	}

	var fighters []*combat.Character
	ecs.ForEach(w, component.FighterComponent.Kind(), func(_ ecs.Entity, f *component.Fighter) {
		if f.Character != nil {
			fighters = append(fighters, f.Character)
		}
	})

	for _, att := range fighters {
		boxes := att.ActiveHitBoxes()
		if len(boxes) == 0 {
			continue
		}
		for _, def := range fighters {
			if def == att {
				continue
			}
			hurt := def.HurtBoxRects()
			for _, hb := range boxes {
				if overlapsAny(hb.Rect, hurt) {
					s.arena.OnOverlap(att.ID, def.ID, hb.Index)
				}
			}
		}
	}
}

func overlapsAny(bb cp.BB, rects []cp.BB) bool {
	for _, r := range rects {
		if bb.Intersects(r) {
			return true
		}
	}
	return false
}
