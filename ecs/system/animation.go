package system

import (
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// AnimationSystem advances clip sequences by the arena time scale, so a clip
// covers the same scaled ticks as the action clock. The last clip of a
// sequence loops when LoopLast is set and holds otherwise.
type AnimationSystem struct {
	arena *combat.Arena
}

func NewAnimationSystem(arena *combat.Arena) *AnimationSystem {
	return &AnimationSystem{arena: arena}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	scale := a.scale()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		if anim.FreezeFrames > 0 {
			anim.FreezeFrames--
			return
		}
		if !anim.Playing {
			return
		}
		anim.Elapsed += scale
		for anim.Playing && anim.Elapsed >= 1 {
			anim.Elapsed--
			stepAnimation(anim)
		}
	})
}

func (a *AnimationSystem) scale() float64 {
	if a == nil || a.arena == nil {
		return 1
	}
	return a.arena.TimeScale().Scale()
}

// stepAnimation moves the animation forward one tick of clip time.
func stepAnimation(anim *component.Animation) {
	def, ok := anim.Current()
	if !ok || def.FrameCount <= 0 {
		anim.Elapsed = 0
		return
	}

	anim.Frame++
	if anim.Frame < def.FrameCount {
		return
	}
	last := anim.Index >= len(anim.Sequence)-1
	switch {
	case !last:
		anim.Index++
		anim.Frame = 0
	case anim.LoopLast:
		anim.Frame = 0
	default:
		anim.Frame = def.FrameCount - 1
		anim.Playing = false
		anim.Elapsed = 0
	}
}
