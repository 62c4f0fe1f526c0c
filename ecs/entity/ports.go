package entity

import (
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// tweenFrames is how long a tween eases toward its target. The event
// duration decides when it snaps back.
const tweenFrames = 12

// fighterPorts connects a combat character to the components of its entity.
// Every port looks its component up on each call so a reload or removal is
// picked up immediately.
type fighterPorts struct {
	w    *ecs.World
	e    ecs.Entity
	tps  float64
	char *combat.Character
}

func newFighterPorts(w *ecs.World, e ecs.Entity, tps float64) *fighterPorts {
	return &fighterPorts{w: w, e: e, tps: tps}
}

func (p *fighterPorts) ports() combat.Ports {
	return combat.Ports{
		Animator:  p,
		Mover:     p,
		Audio:     p,
		Particles: p,
		Effects:   p,
		Death:     p,
	}
}

func (p *fighterPorts) facingLeft() bool {
	return p.char != nil && p.char.FacingLeft()
}

// Animator

func (p *fighterPorts) PlaySequence(animations []string, loopLast bool) {
	anim, ok := ecs.Get(p.w, p.e, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	anim.Sequence = append(anim.Sequence[:0], animations...)
	anim.LoopLast = loopLast
	anim.Index = 0
	anim.Frame = 0
	anim.Elapsed = 0
	anim.Playing = len(animations) > 0
}

func (p *fighterPorts) FreezeFor(seconds float64) {
	anim, ok := ecs.Get(p.w, p.e, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	if n := component.FreezeTicks(seconds, p.tps); n > anim.FreezeFrames {
		anim.FreezeFrames = n
	}
}

func (p *fighterPorts) BonePosition(bone string) (cp.Vector, bool) {
	anim, ok := ecs.Get(p.w, p.e, component.AnimationComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	off, ok := anim.Bone(bone, p.facingLeft())
	if !ok {
		return cp.Vector{}, false
	}
	return p.Position().Add(off), true
}

// Mover

func (p *fighterPorts) Position() cp.Vector {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return cp.Vector{X: t.X, Y: t.Y}
}

func (p *fighterPorts) SetVelocity(v cp.Vector) {
	if m, ok := ecs.Get(p.w, p.e, component.MotionComponent.Kind()); ok {
		m.Velocity = v
	}
}

// SeekPosition starts a walk toward target. The character already turned
// toward it when the force started, so arrival needs no extra turn.
func (p *fighterPorts) SeekPosition(target cp.Vector, _ bool) {
	m, ok := ecs.Get(p.w, p.e, component.MotionComponent.Kind())
	if !ok {
		return
	}
	m.Target = target
	m.Seeking = true
}

func (p *fighterPorts) CancelSeek() {
	if m, ok := ecs.Get(p.w, p.e, component.MotionComponent.Kind()); ok {
		m.Seeking = false
	}
}

func (p *fighterPorts) Seeking() bool {
	m, ok := ecs.Get(p.w, p.e, component.MotionComponent.Kind())
	return ok && m.Seeking
}

// Audio

func (p *fighterPorts) PlaySound(clip string) {
	a, ok := ecs.Get(p.w, p.e, component.AudioComponent.Kind())
	if !ok || !a.Request(clip) {
		log.Printf("entity: entity=%v unknown sound %q", p.e, clip)
	}
}

// Particles

func (p *fighterPorts) SpawnParticle(effect string, at cp.Vector, facingLeft bool) {
	if err := SpawnParticles(p.w, effect, at, facingLeft); err != nil {
		log.Printf("entity: entity=%v particle %q: %v", p.e, effect, err)
	}
}

// Effects

func (p *fighterPorts) ColorFlash(c color.NRGBA, renderInFront bool, on bool) {
	flash, ok := ecs.Get(p.w, p.e, component.ColorFlashComponent.Kind())
	if !ok {
		flash = &component.ColorFlash{}
		if err := ecs.Add(p.w, p.e, component.ColorFlashComponent.Kind(), flash); err != nil {
			return
		}
	}
	if on {
		flash.Depth++
		flash.Color = c
		flash.RenderInFront = renderInFront
		flash.On = true
		return
	}
	if flash.Depth > 0 {
		flash.Depth--
	}
	if flash.Depth == 0 {
		flash.On = false
		flash.RenderInFront = false
	}
}

// ScreenShake drives the camera shared by every fighter.
func (p *fighterPorts) ScreenShake(speed, magnitude float64, on bool) {
	cam, ok := ecs.First(p.w, component.CameraTagComponent.Kind())
	if !ok {
		return
	}
	shake, ok := ecs.Get(p.w, cam, component.CameraShakeComponent.Kind())
	if !ok {
		return
	}
	if on {
		shake.Depth++
		shake.Speed = speed
		shake.Magnitude = magnitude
		shake.Active = true
		return
	}
	if shake.Depth > 0 {
		shake.Depth--
	}
	if shake.Depth == 0 {
		shake.Active = false
		shake.Phase = 0
	}
}

func (p *fighterPorts) Tween(t action.Tween, on bool) {
	tw, ok := ecs.Get(p.w, p.e, component.TweenComponent.Kind())
	if !ok {
		tw = &component.Tween{}
		if err := ecs.Add(p.w, p.e, component.TweenComponent.Kind(), tw); err != nil {
			return
		}
	}
	if tw.Tracks == nil {
		tw.Tracks = map[string]*component.TweenTrack{}
	}
	if on {
		tw.Tracks[t.Property] = &component.TweenTrack{
			Property: t.Property,
			From:     t.From,
			To:       t.To,
			Frames:   tweenFrames,
		}
		return
	}
	delete(tw.Tracks, t.Property)
	if tr, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind()); ok {
		tr.ResetProperty(t.Property)
	}
}

// Death

func (p *fighterPorts) OnDeath(c *combat.Character) {
	log.Printf("entity: %s defeated (entity=%v combo=%d)", c.Name, p.e, c.Combo())
	if err := ecs.Add(p.w, p.e, component.DefeatedTagComponent.Kind(), &component.DefeatedTag{}); err != nil {
		log.Printf("entity: entity=%v mark defeated: %v", p.e, err)
	}
	// A defeated fighter takes no more gestures or script input.
	ecs.Remove(p.w, p.e, component.InputQueueComponent.Kind())
}
