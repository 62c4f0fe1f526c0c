package combat

import (
	"log"
	"math"

	"github.com/milk9111/brawler/action"
)

// applyEvent performs the effect of ev, which came due at the clock time at.
func (c *Character) applyEvent(ev action.Event, inst *instance, at float64) {
	rel := at - inst.startAt
	switch e := ev.Effect.(type) {
	case nil, action.NoEffect:
	case action.PerformAction:
		a, ok := c.set.Action(e.Action)
		if !ok {
			log.Printf("combat: %s: perform_action: unknown action %q", c.Name, e.Action)
			return
		}
		c.Perform(a, inst.input)
	case action.PerformBasicAction:
		c.Perform(c.set.Basic(e.Basic), inst.input)
	case action.SoundEffect:
		c.ports.Audio.PlaySound(e.Clip)
	case action.SlowMotion:
		if c.arena == nil {
			return
		}
		frames := c.resolve(ev.Duration, rel, inst) - rel
		c.arena.timeScale.Push(e.TimeScale, int64(math.Ceil(frames)), c.arena.frame)
	case action.ParticleEffect:
		pos := c.Anchor(e.SpawnPoint).Add(action.Mirror(e.Offset, c.facingLeft))
		c.ports.Particles.SpawnParticle(e.Effect, pos, c.facingLeft)
	case action.ForceEffect:
		end := inst.startAt + c.resolve(ev.Duration, rel, inst)
		owner := inst
		if owner.state != StateActive && c.current != nil {
			owner = c.current
		}
		c.installForce(&activeForce{inst: owner, motion: e.Motion}, end)
	case action.ColorFlash:
		c.ports.Effects.ColorFlash(e.Color, e.RenderInFront, true)
		c.scheduleRevert(ev, inst, rel, func() {
			c.ports.Effects.ColorFlash(e.Color, e.RenderInFront, false)
		})
	case action.ScreenShake:
		c.ports.Effects.ScreenShake(e.Speed, e.Magnitude, true)
		c.scheduleRevert(ev, inst, rel, func() {
			c.ports.Effects.ScreenShake(e.Speed, e.Magnitude, false)
		})
	case action.Tween:
		c.ports.Effects.Tween(e, true)
		c.scheduleRevert(ev, inst, rel, func() {
			c.ports.Effects.Tween(e, false)
		})
	case action.FreezeAnimation:
		frames := c.resolve(ev.Duration, rel, inst) - rel
		c.Freeze(frames / c.frameRate())
	case action.Die:
		c.die()
	default:
		log.Printf("combat: %s: unhandled event %s", c.Name, ev.Type())
	}
}
