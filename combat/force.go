package combat

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

// activeForce is a force installed on the movement controller.
type activeForce struct {
	inst   *instance
	motion action.ForceMotion
	// onComplete is nil for forces installed by events or hits.
	onComplete *action.Event
	seeking    bool
	ended      bool
}

// forceTiming resolves a force duration against its instance, with physics
// data derived from the seek distance.
type forceTiming struct {
	inst       *instance
	physics    float64
	hasPhysics bool
}

func (t forceTiming) AnimationEnd(n int) (float64, bool) { return t.inst.AnimationEnd(n) }
func (t forceTiming) PhysicsFrames() (float64, bool)     { return t.physics, t.hasPhysics }

func (c *Character) startForce(e entry) {
	f, inst := e.force, e.inst
	af := &activeForce{inst: inst, motion: f.Motion}
	if f.OnComplete.Effect != nil {
		ev := f.OnComplete
		af.onComplete = &ev
	}

	ctx := forceTiming{inst: inst}
	if f.Motion.Type == action.ForcePosition {
		target, ok := c.forceTarget(f.Motion, inst.input)
		switch {
		case !ok:
			ctx.hasPhysics = true
		case c.Profile.MinWalkSpeed > 0:
			dist := target.Distance(c.Position())
			ctx.physics = math.Ceil(dist / c.Profile.MinWalkSpeed * c.frameRate())
			ctx.hasPhysics = true
		}
	}

	rel := e.due - inst.startAt
	end, err := f.Duration.ResolveEnd(rel, ctx)
	if err != nil {
		if f.Duration.Kind != action.TimingPhysics {
			log.Printf("combat: %s: force duration %s: %v", c.Name, f.Duration, err)
		}
		// Without a walk speed only arrival ends a seek.
		end = math.Inf(1)
	}
	c.installForce(af, inst.startAt+end)
}

// installForce hands af to the movement controller and queues its removal at
// the clock time end.
func (c *Character) installForce(af *activeForce, end float64) {
	m := af.motion
	switch m.Type {
	case action.ForceVelocity:
		v := m.Velocity
		if m.RelativeToFacing {
			v = action.Mirror(v, c.facingLeft)
		}
		c.ports.Mover.SetVelocity(v)
	case action.ForcePosition:
		target, ok := c.forceTarget(m, af.inst.input)
		if ok {
			if m.FaceTarget {
				c.FaceToward(target)
			}
			c.ports.Mover.SeekPosition(target, m.FaceTarget)
			af.seeking = true
		}
	}
	if af.seeking && math.IsInf(end, 1) {
		// Arrival is the only way out; keep no end entry.
		af.inst.forces = append(af.inst.forces, af)
		return
	}
	if math.IsInf(end, 1) {
		end = c.clock
	}
	af.inst.forces = append(af.inst.forces, af)
	c.sched.add(entry{
		due:    end,
		kind:   entryForceEnd,
		inst:   af.inst,
		owned:  true,
		active: af,
	})
}

// forceTarget resolves the destination of a position force.
func (c *Character) forceTarget(m action.ForceMotion, in action.Input) (cp.Vector, bool) {
	switch m.Target {
	case action.TargetTouchedObject:
		if c.arena == nil {
			return cp.Vector{}, false
		}
		other, ok := c.arena.byID[in.Target]
		if !ok || other == c {
			return cp.Vector{}, false
		}
		return other.Position(), true
	case action.TargetTouchedPosition:
		return in.Point, true
	case action.TargetCustomPosition:
		return c.Position().Add(action.Mirror(m.CustomTarget, c.facingLeft)), true
	}
	return cp.Vector{}, false
}

// checkForces ends position forces whose seek has arrived.
func (c *Character) checkForces() {
	inst := c.current
	if inst == nil || len(inst.forces) == 0 {
		return
	}
	for _, af := range append([]*activeForce(nil), inst.forces...) {
		if af.seeking && !c.ports.Mover.Seeking() {
			c.endForce(af)
		}
	}
}

// endForce removes af and queues its completion event.
func (c *Character) endForce(af *activeForce) {
	if af == nil || af.ended {
		return
	}
	af.ended = true
	inst := af.inst
	for i, f := range inst.forces {
		if f == af {
			inst.forces = append(inst.forces[:i], inst.forces[i+1:]...)
			break
		}
	}
	c.sched.removeIf(func(e *entry) bool { return e.active == af })
	c.stopForce(af)
	if af.onComplete != nil && inst.state == StateActive {
		c.schedule(*af.onComplete, inst, true)
	}
}

func (c *Character) stopForce(af *activeForce) {
	if af.seeking {
		c.ports.Mover.CancelSeek()
		return
	}
	if af.motion.Type == action.ForceVelocity {
		c.ports.Mover.SetVelocity(cp.Vector{})
	}
}
