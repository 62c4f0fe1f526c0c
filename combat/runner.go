package combat

import (
	"log"
	"math"

	"github.com/milk9111/brawler/action"
)

// State is the lifecycle state of an action instance.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateActive
	StateCanceled
	StateCompleted
)

var stateNames = []string{"idle", "starting", "active", "canceled", "completed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// instance is one run of an action on a character. Times are counted on the
// character clock from startAt.
type instance struct {
	id       int
	action   *action.Action
	input    action.Input
	startAt  float64
	ends     []float64
	animEnd  float64
	state    State
	hitboxes []hitboxWindow
	forces   []*activeForce
}

func (i *instance) AnimationEnd(n int) (float64, bool) {
	if n < 0 || n >= len(i.ends) {
		return 0, false
	}
	return i.ends[n], true
}

func (i *instance) PhysicsFrames() (float64, bool) {
	return 0, false
}

type hitboxWindow struct {
	box  action.HitBox
	from float64
	to   float64
	open bool
	// hit holds the defenders struck during the current window.
	hit map[int]bool
}

// Perform starts a, cancelling the current action. A dead character only
// performs death-related basic actions.
func (c *Character) Perform(a *action.Action, in action.Input) bool {
	if a == nil {
		return false
	}
	if c.dead {
		t, basic := c.set.BasicType(a)
		if !basic || !t.DeathRelated() {
			return false
		}
	}
	c.chain++
	if c.chain > maxChainDepth {
		log.Printf("combat: %s: dropped %q, more than %d actions in one tick", c.Name, a.Name, maxChainDepth)
		return false
	}
	c.cancelCurrent()
	c.start(a, in)
	return true
}

func (c *Character) cancelCurrent() {
	inst := c.current
	if inst == nil {
		return
	}
	if inst.state == StateStarting || inst.state == StateActive {
		inst.state = StateCanceled
	}
	c.sched.cancel(inst)
	for _, f := range inst.forces {
		f.ended = true
		c.stopForce(f)
	}
	inst.forces = nil
	c.closeHitBoxes(inst)
}

func (c *Character) start(a *action.Action, in action.Input) {
	c.nextInst++
	inst := &instance{
		id:      c.nextInst,
		action:  a,
		input:   in,
		startAt: c.clock,
		state:   StateStarting,
	}
	c.current = inst
	if t, ok := c.set.BasicType(a); ok && t == action.BasicIdle {
		c.combo = 0
	}

	var seq action.AnimationSequence
	if len(a.Sequences) > 0 {
		seq = a.Sequences[c.rng.Intn(len(a.Sequences))]
	}
	ends, err := seq.Ends(c.set.Library())
	if err != nil {
		log.Printf("combat: %s: action %q: %v", c.Name, a.Name, err)
	}
	inst.ends = ends
	if len(ends) > 0 {
		inst.animEnd = ends[len(ends)-1]
	}
	if seq.LoopLast {
		inst.animEnd = math.Inf(1)
	}
	c.ports.Animator.PlaySequence(seq.Animations, seq.LoopLast)
	if n := len(a.StartSounds); n > 0 {
		c.ports.Audio.PlaySound(a.StartSounds[c.rng.Intn(n)])
	}

	inst.hitboxes = make([]hitboxWindow, len(a.HitBoxes))
	for i, hb := range a.HitBoxes {
		w := hitboxWindow{box: hb, from: 0, to: math.Inf(1)}
		if hb.Window != nil {
			w.from = c.resolve(hb.Window.Start, 0, inst)
			w.to = c.resolve(hb.Window.End, w.from, inst)
		}
		inst.hitboxes[i] = w
	}

	for _, ev := range a.OnStart {
		c.schedule(ev, inst, true)
	}
	for i := range a.Forces {
		f := &a.Forces[i]
		c.sched.add(entry{
			due:   inst.startAt + c.resolve(f.Start, 0, inst),
			kind:  entryForceStart,
			inst:  inst,
			owned: true,
			force: f,
		})
	}
	inst.state = StateActive
}

// resolve resolves a casting time as a span starting at from. Errors were
// reported when the action was loaded, so they fall back to from.
func (c *Character) resolve(t action.CastingTime, from float64, ctx action.TimingContext) float64 {
	v, err := t.ResolveEnd(from, ctx)
	if err != nil {
		log.Printf("combat: %s: %s: %v", c.Name, t, err)
	}
	return v
}

// schedule queues ev on the timeline of inst, relative to the current
// clock. Owned events are discarded when inst ends.
func (c *Character) schedule(ev action.Event, inst *instance, owned bool) {
	from := math.Max(0, c.clock-inst.startAt)
	c.sched.add(entry{
		due:   inst.startAt + c.resolve(ev.Start, from, inst),
		kind:  entryEvent,
		inst:  inst,
		owned: owned,
		event: ev,
	})
}

// scheduleRevert queues the undo of an effect started at rel. Reverts belong
// to the character, so a cancelled action still restores what it changed.
func (c *Character) scheduleRevert(ev action.Event, inst *instance, rel float64, undo func()) {
	end := c.resolve(ev.Duration, rel, inst)
	c.sched.add(entry{
		due:    inst.startAt + end,
		kind:   entryRevert,
		inst:   inst,
		revert: undo,
	})
}

func (c *Character) updateHitBoxes() {
	inst := c.current
	if inst == nil || inst.state != StateActive {
		return
	}
	rel := c.clock - inst.startAt
	for i := range inst.hitboxes {
		hb := &inst.hitboxes[i]
		open := rel >= hb.from && rel < hb.to
		if open && !hb.open {
			hb.hit = make(map[int]bool)
		}
		hb.open = open
	}
}

func (c *Character) closeHitBoxes(inst *instance) {
	for i := range inst.hitboxes {
		inst.hitboxes[i].open = false
	}
}

func (c *Character) checkCompletion() {
	inst := c.current
	if inst == nil || inst.state != StateActive {
		return
	}
	if c.clock-inst.startAt < inst.animEnd || len(inst.forces) > 0 || c.sched.pending(inst) {
		return
	}
	inst.state = StateCompleted
	c.closeHitBoxes(inst)

	if c.dead {
		if t, ok := c.set.BasicType(inst.action); ok && t == action.BasicDeath {
			return
		}
		c.Perform(c.set.Basic(action.BasicDeath), action.Input{})
		return
	}
	c.Perform(c.set.Basic(action.BasicIdle), action.Input{})
}

// markDead records the death and tells the death handler exactly once.
func (c *Character) markDead() {
	c.dead = true
	if c.deathNotified {
		return
	}
	c.deathNotified = true
	c.ports.Death.OnDeath(c)
}

func (c *Character) die() {
	c.health = 0
	c.markDead()
	if t, ok := c.set.BasicType(c.CurrentAction()); ok && (t == action.BasicDeath || t == action.BasicDeathKnockback) {
		return
	}
	c.Perform(c.set.Basic(action.BasicDeath), action.Input{})
}
