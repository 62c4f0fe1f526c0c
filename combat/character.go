package combat

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

// maxChainDepth caps how many actions one character may start in a single
// tick.
const maxChainDepth = 8

// Profile is the physical profile of a character, in units per second.
type Profile struct {
	MinWalkSpeed float64
	MaxWalkSpeed float64
}

// Config describes a character before it joins an arena.
type Config struct {
	ID         int
	Name       string
	Faction    Faction
	MaxHealth  float64
	Profile    Profile
	HurtBoxes  []action.HurtBox
	FacingLeft bool
	Seed       int64
}

// Character is the runtime state of one fighter.
type Character struct {
	ID      int
	Name    string
	Faction Faction
	Profile Profile

	health    float64
	maxHealth float64
	combo     int

	dead          bool
	deathNotified bool
	facingLeft    bool

	hurtBoxes []action.HurtBox
	set       *action.ActionSet
	ports     Ports
	rng       *rand.Rand
	arena     *Arena

	// clock is the scaled action time; it only moves while not frozen.
	clock  float64
	freeze int

	sched    scheduler
	current  *instance
	nextInst int
	chain    int
}

// NewCharacter builds a character. It starts acting once added to an arena.
func NewCharacter(cfg Config, set *action.ActionSet, ports Ports) *Character {
	hp := cfg.MaxHealth
	if hp <= 0 {
		hp = 1
	}
	return &Character{
		ID:         cfg.ID,
		Name:       cfg.Name,
		Faction:    cfg.Faction,
		Profile:    cfg.Profile,
		health:     hp,
		maxHealth:  hp,
		facingLeft: cfg.FacingLeft,
		hurtBoxes:  append([]action.HurtBox(nil), cfg.HurtBoxes...),
		set:        set,
		ports:      ports.withDefaults(),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (c *Character) Health() float64    { return c.health }
func (c *Character) MaxHealth() float64 { return c.maxHealth }
func (c *Character) Combo() int         { return c.combo }
func (c *Character) Dead() bool         { return c.dead }
func (c *Character) FacingLeft() bool   { return c.facingLeft }
func (c *Character) Frozen() bool       { return c.freeze > 0 }
func (c *Character) Clock() float64     { return c.clock }

func (c *Character) ActionSet() *action.ActionSet { return c.set }

// CurrentAction returns the action being performed.
func (c *Character) CurrentAction() *action.Action {
	if c.current == nil {
		return nil
	}
	return c.current.action
}

// State returns the lifecycle state of the current action.
func (c *Character) State() State {
	if c.current == nil {
		return StateIdle
	}
	return c.current.state
}

func (c *Character) Position() cp.Vector {
	return c.ports.Mover.Position()
}

// Face turns the character.
func (c *Character) Face(left bool) {
	c.facingLeft = left
}

// FaceToward turns the character toward p. A point straight above or below
// keeps the current facing.
func (c *Character) FaceToward(p cp.Vector) {
	dx := p.X - c.Position().X
	if dx < 0 {
		c.facingLeft = true
	} else if dx > 0 {
		c.facingLeft = false
	}
}

// Anchor returns the world position of a bone, or the character position when
// the bone is unknown.
func (c *Character) Anchor(bone string) cp.Vector {
	if bone != "" {
		if p, ok := c.ports.Animator.BonePosition(bone); ok {
			return p
		}
	}
	return c.Position()
}

// HurtBoxRects returns the world rectangles of the character's hurtboxes.
func (c *Character) HurtBoxRects() []cp.BB {
	out := make([]cp.BB, 0, len(c.hurtBoxes))
	for _, h := range c.hurtBoxes {
		out = append(out, h.Rect(c.Anchor(h.Bone), c.facingLeft))
	}
	return out
}

// ActiveHitBox is an enabled hitbox of the current action.
type ActiveHitBox struct {
	Index int
	Rect  cp.BB
}

// ActiveHitBoxes returns the hitboxes whose window is open this tick.
func (c *Character) ActiveHitBoxes() []ActiveHitBox {
	if c.current == nil || c.dead {
		return nil
	}
	var out []ActiveHitBox
	for i := range c.current.hitboxes {
		hb := &c.current.hitboxes[i]
		if !hb.open {
			continue
		}
		out = append(out, ActiveHitBox{Index: i, Rect: hb.box.Rect(c.Anchor(hb.box.Bone), c.facingLeft)})
	}
	return out
}

// Freeze pauses animation and the action clock for seconds of real time.
func (c *Character) Freeze(seconds float64) {
	if seconds <= 0 {
		return
	}
	c.ports.Animator.FreezeFor(seconds)
	frames := int(math.Ceil(seconds*c.frameRate() - 1e-9))
	if frames > c.freeze {
		c.freeze = frames
	}
}

// SetActionSet swaps the catalog, as after a prefab reload. A living
// character restarts from Idle. A dead one keeps playing its death action,
// which is moved to the matching slot of the new roster.
func (c *Character) SetActionSet(set *action.ActionSet) {
	if set == nil {
		return
	}
	old := c.set
	c.set = set
	if c.dead {
		if inst := c.current; inst != nil && old != nil {
			if t, ok := old.BasicType(inst.action); ok {
				inst.action = set.Basic(t)
			}
		}
		return
	}
	c.chain = 0
	c.Perform(set.Basic(action.BasicIdle), action.Input{})
}

// HandleInput selects and performs the action an input calls for. It
// reports whether an action started.
func (c *Character) HandleInput(in action.Input) bool {
	if c.dead {
		return false
	}
	a := c.set.SelectAction(in, c.CurrentAction())
	if a == nil {
		return false
	}
	return c.Perform(a, in)
}

func (c *Character) frameRate() float64 {
	if c.arena == nil {
		return DefaultFrameRate
	}
	return c.arena.frameRate
}

func (c *Character) timeScale() float64 {
	if c.arena == nil {
		return 1
	}
	return c.arena.timeScale.Scale()
}

// advance runs one tick of the character.
func (c *Character) advance() {
	if c.freeze > 0 {
		c.freeze--
		return
	}
	c.clock += c.timeScale()
	c.poll()
	c.checkForces()
	c.poll()
	c.updateHitBoxes()
	c.checkCompletion()
}

func (c *Character) poll() {
	for {
		e, ok := c.sched.popDue(c.clock)
		if !ok {
			return
		}
		c.fire(e)
	}
}

func (c *Character) fire(e entry) {
	switch e.kind {
	case entryEvent:
		c.applyEvent(e.event, e.inst, e.due)
	case entryRevert:
		if e.revert != nil {
			e.revert()
		}
	case entryForceStart:
		c.startForce(e)
	case entryForceEnd:
		c.endForce(e.active)
	}
}
