package combat

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

// DefaultFrameRate is the simulation rate in ticks per second.
const DefaultFrameRate = 60.0

// Arena owns the characters of a fight and steps them together.
type Arena struct {
	characters []*Character
	byID       map[int]*Character
	frameRate  float64
	frame      int64
	timeScale  *TimeScale
	rng        *rand.Rand
	pending    []pendingHit
}

// pendingHit is an accepted overlap waiting for resolution. The hit data is
// copied so the hit still lands if the attacker's action ends first.
type pendingHit struct {
	attacker *Character
	defender *Character
	info     action.HitInfo
	sounds   []string
}

// NewArena returns an empty arena ticking at frameRate.
func NewArena(frameRate float64, seed int64) *Arena {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Arena{
		byID:      make(map[int]*Character),
		frameRate: frameRate,
		timeScale: NewTimeScale(1),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (a *Arena) FrameRate() float64       { return a.frameRate }
func (a *Arena) Frame() int64             { return a.frame }
func (a *Arena) TimeScale() *TimeScale    { return a.timeScale }
func (a *Arena) Characters() []*Character { return a.characters }

// Character returns the character with the given id.
func (a *Arena) Character(id int) (*Character, bool) {
	c, ok := a.byID[id]
	return c, ok
}

// Add registers c and starts it in Idle.
func (a *Arena) Add(c *Character) error {
	if c == nil {
		return fmt.Errorf("combat: nil character")
	}
	if _, dup := a.byID[c.ID]; dup {
		return fmt.Errorf("combat: duplicate character id %d", c.ID)
	}
	c.arena = a
	a.characters = append(a.characters, c)
	a.byID[c.ID] = c
	c.chain = 0
	c.Perform(c.set.Basic(action.BasicIdle), action.Input{})
	return nil
}

// Remove drops the character with the given id.
func (a *Arena) Remove(id int) {
	c, ok := a.byID[id]
	if !ok {
		return
	}
	delete(a.byID, id)
	for i, other := range a.characters {
		if other == c {
			a.characters = append(a.characters[:i], a.characters[i+1:]...)
			break
		}
	}
	kept := a.pending[:0]
	for _, h := range a.pending {
		if h.attacker != c && h.defender != c {
			kept = append(kept, h)
		}
	}
	a.pending = kept
	c.arena = nil
}

// OnOverlap is called by collision detection when hitbox box of the
// attacker's current action touches the defender. It reports whether the
// overlap was accepted as a hit; each defender is hit at most once per
// hitbox window.
func (a *Arena) OnOverlap(attackerID, defenderID, box int) bool {
	att, ok := a.byID[attackerID]
	if !ok {
		return false
	}
	def, ok := a.byID[defenderID]
	if !ok || att == def || att.dead || !factionCanHit(att.Faction, def.Faction) {
		return false
	}
	inst := att.current
	if inst == nil || inst.state != StateActive || box < 0 || box >= len(inst.hitboxes) {
		return false
	}
	hb := &inst.hitboxes[box]
	if !hb.open || hb.hit[def.ID] {
		return false
	}
	hb.hit[def.ID] = true
	a.pending = append(a.pending, pendingHit{
		attacker: att,
		defender: def,
		info:     hb.box.Hit,
		sounds:   inst.action.ImpactSounds,
	})
	return true
}

// Tick advances the fight by one real frame: time scale overrides expire,
// the overlaps gathered since the last tick resolve, then every character
// steps. The chain budget covers the actions started inside Tick; it is
// reset on the way out too, so input handled between ticks starts fresh.
func (a *Arena) Tick() {
	a.frame++
	a.timeScale.Advance(a.frame)
	a.resetChains()
	defer a.resetChains()

	hits := a.pending
	a.pending = nil
	for _, h := range hits {
		a.resolveHit(h)
	}

	for _, c := range a.characters {
		c.advance()
	}
}

func (a *Arena) resetChains() {
	for _, c := range a.characters {
		c.chain = 0
	}
}

// resolveHit applies one hit. A defender that was already dead only feeds
// the attacker's combo and impact sound.
func (a *Arena) resolveHit(h pendingHit) {
	att, def, info := h.attacker, h.defender, h.info

	if !def.dead {
		def.health -= info.Damage
		killed := def.health <= 0
		if killed {
			def.health = 0
			def.markDead()
		}

		dir := 1.0
		if att.Position().X > def.Position().X {
			dir = -1
		}
		def.Face(dir > 0)

		reaction := action.BasicHit
		switch {
		case killed:
			reaction = action.BasicDeathKnockback
		case info.Knockback.Speed > 0:
			reaction = action.BasicKnockback
		}
		if def.Perform(def.set.Basic(reaction), action.Input{}) && info.Knockback.Speed > 0 && info.Knockback.Frames > 0 {
			inst := def.current
			push := &activeForce{
				inst:   inst,
				motion: action.ForceMotion{Type: action.ForceVelocity, Velocity: cp.Vector{X: info.Knockback.Speed * dir}},
			}
			def.installForce(push, def.clock+float64(info.Knockback.Frames))
		}

		freeze := float64(info.FreezeFrames) / a.frameRate
		att.Freeze(freeze)
		def.Freeze(freeze)

		for _, ev := range info.SelfEvents {
			att.schedule(ev, att.current, false)
		}
		for _, ev := range info.AdversaryEvents {
			def.schedule(ev, def.current, false)
		}
		def.combo = 0
	}

	att.combo++
	if n := len(h.sounds); n > 0 {
		att.ports.Audio.PlaySound(h.sounds[a.rng.Intn(n)])
	}
}
