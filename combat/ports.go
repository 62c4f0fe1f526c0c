package combat

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

// Animator plays a character's skeletal animation.
type Animator interface {
	PlaySequence(animations []string, loopLast bool)
	FreezeFor(seconds float64)
	// BonePosition returns the world position of a bone.
	BonePosition(bone string) (cp.Vector, bool)
}

// Mover is the movement controller of a character.
type Mover interface {
	Position() cp.Vector
	SetVelocity(v cp.Vector)
	SeekPosition(p cp.Vector, faceOnArrival bool)
	CancelSeek()
	// Seeking reports whether a seek is still travelling to its target.
	Seeking() bool
}

type Audio interface {
	PlaySound(clip string)
}

type Particles interface {
	SpawnParticle(effect string, at cp.Vector, facingLeft bool)
}

// Effects receives visual effect requests. on is false when the effect is
// reverted.
type Effects interface {
	ColorFlash(c color.NRGBA, renderInFront bool, on bool)
	ScreenShake(speed, magnitude float64, on bool)
	Tween(t action.Tween, on bool)
}

type DeathHandler interface {
	OnDeath(c *Character)
}

// Ports bundles the collaborators of one character. Nil ports are replaced
// by no-ops.
type Ports struct {
	Animator  Animator
	Mover     Mover
	Audio     Audio
	Particles Particles
	Effects   Effects
	Death     DeathHandler
}

func (p Ports) withDefaults() Ports {
	if p.Animator == nil {
		p.Animator = nopAnimator{}
	}
	if p.Mover == nil {
		p.Mover = &nopMover{}
	}
	if p.Audio == nil {
		p.Audio = nopAudio{}
	}
	if p.Particles == nil {
		p.Particles = nopParticles{}
	}
	if p.Effects == nil {
		p.Effects = nopEffects{}
	}
	if p.Death == nil {
		p.Death = nopDeath{}
	}
	return p
}

type nopAnimator struct{}

func (nopAnimator) PlaySequence([]string, bool)           {}
func (nopAnimator) FreezeFor(float64)                     {}
func (nopAnimator) BonePosition(string) (cp.Vector, bool) { return cp.Vector{}, false }

// nopMover stands still; seeks arrive instantly.
type nopMover struct {
	pos cp.Vector
}

func (m *nopMover) Position() cp.Vector              { return m.pos }
func (m *nopMover) SetVelocity(cp.Vector)            {}
func (m *nopMover) SeekPosition(p cp.Vector, _ bool) { m.pos = p }
func (m *nopMover) CancelSeek()                      {}
func (m *nopMover) Seeking() bool                    { return false }

type nopAudio struct{}

func (nopAudio) PlaySound(string) {}

type nopParticles struct{}

func (nopParticles) SpawnParticle(string, cp.Vector, bool) {}

type nopEffects struct{}

func (nopEffects) ColorFlash(color.NRGBA, bool, bool) {}
func (nopEffects) ScreenShake(float64, float64, bool) {}
func (nopEffects) Tween(action.Tween, bool)           {}

type nopDeath struct{}

func (nopDeath) OnDeath(*Character) {}
