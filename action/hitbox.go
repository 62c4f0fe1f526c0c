package action

import "github.com/jakecoffman/cp"

// Knockback pushes a defender away from the attacker.
type Knockback struct {
	// Speed in units per second. Zero means a plain hit reaction.
	Speed  float64
	Frames int
}

// HitInfo is what a hitbox does to the characters involved in a hit.
type HitInfo struct {
	Damage          float64
	FreezeFrames    int
	Knockback       Knockback
	SelfEvents      []Event
	AdversaryEvents []Event
}

// HitWindow narrows the frames during which a hitbox is enabled. Start is
// measured from action start and End from Start.
type HitWindow struct {
	Start CastingTime
	End   CastingTime
}

// HitBox is an offensive rectangle attached to a bone, in bone-local space.
type HitBox struct {
	Bone   string
	Offset cp.Vector
	Size   cp.Vector
	// Window is nil when the hitbox stays enabled for the whole action.
	Window *HitWindow
	Hit    HitInfo
}

// Rect returns the world rectangle of the hitbox.
func (h HitBox) Rect(anchor cp.Vector, facingLeft bool) cp.BB {
	return boxRect(anchor, h.Offset, h.Size, facingLeft)
}

func (h HitBox) clone() HitBox {
	out := h
	if h.Window != nil {
		w := *h.Window
		out.Window = &w
	}
	out.Hit.SelfEvents = cloneEvents(h.Hit.SelfEvents)
	out.Hit.AdversaryEvents = cloneEvents(h.Hit.AdversaryEvents)
	return out
}

// HurtBox is a defensive rectangle attached to a bone.
type HurtBox struct {
	Bone   string
	Offset cp.Vector
	Size   cp.Vector
}

// Rect returns the world rectangle of the hurtbox.
func (h HurtBox) Rect(anchor cp.Vector, facingLeft bool) cp.BB {
	return boxRect(anchor, h.Offset, h.Size, facingLeft)
}

// Mirror flips an offset horizontally when facing left.
func Mirror(v cp.Vector, facingLeft bool) cp.Vector {
	if facingLeft {
		v.X = -v.X
	}
	return v
}

func boxRect(anchor, offset, size cp.Vector, facingLeft bool) cp.BB {
	c := anchor.Add(Mirror(offset, facingLeft))
	hw, hh := size.X/2, size.Y/2
	return cp.BB{L: c.X - hw, B: c.Y - hh, R: c.X + hw, T: c.Y + hh}
}
