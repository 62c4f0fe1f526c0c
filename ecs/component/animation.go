package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// AnimationDef is one clip. FrameCount is measured in simulation ticks.
type AnimationDef struct {
	Name       string
	FrameCount int
	// Bones are offsets from the entity origin for a right-facing pose.
	Bones map[string]cp.Vector
}

// AnimationDefs is the clip library of one character.
type AnimationDefs map[string]AnimationDef

// ClipFrames returns the length of a clip in ticks.
func (d AnimationDefs) ClipFrames(name string) (int, bool) {
	def, ok := d[name]
	if !ok {
		return 0, false
	}
	return def.FrameCount, true
}

type Animation struct {
	Defs     AnimationDefs
	Sequence []string
	LoopLast bool
	// Index is the clip of Sequence being played, Frame the tick inside it.
	Index   int
	Frame   int
	Playing bool
	// Elapsed is scaled clip time not yet turned into a whole Frame.
	Elapsed float64
	// FreezeFrames holds the current pose while positive.
	FreezeFrames int
}

// Current returns the clip being played.
func (a *Animation) Current() (AnimationDef, bool) {
	if a == nil || a.Index < 0 || a.Index >= len(a.Sequence) {
		return AnimationDef{}, false
	}
	def, ok := a.Defs[a.Sequence[a.Index]]
	return def, ok
}

// Bone returns the offset of a bone in the current clip, mirrored when
// facing left.
func (a *Animation) Bone(name string, facingLeft bool) (cp.Vector, bool) {
	def, ok := a.Current()
	if !ok {
		return cp.Vector{}, false
	}
	off, ok := def.Bones[name]
	if !ok {
		return cp.Vector{}, false
	}
	if facingLeft {
		off.X = -off.X
	}
	return off, true
}

// FreezeTicks converts a freeze in seconds to whole ticks at tps.
func FreezeTicks(seconds, tps float64) int {
	if seconds <= 0 || tps <= 0 {
		return 0
	}
	return int(math.Ceil(seconds*tps - 1e-9))
}

var AnimationComponent = NewComponent[Animation]()
