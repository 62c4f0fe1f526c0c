package action

import "fmt"

// TimingKind selects how a CastingTime resolves.
type TimingKind int

const (
	// TimingFrame counts frames.
	TimingFrame TimingKind = iota
	// TimingAnimationComplete waits for an animation of the chosen sequence
	// to finish playing.
	TimingAnimationComplete
	// TimingPhysics derives the frame count from the character's physics
	// profile.
	TimingPhysics
)

var timingKindNames = []string{"frame", "wait_for_animation_complete", "use_physics_data"}

func (k TimingKind) String() string { return enumName(timingKindNames, int(k)) }

// CastingTime is a point or span on an action's timeline.
type CastingTime struct {
	Kind      TimingKind
	Frames    int
	Animation int
}

// Frame returns a CastingTime of n frames.
func Frame(n int) CastingTime {
	return CastingTime{Kind: TimingFrame, Frames: n}
}

// WaitForAnimationComplete returns a CastingTime that resolves to the end of
// animation i of the chosen sequence.
func WaitForAnimationComplete(i int) CastingTime {
	return CastingTime{Kind: TimingAnimationComplete, Animation: i}
}

// UsePhysicsData returns a CastingTime resolved from the physics profile.
func UsePhysicsData() CastingTime {
	return CastingTime{Kind: TimingPhysics}
}

func (c CastingTime) String() string {
	switch c.Kind {
	case TimingFrame:
		return fmt.Sprintf("frame(%d)", c.Frames)
	case TimingAnimationComplete:
		return fmt.Sprintf("wait_for_animation_complete(%d)", c.Animation)
	case TimingPhysics:
		return "use_physics_data"
	}
	return c.Kind.String()
}

// TimingContext supplies the facts a CastingTime needs to resolve.
type TimingContext interface {
	// AnimationEnd returns the frame, counted from action start, at which
	// animation i of the chosen sequence finishes.
	AnimationEnd(i int) (float64, bool)
	// PhysicsFrames returns the physics-derived frame count.
	PhysicsFrames() (float64, bool)
}

// Resolve returns the frame offset from action start.
func (c CastingTime) Resolve(ctx TimingContext) (float64, error) {
	switch c.Kind {
	case TimingFrame:
		if c.Frames < 0 {
			return 0, nil
		}
		return float64(c.Frames), nil
	case TimingAnimationComplete:
		if ctx == nil {
			return 0, fmt.Errorf("%w: %d", ErrAnimationIndex, c.Animation)
		}
		end, ok := ctx.AnimationEnd(c.Animation)
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrAnimationIndex, c.Animation)
		}
		return end, nil
	case TimingPhysics:
		if ctx == nil {
			return 0, ErrPhysicsData
		}
		n, ok := ctx.PhysicsFrames()
		if !ok {
			return 0, ErrPhysicsData
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownTiming, c.Kind)
}

// ResolveEnd resolves c as a span beginning at start. Frame and physics spans
// are relative to start; animation completion is absolute on the action
// timeline. The result is never earlier than start.
func (c CastingTime) ResolveEnd(start float64, ctx TimingContext) (float64, error) {
	v, err := c.Resolve(ctx)
	if err != nil {
		return start, err
	}
	if c.Kind == TimingFrame || c.Kind == TimingPhysics {
		v += start
	}
	if v < start {
		v = start
	}
	return v, nil
}

// AnimationLibrary reports clip lengths in frames.
type AnimationLibrary interface {
	ClipFrames(name string) (int, bool)
}

// Ends returns the cumulative end frame of every animation in the sequence.
func (s AnimationSequence) Ends(lib AnimationLibrary) ([]float64, error) {
	if len(s.Animations) == 0 {
		return nil, ErrEmptySequence
	}
	ends := make([]float64, len(s.Animations))
	total := 0.0
	for i, name := range s.Animations {
		n, ok := 0, false
		if lib != nil {
			n, ok = lib.ClipFrames(name)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClip, name)
		}
		total += float64(n)
		ends[i] = total
	}
	return ends, nil
}

// SequenceTiming resolves animation ends against a fixed list of end frames.
type SequenceTiming struct {
	EndFrames []float64
	Physics   float64
	// HasPhysics marks Physics as valid.
	HasPhysics bool
}

func (t SequenceTiming) AnimationEnd(i int) (float64, bool) {
	if i < 0 || i >= len(t.EndFrames) {
		return 0, false
	}
	return t.EndFrames[i], true
}

func (t SequenceTiming) PhysicsFrames() (float64, bool) {
	return t.Physics, t.HasPhysics
}
