package action

import (
	"errors"
	"fmt"
)

// AnimationSequence is an ordered list of animation clips. When LoopLast is
// set the final clip loops until the action is preempted.
type AnimationSequence struct {
	Animations []string
	LoopLast   bool
}

// Action is an authored unit of character behaviour.
//
// Templates loaded from prefabs are never mutated. Each character receives a
// Clone through NewActionSet and only ever runs its own copies.
type Action struct {
	Name      string
	Sequences []AnimationSequence
	HitBoxes  []HitBox
	Forces    []Force
	OnStart   []Event
	Trigger   Trigger

	StartSounds  []string
	ImpactSounds []string

	// Cancelable lets other input-selected actions interrupt this one.
	Cancelable bool
	// OverrideCancelable lets this action interrupt any current action.
	OverrideCancelable bool
	// ListensToInput makes the action eligible for input selection.
	ListensToInput bool
	// Linkable names combat actions that may follow this one mid-action.
	Linkable []string

	linked []*Action
}

// Clone returns a deep copy that shares nothing mutable with a.
func (a *Action) Clone() *Action {
	if a == nil {
		return nil
	}
	out := &Action{
		Name:               a.Name,
		Trigger:            a.Trigger,
		Cancelable:         a.Cancelable,
		OverrideCancelable: a.OverrideCancelable,
		ListensToInput:     a.ListensToInput,
		OnStart:            cloneEvents(a.OnStart),
		StartSounds:        cloneStrings(a.StartSounds),
		ImpactSounds:       cloneStrings(a.ImpactSounds),
		Linkable:           cloneStrings(a.Linkable),
	}
	if a.Sequences != nil {
		out.Sequences = make([]AnimationSequence, len(a.Sequences))
		for i, s := range a.Sequences {
			out.Sequences[i] = AnimationSequence{Animations: cloneStrings(s.Animations), LoopLast: s.LoopLast}
		}
	}
	if a.HitBoxes != nil {
		out.HitBoxes = make([]HitBox, len(a.HitBoxes))
		for i, h := range a.HitBoxes {
			out.HitBoxes[i] = h.clone()
		}
	}
	if a.Forces != nil {
		out.Forces = append([]Force(nil), a.Forces...)
	}
	return out
}

// LinkedActions returns the resolved linkable actions, in declared order.
// Only actions that belong to an ActionSet have them.
func (a *Action) LinkedActions() []*Action {
	if a == nil {
		return nil
	}
	return a.linked
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// Validate reports every configuration error of the action. Clip lengths are
// checked against lib; animation indices must be valid for every sequence
// because the sequence is only chosen when the action starts.
func (a *Action) Validate(lib AnimationLibrary) error {
	if a == nil {
		return ErrUnknownAction
	}
	v := &validator{}
	if a.Name == "" {
		v.add("", ErrUnnamedAction)
	}
	if len(a.Sequences) == 0 {
		v.add("sequences", ErrEmptySequences)
	}
	v.clips = -1
	for i, s := range a.Sequences {
		where := fmt.Sprintf("sequence %d", i)
		if len(s.Animations) == 0 {
			v.add(where, ErrEmptySequence)
			v.clips = 0
			continue
		}
		if _, err := s.Ends(lib); err != nil {
			v.add(where, err)
		}
		if v.clips < 0 || len(s.Animations) < v.clips {
			v.clips = len(s.Animations)
		}
	}
	if v.clips < 0 {
		v.clips = 0
	}

	for i, ev := range a.OnStart {
		v.event(fmt.Sprintf("on_start %d", i), ev)
	}
	for i, f := range a.Forces {
		where := fmt.Sprintf("force %d", i)
		v.time(where+" start", f.Start, false)
		v.time(where+" duration", f.Duration, f.Motion.Type == ForcePosition)
		v.motion(where, f.Motion)
		v.event(where+" on_complete", f.OnComplete)
	}
	for i, h := range a.HitBoxes {
		where := fmt.Sprintf("hitbox %d", i)
		if h.Size.X <= 0 || h.Size.Y <= 0 {
			v.add(where, fmt.Errorf("%w: size %v", ErrInvalidHitBox, h.Size))
		}
		if h.Hit.Damage < 0 || h.Hit.FreezeFrames < 0 || h.Hit.Knockback.Frames < 0 {
			v.add(where, fmt.Errorf("%w: negative hit values", ErrInvalidHitBox))
		}
		if h.Window != nil {
			v.time(where+" window start", h.Window.Start, false)
			v.time(where+" window end", h.Window.End, false)
		}
		for j, ev := range h.Hit.SelfEvents {
			v.event(fmt.Sprintf("%s self_event %d", where, j), ev)
		}
		for j, ev := range h.Hit.AdversaryEvents {
			v.event(fmt.Sprintf("%s adversary_event %d", where, j), ev)
		}
	}

	if len(v.errs) == 0 {
		return nil
	}
	return fmt.Errorf("action %q: %w", a.Name, errors.Join(v.errs...))
}

type validator struct {
	clips int
	errs  []error
}

func (v *validator) add(where string, err error) {
	if where == "" {
		v.errs = append(v.errs, err)
		return
	}
	v.errs = append(v.errs, fmt.Errorf("%s: %w", where, err))
}

func (v *validator) time(where string, c CastingTime, physicsAllowed bool) {
	switch c.Kind {
	case TimingFrame:
	case TimingAnimationComplete:
		if c.Animation < 0 || c.Animation >= v.clips {
			v.add(where, fmt.Errorf("%w: %d (shortest sequence has %d)", ErrAnimationIndex, c.Animation, v.clips))
		}
	case TimingPhysics:
		if !physicsAllowed {
			v.add(where, ErrPhysicsData)
		}
	default:
		v.add(where, fmt.Errorf("%w: %d", ErrUnknownTiming, c.Kind))
	}
}

func (v *validator) motion(where string, m ForceMotion) {
	switch m.Type {
	case ForceVelocity, ForcePosition:
	default:
		v.add(where, fmt.Errorf("%w: type %d", ErrInvalidForceSetup, m.Type))
	}
	if m.Type == ForcePosition && (m.Target < TargetNone || m.Target > TargetCustomPosition) {
		v.add(where, fmt.Errorf("%w: target %d", ErrInvalidForceSetup, m.Target))
	}
}

func (v *validator) event(where string, ev Event) {
	v.time(where+" start", ev.Start, false)
	if ev.Type().HasDuration() {
		v.time(where+" duration", ev.Duration, false)
	}
	switch e := ev.Effect.(type) {
	case PerformAction:
		if e.Action == "" {
			v.add(where, fmt.Errorf("%w: perform_action without action", ErrInvalidPayload))
		}
	case PerformBasicAction:
		if !e.Basic.Valid() {
			v.add(where, fmt.Errorf("%w: basic action %d", ErrInvalidPayload, e.Basic))
		}
	case SoundEffect:
		if e.Clip == "" {
			v.add(where, fmt.Errorf("%w: sound_effect without clip", ErrInvalidPayload))
		}
	case SlowMotion:
		if e.TimeScale <= 0 {
			v.add(where, fmt.Errorf("%w: time scale %v", ErrInvalidPayload, e.TimeScale))
		}
	case ParticleEffect:
		if e.Effect == "" {
			v.add(where, fmt.Errorf("%w: particle_effect without effect", ErrInvalidPayload))
		}
	case ForceEffect:
		v.motion(where, e.Motion)
	case ScreenShake:
		if e.Magnitude < 0 || e.Speed < 0 {
			v.add(where, fmt.Errorf("%w: negative screen shake", ErrInvalidPayload))
		}
	}
}
