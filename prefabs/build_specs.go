package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/brawler/action"
)

// BuildActionSet converts the catalog into an action set for one character.
//
// Actions that fail to convert are left out and their errors joined with the
// validation errors of action.NewActionSet. The set is usable whenever it is
// non-nil.
func (c *ActionCatalogSpec) BuildActionSet(lib action.AnimationLibrary) (*action.ActionSet, error) {
	var errs []error
	var basics action.BasicActions
	if c != nil {
		for name, spec := range c.Basic {
			t, err := action.ParseBasicActionType(name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if spec.Name == "" {
				spec.Name = t.String()
			}
			a, err := spec.Build()
			if err != nil {
				errs = append(errs, fmt.Errorf("basic %s: %w", t, err))
				continue
			}
			basics.Set(t, a)
		}
	}
	basics.Init()

	var combat []*action.Action
	if c != nil {
		for _, spec := range c.Actions {
			a, err := spec.Build()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			combat = append(combat, a)
		}
	}

	set, err := action.NewActionSet(basics, combat, lib)
	if err != nil {
		errs = append(errs, err)
	}
	return set, errors.Join(errs...)
}

// Build converts the spec into an action template.
func (s ActionSpec) Build() (*action.Action, error) {
	wrap := func(err error) error { return fmt.Errorf("action %q: %w", s.Name, err) }

	trigger, err := s.Trigger.Build()
	if err != nil {
		return nil, wrap(err)
	}
	a := &action.Action{
		Name:               s.Name,
		Trigger:            trigger,
		Cancelable:         s.Cancelable,
		OverrideCancelable: s.OverrideCancelable,
		ListensToInput:     s.ListensToInput,
		Linkable:           s.Linkable,
		StartSounds:        s.StartSounds,
		ImpactSounds:       s.ImpactSounds,
	}
	for _, seq := range s.Sequences {
		a.Sequences = append(a.Sequences, action.AnimationSequence{Animations: seq.Animations, LoopLast: seq.LoopLast})
	}
	for i, h := range s.Hitboxes {
		hb, err := h.Build()
		if err != nil {
			return nil, wrap(fmt.Errorf("hitbox %d: %w", i, err))
		}
		a.HitBoxes = append(a.HitBoxes, hb)
	}
	for i, f := range s.Forces {
		force, err := f.Build()
		if err != nil {
			return nil, wrap(fmt.Errorf("force %d: %w", i, err))
		}
		a.Forces = append(a.Forces, force)
	}
	events, err := buildEvents(s.OnStart)
	if err != nil {
		return nil, wrap(fmt.Errorf("on_start: %w", err))
	}
	a.OnStart = events
	return a, nil
}

// Build converts the trigger. Omitted fields mean a click on empty space
// with no swipe.
func (t TriggerSpec) Build() (action.Trigger, error) {
	var out action.Trigger
	var err error
	if t.Type != "" {
		if out.Type, err = action.ParseInputType(t.Type); err != nil {
			return out, err
		}
	}
	if t.Region != "" {
		if out.Region, err = action.ParseInputRegion(t.Region); err != nil {
			return out, err
		}
	}
	if t.Swipe != "" {
		if out.Swipe, err = action.ParseSwipeDirection(t.Swipe); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (h HitboxSpec) Build() (action.HitBox, error) {
	out := action.HitBox{
		Bone:   h.Bone,
		Offset: h.Offset.Vector(),
		Size:   h.Size.Vector(),
		Hit: action.HitInfo{
			Damage:       h.Hit.Damage,
			FreezeFrames: h.Hit.FreezeFrames,
			Knockback:    action.Knockback{Speed: h.Hit.Knockback.Speed, Frames: h.Hit.Knockback.Frames},
		},
	}
	if h.Window != nil {
		out.Window = &action.HitWindow{Start: h.Window.Start.CastingTime, End: h.Window.End.CastingTime}
	}
	var err error
	if out.Hit.SelfEvents, err = buildEvents(h.Hit.SelfEvents); err != nil {
		return out, fmt.Errorf("self_events: %w", err)
	}
	if out.Hit.AdversaryEvents, err = buildEvents(h.Hit.AdversaryEvents); err != nil {
		return out, fmt.Errorf("adversary_events: %w", err)
	}
	return out, nil
}

func (f ForceSpec) Build() (action.Force, error) {
	motion, err := f.ForceMotionSpec.Build()
	if err != nil {
		return action.Force{}, err
	}
	out := action.Force{
		Motion:   motion,
		Start:    f.Start.CastingTime,
		Duration: f.Duration.CastingTime,
	}
	if f.OnComplete != nil {
		if out.OnComplete, err = f.OnComplete.Build(); err != nil {
			return out, fmt.Errorf("on_complete: %w", err)
		}
	}
	return out, nil
}

func (m ForceMotionSpec) Build() (action.ForceMotion, error) {
	out := action.ForceMotion{
		Velocity:         m.Velocity.Vector(),
		RelativeToFacing: m.RelativeToFacing,
		CustomTarget:     m.CustomTarget.Vector(),
		FaceTarget:       m.FaceTarget,
	}
	var err error
	if m.Type != "" {
		if out.Type, err = action.ParseForceType(m.Type); err != nil {
			return out, err
		}
	}
	if m.Target != "" {
		if out.Target, err = action.ParseForceTarget(m.Target); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Build converts the event. Only the fields of its type are read.
func (e EventSpec) Build() (action.Event, error) {
	out := action.Event{Start: e.Start.CastingTime, Duration: e.Duration.CastingTime}
	t, err := action.ParseEventType(e.Type)
	if err != nil {
		return out, err
	}
	switch t {
	case action.EventNone:
		out.Effect = action.NoEffect{}
	case action.EventPerformAction:
		out.Effect = action.PerformAction{Action: e.Action}
	case action.EventPerformBasicAction:
		b, err := action.ParseBasicActionType(e.Basic)
		if err != nil {
			return out, err
		}
		out.Effect = action.PerformBasicAction{Basic: b}
	case action.EventSoundEffect:
		out.Effect = action.SoundEffect{Clip: e.Clip}
	case action.EventSlowMotion:
		out.Effect = action.SlowMotion{TimeScale: e.TimeScale}
	case action.EventParticleEffect:
		out.Effect = action.ParticleEffect{Effect: e.Effect, SpawnPoint: e.SpawnPoint, Offset: e.Offset.Vector()}
	case action.EventForce:
		if e.Force == nil {
			return out, fmt.Errorf("force event without force: %w", action.ErrInvalidPayload)
		}
		m, err := e.Force.Build()
		if err != nil {
			return out, err
		}
		out.Effect = action.ForceEffect{Motion: m}
	case action.EventColorFlash:
		out.Effect = action.ColorFlash{Color: e.Color.NRGBA(), RenderInFront: e.RenderInFront}
	case action.EventScreenShake:
		out.Effect = action.ScreenShake{Speed: e.Speed, Magnitude: e.Magnitude}
	case action.EventTween:
		out.Effect = action.Tween{Property: e.Property, From: e.From, To: e.To}
	case action.EventFreezeAnimation:
		out.Effect = action.FreezeAnimation{}
	case action.EventDie:
		out.Effect = action.Die{}
	}
	return out, nil
}

func buildEvents(specs []EventSpec) ([]action.Event, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]action.Event, 0, len(specs))
	for i, s := range specs {
		ev, err := s.Build()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}
