package action

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// EventType identifies an event variant.
type EventType int

const (
	EventNone EventType = iota
	EventPerformAction
	EventPerformBasicAction
	EventSoundEffect
	EventSlowMotion
	EventParticleEffect
	EventForce
	EventColorFlash
	EventScreenShake
	EventTween
	EventFreezeAnimation
	EventDie
)

var eventTypeNames = []string{
	"none",
	"perform_action",
	"perform_basic_action",
	"sound_effect",
	"slow_motion",
	"particle_effect",
	"force",
	"color_flash",
	"screen_shake",
	"tween",
	"freeze_animation",
	"die",
}

func (t EventType) String() string { return enumName(eventTypeNames, int(t)) }

// ParseEventType converts an authored name into an EventType.
func ParseEventType(s string) (EventType, error) {
	v, err := parseEnum(eventTypeNames, "event type", s)
	return EventType(v), err
}

// HasDuration reports whether the variant has an ongoing effect that is
// reverted when its duration elapses.
func (t EventType) HasDuration() bool {
	switch t {
	case EventSlowMotion, EventForce, EventColorFlash, EventScreenShake, EventTween, EventFreezeAnimation:
		return true
	}
	return false
}

// Effect is the payload of an event. Each variant is its own type, so a
// payload only exists for the variant that uses it.
type Effect interface {
	Type() EventType
	effect()
}

type NoEffect struct{}

type PerformAction struct {
	Action string
}

type PerformBasicAction struct {
	Basic BasicActionType
}

type SoundEffect struct {
	Clip string
}

type SlowMotion struct {
	TimeScale float64
}

// ParticleEffect spawns a particle effect at a bone of the firing character.
type ParticleEffect struct {
	Effect     string
	SpawnPoint string
	Offset     cp.Vector
}

// ForceEffect applies a force for the event's duration. It carries motion
// only; completion events belong to action forces.
type ForceEffect struct {
	Motion ForceMotion
}

type ColorFlash struct {
	Color         color.NRGBA
	RenderInFront bool
}

type ScreenShake struct {
	Speed     float64
	Magnitude float64
}

// Tween interpolates a render property of the firing character.
type Tween struct {
	Property string
	From     float64
	To       float64
}

type FreezeAnimation struct{}

type Die struct{}

func (NoEffect) Type() EventType           { return EventNone }
func (PerformAction) Type() EventType      { return EventPerformAction }
func (PerformBasicAction) Type() EventType { return EventPerformBasicAction }
func (SoundEffect) Type() EventType        { return EventSoundEffect }
func (SlowMotion) Type() EventType         { return EventSlowMotion }
func (ParticleEffect) Type() EventType     { return EventParticleEffect }
func (ForceEffect) Type() EventType        { return EventForce }
func (ColorFlash) Type() EventType         { return EventColorFlash }
func (ScreenShake) Type() EventType        { return EventScreenShake }
func (Tween) Type() EventType              { return EventTween }
func (FreezeAnimation) Type() EventType    { return EventFreezeAnimation }
func (Die) Type() EventType                { return EventDie }

func (NoEffect) effect()           {}
func (PerformAction) effect()      {}
func (PerformBasicAction) effect() {}
func (SoundEffect) effect()        {}
func (SlowMotion) effect()         {}
func (ParticleEffect) effect()     {}
func (ForceEffect) effect()        {}
func (ColorFlash) effect()         {}
func (ScreenShake) effect()        {}
func (Tween) effect()              {}
func (FreezeAnimation) effect()    {}
func (Die) effect()                {}

// Event is a timed effect. Duration is only read for variants whose type
// HasDuration.
type Event struct {
	Start    CastingTime
	Duration CastingTime
	Effect   Effect
}

// Type returns the variant of the event; a nil effect is EventNone.
func (e Event) Type() EventType {
	if e.Effect == nil {
		return EventNone
	}
	return e.Effect.Type()
}

func cloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	// Effects are plain values, so a shallow element copy is a deep copy.
	return append([]Event(nil), events...)
}
