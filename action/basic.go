package action

import "fmt"

// BasicActionType names a slot of the fixed basic action roster.
type BasicActionType int

const (
	BasicIdle BasicActionType = iota
	BasicWalk
	BasicHit
	BasicKnockback
	BasicKnockbackRise
	BasicDeath
	BasicDeathKnockback
	BasicNull

	basicActionCount
)

var basicActionNames = []string{
	"idle",
	"walk",
	"hit",
	"knockback",
	"knockback_rise",
	"death",
	"death_knockback",
	"null",
}

func (t BasicActionType) String() string { return enumName(basicActionNames, int(t)) }

// ParseBasicActionType converts an authored name into a BasicActionType.
func ParseBasicActionType(s string) (BasicActionType, error) {
	v, err := parseEnum(basicActionNames, "basic action", s)
	return BasicActionType(v), err
}

// Valid reports whether t names a roster slot.
func (t BasicActionType) Valid() bool {
	return t >= 0 && t < basicActionCount
}

// DeathRelated reports whether the action may run on a dead character.
func (t BasicActionType) DeathRelated() bool {
	return t == BasicDeath || t == BasicDeathKnockback || t == BasicNull
}

// AllBasicActionTypes returns the roster in slot order.
func AllBasicActionTypes() []BasicActionType {
	out := make([]BasicActionType, basicActionCount)
	for i := range out {
		out[i] = BasicActionType(i)
	}
	return out
}

// BasicActions holds one action per roster slot.
type BasicActions [basicActionCount]*Action

// Init fills every empty slot with its default action.
func (b *BasicActions) Init() {
	for i, a := range b {
		if a == nil {
			b[i] = DefaultBasicAction(BasicActionType(i))
		}
	}
}

// Get returns the action in slot t, nil when the slot is empty.
func (b *BasicActions) Get(t BasicActionType) *Action {
	if !t.Valid() {
		return nil
	}
	return b[t]
}

// Set stores a in slot t.
func (b *BasicActions) Set(t BasicActionType, a *Action) {
	if !t.Valid() {
		panic(fmt.Sprintf("action: basic action type %d out of range", t))
	}
	b[t] = a
}

// DefaultBasicAction builds the stock action for a roster slot. Clip names
// are the conventional ones every character rig is expected to export.
func DefaultBasicAction(t BasicActionType) *Action {
	a := &Action{Name: t.String()}
	switch t {
	case BasicIdle, BasicNull:
		a.Sequences = []AnimationSequence{{Animations: []string{"idle"}, LoopLast: true}}
		a.Cancelable = true
	case BasicWalk:
		a.Sequences = []AnimationSequence{{Animations: []string{"walk"}, LoopLast: true}}
		a.Cancelable = true
		a.ListensToInput = true
		a.Trigger = Trigger{Type: InputClick, Region: RegionEmptySpace}
		a.Forces = []Force{{
			Motion: ForceMotion{
				Type:       ForcePosition,
				Target:     TargetTouchedPosition,
				FaceTarget: true,
			},
			Start:      Frame(0),
			Duration:   UsePhysicsData(),
			OnComplete: Event{Effect: PerformBasicAction{Basic: BasicIdle}},
		}}
	case BasicHit:
		a.Sequences = []AnimationSequence{{Animations: []string{"hit"}}}
	case BasicKnockback:
		a.Sequences = []AnimationSequence{{Animations: []string{"knockback"}}}
		a.OnStart = []Event{{
			Start:  WaitForAnimationComplete(0),
			Effect: PerformBasicAction{Basic: BasicKnockbackRise},
		}}
	case BasicKnockbackRise:
		a.Sequences = []AnimationSequence{{Animations: []string{"rise"}}}
	case BasicDeath:
		a.Sequences = []AnimationSequence{{Animations: []string{"death"}, LoopLast: true}}
		a.OnStart = []Event{{
			Start:  WaitForAnimationComplete(0),
			Effect: Die{},
		}}
	case BasicDeathKnockback:
		a.Sequences = []AnimationSequence{{Animations: []string{"knockback"}}}
		a.OnStart = []Event{{
			Start:  WaitForAnimationComplete(0),
			Effect: PerformBasicAction{Basic: BasicDeath},
		}}
	default:
		panic(fmt.Sprintf("action: no default for basic action type %d", t))
	}
	return a
}
