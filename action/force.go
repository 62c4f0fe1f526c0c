package action

import "github.com/jakecoffman/cp"

// ForceType selects how a force moves a character.
type ForceType int

const (
	ForceVelocity ForceType = iota
	ForcePosition
)

var forceTypeNames = []string{"velocity", "position"}

func (t ForceType) String() string { return enumName(forceTypeNames, int(t)) }

// ParseForceType converts an authored name into a ForceType.
func ParseForceType(s string) (ForceType, error) {
	v, err := parseEnum(forceTypeNames, "force type", s)
	return ForceType(v), err
}

// ForceTarget is the destination of a position force.
type ForceTarget int

const (
	TargetNone ForceTarget = iota
	TargetTouchedObject
	TargetTouchedPosition
	TargetCustomPosition
)

var forceTargetNames = []string{"none", "touched_object", "touched_position", "custom_position"}

func (t ForceTarget) String() string { return enumName(forceTargetNames, int(t)) }

// ParseForceTarget converts an authored name into a ForceTarget.
func ParseForceTarget(s string) (ForceTarget, error) {
	v, err := parseEnum(forceTargetNames, "force target", s)
	return ForceTarget(v), err
}

// ForceMotion describes the physical part of a force.
type ForceMotion struct {
	Type ForceType
	// Velocity is read for velocity forces, in units per second.
	Velocity         cp.Vector
	RelativeToFacing bool
	// Target, CustomTarget and FaceTarget are read for position forces.
	// CustomTarget is an offset from the character, mirrored by facing.
	Target       ForceTarget
	CustomTarget cp.Vector
	FaceTarget   bool
}

// Force is a timed displacement owned by an action. OnComplete fires once
// when the force ends.
type Force struct {
	Motion     ForceMotion
	Start      CastingTime
	Duration   CastingTime
	OnComplete Event
}
