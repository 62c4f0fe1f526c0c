package action

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They are reported when an action is instantiated for a
// character and keep that action out of the character's set.
var (
	ErrUnnamedAction     = errors.New("action has no name")
	ErrEmptySequences    = errors.New("action has no animation sequences")
	ErrEmptySequence     = errors.New("animation sequence is empty")
	ErrUnknownClip       = errors.New("unknown animation clip")
	ErrAnimationIndex    = errors.New("animation index out of range")
	ErrPhysicsData       = errors.New("physics data unavailable")
	ErrUnknownTiming     = errors.New("unknown casting time kind")
	ErrInvalidPayload    = errors.New("invalid event payload")
	ErrInvalidHitBox     = errors.New("invalid hitbox")
	ErrUnknownAction     = errors.New("unknown action")
	ErrDuplicateAction   = errors.New("duplicate action name")
	ErrUnknownEnumValue  = errors.New("unknown value")
	ErrInvalidForceSetup = errors.New("invalid force")
)

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(names []string, what, s string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", what, s, ErrUnknownEnumValue)
}
