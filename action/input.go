package action

import "github.com/jakecoffman/cp"

// InputType is the gesture kind that triggers an action.
type InputType int

const (
	InputClick InputType = iota
	InputSwipe
)

var inputTypeNames = []string{"click", "swipe"}

func (t InputType) String() string { return enumName(inputTypeNames, int(t)) }

// ParseInputType converts an authored name into an InputType.
func ParseInputType(s string) (InputType, error) {
	v, err := parseEnum(inputTypeNames, "input type", s)
	return InputType(v), err
}

// InputRegion is where a gesture landed relative to the fighters.
type InputRegion int

const (
	RegionEmptySpace InputRegion = iota
	RegionEnemy
	RegionSelf
	RegionAny
)

var inputRegionNames = []string{"empty_space", "enemy", "self", "any"}

func (r InputRegion) String() string { return enumName(inputRegionNames, int(r)) }

// ParseInputRegion converts an authored name into an InputRegion.
func ParseInputRegion(s string) (InputRegion, error) {
	v, err := parseEnum(inputRegionNames, "input region", s)
	return InputRegion(v), err
}

// Matches reports whether two regions are compatible. Any matches every region
// on either side.
func (r InputRegion) Matches(other InputRegion) bool {
	return r == other || r == RegionAny || other == RegionAny
}

// SwipeDirection is the direction of a swipe gesture. Horizontal, Vertical and
// Any are direction classes used by authored triggers.
type SwipeDirection int

const (
	SwipeNone SwipeDirection = iota
	SwipeAny
	SwipeHorizontal
	SwipeVertical
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
)

var swipeDirectionNames = []string{"none", "any", "horizontal", "vertical", "left", "right", "up", "down"}

func (d SwipeDirection) String() string { return enumName(swipeDirectionNames, int(d)) }

// ParseSwipeDirection converts an authored name into a SwipeDirection.
func ParseSwipeDirection(s string) (SwipeDirection, error) {
	v, err := parseEnum(swipeDirectionNames, "swipe direction", s)
	return SwipeDirection(v), err
}

// Matches reports whether two swipe directions are equivalent.
//
// Identical directions always match, None included. Apart from that None
// matches nothing, not even Any. Any matches every other direction, and the
// Horizontal and Vertical classes match the specific directions they contain.
func (d SwipeDirection) Matches(other SwipeDirection) bool {
	if d == other {
		return true
	}
	if d == SwipeNone || other == SwipeNone {
		return false
	}
	if d == SwipeAny || other == SwipeAny {
		return true
	}
	return d.contains(other) || other.contains(d)
}

func (d SwipeDirection) contains(o SwipeDirection) bool {
	switch d {
	case SwipeHorizontal:
		return o == SwipeLeft || o == SwipeRight
	case SwipeVertical:
		return o == SwipeUp || o == SwipeDown
	}
	return false
}

// Input is one gesture delivered by an input source.
type Input struct {
	Type   InputType
	Region InputRegion
	Swipe  SwipeDirection
	// Point is the pressed world position.
	Point cp.Vector
	// Target is the ID of the pressed character, 0 when none.
	Target int
}

// Trigger is the input an action responds to.
type Trigger struct {
	Type   InputType
	Region InputRegion
	Swipe  SwipeDirection
}

// Matches reports whether the input satisfies the trigger. The swipe
// direction only takes part for swipe gestures.
func (t Trigger) Matches(in Input) bool {
	if t.Type != in.Type || !t.Region.Matches(in.Region) {
		return false
	}
	if in.Type == InputSwipe {
		return t.Swipe.Matches(in.Swipe)
	}
	return true
}
