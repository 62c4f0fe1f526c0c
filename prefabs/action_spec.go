package prefabs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/brawler/action"
	"gopkg.in/yaml.v3"
)

// ActionCatalogSpec is an actions file: optional overrides of the basic
// roster keyed by slot name, and the combat actions in priority order.
type ActionCatalogSpec struct {
	Basic   map[string]ActionSpec `yaml:"basic"`
	Actions []ActionSpec          `yaml:"actions"`
}

func LoadActionCatalog(filename string) (*ActionCatalogSpec, error) {
	spec, err := LoadSpec[ActionCatalogSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ActionSpec struct {
	Name               string         `yaml:"name"`
	Sequences          []SequenceSpec `yaml:"sequences"`
	Trigger            TriggerSpec    `yaml:"trigger"`
	Cancelable         bool           `yaml:"cancelable"`
	OverrideCancelable bool           `yaml:"override_cancelable"`
	ListensToInput     bool           `yaml:"listens_to_input"`
	Linkable           []string       `yaml:"linkable"`
	StartSounds        []string       `yaml:"start_sounds"`
	ImpactSounds       []string       `yaml:"impact_sounds"`
	Hitboxes           []HitboxSpec   `yaml:"hitboxes"`
	Forces             []ForceSpec    `yaml:"forces"`
	OnStart            []EventSpec    `yaml:"on_start"`
}

type SequenceSpec struct {
	Animations []string `yaml:"animations"`
	LoopLast   bool     `yaml:"loop_last"`
}

type TriggerSpec struct {
	Type   string `yaml:"type"`
	Region string `yaml:"region"`
	Swipe  string `yaml:"swipe"`
}

type HitboxSpec struct {
	Bone   string         `yaml:"bone"`
	Offset VectorSpec     `yaml:"offset"`
	Size   VectorSpec     `yaml:"size"`
	Window *HitWindowSpec `yaml:"window"`
	Hit    HitInfoSpec    `yaml:"hit"`
}

// HitWindowSpec opens at Start and stays open for End, measured from Start.
type HitWindowSpec struct {
	Start CastingTimeSpec `yaml:"start"`
	End   CastingTimeSpec `yaml:"end"`
}

type HitInfoSpec struct {
	Damage          float64       `yaml:"damage"`
	FreezeFrames    int           `yaml:"freeze_frames"`
	Knockback       KnockbackSpec `yaml:"knockback"`
	SelfEvents      []EventSpec   `yaml:"self_events"`
	AdversaryEvents []EventSpec   `yaml:"adversary_events"`
}

type KnockbackSpec struct {
	Speed  float64 `yaml:"speed"`
	Frames int     `yaml:"frames"`
}

type ForceSpec struct {
	ForceMotionSpec `yaml:",inline"`
	Start           CastingTimeSpec `yaml:"start"`
	Duration        CastingTimeSpec `yaml:"duration"`
	OnComplete      *EventSpec      `yaml:"on_complete"`
}

type ForceMotionSpec struct {
	Type             string     `yaml:"type"`
	Velocity         VectorSpec `yaml:"velocity"`
	RelativeToFacing bool       `yaml:"relative_to_facing"`
	Target           string     `yaml:"target"`
	CustomTarget     VectorSpec `yaml:"custom_target"`
	FaceTarget       bool       `yaml:"face_target"`
}

// EventSpec is a flat event record; only the fields of its type are read.
type EventSpec struct {
	Type     string          `yaml:"type"`
	Start    CastingTimeSpec `yaml:"start"`
	Duration CastingTimeSpec `yaml:"duration"`

	Action        string           `yaml:"action"`
	Basic         string           `yaml:"basic"`
	Clip          string           `yaml:"clip"`
	TimeScale     float64          `yaml:"time_scale"`
	Effect        string           `yaml:"effect"`
	SpawnPoint    string           `yaml:"spawn_point"`
	Offset        VectorSpec       `yaml:"offset"`
	Force         *ForceMotionSpec `yaml:"force"`
	Color         *YAMLColor       `yaml:"color"`
	RenderInFront bool             `yaml:"render_in_front"`
	Speed         float64          `yaml:"speed"`
	Magnitude     float64          `yaml:"magnitude"`
	Property      string           `yaml:"property"`
	From          float64          `yaml:"from"`
	To            float64          `yaml:"to"`
}

// CastingTimeSpec accepts a bare frame count or one of frame(n),
// wait_for_animation_complete(i) and use_physics_data. Omitted means frame 0.
type CastingTimeSpec struct {
	action.CastingTime
}

func (c *CastingTimeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: casting time must be a scalar", value.Line)
	}
	t, err := ParseCastingTime(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	c.CastingTime = t
	return nil
}

// ParseCastingTime parses the authored form of a casting time.
func ParseCastingTime(s string) (action.CastingTime, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(key); err == nil {
		return action.Frame(n), nil
	}
	if key == "use_physics_data" {
		return action.UsePhysicsData(), nil
	}

	name, arg, ok := strings.Cut(key, "(")
	if !ok || !strings.HasSuffix(arg, ")") {
		return action.CastingTime{}, fmt.Errorf("casting time %q: %w", s, action.ErrUnknownTiming)
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(arg, ")")))
	if err != nil {
		return action.CastingTime{}, fmt.Errorf("casting time %q: %w", s, err)
	}
	switch strings.TrimSpace(name) {
	case "frame":
		return action.Frame(n), nil
	case "wait_for_animation_complete":
		return action.WaitForAnimationComplete(n), nil
	}
	return action.CastingTime{}, fmt.Errorf("casting time %q: %w", s, action.ErrUnknownTiming)
}
