package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CharacterSpec describes one fighter: body, animation rig, sounds and the
// action catalog it fights with.
type CharacterSpec struct {
	Name        string                      `yaml:"name"`
	Faction     string                      `yaml:"faction"`
	Health      float64                     `yaml:"health"`
	Profile     ProfileSpec                 `yaml:"profile"`
	Actions     string                      `yaml:"actions"`
	Transform   TransformSpec               `yaml:"transform"`
	Collider    ColliderSpec                `yaml:"collider"`
	RenderLayer RenderLayerSpec             `yaml:"render_layer"`
	FacingLeft  bool                        `yaml:"facing_left"`
	Animations  map[string]AnimationDefSpec `yaml:"animations"`
	Hurtboxes   []HurtboxSpec               `yaml:"hurtboxes"`
	Audio       []AudioSpec                 `yaml:"audio"`
	AI          *AISpec                     `yaml:"ai"`
}

func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(filename), ".yaml")
	}
	return &spec, nil
}

type ProfileSpec struct {
	MinWalkSpeed float64 `yaml:"min_walk_speed"`
	MaxWalkSpeed float64 `yaml:"max_walk_speed"`
}

type AISpec struct {
	Script   string `yaml:"script"`
	Interval int    `yaml:"interval"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AnimationDefSpec is one clip. FrameCount frames play at FPS; the
// simulation converts them to ticks.
type AnimationDefSpec struct {
	FrameCount int                   `yaml:"frame_count"`
	FPS        float64               `yaml:"fps"`
	Bones      map[string]VectorSpec `yaml:"bones"`
}

type HurtboxSpec struct {
	Bone   string     `yaml:"bone"`
	Offset VectorSpec `yaml:"offset"`
	Size   VectorSpec `yaml:"size"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the color, or opaque white when unset.
func (c *YAMLColor) NRGBA() color.NRGBA {
	if c == nil || c.Color == nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
