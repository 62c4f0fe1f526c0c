package entity

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/prefabs"
)

// FighterOptions tweak a fighter beyond its prefab.
type FighterOptions struct {
	// Position overrides the prefab transform when set.
	Position *cp.Vector
	// LoadAudio opens sound clips; nil uses the embedded assets.
	LoadAudio AudioLoader
	// Seed feeds the character's random choices.
	Seed int64
}

// NewFighter builds a fighter entity from a character prefab and adds its
// character to the arena. Action catalog problems are logged and the
// affected actions left out; the fighter always gets a usable basic roster.
func NewFighter(w *ecs.World, arena *combat.Arena, specName string, opts FighterOptions) (ecs.Entity, error) {
	if w == nil || arena == nil {
		return 0, fmt.Errorf("fighter: world and arena are required")
	}
	spec, err := prefabs.LoadCharacterSpec(specName)
	if err != nil {
		return 0, fmt.Errorf("fighter: %w", err)
	}
	faction, err := combat.ParseFaction(spec.Faction)
	if err != nil {
		return 0, fmt.Errorf("fighter %s: %w", spec.Name, err)
	}

	defs := buildAnimationDefs(spec, arena.FrameRate())
	set := buildActionSet(spec, defs)

	audioComp, err := buildAudioComponent(spec.Audio, opts.LoadAudio)
	if err != nil {
		return 0, fmt.Errorf("fighter %s: %w", spec.Name, err)
	}

	pos := spec.Transform
	if opts.Position != nil {
		pos = prefabs.TransformSpec{X: opts.Position.X, Y: opts.Position.Y}
	}

	e := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("fighter %s: add %s: %w", spec.Name, what, err)
	}

	ports := newFighterPorts(w, e, arena.FrameRate())
	char := combat.NewCharacter(combat.Config{
		ID:        int(e),
		Name:      spec.Name,
		Faction:   faction,
		MaxHealth: spec.Health,
		Profile: combat.Profile{
			MinWalkSpeed: spec.Profile.MinWalkSpeed,
			MaxWalkSpeed: spec.Profile.MaxWalkSpeed,
		},
		HurtBoxes:  buildHurtBoxes(spec.Hurtboxes),
		FacingLeft: spec.FacingLeft,
		Seed:       opts.Seed,
	}, set, ports.ports())
	ports.char = char

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(pos.X, pos.Y)); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
	}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{Speed: walkSpeed(spec.Profile)}); err != nil {
		return fail("motion", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Defs: defs}); err != nil {
		return fail("animation", err)
	}
	if err := ecs.Add(w, e, component.InputQueueComponent.Kind(), component.NewInputQueue()); err != nil {
		return fail("input queue", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return fail("render layer", err)
	}
	if audioComp != nil {
		if err := ecs.Add(w, e, component.AudioComponent.Kind(), audioComp); err != nil {
			return fail("audio", err)
		}
	}

	if spec.AI != nil {
		script, err := buildAIScript(spec.AI)
		if err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("fighter %s: %w", spec.Name, err)
		}
		if err := ecs.Add(w, e, component.AIScriptComponent.Kind(), script); err != nil {
			return fail("ai script", err)
		}
	} else if faction == combat.FactionPlayer {
		if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
			return fail("player tag", err)
		}
		if err := ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
			return fail("pointer", err)
		}
	}

	if err := ecs.Add(w, e, component.FighterComponent.Kind(), &component.Fighter{Character: char, Spec: specName}); err != nil {
		return fail("fighter", err)
	}
	if err := arena.Add(char); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("fighter %s: join arena: %w", spec.Name, err)
	}
	return e, nil
}

// RemoveFighter takes a fighter out of the arena and destroys its entity.
func RemoveFighter(w *ecs.World, arena *combat.Arena, e ecs.Entity) {
	if f, ok := ecs.Get(w, e, component.FighterComponent.Kind()); ok && f.Character != nil && arena != nil {
		arena.Remove(f.Character.ID)
	}
	ecs.DestroyEntity(w, e)
}

// ReloadActions rebuilds the action set of every fighter from its prefab.
// A fighter whose prefab no longer loads keeps its current set.
func ReloadActions(w *ecs.World, tps float64) {
	ecs.ForEach2(w, component.FighterComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, f *component.Fighter, anim *component.Animation) {
		if f.Character == nil {
			return
		}
		spec, err := prefabs.LoadCharacterSpec(f.Spec)
		if err != nil {
			log.Printf("entity: entity=%v reload %s: %v", e, f.Spec, err)
			return
		}
		anim.Defs = buildAnimationDefs(spec, tps)
		f.Character.SetActionSet(buildActionSet(spec, anim.Defs))
		log.Printf("entity: entity=%v reloaded actions of %s", e, spec.Name)
	})
}

// ReloadScript refreshes every AI script loaded from name.
func ReloadScript(w *ecs.World, name string) {
	ecs.ForEach(w, component.AIScriptComponent.Kind(), func(e ecs.Entity, script *component.AIScript) {
		if script.Name != name {
			return
		}
		src, err := prefabs.LoadScript(name)
		if err != nil {
			log.Printf("entity: entity=%v reload script %s: %v", e, name, err)
			return
		}
		script.Source = src
		script.Version++
	})
}

// buildAnimationDefs converts authored clips to tick lengths. A clip of n
// frames at fps lasts ceil(n*tps/fps) ticks, at least one.
func buildAnimationDefs(spec *prefabs.CharacterSpec, tps float64) component.AnimationDefs {
	defs := make(component.AnimationDefs, len(spec.Animations))
	for name, a := range spec.Animations {
		ticks := a.FrameCount
		if a.FPS > 0 && tps > 0 {
			ticks = int(math.Ceil(float64(a.FrameCount)*tps/a.FPS - 1e-9))
		}
		if ticks < 1 {
			ticks = 1
		}
		bones := make(map[string]cp.Vector, len(a.Bones))
		for bone, v := range a.Bones {
			bones[bone] = v.Vector()
		}
		defs[name] = component.AnimationDef{Name: name, FrameCount: ticks, Bones: bones}
	}
	return defs
}

func buildActionSet(spec *prefabs.CharacterSpec, defs component.AnimationDefs) *action.ActionSet {
	var catalog *prefabs.ActionCatalogSpec
	if spec.Actions != "" {
		c, err := prefabs.LoadActionCatalog(spec.Actions)
		if err != nil {
			log.Printf("entity: %s: %v", spec.Name, err)
		} else {
			catalog = c
		}
	}
	set, err := catalog.BuildActionSet(defs)
	if err != nil {
		log.Printf("entity: %s: actions: %v", spec.Name, err)
	}
	return set
}

func buildHurtBoxes(specs []prefabs.HurtboxSpec) []action.HurtBox {
	out := make([]action.HurtBox, 0, len(specs))
	for _, h := range specs {
		out = append(out, action.HurtBox{Bone: h.Bone, Offset: h.Offset.Vector(), Size: h.Size.Vector()})
	}
	return out
}

func buildAIScript(spec *prefabs.AISpec) (*component.AIScript, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("ai script %s: %w", spec.Script, err)
	}
	interval := spec.Interval
	if interval <= 0 {
		interval = 1
	}
	return &component.AIScript{Name: spec.Script, Source: src, Interval: interval}, nil
}

func walkSpeed(p prefabs.ProfileSpec) float64 {
	return math.Max(p.MaxWalkSpeed, p.MinWalkSpeed)
}
