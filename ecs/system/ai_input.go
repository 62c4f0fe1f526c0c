package system

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// aiDispatchScript calls the script's think function with the engine API and
// a snapshot of both fighters.
const aiDispatchScript = `
think(__engine, __fighter, __foe, __memory)
`

type aiScriptRuntime struct {
	name     string
	version  int
	compiled *tengo.Compiled
	memory   *tengo.Map
}

// AIInputSystem runs fighter scripts that produce gestures the same way the
// player does.
type AIInputSystem struct {
	cache map[ecs.Entity]*aiScriptRuntime
}

func NewAIInputSystem() *AIInputSystem {
	return &AIInputSystem{cache: map[ecs.Entity]*aiScriptRuntime{}}
}

func (s *AIInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.cache {
		if !ecs.IsAlive(w, e) {
			delete(s.cache, e)
		}
	}

	ecs.ForEach3(w, component.FighterComponent.Kind(), component.AIScriptComponent.Kind(), component.InputQueueComponent.Kind(),
		func(e ecs.Entity, f *component.Fighter, script *component.AIScript, queue *component.InputQueue) {
			if f.Character == nil || f.Character.Dead() {
				return
			}
			script.Timer++
			if script.Timer < script.Interval {
				return
			}
			script.Timer = 0

			rt, err := s.runtime(e, script)
			if err != nil {
				log.Printf("ai: entity=%v load script %s: %v", e, script.Name, err)
				return
			}
			foe := nearestFoe(w, f.Character)
			engine := buildAIEngine(f.Character, foe, queue)
			if err := rt.run(engine, fighterObject(f.Character, foe), foeObject(f.Character, foe)); err != nil {
				log.Printf("ai: entity=%v script %s: %v", e, script.Name, err)
			}
		})
}

func (s *AIInputSystem) runtime(e ecs.Entity, script *component.AIScript) (*aiScriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.name == script.Name && rt.version == script.Version {
		return rt, nil
	}
	if len(script.Source) == 0 {
		return nil, fmt.Errorf("empty script")
	}

	src := string(script.Source) + "\n" + aiDispatchScript
	ts := tengo.NewScript([]byte(src))
	_ = ts.Add("__engine", map[string]any{})
	_ = ts.Add("__fighter", map[string]any{})
	_ = ts.Add("__foe", map[string]any{})
	_ = ts.Add("__memory", map[string]any{})
	ts.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := ts.Compile()
	if err != nil {
		return nil, err
	}
	rt := &aiScriptRuntime{
		name:     script.Name,
		version:  script.Version,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

func (rt *aiScriptRuntime) run(engine *tengo.ImmutableMap, fighter, foe map[string]any) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__fighter", fighter); err != nil {
		return err
	}
	if err := rt.compiled.Set("__foe", foe); err != nil {
		return err
	}
	if err := rt.compiled.Set("__memory", rt.memory); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// nearestFoe returns the closest living character self may hit.
func nearestFoe(w *ecs.World, self *combat.Character) *combat.Character {
	var best *combat.Character
	bestDist := math.Inf(1)
	ecs.ForEach(w, component.FighterComponent.Kind(), func(_ ecs.Entity, f *component.Fighter) {
		c := f.Character
		if c == nil || c == self || c.Dead() || !self.Faction.CanHit(c.Faction) {
			return
		}
		if d := c.Position().Distance(self.Position()); d < bestDist {
			best, bestDist = c, d
		}
	})
	return best
}

func fighterObject(c *combat.Character, foe *combat.Character) map[string]any {
	p := c.Position()
	current := ""
	if a := c.CurrentAction(); a != nil {
		current = a.Name
	}
	facingFoe := false
	if foe != nil {
		dx := foe.Position().X - p.X
		facingFoe = (dx < 0) == c.FacingLeft()
	}
	return map[string]any{
		"x":           p.X,
		"y":           p.Y,
		"health":      c.Health(),
		"combo":       c.Combo(),
		"facing_left": c.FacingLeft(),
		"facing_foe":  facingFoe,
		"action":      current,
		"state":       c.State().String(),
	}
}

func foeObject(self, foe *combat.Character) map[string]any {
	if foe == nil {
		return map[string]any{"found": false}
	}
	p := foe.Position()
	return map[string]any{
		"found":    true,
		"x":        p.X,
		"y":        p.Y,
		"distance": p.Distance(self.Position()),
		"health":   foe.Health(),
	}
}

func buildAIEngine(self, foe *combat.Character, queue *component.InputQueue) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["click"] = &tengo.UserFunction{Name: "click", Value: func(args ...tengo.Object) (tengo.Object, error) {
		region := action.RegionEnemy
		if len(args) > 0 {
			r, err := action.ParseInputRegion(objectAsString(args[0]))
			if err != nil {
				return tengo.FalseValue, nil
			}
			region = r
		}
		in, ok := aimedInput(self, foe, region)
		if !ok {
			return tengo.FalseValue, nil
		}
		queue.Push(in)
		return tengo.TrueValue, nil
	}}

	values["swipe"] = &tengo.UserFunction{Name: "swipe", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		region, err := action.ParseInputRegion(objectAsString(args[0]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		dir, err := action.ParseSwipeDirection(objectAsString(args[1]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		in, ok := aimedInput(self, foe, region)
		if !ok {
			return tengo.FalseValue, nil
		}
		in.Type = action.InputSwipe
		in.Swipe = dir
		queue.Push(in)
		return tengo.TrueValue, nil
	}}

	values["walk_to"] = &tengo.UserFunction{Name: "walk_to", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		queue.Push(action.Input{Type: action.InputClick, Region: action.RegionEmptySpace, Point: cp.Vector{X: x, Y: y}})
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("ai: %s: %s", self.Name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// aimedInput builds a click on region. Enemy clicks land on the foe.
func aimedInput(self, foe *combat.Character, region action.InputRegion) (action.Input, bool) {
	in := action.Input{Type: action.InputClick, Region: region, Swipe: action.SwipeNone}
	switch region {
	case action.RegionEnemy:
		if foe == nil {
			return in, false
		}
		in.Point = foe.Position()
		in.Target = foe.ID
	case action.RegionSelf:
		in.Point = self.Position()
		in.Target = self.ID
	default:
		in.Point = self.Position()
	}
	return in, true
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
