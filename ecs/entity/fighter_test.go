package entity

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/prefabs"
)

func silentAudio(string) (*audio.Player, error) { return nil, nil }

func newTestFighter(t *testing.T, w *ecs.World, arena *combat.Arena, spec string) (ecs.Entity, *combat.Character) {
	t.Helper()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })

	e, err := NewFighter(w, arena, spec, FighterOptions{LoadAudio: silentAudio})
	if err != nil {
		t.Fatalf("NewFighter(%s): %v", spec, err)
	}
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok || f.Character == nil {
		t.Fatalf("fighter component missing")
	}
	return e, f.Character
}

func TestNewFighterComponents(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)

	player, pc := newTestFighter(t, w, arena, "brawler.yaml")
	thug, tc := newTestFighter(t, w, arena, "thug.yaml")

	if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) || !ecs.Has(w, player, component.PointerComponent.Kind()) {
		t.Fatalf("player should be pointer driven")
	}
	if ecs.Has(w, player, component.AIScriptComponent.Kind()) {
		t.Fatalf("player should not carry a script")
	}
	script, ok := ecs.Get(w, thug, component.AIScriptComponent.Kind())
	if !ok || script.Name != "thug.tengo" || len(script.Source) == 0 || script.Interval != 12 {
		t.Fatalf("unexpected thug script %+v", script)
	}
	if ecs.Has(w, thug, component.PlayerTagComponent.Kind()) {
		t.Fatalf("thug should not be player controlled")
	}

	if pc.Faction != combat.FactionPlayer || tc.Faction != combat.FactionEnemy {
		t.Fatalf("unexpected factions %s %s", pc.Faction, tc.Faction)
	}
	if !tc.FacingLeft() {
		t.Fatalf("thug should start facing left")
	}
	if len(arena.Characters()) != 2 {
		t.Fatalf("expected both fighters in the arena")
	}
	if _, ok := pc.ActionSet().Action("uppercut"); !ok {
		t.Fatalf("player should know the uppercut")
	}

	anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
	// 6 frames at 12 fps run 30 ticks at 60 tps.
	if n, ok := anim.Defs.ClipFrames("uppercut"); !ok || n != 30 {
		t.Fatalf("expected 30 ticks, got %d", n)
	}
	if a := pc.CurrentAction(); a == nil || a.Name != "idle" {
		t.Fatalf("fighter should start idle, got %v", a)
	}
	if len(anim.Sequence) != 1 || anim.Sequence[0] != "idle" || !anim.Playing {
		t.Fatalf("idle clip should be playing, got %+v", anim.Sequence)
	}

	motion, _ := ecs.Get(w, player, component.MotionComponent.Kind())
	if motion.Speed != 240 {
		t.Fatalf("seek speed should be the max walk speed, got %v", motion.Speed)
	}
}

func TestNewFighterMissingPrefab(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })

	if _, err := NewFighter(w, arena, "nobody.yaml", FighterOptions{LoadAudio: silentAudio}); err == nil {
		t.Fatalf("expected an error")
	}
	if len(ecs.Entities(w)) != 0 || len(arena.Characters()) != 0 {
		t.Fatalf("failed build left state behind")
	}
}

func TestPortsBonesAndMotion(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)
	e, c := newTestFighter(t, w, arena, "brawler.yaml")

	at := cp.Vector{X: 100, Y: 500}
	p := newFighterPorts(w, e, 60)
	p.char = c
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X, tr.Y = 10, 20

	c.Face(false)
	if got, ok := p.BonePosition("hand"); !ok || got != (cp.Vector{X: 36, Y: -36}) {
		t.Fatalf("right facing hand: %v %v", got, ok)
	}
	c.Face(true)
	if got, _ := p.BonePosition("hand"); got != (cp.Vector{X: -16, Y: -36}) {
		t.Fatalf("left facing hand should mirror, got %v", got)
	}
	if _, ok := p.BonePosition("tail"); ok {
		t.Fatalf("unknown bone should not resolve")
	}

	p.SeekPosition(at, true)
	m, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	if !p.Seeking() || m.Target != at {
		t.Fatalf("seek not recorded: %+v", m)
	}
	p.CancelSeek()
	if p.Seeking() {
		t.Fatalf("seek should be cancelled")
	}
	p.SetVelocity(cp.Vector{X: 5})
	if m.Velocity.X != 5 {
		t.Fatalf("velocity not recorded")
	}

	p.FreezeFor(0.05)
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	if anim.FreezeFrames != 3 {
		t.Fatalf("expected 3 freeze ticks, got %d", anim.FreezeFrames)
	}
}

func TestPortsEffectsNest(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)
	cam, err := NewCamera(w)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	e, c := newTestFighter(t, w, arena, "brawler.yaml")
	p := newFighterPorts(w, e, 60)
	p.char = c

	red := color.NRGBA{R: 255, A: 255}
	p.ColorFlash(red, true, true)
	p.ColorFlash(red, false, true)
	p.ColorFlash(red, false, false)
	flash, _ := ecs.Get(w, e, component.ColorFlashComponent.Kind())
	if !flash.On {
		t.Fatalf("flash should stay on while one is active")
	}
	p.ColorFlash(red, false, false)
	if flash.On || flash.Depth != 0 {
		t.Fatalf("flash should clear: %+v", flash)
	}

	p.ScreenShake(10, 4, true)
	p.ScreenShake(20, 2, true)
	p.ScreenShake(20, 2, false)
	shake, _ := ecs.Get(w, cam, component.CameraShakeComponent.Kind())
	if !shake.Active || shake.Speed != 20 {
		t.Fatalf("unexpected shake %+v", shake)
	}
	p.ScreenShake(10, 4, false)
	if shake.Active {
		t.Fatalf("shake should stop with the last revert")
	}

	tw := action.Tween{Property: "alpha", From: 1, To: 0.5}
	p.Tween(tw, true)
	tween, _ := ecs.Get(w, e, component.TweenComponent.Kind())
	if tr := tween.Tracks["alpha"]; tr == nil || tr.Frames != tweenFrames {
		t.Fatalf("alpha track missing")
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.Alpha = 0.5
	p.Tween(tw, false)
	if len(tween.Tracks) != 0 || tr.Alpha != 1 {
		t.Fatalf("tween revert should restore alpha, got %v", tr.Alpha)
	}
}

func TestPortsDeathAndParticles(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)
	e, c := newTestFighter(t, w, arena, "brawler.yaml")
	p := newFighterPorts(w, e, 60)
	p.char = c

	p.OnDeath(c)
	if !ecs.Has(w, e, component.DefeatedTagComponent.Kind()) {
		t.Fatalf("defeated tag missing")
	}
	if ecs.Has(w, e, component.InputQueueComponent.Kind()) {
		t.Fatalf("a defeated fighter should stop taking input")
	}

	before := len(ecs.Entities(w))
	p.SpawnParticle("spark", cp.Vector{X: 1, Y: 2}, true)
	if got := len(ecs.Entities(w)) - before; got != len(particlePresets["spark"].Angles) {
		t.Fatalf("expected a spark burst, got %d entities", got)
	}
	ecs.ForEach(w, component.ParticleComponent.Kind(), func(_ ecs.Entity, pt *component.Particle) {
		if pt.Velocity.X > 0 {
			t.Fatalf("left facing sparks should fly left, got %v", pt.Velocity)
		}
	})
	if err := SpawnParticles(w, "confetti", cp.Vector{}, false); err == nil {
		t.Fatalf("unknown effect should fail")
	}

	p.PlaySound("whoosh")
	a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	requested := false
	for i, n := range a.Names {
		if n == "whoosh" {
			requested = a.Play[i]
		}
	}
	if !requested {
		t.Fatalf("whoosh should be requested")
	}
}

func TestRemoveFighter(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })

	pos := cp.Vector{X: 300, Y: 400}
	e, err := NewFighter(w, arena, "thug.yaml", FighterOptions{Position: &pos, LoadAudio: silentAudio})
	if err != nil {
		t.Fatalf("NewFighter: %v", err)
	}
	if tr, _ := ecs.Get(w, e, component.TransformComponent.Kind()); tr.X != 300 || tr.Y != 400 {
		t.Fatalf("position override ignored: %+v", tr)
	}
	f, _ := ecs.Get(w, e, component.FighterComponent.Kind())
	c := f.Character

	RemoveFighter(w, arena, e)
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity should be gone")
	}
	if _, ok := arena.Character(c.ID); ok {
		t.Fatalf("character should have left the arena")
	}
}

func TestReloadScriptBumpsVersion(t *testing.T) {
	w := ecs.NewWorld()
	arena := combat.NewArena(60, 1)
	e, _ := newTestFighter(t, w, arena, "thug.yaml")

	ReloadScript(w, "other.tengo")
	script, _ := ecs.Get(w, e, component.AIScriptComponent.Kind())
	if script.Version != 0 {
		t.Fatalf("unrelated script should not reload")
	}
	ReloadScript(w, "thug.tengo")
	if script.Version != 1 {
		t.Fatalf("expected version 1, got %d", script.Version)
	}

	ReloadActions(w, 60)
	f, _ := ecs.Get(w, e, component.FighterComponent.Kind())
	if a := f.Character.CurrentAction(); a == nil || a.Name != "idle" {
		t.Fatalf("reload should restart from idle")
	}
}
