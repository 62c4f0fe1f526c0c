package combat

import (
	"reflect"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

func duel(t *testing.T, hit action.HitInfo, defenderHealth float64) (*Arena, *rig, *rig) {
	t.Helper()
	arena := NewArena(60, 7)
	att := newRig(t, arena, Config{ID: 1, Name: "hero", Faction: FactionPlayer}, strike("punch", hit), timed("guard", "slam"))
	def := newRig(t, arena, Config{ID: 2, Name: "thug", Faction: FactionEnemy, MaxHealth: defenderHealth})
	def.mover.pos = cp.Vector{X: 10}
	return arena, att, def
}

func TestHitAtMostOncePerWindow(t *testing.T) {
	arena, att, def := duel(t, action.HitInfo{Damage: 10}, 100)

	att.perform(t, "punch")
	if arena.OnOverlap(1, 2, 0) {
		t.Fatalf("hitbox should not be open before the action ticks")
	}
	ticks(arena, 1)
	if len(att.c.ActiveHitBoxes()) != 1 {
		t.Fatalf("expected one open hitbox")
	}

	if !arena.OnOverlap(1, 2, 0) {
		t.Fatalf("first overlap should land")
	}
	for i := 0; i < 3; i++ {
		if arena.OnOverlap(1, 2, 0) {
			t.Fatalf("sustained overlap landed twice")
		}
		ticks(arena, 1)
	}
	if def.c.Health() != 90 {
		t.Fatalf("expected 90 health, got %v", def.c.Health())
	}

	att.perform(t, "punch")
	ticks(arena, 1)
	if !arena.OnOverlap(1, 2, 0) {
		t.Fatalf("a new window should allow a new hit")
	}
	ticks(arena, 1)
	if def.c.Health() != 80 || att.c.Combo() != 2 {
		t.Fatalf("expected 80 health and combo 2, got %v and %d", def.c.Health(), att.c.Combo())
	}
	if def.c.CurrentAction() != def.c.ActionSet().Basic(action.BasicHit) {
		t.Fatalf("plain hits route to hit, got %s", def.current())
	}
}

func TestKnockbackToDeath(t *testing.T) {
	hit := action.HitInfo{Damage: 10, FreezeFrames: 3, Knockback: action.Knockback{Speed: 200, Frames: 10}}
	arena, att, def := duel(t, hit, 5)

	att.perform(t, "punch")
	ticks(arena, 1)
	arena.OnOverlap(1, 2, 0)
	ticks(arena, 1)

	if !def.c.Dead() || def.c.Health() != 0 {
		t.Fatalf("defender should be dead with 0 health, got %v", def.c.Health())
	}
	if def.c.CurrentAction() != def.c.ActionSet().Basic(action.BasicDeathKnockback) {
		t.Fatalf("lethal hits route to death knockback, got %s", def.current())
	}
	if def.mover.vel.X != 200 {
		t.Fatalf("attacker on the left should push right, got %v", def.mover.vel)
	}
	if !def.c.FacingLeft() {
		t.Fatalf("defender should face the attacker")
	}
	if !att.c.Frozen() || !def.c.Frozen() {
		t.Fatalf("both fighters should be hit-frozen")
	}
	if !reflect.DeepEqual(def.anim.frozen, []float64{0.05}) {
		t.Fatalf("expected a 0.05s animation freeze, got %v", def.anim.frozen)
	}
	clock := def.c.Clock()
	ticks(arena, 2)
	if def.c.Clock() != clock {
		t.Fatalf("clock moved during hit freeze")
	}
	if def.deaths.count != 1 {
		t.Fatalf("expected one death notification, got %d", def.deaths.count)
	}

	// A dead defender still feeds the combo but never dies twice.
	ticks(arena, 1)
	att.perform(t, "punch")
	ticks(arena, 1)
	if !arena.OnOverlap(1, 2, 0) {
		t.Fatalf("overlap on a dead defender should still count")
	}
	ticks(arena, 1)
	if att.c.Combo() != 2 {
		t.Fatalf("expected combo 2, got %d", att.c.Combo())
	}
	if def.deaths.count != 1 || def.c.Health() != 0 {
		t.Fatalf("dead defender was hit again: deaths %d health %v", def.deaths.count, def.c.Health())
	}
	if !reflect.DeepEqual(att.audio.sounds, []string{"thud", "thud"}) {
		t.Fatalf("expected two impact sounds, got %v", att.audio.sounds)
	}
	if def.c.HandleInput(action.Input{Type: action.InputClick, Region: action.RegionEmptySpace}) {
		t.Fatalf("dead defender accepted input")
	}
}

func TestKnockbackRecovers(t *testing.T) {
	hit := action.HitInfo{Damage: 1, Knockback: action.Knockback{Speed: 100, Frames: 4}}
	arena, att, def := duel(t, hit, 100)
	set := def.c.ActionSet()

	att.mover.pos = cp.Vector{X: 20}
	att.perform(t, "punch")
	ticks(arena, 1)
	arena.OnOverlap(1, 2, 0)
	ticks(arena, 1)
	if def.c.CurrentAction() != set.Basic(action.BasicKnockback) {
		t.Fatalf("expected knockback, got %s", def.current())
	}
	if def.mover.vel.X != -100 || def.c.FacingLeft() {
		t.Fatalf("attacker on the right should push left: vel %v facing left %v", def.mover.vel, def.c.FacingLeft())
	}

	// knockback (12 frames) rolls into knockback_rise (8 frames), then idle.
	ticks(arena, 4)
	if def.mover.vel.X != 0 {
		t.Fatalf("knockback force should have ended, got %v", def.mover.vel)
	}
	ticks(arena, 8)
	if def.c.CurrentAction() != set.Basic(action.BasicKnockbackRise) {
		t.Fatalf("expected knockback rise, got %s", def.current())
	}
	ticks(arena, 8)
	if def.c.CurrentAction() != set.Basic(action.BasicIdle) {
		t.Fatalf("expected idle, got %s", def.current())
	}
}

func TestSameFrameHitSurvivesCancel(t *testing.T) {
	arena, att, def := duel(t, action.HitInfo{Damage: 10}, 100)

	att.perform(t, "punch")
	ticks(arena, 1)
	if !arena.OnOverlap(1, 2, 0) {
		t.Fatalf("overlap should land")
	}
	att.perform(t, "guard")
	ticks(arena, 1)

	if def.c.Health() != 90 {
		t.Fatalf("hit queued before the cancel was dropped, health %v", def.c.Health())
	}
	if !reflect.DeepEqual(att.audio.sounds, []string{"thud"}) {
		t.Fatalf("expected the impact sound of the cancelled action, got %v", att.audio.sounds)
	}
}

func TestOverlapFilters(t *testing.T) {
	arena := NewArena(60, 1)
	hit := action.HitInfo{Damage: 10}
	a := newRig(t, arena, Config{ID: 1, Faction: FactionPlayer}, strike("punch", hit))
	newRig(t, arena, Config{ID: 2, Faction: FactionPlayer})
	newRig(t, arena, Config{ID: 3, Faction: FactionNeutral})

	a.perform(t, "punch")
	ticks(arena, 1)

	cases := []struct {
		name     string
		att, def int
		box      int
		want     bool
	}{
		{"same_faction", 1, 2, 0, false},
		{"self", 1, 1, 0, false},
		{"unknown_defender", 1, 9, 0, false},
		{"bad_box", 1, 3, 4, false},
		{"idle_attacker", 2, 3, 0, false},
		{"neutral_target", 1, 3, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := arena.OnOverlap(tc.att, tc.def, tc.box); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	a.c.die()
	if arena.OnOverlap(1, 2, 0) {
		t.Fatalf("dead attackers cannot hit")
	}
}

func TestHitEventsScheduled(t *testing.T) {
	hit := action.HitInfo{
		Damage:          1,
		SelfEvents:      []action.Event{{Effect: action.SoundEffect{Clip: "self"}}},
		AdversaryEvents: []action.Event{{Duration: action.Frame(2), Effect: action.ScreenShake{Speed: 1, Magnitude: 1}}},
	}
	arena, att, def := duel(t, hit, 100)

	att.perform(t, "punch")
	ticks(arena, 1)
	arena.OnOverlap(1, 2, 0)
	ticks(arena, 2)

	if !reflect.DeepEqual(att.audio.sounds, []string{"thud", "self"}) {
		t.Fatalf("unexpected attacker sounds %v", att.audio.sounds)
	}
	want := []effectCall{
		{kind: "shake", on: true, frame: 2},
		{kind: "shake", on: false, frame: 3},
	}
	if !reflect.DeepEqual(def.fx.calls, want) {
		t.Fatalf("expected %+v, got %+v", want, def.fx.calls)
	}
}

func TestHitWindowNarrowsHitBox(t *testing.T) {
	arena := NewArena(60, 1)
	late := strike("late", action.HitInfo{Damage: 1})
	late.HitBoxes[0].Window = &action.HitWindow{Start: action.Frame(3), End: action.Frame(2)}
	att := newRig(t, arena, Config{ID: 1, Faction: FactionPlayer}, late)
	newRig(t, arena, Config{ID: 2, Faction: FactionEnemy})

	att.perform(t, "late")
	open := []bool{}
	for i := 0; i < 6; i++ {
		ticks(arena, 1)
		open = append(open, len(att.c.ActiveHitBoxes()) > 0)
	}
	want := []bool{false, false, true, true, false, false}
	if !reflect.DeepEqual(open, want) {
		t.Fatalf("expected window %v, got %v", want, open)
	}
}
