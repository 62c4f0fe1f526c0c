package combat

import (
	"reflect"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

func timed(name string, anim string, events ...action.Event) *action.Action {
	return &action.Action{
		Name:      name,
		Sequences: []action.AnimationSequence{{Animations: []string{anim}}},
		OnStart:   events,
	}
}

func TestEventFiresOnceAndRevertsAfter(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1, Name: "p"}, timed("flash", "slam", action.Event{
		Start:    action.Frame(2),
		Duration: action.Frame(3),
		Effect:   action.ColorFlash{},
	}))
	r.perform(t, "flash")
	ticks(arena, 10)

	want := []effectCall{
		{kind: "flash", on: true, frame: 2},
		{kind: "flash", on: false, frame: 5},
	}
	if !reflect.DeepEqual(r.fx.calls, want) {
		t.Fatalf("expected %+v, got %+v", want, r.fx.calls)
	}
}

func TestEventsKeepDeclarationOrder(t *testing.T) {
	arena := NewArena(60, 1)
	sound := func(n int, clip string) action.Event {
		return action.Event{Start: action.Frame(n), Effect: action.SoundEffect{Clip: clip}}
	}
	r := newRig(t, arena, Config{ID: 1}, timed("song", "slam",
		sound(1, "a"), sound(1, "b"), sound(0, "c"), sound(1, "d"), sound(3, "e"),
	))
	r.perform(t, "song")
	ticks(arena, 4)

	want := []string{"c", "a", "b", "d", "e"}
	if !reflect.DeepEqual(r.audio.sounds, want) {
		t.Fatalf("expected %v, got %v", want, r.audio.sounds)
	}
}

func TestCancelDiscardsPendingButKeepsReverts(t *testing.T) {
	arena := NewArena(60, 1)
	first := timed("first", "slam",
		action.Event{Start: action.Frame(1), Duration: action.Frame(5), Effect: action.ScreenShake{Speed: 1, Magnitude: 2}},
		action.Event{Start: action.Frame(4), Effect: action.SoundEffect{Clip: "late"}},
	)
	second := timed("second", "slam")
	r := newRig(t, arena, Config{ID: 1}, first, second)

	r.perform(t, "first")
	ticks(arena, 2)
	r.perform(t, "second")
	if r.c.current.state != StateActive {
		t.Fatalf("expected the new action to be active, got %s", r.c.State())
	}
	ticks(arena, 10)

	if len(r.audio.sounds) != 0 {
		t.Fatalf("cancelled event fired: %v", r.audio.sounds)
	}
	want := []effectCall{
		{kind: "shake", on: true, frame: 1},
		{kind: "shake", on: false, frame: 6},
	}
	if !reflect.DeepEqual(r.fx.calls, want) {
		t.Fatalf("expected %+v, got %+v", want, r.fx.calls)
	}
}

func TestCancelRemovesForceWithoutCompletion(t *testing.T) {
	arena := NewArena(60, 1)
	dash := &action.Action{
		Name:      "dash",
		Sequences: []action.AnimationSequence{{Animations: []string{"slam"}}},
		Forces: []action.Force{{
			Motion:     action.ForceMotion{Type: action.ForceVelocity, Velocity: cp.Vector{X: 300}, RelativeToFacing: true},
			Start:      action.Frame(0),
			Duration:   action.Frame(10),
			OnComplete: action.Event{Effect: action.SoundEffect{Clip: "done"}},
		}},
	}
	r := newRig(t, arena, Config{ID: 1, FacingLeft: true}, dash, timed("other", "slam"))

	r.perform(t, "dash")
	ticks(arena, 1)
	if r.mover.vel.X != -300 {
		t.Fatalf("facing left should mirror the velocity, got %v", r.mover.vel)
	}
	r.perform(t, "other")
	if r.mover.vel.X != 0 {
		t.Fatalf("cancel should zero the velocity, got %v", r.mover.vel)
	}
	ticks(arena, 20)
	if len(r.audio.sounds) != 0 {
		t.Fatalf("completion of a cancelled force fired: %v", r.audio.sounds)
	}
}

func TestForceCompletesAtEnd(t *testing.T) {
	arena := NewArena(60, 1)
	dash := &action.Action{
		Name:      "dash",
		Sequences: []action.AnimationSequence{{Animations: []string{"jab"}}},
		Forces: []action.Force{{
			Motion:     action.ForceMotion{Type: action.ForceVelocity, Velocity: cp.Vector{X: 300}},
			Start:      action.Frame(1),
			Duration:   action.Frame(10),
			OnComplete: action.Event{Effect: action.SoundEffect{Clip: "done"}},
		}},
	}
	r := newRig(t, arena, Config{ID: 1}, dash)
	r.perform(t, "dash")

	ticks(arena, 10)
	if r.mover.vel.X != 300 || len(r.audio.sounds) != 0 {
		t.Fatalf("force ended early: vel %v sounds %v", r.mover.vel, r.audio.sounds)
	}
	ticks(arena, 1)
	if r.mover.vel.X != 0 || !reflect.DeepEqual(r.audio.sounds, []string{"done"}) {
		t.Fatalf("force should end at frame 11: vel %v sounds %v", r.mover.vel, r.audio.sounds)
	}
	// The animation finished long ago, so the action completes with its force.
	if r.c.CurrentAction() != r.c.ActionSet().Basic(action.BasicIdle) {
		t.Fatalf("expected idle after completion, got %s", r.current())
	}
}

func TestPositionForceWithoutTarget(t *testing.T) {
	arena := NewArena(60, 1)
	drift := &action.Action{
		Name:      "drift",
		Sequences: []action.AnimationSequence{{Animations: []string{"slam"}}},
		Forces: []action.Force{{
			Motion:     action.ForceMotion{Type: action.ForcePosition, Target: action.TargetNone},
			Start:      action.Frame(0),
			Duration:   action.Frame(3),
			OnComplete: action.Event{Effect: action.SoundEffect{Clip: "done"}},
		}},
	}
	r := newRig(t, arena, Config{ID: 1}, drift)
	r.perform(t, "drift")

	ticks(arena, 2)
	if len(r.audio.sounds) != 0 || r.mover.seeking {
		t.Fatalf("no-op seek should not move or complete early")
	}
	ticks(arena, 1)
	if !reflect.DeepEqual(r.audio.sounds, []string{"done"}) {
		t.Fatalf("expected completion at the resolved end, got %v", r.audio.sounds)
	}
}

func TestBasicWalkScenario(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1, FacingLeft: true})
	set := r.c.ActionSet()

	if !r.c.HandleInput(action.Input{Type: action.InputClick, Region: action.RegionAny, Point: cp.Vector{X: 100}}) {
		t.Fatalf("click should start walking")
	}
	if r.c.CurrentAction() != set.Basic(action.BasicWalk) {
		t.Fatalf("expected walk, got %s", r.current())
	}
	ticks(arena, 1)
	if !r.mover.seeking || r.mover.target.X != 100 {
		t.Fatalf("expected a seek to x=100, got %+v", r.mover)
	}
	if r.c.FacingLeft() {
		t.Fatalf("walk should face its target")
	}

	ticks(arena, 5)
	if r.c.CurrentAction() != set.Basic(action.BasicWalk) {
		t.Fatalf("walk ended before arrival")
	}
	r.mover.arrive()
	ticks(arena, 1)
	if r.c.CurrentAction() != set.Basic(action.BasicIdle) {
		t.Fatalf("arrival should return to idle, got %s", r.current())
	}
}

func TestWalkTimesOutFromPhysicsProfile(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1, Profile: Profile{MinWalkSpeed: 50, MaxWalkSpeed: 100}})
	set := r.c.ActionSet()

	r.c.HandleInput(action.Input{Type: action.InputClick, Region: action.RegionEmptySpace, Point: cp.Vector{X: 100}})
	// 100 units at 50 units per second is 120 frames.
	ticks(arena, 119)
	if r.c.CurrentAction() != set.Basic(action.BasicWalk) {
		t.Fatalf("walk ended early, got %s", r.current())
	}
	ticks(arena, 1)
	if r.c.CurrentAction() != set.Basic(action.BasicIdle) {
		t.Fatalf("walk should give up at its physics bound, got %s", r.current())
	}
	if r.mover.canceled == 0 {
		t.Fatalf("the seek should be cancelled")
	}
}

func TestCompletionReturnsToIdleAndResetsCombo(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1}, timed("jab", "jab"))
	r.c.combo = 3
	r.perform(t, "jab")

	ticks(arena, 5)
	if r.current() != "jab" {
		t.Fatalf("jab ended early, got %s", r.current())
	}
	ticks(arena, 1)
	if r.c.CurrentAction() != r.c.ActionSet().Basic(action.BasicIdle) {
		t.Fatalf("expected idle, got %s", r.current())
	}
	if r.c.Combo() != 0 {
		t.Fatalf("combo should reset on idle, got %d", r.c.Combo())
	}
}

func TestPerformEventChains(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1},
		timed("one", "jab", action.Event{Start: action.Frame(2), Effect: action.PerformAction{Action: "two"}}),
		timed("two", "slam"),
	)
	r.perform(t, "one")
	ticks(arena, 2)
	if r.current() != "two" {
		t.Fatalf("expected chained action, got %s", r.current())
	}
	if got := r.anim.played[len(r.anim.played)-1]; !reflect.DeepEqual(got, []string{"slam"}) {
		t.Fatalf("expected slam to play, got %v", got)
	}
}

func TestSelfPerformingActionIsCapped(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1},
		timed("loop", "jab", action.Event{Effect: action.PerformAction{Action: "loop"}}),
	)
	r.perform(t, "loop")
	before := r.c.nextInst
	ticks(arena, 1)
	if started := r.c.nextInst - before; started != maxChainDepth {
		t.Fatalf("expected %d restarts in one tick, got %d", maxChainDepth, started)
	}
	ticks(arena, 1)
	if r.current() != "loop" {
		t.Fatalf("expected loop to keep running, got %s", r.current())
	}
}

func TestDieEvent(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1}, timed("fall", "jab", action.Event{Start: action.Frame(1), Effect: action.Die{}}))
	r.perform(t, "fall")
	ticks(arena, 1)

	if !r.c.Dead() || r.c.Health() != 0 {
		t.Fatalf("expected dead character")
	}
	if r.c.CurrentAction() != r.c.ActionSet().Basic(action.BasicDeath) {
		t.Fatalf("expected death action, got %s", r.current())
	}
	if r.c.HandleInput(action.Input{Type: action.InputClick, Region: action.RegionAny}) {
		t.Fatalf("dead characters ignore input")
	}
	// Death's own die event must not notify a second time.
	ticks(arena, 40)
	if r.deaths.count != 1 {
		t.Fatalf("expected one death notification, got %d", r.deaths.count)
	}
	if r.c.CurrentAction() != r.c.ActionSet().Basic(action.BasicDeath) {
		t.Fatalf("death should hold, got %s", r.current())
	}
}

func TestSlowMotionEvent(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1}, timed("bullet_time", "slam", action.Event{
		Start:    action.Frame(1),
		Duration: action.Frame(4),
		Effect:   action.SlowMotion{TimeScale: 0.5},
	}))
	r.perform(t, "bullet_time")

	ticks(arena, 1)
	if got := arena.TimeScale().Scale(); got != 0.5 {
		t.Fatalf("expected slow motion, got %v", got)
	}
	ticks(arena, 1)
	if r.c.Clock() != 1.5 {
		t.Fatalf("character clock should run at half speed, got %v", r.c.Clock())
	}
	ticks(arena, 2)
	if got := arena.TimeScale().Scale(); got != 0.5 {
		t.Fatalf("slow motion ended early")
	}
	ticks(arena, 1)
	if got := arena.TimeScale().Scale(); got != 1 {
		t.Fatalf("expected base scale after expiry, got %v", got)
	}
}

func TestTweenRevertsAtAnimationEnd(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1}, timed("glow", "jab",
		action.Event{Duration: action.WaitForAnimationComplete(0), Effect: action.Tween{Property: "alpha", From: 1, To: 0}},
	))
	r.perform(t, "glow")
	ticks(arena, 8)

	want := []effectCall{
		{kind: "tween:alpha", on: true, frame: 1},
		{kind: "tween:alpha", on: false, frame: 6},
	}
	if !reflect.DeepEqual(r.fx.calls, want) {
		t.Fatalf("expected %+v, got %+v", want, r.fx.calls)
	}
}

func TestReturnToIdleByEventResetsCombo(t *testing.T) {
	arena := NewArena(60, 1)
	r := newRig(t, arena, Config{ID: 1}, timed("recover", "slam",
		action.Event{Start: action.Frame(2), Effect: action.PerformBasicAction{Basic: action.BasicIdle}},
	))
	r.c.combo = 3
	r.perform(t, "recover")
	ticks(arena, 1)
	if r.c.Combo() != 3 {
		t.Fatalf("combo should hold until idle, got %d", r.c.Combo())
	}
	ticks(arena, 1)
	if r.c.CurrentAction() != r.c.ActionSet().Basic(action.BasicIdle) {
		t.Fatalf("expected idle, got %s", r.current())
	}
	if r.c.Combo() != 0 {
		t.Fatalf("combo should reset on idle, got %d", r.c.Combo())
	}
}

func TestInputAfterCappedTickIsAccepted(t *testing.T) {
	arena := NewArena(60, 1)
	loop := timed("loop", "jab", action.Event{Effect: action.PerformAction{Action: "loop"}})
	loop.Cancelable = true
	poke := strike("poke", action.HitInfo{})
	r := newRig(t, arena, Config{ID: 1}, loop, poke)

	r.perform(t, "loop")
	ticks(arena, 1)
	if r.current() != "loop" {
		t.Fatalf("expected loop, got %s", r.current())
	}
	if !r.c.HandleInput(action.Input{Type: action.InputClick, Region: action.RegionEnemy}) {
		t.Fatalf("input after a capped tick should start an action")
	}
	if r.current() != "poke" {
		t.Fatalf("expected poke, got %s", r.current())
	}
}

func TestReloadWhileDeadKeepsDeath(t *testing.T) {
	arena := NewArena(60, 1)
	fall := timed("fall", "jab", action.Event{Start: action.Frame(1), Effect: action.Die{}})
	r := newRig(t, arena, Config{ID: 1}, fall)
	r.perform(t, "fall")
	ticks(arena, 1)
	if !r.c.Dead() {
		t.Fatalf("expected dead character")
	}

	var basics action.BasicActions
	basics.Init()
	reloaded, err := action.NewActionSet(basics, []*action.Action{fall}, testLib)
	if err != nil {
		t.Fatalf("NewActionSet: %v", err)
	}
	r.c.SetActionSet(reloaded)
	if r.c.CurrentAction() != reloaded.Basic(action.BasicDeath) {
		t.Fatalf("death should move to the reloaded roster, got %s", r.current())
	}

	played := len(r.anim.played)
	// Death's die event fires at the end of its first clip.
	ticks(arena, 30)
	if len(r.anim.played) != played {
		t.Fatalf("death restarted after the reload: %v", r.anim.played[played:])
	}
	if r.deaths.count != 1 {
		t.Fatalf("expected one death notification, got %d", r.deaths.count)
	}
}
