package combat

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
)

type clipLib map[string]int

func (l clipLib) ClipFrames(name string) (int, bool) {
	n, ok := l[name]
	return n, ok
}

var testLib = clipLib{
	"idle": 30, "walk": 20, "hit": 10, "knockback": 12, "rise": 8, "death": 20,
	"jab": 6, "slam": 14,
}

type fakeAnimator struct {
	played [][]string
	frozen []float64
}

func (a *fakeAnimator) PlaySequence(anims []string, _ bool) { a.played = append(a.played, anims) }
func (a *fakeAnimator) FreezeFor(s float64)                 { a.frozen = append(a.frozen, s) }
func (a *fakeAnimator) BonePosition(string) (cp.Vector, bool) {
	return cp.Vector{}, false
}

type fakeMover struct {
	pos      cp.Vector
	vel      cp.Vector
	target   cp.Vector
	seeking  bool
	canceled int
}

func (m *fakeMover) Position() cp.Vector     { return m.pos }
func (m *fakeMover) SetVelocity(v cp.Vector) { m.vel = v }
func (m *fakeMover) SeekPosition(p cp.Vector, _ bool) {
	m.target = p
	m.seeking = true
}
func (m *fakeMover) CancelSeek() {
	m.seeking = false
	m.canceled++
}
func (m *fakeMover) Seeking() bool { return m.seeking }

func (m *fakeMover) arrive() {
	m.pos = m.target
	m.seeking = false
}

type fakeAudio struct {
	sounds []string
}

func (a *fakeAudio) PlaySound(clip string) { a.sounds = append(a.sounds, clip) }

type effectCall struct {
	kind  string
	on    bool
	frame int64
}

type fakeEffects struct {
	arena *Arena
	calls []effectCall
}

func (e *fakeEffects) record(kind string, on bool) {
	e.calls = append(e.calls, effectCall{kind: kind, on: on, frame: e.arena.Frame()})
}

func (e *fakeEffects) ColorFlash(_ color.NRGBA, _ bool, on bool) { e.record("flash", on) }
func (e *fakeEffects) ScreenShake(_, _ float64, on bool)         { e.record("shake", on) }
func (e *fakeEffects) Tween(t action.Tween, on bool)             { e.record("tween:"+t.Property, on) }

type fakeDeath struct {
	count int
}

func (d *fakeDeath) OnDeath(*Character) { d.count++ }

type rig struct {
	c      *Character
	anim   *fakeAnimator
	mover  *fakeMover
	audio  *fakeAudio
	fx     *fakeEffects
	deaths *fakeDeath
}

func newRig(t *testing.T, arena *Arena, cfg Config, combat ...*action.Action) *rig {
	t.Helper()
	var basics action.BasicActions
	basics.Init()
	set, err := action.NewActionSet(basics, combat, testLib)
	if err != nil {
		t.Fatalf("NewActionSet: %v", err)
	}
	r := &rig{
		anim:   &fakeAnimator{},
		mover:  &fakeMover{},
		audio:  &fakeAudio{},
		fx:     &fakeEffects{arena: arena},
		deaths: &fakeDeath{},
	}
	if cfg.MaxHealth == 0 {
		cfg.MaxHealth = 100
	}
	if cfg.Profile.MinWalkSpeed == 0 {
		cfg.Profile = Profile{MinWalkSpeed: 50, MaxWalkSpeed: 100}
	}
	r.c = NewCharacter(cfg, set, Ports{
		Animator: r.anim,
		Mover:    r.mover,
		Audio:    r.audio,
		Effects:  r.fx,
		Death:    r.deaths,
	})
	if err := arena.Add(r.c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return r
}

func (r *rig) perform(t *testing.T, name string) {
	t.Helper()
	a, ok := r.c.ActionSet().Action(name)
	if !ok {
		t.Fatalf("no action %q", name)
	}
	if !r.c.Perform(a, action.Input{}) {
		t.Fatalf("Perform(%s) refused", name)
	}
}

func (r *rig) current() string {
	if a := r.c.CurrentAction(); a != nil {
		return a.Name
	}
	return ""
}

func ticks(a *Arena, n int) {
	for i := 0; i < n; i++ {
		a.Tick()
	}
}

func strike(name string, hit action.HitInfo) *action.Action {
	return &action.Action{
		Name:           name,
		Sequences:      []action.AnimationSequence{{Animations: []string{"slam"}}},
		Trigger:        action.Trigger{Type: action.InputClick, Region: action.RegionEnemy},
		ListensToInput: true,
		HitBoxes:       []action.HitBox{{Bone: "hand", Size: cp.Vector{X: 10, Y: 10}, Hit: hit}},
		ImpactSounds:   []string{"thud"},
	}
}
