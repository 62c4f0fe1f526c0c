package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// swipeThreshold is the pointer travel, in world units, that turns a press
// into a swipe.
const swipeThreshold = 24.0

// InputSystem turns mouse presses into click and swipe gestures for the
// player fighter.
type InputSystem struct {
	frame int
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	i.step(w, cp.Vector{X: float64(x), Y: float64(y)}, down)
}

// step feeds one pointer sample. A gesture is emitted on release.
func (i *InputSystem) step(w *ecs.World, at cp.Vector, down bool) {
	i.frame++

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, player, component.PointerComponent.Kind())
	if !ok {
		return
	}
	queue, ok := ecs.Get(w, player, component.InputQueueComponent.Kind())
	if !ok {
		return
	}

	switch {
	case down && !ptr.Pressed:
		ptr.Pressed = true
		ptr.Start = at
		ptr.StartFrame = i.frame
	case !down && ptr.Pressed:
		ptr.Pressed = false
		typ, dir := classifyGesture(at.Sub(ptr.Start))
		region, target := regionAt(w, player, ptr.Start)
		queue.Push(action.Input{
			Type:   typ,
			Region: region,
			Swipe:  dir,
			Point:  ptr.Start,
			Target: target,
		})
	}
}

// classifyGesture maps pointer travel to a gesture. Screen y grows downward.
func classifyGesture(delta cp.Vector) (action.InputType, action.SwipeDirection) {
	if delta.Length() < swipeThreshold {
		return action.InputClick, action.SwipeNone
	}
	if math.Abs(delta.X) >= math.Abs(delta.Y) {
		if delta.X < 0 {
			return action.InputSwipe, action.SwipeLeft
		}
		return action.InputSwipe, action.SwipeRight
	}
	if delta.Y < 0 {
		return action.InputSwipe, action.SwipeUp
	}
	return action.InputSwipe, action.SwipeDown
}

// regionAt classifies a pressed point from the point of view of self. An
// enemy under the point wins over self.
func regionAt(w *ecs.World, self ecs.Entity, at cp.Vector) (action.InputRegion, int) {
	me, ok := ecs.Get(w, self, component.FighterComponent.Kind())
	if !ok || me.Character == nil {
		return action.RegionEmptySpace, 0
	}

	region, target := action.RegionEmptySpace, 0
	ecs.ForEach(w, component.FighterComponent.Kind(), func(e ecs.Entity, f *component.Fighter) {
		c := f.Character
		if c == nil || c.Dead() || region == action.RegionEnemy {
			return
		}
		if !containsPoint(c.HurtBoxRects(), at) {
			return
		}
		switch {
		case e == self:
			region, target = action.RegionSelf, c.ID
		case me.Character.Faction.CanHit(c.Faction):
			region, target = action.RegionEnemy, c.ID
		}
	})
	return region, target
}

func containsPoint(rects []cp.BB, p cp.Vector) bool {
	for _, bb := range rects {
		if bb.ContainsVect(p) {
			return true
		}
	}
	return false
}
