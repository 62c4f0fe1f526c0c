package system

import (
	"log"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// TweenSystem eases transform properties along their tween tracks. Tracks
// stay at To once complete until they are reverted.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

func (s *TweenSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.TweenComponent.Kind(), func(_ ecs.Entity, t *component.Transform, tw *component.Tween) {
		for name, track := range tw.Tracks {
			if track.Elapsed < track.Frames {
				track.Elapsed++
			}
			u := 1.0
			if track.Frames > 0 {
				u = float64(track.Elapsed) / float64(track.Frames)
			}
			if !t.SetProperty(name, track.From+(track.To-track.From)*u) {
				log.Printf("tween: unknown property %q", name)
				delete(tw.Tracks, name)
			}
		}
	})
}
