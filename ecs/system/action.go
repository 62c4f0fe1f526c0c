package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// ActionSystem hands buffered gestures to the fighters. Gestures that start
// no action are dropped.
type ActionSystem struct{}

func NewActionSystem() *ActionSystem {
	return &ActionSystem{}
}

func (s *ActionSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.FighterComponent.Kind(), component.InputQueueComponent.Kind(), func(_ ecs.Entity, f *component.Fighter, queue *component.InputQueue) {
		for {
			in, ok := queue.Pop()
			if !ok {
				return
			}
			if f.Character != nil {
				f.Character.HandleInput(in)
			}
		}
	})
}
