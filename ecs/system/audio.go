package system

import (
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// Update starts requested clips from the top and pauses stopped ones. A clip
// that is still playing is restarted so rapid impacts stay audible.
func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Players), len(audioComp.Play), len(audioComp.Stop))

		for i := 0; i < count; i++ {
			player := audioComp.Players[i]
			if audioComp.Stop[i] {
				if player != nil && player.IsPlaying() {
					player.Pause()
				}
				audioComp.Stop[i] = false
			}
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if player == nil {
				continue
			}
			if i < len(audioComp.Volume) {
				player.SetVolume(audioComp.Volume[i])
			}
			if err := player.Rewind(); err != nil {
				continue
			}
			player.Play()
		}
	})
}
