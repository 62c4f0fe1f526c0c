package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/brawler/assets"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/prefabs"
)

// AudioLoader opens a clip by asset path. A nil player keeps the clip name
// known but silent.
type AudioLoader func(path string) (*audio.Player, error)

func buildAudioComponent(audioSpecs []prefabs.AudioSpec, load AudioLoader) (*component.Audio, error) {
	n := len(audioSpecs)
	if n == 0 {
		return nil, nil
	}
	if load == nil {
		load = assets.LoadAudioPlayer
	}

	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)
	play := make([]bool, 0, n)
	stop := make([]bool, 0, n)

	for i, clip := range audioSpecs {
		player, err := load(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, vol)
		play = append(play, false)
		stop = append(stop, false)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    play,
		Stop:    stop,
	}, nil
}
