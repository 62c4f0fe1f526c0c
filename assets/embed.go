package assets

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

//go:embed *.wav
var assetsFS embed.FS

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use. Ebiten allows only one per process.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadAudio(path)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(path))
	if !strings.HasSuffix(clean, ".wav") {
		return nil, fmt.Errorf("unsupported audio format %q", path)
	}

	ctx := AudioContext()
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return ctx.NewPlayer(stream)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
