package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

type audioLoader func(path string, loop bool) (*audio.Player, error)

// NewSoundEffects creates the scene's sound bank. files maps manifest audio
// keys to asset files.
func NewSoundEffects(w *ecs.World, spec *prefabs.SoundsSpec, files map[string]string) (ecs.Entity, error) {
	return newSoundEffects(w, spec, files, assets.LoadAudioPlayer)
}

func newSoundEffects(w *ecs.World, spec *prefabs.SoundsSpec, files map[string]string, load audioLoader) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("sounds: spec is nil")
	}
	comp, err := buildAudioComponent(spec.Sounds, files, load)
	if err != nil {
		return 0, err
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SoundEffectsTagComponent.Kind(), &component.SoundEffectsTag{}); err != nil {
		return 0, fmt.Errorf("sounds: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), comp); err != nil {
		return 0, fmt.Errorf("sounds: add audio: %w", err)
	}
	return e, nil
}

func buildAudioComponent(audioSpecs []prefabs.AudioSpec, files map[string]string, load audioLoader) (*component.Audio, error) {
	n := len(audioSpecs)
	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)

	for i, clip := range audioSpecs {
		file, ok := files[clip.Asset]
		if !ok {
			return nil, fmt.Errorf("sounds: clip %d (%q): unknown audio asset %q", i, clip.Name, clip.Asset)
		}
		player, err := load(file, clip.Loop)
		if err != nil {
			return nil, fmt.Errorf("sounds: clip %d (%q): %w", i, clip.Name, err)
		}
		if player != nil {
			player.SetVolume(clip.Volume)
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, clip.Volume)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
		Active:  make([]bool, n),
	}, nil
}
