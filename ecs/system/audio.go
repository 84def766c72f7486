package system

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AudioSystem applies queued play/stop requests to the audio players.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Names)
		for i := 0; i < count; i++ {
			player := playerAt(audioComp, i)

			if flagAt(audioComp.Play, i) {
				if player != nil {
					if i < len(audioComp.Volume) {
						player.SetVolume(audioComp.Volume[i])
					}
					if !player.IsPlaying() {
						_ = player.Rewind()
						player.Play()
					}
				}
				audioComp.Play[i] = false
			}

			if flagAt(audioComp.Stop, i) {
				if player != nil && player.IsPlaying() {
					player.Pause()
				}
				audioComp.Stop[i] = false
			}

			// Finished one-shots are no longer active.
			if player != nil && !player.IsPlaying() && i < len(audioComp.Active) {
				audioComp.Active[i] = false
			}
		}
	})
}

// StopAll pauses every player in the world, e.g. when a scene exits.
func (a *AudioSystem) StopAll(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		for i := range audioComp.Names {
			if player := playerAt(audioComp, i); player != nil && player.IsPlaying() {
				player.Pause()
			}
			if i < len(audioComp.Active) {
				audioComp.Active[i] = false
			}
		}
	})
}

func flagAt(flags []bool, i int) bool {
	return i < len(flags) && flags[i]
}

func playerAt(a *component.Audio, i int) *audio.Player {
	if i < 0 || i >= len(a.Players) {
		return nil
	}
	return a.Players[i]
}
