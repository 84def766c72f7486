package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio is a bank of named sound players. Systems request playback by name;
// the AudioSystem applies requests once per frame.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
	// Active mirrors the requested playing state so logic works without a
	// real audio device.
	Active []bool
}

func (a *Audio) index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// RequestPlay queues the named sound. It reports false for unknown names.
func (a *Audio) RequestPlay(name string) bool {
	i := a.index(name)
	if i < 0 || i >= len(a.Play) {
		return false
	}
	a.Play[i] = true
	a.Stop[i] = false
	a.Active[i] = true
	return true
}

// RequestStop queues a stop for the named sound.
func (a *Audio) RequestStop(name string) bool {
	i := a.index(name)
	if i < 0 || i >= len(a.Stop) {
		return false
	}
	a.Stop[i] = true
	a.Play[i] = false
	a.Active[i] = false
	return true
}

// IsPlaying reports whether the named sound is playing or queued to play.
func (a *Audio) IsPlaying(name string) bool {
	i := a.index(name)
	if i < 0 {
		return false
	}
	if i < len(a.Players) && a.Players[i] != nil && a.Players[i].IsPlaying() {
		return true
	}
	return i < len(a.Active) && a.Active[i]
}

var AudioComponent = NewComponent[Audio]()
