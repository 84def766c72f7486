package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// StaticTile marks a decorative or solid map tile sprite.
type StaticTile struct {
	Layer string
	GID   uint32
}

var StaticTileComponent = NewComponent[StaticTile]()

// RunningEmitterTag marks the smoke emitter driven by the player controller.
type RunningEmitterTag struct{}

var RunningEmitterTagComponent = NewComponent[RunningEmitterTag]()

// SoundEffectsTag marks the scene's shared sound bank.
type SoundEffectsTag struct{}

var SoundEffectsTagComponent = NewComponent[SoundEffectsTag]()
