package component

import "time"

// Player holds movement tuning for the controllable character.
type Player struct {
	Acceleration     float64
	Drag             float64
	MaxSpeed         float64
	JumpVelocity     float64
	ParticleVelocity float64
	// SpawnX/SpawnY is the sprite top-left used on respawn.
	SpawnX       float64
	SpawnY       float64
	RespawnDelay time.Duration
}

var PlayerComponent = NewComponent[Player]()
