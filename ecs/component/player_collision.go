package component

// PlayerCollision stores per-player collision state derived from physics
// contacts during the last step.
type PlayerCollision struct {
	BlockedDown   bool
	HazardContact bool
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
