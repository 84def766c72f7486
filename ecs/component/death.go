package component

// Death guards the death sequence so it runs once per life.
type Death struct {
	Dead  bool
	Count int
}

var DeathComponent = NewComponent[Death]()

// DeathRequest is a one-shot marker asking the DeathSystem to kill the
// entity. Requests against an already dead entity are dropped.
type DeathRequest struct{}

var DeathRequestComponent = NewComponent[DeathRequest]()

// RespawnRequest is a one-shot marker consumed by the RespawnSystem.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
