package component

type PlayerStateName string

const (
	PlayerStateIdle  PlayerStateName = "idle"
	PlayerStateRun   PlayerStateName = "run"
	PlayerStateJump  PlayerStateName = "jump"
	PlayerStateDeath PlayerStateName = "death"
)

// PlayerState is the movement state chosen by the controller this frame.
type PlayerState struct {
	Current    PlayerStateName
	FacingLeft bool
}

var PlayerStateComponent = NewComponent[PlayerState]()
