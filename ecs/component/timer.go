package component

type TimerAction string

const (
	TimerActionRespawn TimerAction = "respawn"
	TimerActionScene   TimerAction = "scene"
)

// Timer is a one-shot delayed action counted in update ticks.
type Timer struct {
	Action TimerAction
	Frames int
	// Scene is the target for TimerActionScene.
	Scene string
}

var TimerComponent = NewComponent[Timer]()
