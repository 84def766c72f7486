package component

// Input stores per-frame input state for an entity.
type Input struct {
	Left           bool
	Right          bool
	JumpPressed    bool
	ExitPressed    bool
	RestartPressed bool
	DebugToggled   bool
}

var InputComponent = NewComponent[Input]()
