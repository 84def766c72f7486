package component

// PhysicsDebug holds the collider overlay toggle.
type PhysicsDebug struct {
	Enabled bool
}

var PhysicsDebugComponent = NewComponent[PhysicsDebug]()
