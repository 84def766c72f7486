package component

// SceneRequest is a one-shot request emitted by gameplay systems asking the
// owning scene to switch scenes or restart. Systems only emit data; the
// scene manager owns world teardown and rebuild.
type SceneRequest struct {
	Next    string
	Restart bool
}

var SceneRequestComponent = NewComponent[SceneRequest]()
