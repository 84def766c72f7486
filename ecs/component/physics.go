package component

import "github.com/jakecoffman/cp/v2"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Offsets are measured from the Transform's top-left.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	OffsetX    float64
	OffsetY    float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	// Disabled takes the body out of the simulation until cleared.
	Disabled bool
	// AccelX is integrated into the body's x velocity every physics step.
	AccelX float64
	// DragX decelerates x velocity toward zero while AccelX is zero.
	DragX float64
	// MaxSpeedX caps |vx| after integration when positive.
	MaxSpeedX float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
