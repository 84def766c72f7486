package component

type Camera struct {
	TargetName string
	Zoom       float64
	LerpX      float64
	LerpY      float64
	DeadzoneW  float64
	DeadzoneH  float64
	ViewW      float64
	ViewH      float64
	// Bounds clamp the view to the level when both are positive.
	BoundsW float64
	BoundsH float64
	// ScrollX/ScrollY is the world position shown at the view's top-left.
	ScrollX     float64
	ScrollY     float64
	Initialized bool
}

var CameraComponent = NewComponent[Camera]()
