package component

// Transform places an entity in world space. X/Y is the top-left corner of
// the entity's sprite frame.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
