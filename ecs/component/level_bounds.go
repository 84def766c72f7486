package component

// LevelBounds is the tilemap size in pixels. The physics system walls it
// off and the camera clamps to it.
type LevelBounds struct {
	Width  float64
	Height float64
}

func (b LevelBounds) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
