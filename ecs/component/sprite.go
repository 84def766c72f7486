package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite draws Image at the entity Transform. Source selects a sub-rect
// when UseSource is set. Alpha in (0,1) fades the sprite; 0 draws opaque.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Hidden     bool
	Alpha      float64
}

// Size is the drawn size in pixels, zero without an image.
func (s *Sprite) Size() (float64, float64) {
	switch {
	case s == nil:
		return 0, 0
	case s.UseSource:
		return float64(s.Source.Dx()), float64(s.Source.Dy())
	case s.Image != nil:
		b := s.Image.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
	return 0, 0
}

var SpriteComponent = NewComponent[Sprite]()
