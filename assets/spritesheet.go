package assets

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheet slices an image into equally sized frames numbered left to
// right, top to bottom.
type SpriteSheet struct {
	Image   *ebiten.Image
	FrameW  int
	FrameH  int
	Columns int
	Rows    int
}

// NewSpriteSheet wraps img as a sheet of frameW x frameH frames.
func NewSpriteSheet(img *ebiten.Image, frameW, frameH int) (*SpriteSheet, error) {
	if img == nil {
		return nil, fmt.Errorf("assets: spritesheet: nil image")
	}
	b := img.Bounds()
	sheet, err := NewSpriteSheetSize(b.Dx(), b.Dy(), frameW, frameH)
	if err != nil {
		return nil, err
	}
	sheet.Image = img
	return sheet, nil
}

// NewSpriteSheetSize builds the frame grid for an image of the given pixel
// size without holding the image itself.
func NewSpriteSheetSize(width, height, frameW, frameH int) (*SpriteSheet, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("assets: spritesheet: invalid frame size %dx%d", frameW, frameH)
	}
	cols := width / frameW
	rows := height / frameH
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("assets: spritesheet: image %dx%d smaller than frame %dx%d", width, height, frameW, frameH)
	}
	return &SpriteSheet{FrameW: frameW, FrameH: frameH, Columns: cols, Rows: rows}, nil
}

// FrameCount returns the number of whole frames on the sheet.
func (s *SpriteSheet) FrameCount() int {
	if s == nil {
		return 0
	}
	return s.Columns * s.Rows
}

// FrameRect returns the source rectangle of frame i.
func (s *SpriteSheet) FrameRect(i int) (image.Rectangle, bool) {
	if s == nil || i < 0 || i >= s.FrameCount() {
		return image.Rectangle{}, false
	}
	x := (i % s.Columns) * s.FrameW
	y := (i / s.Columns) * s.FrameH
	return image.Rect(x, y, x+s.FrameW, y+s.FrameH), true
}

// Frame returns frame i as a sub-image, or nil when out of range.
func (s *SpriteSheet) Frame(i int) *ebiten.Image {
	if s == nil || s.Image == nil {
		return nil
	}
	r, ok := s.FrameRect(i)
	if !ok {
		return nil
	}
	return s.Image.SubImage(r).(*ebiten.Image)
}

// LoadSpriteSheet loads an embedded image and slices it.
func LoadSpriteSheet(path string, frameW, frameH int) (*SpriteSheet, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	sheet, err := NewSpriteSheet(img, frameW, frameH)
	if err != nil {
		return nil, fmt.Errorf("assets: %q: %w", path, err)
	}
	return sheet, nil
}
