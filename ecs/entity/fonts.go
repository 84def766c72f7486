package entity

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	fontErr    error
)

// NewFace returns a Go Regular face of the given pixel size.
func NewFace(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if fontErr != nil {
		return nil, fmt.Errorf("fonts: load go regular: %w", fontErr)
	}
	return &text.GoTextFace{Source: fontSource, Size: size}, nil
}

// FallbackFace is a fixed 7x13 bitmap face for when the TTF source fails.
func FallbackFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}
