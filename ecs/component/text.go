package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Text is a label drawn by the TextSystem. Screen-space labels ignore the
// camera; X/Y is then in screen pixels.
type Text struct {
	Value       string
	Face        text.Face
	Size        float64
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	// OriginX/OriginY in [0,1]: 0.5 centers the label on X/Y.
	OriginX float64
	OriginY float64
	X       float64
	Y       float64
	Visible bool
	// Shown counts hidden->visible transitions.
	Shown int
}

// Show makes the label visible, counting the transition once.
func (t *Text) Show() {
	if t == nil || t.Visible {
		return
	}
	t.Visible = true
	t.Shown++
}

var TextComponent = NewComponent[Text]()

// LevelClearedText tags the label revealed when the level is finished.
type LevelClearedText struct{}

var LevelClearedTextComponent = NewComponent[LevelClearedText]()

// CoinCounterText tags the HUD label showing the coin count.
type CoinCounterText struct{}

var CoinCounterTextComponent = NewComponent[CoinCounterText]()

// ExitToast tags the short-lived "exit locked" message.
type ExitToast struct{}

var ExitToastComponent = NewComponent[ExitToast]()
