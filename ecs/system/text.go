package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// strokeOffsets approximates an outline by redrawing the label around
// its position.
var strokeOffsets = [][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// TextSystem draws visible Text components. Labels with ScreenSpace ignore
// the camera.
type TextSystem struct{}

func NewTextSystem() *TextSystem {
	return &TextSystem{}
}

func (ts *TextSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if ts == nil || w == nil || screen == nil {
		return
	}
	v := cameraView(w)

	for _, e := range w.Query(component.TextComponent.Kind().ID()) {
		label, _ := ecs.Get(w, e, component.TextComponent.Kind())
		if label == nil || !label.Visible || label.Value == "" || label.Face == nil {
			continue
		}

		x, y := label.X, label.Y
		scale := 1.0
		if !ecs.Has(w, e, component.ScreenSpaceComponent.Kind()) {
			x, y = v.toScreen(x, y)
			scale = v.zoom
		}
		DrawLabel(screen, label, x, y, scale)
	}
}

// DrawLabel draws a label anchored by its origin at screen position (x, y).
func DrawLabel(screen *ebiten.Image, label *component.Text, x, y, scale float64) {
	lineSpacing := label.Face.Metrics().HAscent + label.Face.Metrics().HDescent
	tw, th := text.Measure(label.Value, label.Face, lineSpacing)
	ox := -tw * label.OriginX
	oy := -th * label.OriginY

	if label.Stroke != nil && label.StrokeWidth > 0 {
		for _, off := range strokeOffsets {
			drawText(screen, label, label.Stroke, lineSpacing, ox+off[0]*label.StrokeWidth, oy+off[1]*label.StrokeWidth, x, y, scale)
		}
	}
	fill := label.Fill
	if fill == nil {
		fill = color.White
	}
	drawText(screen, label, fill, lineSpacing, ox, oy, x, y, scale)
}

func drawText(screen *ebiten.Image, label *component.Text, c color.Color, lineSpacing, ox, oy, x, y, scale float64) {
	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing
	op.GeoM.Translate(ox, oy)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, label.Value, label.Face, op)
}
