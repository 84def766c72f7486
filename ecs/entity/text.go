package entity

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// Anchor names accepted by text prefabs.
const (
	AnchorCenter   = "center"
	AnchorTopLeft  = "top_left"
	AnchorTopRight = "top_right"
)

// NewLevelClearedText creates the hidden screen-space label shown when the
// level is finished.
func NewLevelClearedText(w *ecs.World, spec *prefabs.TextSpec, face text.Face, viewW, viewH float64) (ecs.Entity, error) {
	e, err := newLabel(w, spec, face, viewW, viewH)
	if err != nil {
		return 0, fmt.Errorf("level cleared text: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelClearedTextComponent.Kind(), &component.LevelClearedText{}); err != nil {
		return 0, fmt.Errorf("level cleared text: add tag: %w", err)
	}
	return e, nil
}

// NewCoinCounter creates the HUD label and the counter it displays. The
// prefab text is the format, receiving collected then total.
func NewCoinCounter(w *ecs.World, spec *prefabs.TextSpec, face text.Face, total int, viewW, viewH float64) (ecs.Entity, error) {
	e, err := newLabel(w, spec, face, viewW, viewH)
	if err != nil {
		return 0, fmt.Errorf("coin counter: %w", err)
	}
	label, _ := ecs.Get(w, e, component.TextComponent.Kind())
	counter := &component.CoinCounter{Total: total, Format: spec.Text}
	label.Value = fmt.Sprintf(counter.Format, 0, total)
	counter.RenderedText = label.Value

	if err := ecs.Add(w, e, component.CoinCounterComponent.Kind(), counter); err != nil {
		return 0, fmt.Errorf("coin counter: add counter: %w", err)
	}
	if err := ecs.Add(w, e, component.CoinCounterTextComponent.Kind(), &component.CoinCounterText{}); err != nil {
		return 0, fmt.Errorf("coin counter: add tag: %w", err)
	}
	return e, nil
}

func newLabel(w *ecs.World, spec *prefabs.TextSpec, face text.Face, viewW, viewH float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("text spec is nil")
	}
	x, y, ox, oy, err := AnchorPosition(spec.Anchor, spec.Margin, viewW, viewH)
	if err != nil {
		return 0, err
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{
		Value:       spec.Text,
		Face:        face,
		Size:        spec.Size,
		Fill:        spec.Fill.ColorOr(color.White),
		Stroke:      spec.Stroke.ColorOr(nil),
		StrokeWidth: spec.StrokeWidth,
		OriginX:     ox,
		OriginY:     oy,
		X:           x,
		Y:           y,
		Visible:     spec.Visible,
	}); err != nil {
		return 0, fmt.Errorf("add text: %w", err)
	}
	if err := ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{}); err != nil {
		return 0, fmt.Errorf("add screen space: %w", err)
	}
	return e, nil
}

// AnchorPosition returns the screen point and origin for an anchor name.
func AnchorPosition(anchor string, margin, viewW, viewH float64) (x, y, originX, originY float64, err error) {
	switch anchor {
	case "", AnchorCenter:
		return viewW / 2, viewH / 2, 0.5, 0.5, nil
	case AnchorTopLeft:
		return margin, margin, 0, 0, nil
	case AnchorTopRight:
		return viewW - margin, margin, 1, 0, nil
	}
	return 0, 0, 0, 0, fmt.Errorf("unknown anchor %q", anchor)
}
