package system

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// RenderSystem draws every Transform+Sprite entity sorted by render layer.
// World sprites go through the camera and are culled against the view;
// screen-space sprites are drawn last without the camera.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	v := cameraView(w)
	sb := screen.Bounds()
	entities := sortedSprites(w)

	var overlay []ecs.Entity
	for _, e := range entities {
		if ecs.Has(w, e, component.ScreenSpaceComponent.Kind()) {
			overlay = append(overlay, e)
			continue
		}
		drawSprite(w, e, screen, &v, sb)
	}
	for _, e := range overlay {
		drawSprite(w, e, screen, nil, sb)
	}
}

// sortedSprites orders drawable entities by layer, then by entity id.
func sortedSprites(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	layerOf := func(e ecs.Entity) int {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return layer.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(entities[i]), layerOf(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func drawSprite(w *ecs.World, e ecs.Entity, screen *ebiten.Image, v *view, bounds image.Rectangle) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || s.Image == nil || s.Hidden {
		return
	}

	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}

	if v != nil && !onScreen(*v, bounds, t.X-s.OriginX*sx, t.Y-s.OriginY*sy, iw*sx, ih*sy) {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)
	if s.FacingLeft {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(iw, 0)
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(t.X, t.Y)
	if v != nil {
		v.apply(&op.GeoM)
	}
	if s.Alpha > 0 && s.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(s.Alpha))
	}
	screen.DrawImage(img, op)
}

// onScreen reports whether a world rectangle intersects the screen bounds.
func onScreen(v view, bounds image.Rectangle, x, y, w, h float64) bool {
	x0, y0 := v.toScreen(x, y)
	x1, y1 := v.toScreen(x+w, y+h)
	return x1 >= float64(bounds.Min.X) && x0 <= float64(bounds.Max.X) &&
		y1 >= float64(bounds.Min.Y) && y0 <= float64(bounds.Max.Y)
}
