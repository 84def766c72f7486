package entity

import (
	"fmt"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// NewCoin places a coin pickup on a map object. Tile objects are already
// top-left aligned by the level parser.
func NewCoin(w *ecs.World, spec *prefabs.CoinSpec, sheet *assets.SpriteSheet, obj *levels.Object) (ecs.Entity, error) {
	if spec == nil || obj == nil {
		return 0, fmt.Errorf("coin: missing spec or object")
	}

	width, height := obj.Width, obj.Height
	if sheet != nil {
		if width <= 0 {
			width = float64(sheet.FrameW)
		}
		if height <= 0 {
			height = float64(sheet.FrameH)
		}
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("coin: object %d has no size", obj.ID)
	}

	coin := ecs.CreateEntity(w)
	if err := ecs.Add(w, coin, component.TransformComponent.Kind(), &component.Transform{X: obj.X, Y: obj.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("coin: add transform: %w", err)
	}
	value := spec.Value
	if v := obj.Properties.Int("value", 0); v > 0 {
		value = v
	}
	if err := ecs.Add(w, coin, component.CoinComponent.Kind(), &component.Coin{Width: width, Height: height, Value: value}); err != nil {
		return 0, fmt.Errorf("coin: add coin: %w", err)
	}

	sprite := &component.Sprite{}
	if sheet != nil {
		sprite.Image = sheet.Frame(spec.Frame)
	}
	if err := ecs.Add(w, coin, component.SpriteComponent.Kind(), sprite); err != nil {
		return 0, fmt.Errorf("coin: add sprite: %w", err)
	}
	if err := ecs.Add(w, coin, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return 0, fmt.Errorf("coin: add render layer: %w", err)
	}
	return coin, nil
}

// NewCoins spawns every object with the prefab coin name in the objects layer.
func NewCoins(w *ecs.World, m *levels.Map, level *prefabs.LevelSpec, spec *prefabs.CoinSpec, sheet *assets.SpriteSheet) (int, error) {
	objs, err := m.ObjectsNamed(level.ObjectsLayer, level.CoinObject)
	if err != nil {
		return 0, fmt.Errorf("coin: %w", err)
	}
	for _, obj := range objs {
		if _, err := NewCoin(w, spec, sheet, obj); err != nil {
			return 0, err
		}
	}
	return len(objs), nil
}
