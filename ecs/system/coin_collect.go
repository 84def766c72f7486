package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

// CoinCollectSystem destroys every coin the living player overlaps and
// credits the coin counter.
type CoinCollectSystem struct {
	log *zap.Logger
}

func NewCoinCollectSystem(log *zap.Logger) *CoinCollectSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CoinCollectSystem{log: log}
}

func (c *CoinCollectSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	player, ok := livePlayer(w)
	if !ok {
		return
	}
	playerBox, ok := bodyBox(w, player)
	if !ok {
		return
	}

	var counter *component.CoinCounter
	if e, ok := ecs.First(w, component.CoinCounterComponent.Kind()); ok {
		counter, _ = ecs.Get(w, e, component.CoinCounterComponent.Kind())
	}

	ecs.ForEach2(w, component.CoinComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, coin *component.Coin, t *component.Transform) {
		box := aabb{x: t.X, y: t.Y, w: coin.Width, h: coin.Height}
		if !playerBox.overlaps(box) {
			return
		}
		value := coin.Value
		if value <= 0 {
			value = 1
		}
		w.DestroyEntity(e)
		if counter != nil {
			counter.Collected += value
		}
		c.log.Debug("coin collected", zap.Stringer("coin", e), zap.Float64("x", t.X), zap.Float64("y", t.Y))
	})
}
