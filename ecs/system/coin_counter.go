package system

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const defaultCoinFormat = "Coins: %d / %d"

// CoinCounterSystem refreshes the HUD label when the count changes.
type CoinCounterSystem struct{}

func NewCoinCounterSystem() *CoinCounterSystem {
	return &CoinCounterSystem{}
}

func (c *CoinCounterSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.CoinCounterComponent.Kind(), component.TextComponent.Kind(), func(_ ecs.Entity, counter *component.CoinCounter, label *component.Text) {
		format := counter.Format
		if format == "" {
			format = defaultCoinFormat
		}
		value := fmt.Sprintf(format, counter.Collected, counter.Total)
		if value == counter.RenderedText {
			return
		}
		counter.RenderedText = value
		label.Value = value
	})
}
