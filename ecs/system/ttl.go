package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// TTLSystem expires short-lived entities such as the exit-locked toast.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var expired []ecs.Entity
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Frames--
		if ttl.Frames <= 0 {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		ecs.DestroyEntity(w, e)
	}
}
