package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type aabb struct {
	x, y, w, h float64
}

func (a aabb) overlaps(b aabb) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

// bodyBox returns the world-space collider box of an entity with a
// PhysicsBody.
func bodyBox(w *ecs.World, e ecs.Entity) (aabb, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return aabb{}, false
	}
	b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || b.Width <= 0 || b.Height <= 0 {
		return aabb{}, false
	}
	return aabb{x: t.X + b.OffsetX, y: t.Y + b.OffsetY, w: b.Width, h: b.Height}, true
}

// livePlayer returns the first player that is not dead.
func livePlayer(w *ecs.World) (ecs.Entity, bool) {
	for _, e := range w.Query(component.PlayerTagComponent.Kind().ID()) {
		if death, ok := ecs.Get(w, e, component.DeathComponent.Kind()); ok && death.Dead {
			continue
		}
		return e, true
	}
	return 0, false
}
