package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

const requiredCoinsProperty = "requiredCoins"

// NewEndZone finds the end zone object in the map and spawns its overlap
// region. A missing object returns levels.ErrObjectNotFound.
func NewEndZone(w *ecs.World, m *levels.Map, level *prefabs.LevelSpec, spec *prefabs.EndZoneSpec) (ecs.Entity, error) {
	obj, err := m.FindObject(level.ObjectsLayer, func(o *levels.Object) bool {
		return o.Name == level.EndZoneObject
	})
	if err != nil {
		return 0, fmt.Errorf("end zone: %w", err)
	}
	if obj.Width <= 0 || obj.Height <= 0 {
		return 0, fmt.Errorf("end zone: object %d has no size", obj.ID)
	}

	zone := ecs.CreateEntity(w)
	if err := ecs.Add(w, zone, component.TransformComponent.Kind(), &component.Transform{X: obj.X, Y: obj.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("end zone: add transform: %w", err)
	}
	if err := ecs.Add(w, zone, component.EndZoneComponent.Kind(), &component.EndZone{
		Width:         obj.Width,
		Height:        obj.Height,
		RequiredCoins: obj.Properties.Int(requiredCoinsProperty, 0),
		NextScene:     spec.NextScene,
		Delay:         spec.Delay,
	}); err != nil {
		return 0, fmt.Errorf("end zone: add end zone: %w", err)
	}
	return zone, nil
}
