package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// NewCamera creates the scene camera for a viewW x viewH screen, bounded to
// the level when bounds are positive.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, viewW, viewH, boundsW, boundsH float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: spec is nil")
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	lerpX, lerpY := spec.LerpX, spec.LerpY
	if lerpX <= 0 {
		lerpX = 1
	}
	if lerpY <= 0 {
		lerpY = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.Target,
		Zoom:       zoom,
		LerpX:      lerpX,
		LerpY:      lerpY,
		DeadzoneW:  spec.DeadzoneW,
		DeadzoneH:  spec.DeadzoneH,
		ViewW:      viewW,
		ViewH:      viewH,
		BoundsW:    boundsW,
		BoundsH:    boundsH,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
