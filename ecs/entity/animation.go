package entity

import (
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// AnimationDefs returns the manifest animations defined on sheet, keyed by
// animation name.
func AnimationDefs(specs []prefabs.AnimationSpec, sheet string) map[string]component.AnimationDef {
	defs := make(map[string]component.AnimationDef)
	for _, a := range specs {
		if a.Sheet != sheet {
			continue
		}
		defs[a.Key] = component.AnimationDef{
			Name:  a.Key,
			Start: a.Start,
			End:   a.End,
			FPS:   a.FPS,
			Loop:  a.Loops(),
		}
	}
	return defs
}
