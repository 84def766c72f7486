package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount() <= 0 {
			return
		}

		if anim.Playing {
			advanceAnimation(anim, def)
		}

		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || anim.Sheet == nil {
			return
		}
		if img := anim.Sheet.Frame(anim.SheetFrame()); img != nil {
			sprite.Image = img
			sprite.UseSource = false
		}
	})
}

// TicksPerFrame converts an animation rate into update ticks per frame.
func TicksPerFrame(fps float64) int {
	if fps <= 0 {
		return TPS
	}
	n := int(math.Round(TPS / fps))
	if n < 1 {
		n = 1
	}
	return n
}

func advanceAnimation(anim *component.Animation, def component.AnimationDef) {
	anim.FrameTimer++
	if anim.FrameTimer < TicksPerFrame(def.FPS) {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame < def.FrameCount() {
		return
	}
	if def.Loop {
		anim.Frame = 0
		return
	}
	anim.Frame = def.FrameCount() - 1
	anim.Playing = false
}
