package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const tickDuration = time.Second / 60

// NewRunningEmitter builds the stopped smoke emitter the player controller
// drives. Frames come from atlas; followW/followH is the size of the sprite
// the emitter follows, since the prefab offset is measured from its center.
func NewRunningEmitter(w *ecs.World, spec *prefabs.EmitterSpec, atlas *assets.MultiAtlas, followW, followH float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("emitter: spec is nil")
	}
	if len(spec.Frames) == 0 {
		return 0, fmt.Errorf("emitter %q: no frames", spec.Name)
	}

	frames := make([]*ebiten.Image, 0, len(spec.Frames))
	frameW := 0
	for _, name := range spec.Frames {
		f, err := atlas.Lookup(name)
		if err != nil {
			return 0, fmt.Errorf("emitter %q: %w", spec.Name, err)
		}
		if frameW == 0 {
			frameW = f.Rect.Dx()
		}
		if len(atlas.Pages) > 0 {
			img, err := atlas.Frame(name)
			if err != nil {
				return 0, fmt.Errorf("emitter %q: %w", spec.Name, err)
			}
			frames = append(frames, img)
		}
	}

	scale := ParticleScale(spec.SourceSize, frameW)
	em := &component.ParticleEmitter{
		Frames:     frames,
		FrameNames: append([]string(nil), spec.Frames...),
		Lifespan:   spec.Lifespan,
		ScaleStart: spec.ScaleStart * scale,
		ScaleEnd:   spec.ScaleEnd * scale,
		AlphaStart: spec.AlphaStart,
		AlphaEnd:   spec.AlphaEnd,
		Frequency:  frequencyTicks(spec.Frequency),
		MaxAlive:   spec.MaxAlive,
		GravityY:   spec.GravityY,
		FollowOffX: followW/2 + spec.Offset.X,
		FollowOffY: followH/2 + spec.Offset.Y,
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.RunningEmitterTagComponent.Kind(), &component.RunningEmitterTag{}); err != nil {
		return 0, fmt.Errorf("emitter: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), em); err != nil {
		return 0, fmt.Errorf("emitter: add emitter: %w", err)
	}
	return e, nil
}

// ParticleScale converts a scale authored against sourceSize pixel frames
// to the frame size actually shipped.
func ParticleScale(sourceSize float64, frameW int) float64 {
	if sourceSize <= 0 || frameW <= 0 {
		return 1
	}
	return sourceSize / float64(frameW)
}

func frequencyTicks(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	n := int(math.Round(float64(d) / float64(tickDuration)))
	if n < 1 {
		n = 1
	}
	return n
}
