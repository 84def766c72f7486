package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ParticleSystem moves emitters onto their follow target, spawns particles
// from running emitters and ages live ones.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (p *ParticleSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(_ ecs.Entity, em *component.ParticleEmitter) {
		if em.FollowTarget != 0 {
			if t, ok := ecs.Get(w, ecs.Entity(em.FollowTarget), component.TransformComponent.Kind()); ok {
				em.X = t.X + em.FollowOffX
				em.Y = t.Y + em.FollowOffY
			}
		}

		stepParticles(em)

		if spawn, frame := em.Tick(); spawn {
			em.Particles = append(em.Particles, component.Particle{
				X:     em.X,
				Y:     em.Y,
				VX:    em.SpeedX,
				VY:    em.SpeedY,
				Life:  FramesFor(em.Lifespan),
				Frame: frame,
				Scale: em.ScaleStart,
				Alpha: em.AlphaStart,
			})
		}
	})
}

func stepParticles(em *component.ParticleEmitter) {
	alive := em.Particles[:0]
	for _, pt := range em.Particles {
		pt.Age++
		if pt.Life <= 0 || pt.Age >= pt.Life {
			continue
		}
		pt.VY += em.GravityY * stepSeconds
		pt.X += pt.VX * stepSeconds
		pt.Y += pt.VY * stepSeconds
		t := float64(pt.Age) / float64(pt.Life)
		pt.Scale = lerp(em.ScaleStart, em.ScaleEnd, t)
		pt.Alpha = lerp(em.AlphaStart, em.AlphaEnd, t)
		alive = append(alive, pt)
	}
	em.Particles = alive
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Draw renders live particles centered on their position through the
// camera.
func (p *ParticleSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if p == nil || w == nil || screen == nil {
		return
	}
	view := cameraView(w)

	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(_ ecs.Entity, em *component.ParticleEmitter) {
		for _, pt := range em.Particles {
			if pt.Frame < 0 || pt.Frame >= len(em.Frames) {
				continue
			}
			img := em.Frames[pt.Frame]
			if img == nil {
				continue
			}
			b := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
			op.GeoM.Scale(pt.Scale, pt.Scale)
			op.GeoM.Translate(pt.X, pt.Y)
			view.apply(&op.GeoM)
			op.ColorScale.ScaleAlpha(float32(pt.Alpha))
			screen.DrawImage(img, op)
		}
	})
}
