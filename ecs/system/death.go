package system

import (
	"math"
	"time"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

const defaultRespawnDelay = time.Second

// DeathSystem consumes DeathRequest components. A request against an entity
// that is already dead is dropped, so the sequence runs once per life.
type DeathSystem struct {
	log *zap.Logger
}

func NewDeathSystem(log *zap.Logger) *DeathSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeathSystem{log: log}
}

func (d *DeathSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.DeathRequestComponent.Kind().ID()) {
		ecs.Remove(w, e, component.DeathRequestComponent.Kind())

		death, ok := ecs.Get(w, e, component.DeathComponent.Kind())
		if !ok {
			death = &component.Death{}
			if err := ecs.Add(w, e, component.DeathComponent.Kind(), death); err != nil {
				continue
			}
		}
		if death.Dead {
			continue
		}
		death.Dead = true
		death.Count++

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			body.AccelX = 0
			if body.Body != nil {
				body.Body.SetVelocity(0, 0)
			}
			body.Disabled = true
		}

		sounds := soundBank(w)
		sounds.RequestStop(walkSound)
		sounds.RequestPlay(deathSound)
		runningEmitter(w).Stop()

		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			anim.Play(deathAnimation, false)
		}
		if state, ok := ecs.Get(w, e, component.PlayerStateComponent.Kind()); ok {
			state.Current = component.PlayerStateDeath
		}

		delay := defaultRespawnDelay
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && player.RespawnDelay > 0 {
			delay = player.RespawnDelay
		}
		_ = ecs.Add(w, e, component.TimerComponent.Kind(), &component.Timer{
			Action: component.TimerActionRespawn,
			Frames: FramesFor(delay),
		})

		d.log.Info("player died", zap.Stringer("entity", e), zap.Int("deaths", death.Count), zap.Duration("respawn_in", delay))
	}
}

// FramesFor converts a duration into update ticks, rounding to the nearest
// tick and never returning less than one for a positive duration.
func FramesFor(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	n := int(math.Round(d.Seconds() * TPS))
	if n < 1 {
		n = 1
	}
	return n
}
