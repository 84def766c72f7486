package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

// RespawnSystem consumes RespawnRequest: the player returns to its spawn
// point at rest with its body re-enabled.
type RespawnSystem struct {
	log *zap.Logger
}

func NewRespawnSystem(log *zap.Logger) *RespawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &RespawnSystem{log: log}
}

func (r *RespawnSystem) Update(w *ecs.World) {
	if r == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.RespawnRequestComponent.Kind().ID()) {
		ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		SetBodyTopLeft(transform, body, player.SpawnX, player.SpawnY)
		if body != nil {
			body.Disabled = false
			body.AccelX = 0
			if body.Body != nil {
				body.Body.SetVelocity(0, 0)
			}
		}

		if death, ok := ecs.Get(w, e, component.DeathComponent.Kind()); ok {
			death.Dead = false
		}
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			pc.HazardContact = false
		}
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			anim.Play(idleAnimation, false)
		}
		if state, ok := ecs.Get(w, e, component.PlayerStateComponent.Kind()); ok {
			state.Current = component.PlayerStateIdle
		}

		r.log.Info("player respawned", zap.Stringer("entity", e), zap.Float64("x", player.SpawnX), zap.Float64("y", player.SpawnY))
	}
}
