package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	walkSound      = "walk"
	deathSound     = "death"
	idleAnimation  = "idle"
	runAnimation   = "run"
	jumpAnimation  = "jump"
	deathAnimation = "death"
)

// PlayerControllerSystem turns Input into movement, animation, walking
// sound and running smoke for every player.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	sounds := soundBank(w)
	emitter := runningEmitter(w)

	for _, e := range w.Query(component.PlayerTagComponent.Kind().ID(), component.PlayerComponent.Kind().ID(), component.InputComponent.Kind().ID()) {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || player == nil || input == nil {
			continue
		}

		if input.RestartPressed {
			requestScene(w, component.SceneRequest{Restart: true})
		}

		if death, ok := ecs.Get(w, e, component.DeathComponent.Kind()); ok && death.Dead {
			continue
		}

		blocked := false
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			blocked = pc.BlockedDown
		}
		state, _ := ecs.Get(w, e, component.PlayerStateComponent.Kind())
		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		body.MaxSpeedX = player.MaxSpeed
		body.DragX = player.Drag

		dir := 0.0
		switch {
		case input.Left:
			dir = -1
		case input.Right:
			dir = 1
		}

		if dir != 0 {
			body.AccelX = dir * player.Acceleration
			setFacing(state, sprite, dir < 0)
			setState(state, component.PlayerStateRun)
			anim.Play(runAnimation, true)
			ClampVelocityX(body, player.MaxSpeed)

			if blocked && emitter != nil {
				emitter.Start()
				emitter.Follow(uint64(e), emitter.FollowOffX, emitter.FollowOffY)
				emitter.SetParticleSpeed(player.ParticleVelocity, 0)
			}
			if blocked && !sounds.IsPlaying(walkSound) {
				sounds.RequestPlay(walkSound)
			}
		} else {
			body.AccelX = 0
			setState(state, component.PlayerStateIdle)
			anim.Play(idleAnimation, true)
			emitter.Stop()
		}

		if !blocked {
			setState(state, component.PlayerStateJump)
			anim.Play(jumpAnimation, true)
		}
		if (dir == 0 || !blocked) && sounds.IsPlaying(walkSound) {
			sounds.RequestStop(walkSound)
		}

		if blocked && input.JumpPressed && body.Body != nil {
			v := body.Body.Velocity()
			body.Body.SetVelocity(v.X, player.JumpVelocity)
		}
	}
}

func setFacing(state *component.PlayerState, sprite *component.Sprite, left bool) {
	if state != nil {
		state.FacingLeft = left
	}
	if sprite != nil {
		sprite.FacingLeft = left
	}
}

func setState(state *component.PlayerState, name component.PlayerStateName) {
	if state != nil {
		state.Current = name
	}
}

func soundBank(w *ecs.World) *component.Audio {
	e, ok := ecs.First(w, component.SoundEffectsTagComponent.Kind())
	if !ok {
		return nil
	}
	a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	return a
}

func runningEmitter(w *ecs.World) *component.ParticleEmitter {
	e, ok := ecs.First(w, component.RunningEmitterTagComponent.Kind())
	if !ok {
		return nil
	}
	em, _ := ecs.Get(w, e, component.ParticleEmitterComponent.Kind())
	return em
}

func requestScene(w *ecs.World, req component.SceneRequest) {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.SceneRequestComponent.Kind(), &req)
}
