package system

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add %s: %v", kind, err)
	}
}

func playerDefs() map[string]component.AnimationDef {
	return map[string]component.AnimationDef{
		idleAnimation:  {Name: idleAnimation, Start: 0, End: 3, FPS: 8, Loop: true},
		runAnimation:   {Name: runAnimation, Start: 16, End: 23, FPS: 12, Loop: true},
		jumpAnimation:  {Name: jumpAnimation, Start: 41, End: 48, FPS: 8, Loop: true},
		deathAnimation: {Name: deathAnimation, Start: 56, End: 59, FPS: 10},
	}
}

// newTestPlayer builds a player whose collider matches its transform.
func newTestPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{
		Acceleration:     300,
		Drag:             500,
		MaxSpeed:         200,
		JumpVelocity:     -500,
		ParticleVelocity: 20,
		SpawnX:           x,
		SpawnY:           y,
		RespawnDelay:     time.Second,
	})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 16, Height: 20, Mass: 1})
	mustAdd(t, w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
	mustAdd(t, w, e, component.PlayerStateComponent.Kind(), &component.PlayerState{Current: component.PlayerStateIdle})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.DeathComponent.Kind(), &component.Death{})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})
	anim := &component.Animation{Defs: playerDefs()}
	anim.Play(idleAnimation, false)
	mustAdd(t, w, e, component.AnimationComponent.Kind(), anim)
	return e
}

func newTestFloor(t *testing.T, w *ecs.World, y float64, hazard bool) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 400, Height: 16, Static: true})
	if hazard {
		mustAdd(t, w, e, component.HazardComponent.Kind(), &component.Hazard{})
	}
	return e
}

func newTestSounds(t *testing.T, w *ecs.World) *component.Audio {
	t.Helper()
	e := w.CreateEntity()
	a := &component.Audio{
		Names:   []string{walkSound, deathSound},
		Players: make([]*audio.Player, 2),
		Volume:  []float64{0.2, 1},
		Play:    make([]bool, 2),
		Stop:    make([]bool, 2),
		Active:  make([]bool, 2),
	}
	mustAdd(t, w, e, component.SoundEffectsTagComponent.Kind(), &component.SoundEffectsTag{})
	mustAdd(t, w, e, component.AudioComponent.Kind(), a)
	return a
}

func newTestEmitter(t *testing.T, w *ecs.World) *component.ParticleEmitter {
	t.Helper()
	e := w.CreateEntity()
	em := &component.ParticleEmitter{
		FrameNames: []string{"smoke_03", "smoke_09"},
		Lifespan:   350 * time.Millisecond,
		ScaleStart: 0.5,
		ScaleEnd:   1.6,
		AlphaStart: 1,
		AlphaEnd:   0.1,
		MaxAlive:   32,
		FollowOffX: 22,
		FollowOffY: 27,
	}
	mustAdd(t, w, e, component.RunningEmitterTagComponent.Kind(), &component.RunningEmitterTag{})
	mustAdd(t, w, e, component.ParticleEmitterComponent.Kind(), em)
	return em
}

func sceneRequests(w *ecs.World) []component.SceneRequest {
	var out []component.SceneRequest
	ecs.ForEach(w, component.SceneRequestComponent.Kind(), func(_ ecs.Entity, req *component.SceneRequest) {
		out = append(out, *req)
	})
	return out
}
