package entity

import (
	"fmt"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const defaultFrameSize = 32

// NewPlayer spawns the player so its sprite center sits on the prefab spawn
// point. sheet may be nil in tests; defs are the sheet's animations.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, sheet *assets.SpriteSheet, defs map[string]component.AnimationDef) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("player: world is nil")
	}
	if spec == nil {
		return 0, fmt.Errorf("player: spec is nil")
	}
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return 0, fmt.Errorf("player: invalid collider %vx%v", spec.Collider.Width, spec.Collider.Height)
	}

	frameW, frameH := float64(defaultFrameSize), float64(defaultFrameSize)
	if sheet != nil {
		frameW, frameH = float64(sheet.FrameW), float64(sheet.FrameH)
	}
	spawnX := spec.Spawn.X - frameW/2
	spawnY := spec.Spawn.Y - frameH/2

	player := ecs.CreateEntity(w)
	add := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("player: add %s: %w", name, err)
		}
		return nil
	}

	if err := add("player tag", ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})); err != nil {
		return 0, err
	}
	if err := add("player", ecs.Add(w, player, component.PlayerComponent.Kind(), playerComponent(spec, spawnX, spawnY))); err != nil {
		return 0, err
	}
	if err := add("transform", ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: spawnX, Y: spawnY, ScaleX: 1, ScaleY: 1})); err != nil {
		return 0, err
	}
	if err := add("physics body", ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:     spec.Collider.Width,
		Height:    spec.Collider.Height,
		OffsetX:   spec.Collider.OffsetX,
		OffsetY:   spec.Collider.OffsetY,
		Mass:      1,
		DragX:     spec.Drag,
		MaxSpeedX: spec.MaxSpeed,
	})); err != nil {
		return 0, err
	}
	if err := add("input", ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{})); err != nil {
		return 0, err
	}
	if err := add("player collision", ecs.Add(w, player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})); err != nil {
		return 0, err
	}
	if err := add("player state", ecs.Add(w, player, component.PlayerStateComponent.Kind(), &component.PlayerState{Current: component.PlayerStateIdle})); err != nil {
		return 0, err
	}
	if err := add("death", ecs.Add(w, player, component.DeathComponent.Kind(), &component.Death{})); err != nil {
		return 0, err
	}

	sprite := &component.Sprite{OriginX: spec.Sprite.OriginX, OriginY: spec.Sprite.OriginY}
	if sheet != nil {
		sprite.Image = sheet.Frame(spec.Sprite.Frame)
	}
	if err := add("sprite", ecs.Add(w, player, component.SpriteComponent.Kind(), sprite)); err != nil {
		return 0, err
	}

	anim := &component.Animation{Sheet: sheet, Defs: defs}
	if spec.Animation != "" && !anim.Play(spec.Animation, false) {
		return 0, fmt.Errorf("player: unknown animation %q", spec.Animation)
	}
	if err := add("animation", ecs.Add(w, player, component.AnimationComponent.Kind(), anim)); err != nil {
		return 0, err
	}
	if err := add("render layer", ecs.Add(w, player, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index})); err != nil {
		return 0, err
	}

	return player, nil
}

func playerComponent(spec *prefabs.PlayerSpec, spawnX, spawnY float64) *component.Player {
	return &component.Player{
		Acceleration:     spec.Acceleration,
		Drag:             spec.Drag,
		MaxSpeed:         spec.MaxSpeed,
		JumpVelocity:     spec.JumpVelocity,
		ParticleVelocity: spec.ParticleVelocity,
		SpawnX:           spawnX,
		SpawnY:           spawnY,
		RespawnDelay:     spec.RespawnDelay,
	}
}

// ApplyPlayerTuning copies movement tuning from the prefab onto a live player,
// keeping its spawn point.
func ApplyPlayerTuning(w *ecs.World, player ecs.Entity, spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return fmt.Errorf("player: spec is nil")
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: entity %v has no player component", player)
	}
	*p = *playerComponent(spec, p.SpawnX, p.SpawnY)
	return nil
}
