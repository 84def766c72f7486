package scene

import (
	"fmt"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	levelClearedPrefab = "level_cleared.yaml"
	coinCounterPrefab  = "coin_counter.yaml"
	runningVFXPrefab   = "running_vfx.yaml"
	playerPrefab       = "player.yaml"
	toastFontSize      = 16
)

// PlatformerScene is the playable level: tilemap, coins, hazards, the end
// zone and the player.
type PlatformerScene struct {
	ctx    *Context
	log    *zap.Logger
	world  *ecs.World
	player ecs.Entity

	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	debug     *system.PhysicsDebugSystem
	audio     *system.AudioSystem
	endZone   *system.EndZoneSystem
	render    *system.RenderSystem
	particles *system.ParticleSystem
	text      *system.TextSystem
}

func NewPlatformerScene() *PlatformerScene {
	return &PlatformerScene{}
}

func (s *PlatformerScene) Name() string { return PlatformerName }

func (s *PlatformerScene) Enter(ctx *Context) error {
	s.ctx = ctx
	s.log = ctx.Log.With(zap.String("scene", PlatformerName))
	s.world = ecs.NewWorld()
	ctx.Stats = Stats{}

	if err := s.build(); err != nil {
		return err
	}
	s.log.Info("level built", zap.Int("coins", ctx.Stats.CoinsTotal))
	return nil
}

func (s *PlatformerScene) build() error {
	ctx, w, res := s.ctx, s.world, s.ctx.Resources

	level, err := prefabs.LoadLevelSpec()
	if err != nil {
		return err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return err
	}
	coinSpec, err := prefabs.LoadCoinSpec()
	if err != nil {
		return err
	}
	zoneSpec, err := prefabs.LoadEndZoneSpec()
	if err != nil {
		return err
	}
	vfxSpec, err := prefabs.LoadEmitterSpec(runningVFXPrefab)
	if err != nil {
		return err
	}
	soundsSpec, err := prefabs.LoadSoundsSpec()
	if err != nil {
		return err
	}
	clearedSpec, err := prefabs.LoadTextSpec(levelClearedPrefab)
	if err != nil {
		return err
	}
	counterSpec, err := prefabs.LoadTextSpec(coinCounterPrefab)
	if err != nil {
		return err
	}

	m, err := res.Map(ctx.Level)
	if err != nil {
		return err
	}
	tiles, err := res.Sheet(level.TilesetSheet)
	if err != nil {
		return err
	}
	coinSheet, err := res.Sheet(coinSpec.Sheet)
	if err != nil {
		return err
	}
	knight, err := res.Sheet(playerSpec.Sprite.Sheet)
	if err != nil {
		return err
	}
	atlas, err := res.Atlas(vfxSpec.Atlas)
	if err != nil {
		return err
	}

	if _, err := entity.NewLevelClearedText(w, clearedSpec, s.face(clearedSpec.Size), ctx.ViewW, ctx.ViewH); err != nil {
		return err
	}
	if _, err := entity.NewSoundEffects(w, soundsSpec, res.Audio); err != nil {
		return err
	}
	stats, err := entity.LoadTilemapToWorld(w, m, level, tiles)
	if err != nil {
		return err
	}
	coins, err := entity.NewCoins(w, m, level, coinSpec, coinSheet)
	if err != nil {
		return err
	}
	if _, err := entity.NewEndZone(w, m, level, zoneSpec); err != nil {
		return fmt.Errorf("platformer: end zone: %w", err)
	}
	s.player, err = entity.NewPlayer(w, playerSpec, knight, entity.AnimationDefs(res.Animations, playerSpec.Sprite.Sheet))
	if err != nil {
		return err
	}
	if _, err := entity.NewRunningEmitter(w, vfxSpec, atlas, float64(knight.FrameW), float64(knight.FrameH)); err != nil {
		return err
	}
	if _, err := entity.NewCamera(w, cameraSpec, ctx.ViewW, ctx.ViewH, stats.WidthPx, stats.HeightPx); err != nil {
		return err
	}
	if _, err := entity.NewCoinCounter(w, counterSpec, s.face(counterSpec.Size), coins, ctx.ViewW, ctx.ViewH); err != nil {
		return err
	}
	dbg := ecs.CreateEntity(w)
	if err := ecs.Add(w, dbg, component.PhysicsDebugComponent.Kind(), &component.PhysicsDebug{Enabled: ctx.Debug}); err != nil {
		return err
	}

	s.log.Debug("tilemap loaded",
		zap.Int("tiles", stats.Tiles),
		zap.Int("solids", stats.Solids),
		zap.Int("hazards", stats.Hazards),
		zap.Float64("width", stats.WidthPx),
		zap.Float64("height", stats.HeightPx),
	)
	ctx.Stats.CoinsTotal = coins

	s.physics = system.NewPhysicsSystem(level.Gravity)
	s.debug = system.NewPhysicsDebugSystem(s.physics)
	s.audio = system.NewAudioSystem()
	s.endZone = system.NewEndZoneSystem(s.log, zoneSpec.Script)
	s.endZone.ToastFace = s.face(toastFontSize)
	s.endZone.ToastX = ctx.ViewW / 2
	s.endZone.ToastY = ctx.ViewH*0.5 + 60
	s.render = system.NewRenderSystem()
	s.particles = system.NewParticleSystem()
	s.text = system.NewTextSystem()

	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		s.physics,
		s.debug,
		system.NewDeathSystem(s.log),
		system.NewTimerSystem(),
		system.NewRespawnSystem(s.log),
		system.NewCoinCollectSystem(s.log),
		s.endZone,
		system.NewAnimationSystem(),
		s.particles,
		s.audio,
		system.NewCameraSystem(),
		system.NewCoinCounterSystem(),
		system.NewTTLSystem(),
	)
	return nil
}

// face builds a gofont face, falling back to the bitmap font.
func (s *PlatformerScene) face(size float64) text.Face {
	f, err := entity.NewFace(size)
	if err != nil {
		s.log.Warn("font unavailable, using fallback", zap.Float64("size", size), zap.Error(err))
		return entity.FallbackFace()
	}
	return f
}

func (s *PlatformerScene) Update() (Transition, error) {
	if s.world == nil {
		return Transition{}, nil
	}
	if tr, ok := s.reload(); ok {
		return tr, nil
	}

	s.scheduler.Update(s.world)
	s.ctx.Stats.Frames++
	s.collectStats()
	return s.drainRequests(), nil
}

func (s *PlatformerScene) collectStats() {
	if counter, ok := firstCounter(s.world); ok {
		s.ctx.Stats.CoinsCollected = counter.Collected
		s.ctx.Stats.CoinsTotal = counter.Total
	}
	if death, ok := ecs.Get(s.world, s.player, component.DeathComponent.Kind()); ok {
		s.ctx.Stats.Deaths = death.Count
	}
}

func firstCounter(w *ecs.World) (*component.CoinCounter, bool) {
	e, ok := ecs.First(w, component.CoinCounterComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.CoinCounterComponent.Kind())
}

// drainRequests consumes every SceneRequest. Restart wins over Next.
func (s *PlatformerScene) drainRequests() Transition {
	var tr Transition
	for _, e := range s.world.Query(component.SceneRequestComponent.Kind().ID()) {
		req, _ := ecs.Get(s.world, e, component.SceneRequestComponent.Kind())
		if req != nil {
			if req.Restart {
				tr.Restart = true
			} else if tr.Next == "" {
				tr.Next = req.Next
			}
		}
		ecs.DestroyEntity(s.world, e)
	}
	if tr.Restart {
		tr.Next = ""
	}
	return tr
}

// reload applies prefab edits reported by the watcher. Player tuning and the
// exit rule are patched in place; any other prefab rebuilds the level.
func (s *PlatformerScene) reload() (Transition, bool) {
	if s.ctx.Watcher == nil {
		return Transition{}, false
	}
	rebuild := false
	for _, name := range s.ctx.Watcher.Drain() {
		switch {
		case name == playerPrefab:
			spec, err := prefabs.LoadPlayerSpec()
			if err == nil {
				err = entity.ApplyPlayerTuning(s.world, s.player, spec)
			}
			if err != nil {
				s.log.Warn("player reload failed", zap.Error(err))
				continue
			}
			s.log.Info("player tuning reloaded")
		case strings.HasPrefix(name, "scripts/"):
			s.endZone.ReloadScript()
			s.log.Info("exit rule reloaded", zap.String("script", path.Base(name)))
		case path.Ext(name) == ".yaml":
			s.log.Info("prefab changed, rebuilding level", zap.String("prefab", name))
			rebuild = true
		}
	}
	if rebuild {
		return Transition{Restart: true}, true
	}
	return Transition{}, false
}

func (s *PlatformerScene) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Skyblue)
	if s.world == nil {
		return
	}
	s.render.Draw(s.world, screen)
	s.particles.Draw(s.world, screen)
	s.text.Draw(s.world, screen)
	if s.debug.Enabled(s.world) {
		s.debug.Draw(s.world, screen)
	}
	if s.ctx.Debug {
		msg := fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, msg, 4, int(s.ctx.ViewH)-16)
	}
}

func (s *PlatformerScene) Exit() {
	if s.world != nil {
		s.audio.StopAll(s.world)
	}
	s.world = nil
	s.scheduler = nil
}
