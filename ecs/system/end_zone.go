package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

const lockedToastFrames = 90

// DefaultExitRule opens once enough coins are held.
func DefaultExitRule(collected, _, required int) (bool, string) {
	if collected >= required {
		return true, ""
	}
	return false, fmt.Sprintf("need %d more coins", required-collected)
}

// EndZoneSystem finishes the level when the living player presses exit
// inside an end zone whose rule allows it. Each zone triggers once: the
// level-cleared text is shown and a scene timer is scheduled.
type EndZoneSystem struct {
	log        *zap.Logger
	scriptName string
	compiled   *tengo.Compiled
	loaded     bool

	// ToastFace draws the "exit locked" message; nil disables it.
	ToastFace text.Face
	// ToastX/ToastY place the message in screen pixels.
	ToastX float64
	ToastY float64
}

// NewEndZoneSystem evaluates the named tengo script as the exit rule. An
// empty name, or a script that fails to load, falls back to
// DefaultExitRule.
func NewEndZoneSystem(log *zap.Logger, scriptName string) *EndZoneSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &EndZoneSystem{log: log, scriptName: scriptName, ToastX: 640, ToastY: 400}
}

// ReloadScript drops the compiled rule; the next evaluation recompiles it.
func (s *EndZoneSystem) ReloadScript() {
	if s == nil {
		return
	}
	s.compiled = nil
	s.loaded = false
}

func (s *EndZoneSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, ok := livePlayer(w)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.ExitPressed {
		return
	}
	playerBox, ok := bodyBox(w, player)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.EndZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, zone *component.EndZone, t *component.Transform) {
		if zone.Triggered {
			return
		}
		if !playerBox.overlaps(aabb{x: t.X, y: t.Y, w: zone.Width, h: zone.Height}) {
			return
		}

		collected, total := coinCounts(w)
		unlocked, reason := s.evaluate(collected, total, zone.RequiredCoins)
		if !unlocked {
			s.log.Info("exit locked", zap.Int("collected", collected), zap.Int("required", zone.RequiredCoins), zap.String("reason", reason))
			s.toast(w, reason)
			return
		}

		zone.Triggered = true
		ecs.ForEach2(w, component.LevelClearedTextComponent.Kind(), component.TextComponent.Kind(), func(_ ecs.Entity, _ *component.LevelClearedText, label *component.Text) {
			label.Show()
		})
		_ = ecs.Add(w, e, component.TimerComponent.Kind(), &component.Timer{
			Action: component.TimerActionScene,
			Frames: FramesFor(zone.Delay),
			Scene:  zone.NextScene,
		})
		s.log.Info("level cleared", zap.Int("collected", collected), zap.Int("total", total), zap.String("next", zone.NextScene), zap.Duration("delay", zone.Delay))
	})
}

func coinCounts(w *ecs.World) (int, int) {
	e, ok := ecs.First(w, component.CoinCounterComponent.Kind())
	if !ok {
		return 0, 0
	}
	counter, ok := ecs.Get(w, e, component.CoinCounterComponent.Kind())
	if !ok {
		return 0, 0
	}
	return counter.Collected, counter.Total
}

func (s *EndZoneSystem) evaluate(collected, total, required int) (bool, string) {
	if !s.loaded {
		s.loaded = true
		if s.scriptName != "" {
			compiled, err := compileExitRule(s.scriptName)
			if err != nil {
				s.log.Warn("exit rule script unavailable, using default", zap.String("script", s.scriptName), zap.Error(err))
			}
			s.compiled = compiled
		}
	}
	if s.compiled == nil {
		return DefaultExitRule(collected, total, required)
	}

	unlocked, reason, err := runExitRule(s.compiled, collected, total, required)
	if err != nil {
		s.log.Warn("exit rule failed, using default", zap.String("script", s.scriptName), zap.Error(err))
		return DefaultExitRule(collected, total, required)
	}
	return unlocked, reason
}

func compileExitRule(name string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return CompileExitRule(src)
}

// CompileExitRule compiles a tengo exit rule. The script reads collected,
// total and required and sets unlocked, optionally with a reason.
func CompileExitRule(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range []string{"collected", "total", "required"} {
		if err := script.Add(name, 0); err != nil {
			return nil, err
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("end zone: compile exit rule: %w", err)
	}
	if !compiled.IsDefined("unlocked") {
		return nil, fmt.Errorf("end zone: exit rule does not define unlocked")
	}
	return compiled, nil
}

func runExitRule(compiled *tengo.Compiled, collected, total, required int) (bool, string, error) {
	inputs := map[string]int{"collected": collected, "total": total, "required": required}
	for name, v := range inputs {
		if err := compiled.Set(name, v); err != nil {
			return false, "", err
		}
	}
	if err := compiled.Run(); err != nil {
		return false, "", fmt.Errorf("end zone: run exit rule: %w", err)
	}
	reason := ""
	if compiled.IsDefined("reason") {
		reason = strings.TrimSpace(compiled.Get("reason").String())
	}
	return compiled.Get("unlocked").Bool(), reason, nil
}

func (s *EndZoneSystem) toast(w *ecs.World, msg string) {
	if s.ToastFace == nil || msg == "" {
		return
	}
	for _, e := range w.Query(component.ExitToastComponent.Kind().ID()) {
		w.DestroyEntity(e)
	}
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{
		Value:       msg,
		Face:        s.ToastFace,
		Fill:        color.White,
		Stroke:      color.Black,
		StrokeWidth: 2,
		OriginX:     0.5,
		OriginY:     0.5,
		X:           s.ToastX,
		Y:           s.ToastY,
		Visible:     true,
	})
	_ = ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{})
	_ = ecs.Add(w, e, component.ExitToastComponent.Kind(), &component.ExitToast{})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: lockedToastFrames})
}
