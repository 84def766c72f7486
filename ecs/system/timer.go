package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// TimerSystem counts Timer components down one tick per update and performs
// their action on expiry. A timer set to N frames fires on the Nth update.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.TimerComponent.Kind(), func(e ecs.Entity, timer *component.Timer) {
		timer.Frames--
		if timer.Frames > 0 {
			return
		}
		fired := *timer
		ecs.Remove(w, e, component.TimerComponent.Kind())

		switch fired.Action {
		case component.TimerActionRespawn:
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		case component.TimerActionScene:
			requestScene(w, component.SceneRequest{Next: fired.Scene})
		}
	})
}
