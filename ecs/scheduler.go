package ecs

// Scheduler runs systems in the order they were added. The platformer scene
// relies on that order: input, movement, physics, then reactions to contacts.
type Scheduler struct {
	systems []System
}

// NewScheduler drops nil systems.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(sys System) {
	if sys == nil {
		return
	}
	s.systems = append(s.systems, sys)
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, sys := range s.systems {
		sys.Update(w)
	}
}

// Systems returns a copy of the run order.
func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
