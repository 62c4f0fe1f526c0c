package ecs

// System is one per-tick concern of the game.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in the order they were given, once per tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	for _, sys := range systems {
		if sys != nil {
			s.systems = append(s.systems, sys)
		}
	}
	return s
}

func (s *Scheduler) Update(w *World) {
	for _, sys := range s.systems {
		sys.Update(w)
	}
}
