package ecs

import "golang.org/x/sync/errgroup"

const DefaultStage = "update"

// Stage is a group of systems that run together. Systems in a parallel
// stage must touch disjoint component data and record structural changes
// through World.Defer.
type Stage struct {
	name     string
	parallel bool
	systems  []System
}

func (st *Stage) Name() string {
	return st.name
}

func (st *Stage) Parallel() bool {
	return st.parallel
}

func (st *Stage) Add(systems ...System) {
	for _, system := range systems {
		if system != nil {
			st.systems = append(st.systems, system)
		}
	}
}

func (st *Stage) run(w *World) {
	if !st.parallel || len(st.systems) < 2 {
		for _, system := range st.systems {
			system.Update(w)
		}
		return
	}
	var g errgroup.Group
	for _, system := range st.systems {
		g.Go(func() error {
			system.Update(w)
			return nil
		})
	}
	_ = g.Wait()
}

type Scheduler struct {
	stages []*Stage
}

// NewScheduler creates a scheduler whose single serial stage holds systems.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	s.AddStage(DefaultStage, false, systems...)
	return s
}

// Add appends a system to the last stage.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	if len(s.stages) == 0 {
		s.AddStage(DefaultStage, false)
	}
	s.stages[len(s.stages)-1].Add(system)
}

// AddStage appends a new stage, or extends an existing stage with the same
// name.
func (s *Scheduler) AddStage(name string, parallel bool, systems ...System) *Stage {
	if st, ok := s.Stage(name); ok {
		st.Add(systems...)
		return st
	}
	st := &Stage{name: name, parallel: parallel}
	st.Add(systems...)
	s.stages = append(s.stages, st)
	return st
}

// AddStageBefore inserts a stage ahead of the stage named before, or appends
// it when before does not exist.
func (s *Scheduler) AddStageBefore(before, name string, parallel bool, systems ...System) *Stage {
	if st, ok := s.Stage(name); ok {
		st.Add(systems...)
		return st
	}
	st := &Stage{name: name, parallel: parallel}
	st.Add(systems...)
	for i, existing := range s.stages {
		if existing.name == before {
			s.stages = append(s.stages[:i], append([]*Stage{st}, s.stages[i:]...)...)
			return st
		}
	}
	s.stages = append(s.stages, st)
	return st
}

func (s *Scheduler) Stage(name string) (*Stage, bool) {
	for _, st := range s.stages {
		if st.name == name {
			return st, true
		}
	}
	return nil, false
}

// Update runs every stage in order. After each stage deferred commands are
// applied and pending events are dispatched, so observers never run inside
// the pass that produced their event.
func (s *Scheduler) Update(w *World) {
	for _, st := range s.stages {
		st.run(w)
		w.FlushCommands()
		w.Events().Dispatch(w)
	}
}

func (s *Scheduler) Systems() []System {
	var systems []System
	for _, st := range s.stages {
		systems = append(systems, st.systems...)
	}
	return systems
}

// Find reports whether any scheduled system satisfies match.
func (s *Scheduler) Find(match func(System) bool) bool {
	for _, system := range s.Systems() {
		if match(system) {
			return true
		}
	}
	return false
}
