package ecs

import "github.com/milk9111/travel/ecs/component"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// RigidBodySolver is implemented by systems that own rigid-body integration.
// Movement strategies that express intent as forces require one to be
// scheduled.
type RigidBodySolver interface {
	System
	SolvesRigidBodies()
}

// store is the type-erased view of a sparseSet used for entity teardown and
// multi-kind queries.
type store interface {
	has(id entityID) bool
	remove(id entityID) bool
	ids() []entityID
	len() int
}

// World owns entities, component storage, tick time, deferred commands and
// the event queue.
//
// Structural changes (creating or destroying entities, adding a component
// kind for the first time) are not safe while a parallel stage is running;
// systems in parallel stages go through Defer instead.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	commands commandBuffer
	time     Time
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) storeFor(id component.ComponentID) (store, bool) {
	if w == nil || w.stores == nil {
		return nil, false
	}
	s, ok := w.stores[id]
	return s, ok
}
