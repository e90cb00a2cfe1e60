package ecs

import "github.com/milk9111/travel/ecs/component"

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func typedStore[T any](w *World, kind component.ComponentKind[T]) (*sparseSet[T], bool) {
	s, ok := w.storeFor(kind.ID())
	if !ok {
		return nil, false
	}
	typed, ok := s.(*sparseSet[T])
	return typed, ok
}

// Add attaches value to e, replacing any previous component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s, ok := typedStore(w, kind)
	if !ok {
		s = &sparseSet[T]{}
		w.stores[kind.ID()] = s
	}
	s.set(e.id(), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	s, ok := typedStore(w, kind)
	if !ok {
		return false
	}
	return s.remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	s, ok := typedStore(w, kind)
	return ok && s.has(e.id())
}

// Get returns the stored pointer; mutations through it are visible to every
// later reader.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s, ok := typedStore(w, kind)
	if !ok {
		return nil, false
	}
	return s.get(e.id())
}

// snapshot copies the dense ids so callbacks may add or remove components
// of the iterated kind without disturbing the scan.
func snapshot(ids []entityID) []entityID {
	out := make([]entityID, len(ids))
	copy(out, ids)
	return out
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s, ok := typedStore(w, kind)
	if !ok || fn == nil {
		return
	}
	for _, id := range snapshot(s.ids()) {
		e, alive := w.entities.current(id)
		if !alive {
			continue
		}
		v, ok := s.get(id)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, okA := typedStore(w, ka)
	sb, okB := typedStore(w, kb)
	if !okA || !okB || fn == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, alive := w.entities.current(id)
		if !alive {
			continue
		}
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, okA := typedStore(w, ka)
	sb, okB := typedStore(w, kb)
	sc, okC := typedStore(w, kc)
	if !okA || !okB || !okC || fn == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, alive := w.entities.current(id)
		if !alive {
			continue
		}
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		c, ok := sc.get(id)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
