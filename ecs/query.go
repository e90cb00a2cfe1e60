package ecs

import (
	"sort"

	"github.com/milk9111/travel/ecs/component"
)

// Query returns the live entities carrying every listed kind, in ascending
// slot order so callers get a deterministic iteration.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		if k == nil {
			return nil
		}
		s, ok := w.storeFor(k.ID())
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate smaller set
	sort.Slice(stores, func(i, j int) bool { return stores[i].len() < stores[j].len() })

	ids := snapshot(stores[0].ids())
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		matched := true
		for _, s := range stores[1:] {
			if !s.has(id) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if e, alive := w.entities.current(id); alive {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest-slot entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
