package ecs

import "testing"

func TestEventDispatchOrder(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	var seen []Entity
	w.Events().Subscribe(EventArrived, func(_ *World, evt Event) {
		seen = append(seen, evt.Entity)
	})

	w.Events().Push(Arrived(e2))
	w.Events().Push(Arrived(e1))
	w.Events().Dispatch(w)

	if len(seen) != 2 || seen[0] != e2 || seen[1] != e1 {
		t.Fatalf("expected FIFO delivery [e2 e1], got %v", seen)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("queue should be empty after dispatch")
	}
}

func TestObserverEventsDeliveredInSameDispatch(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	chained := 0
	w.Events().Subscribe(EventArrived, func(w *World, evt Event) {
		w.Events().Push(Event{Type: "chained", Entity: evt.Entity})
	})
	w.Events().Subscribe("chained", func(*World, Event) { chained++ })

	w.Events().Push(Arrived(e))
	w.Events().Dispatch(w)

	if chained != 1 {
		t.Fatalf("expected chained observer to run once, got %d", chained)
	}
}

func TestDispatchBoundsRunawayObservers(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	calls := 0
	w.Events().Subscribe("loop", func(w *World, evt Event) {
		calls++
		w.Events().Push(evt)
	})

	w.Events().Push(Event{Type: "loop", Entity: e})
	w.Events().Dispatch(w)

	if calls != maxDispatchRounds {
		t.Fatalf("expected %d calls, got %d", maxDispatchRounds, calls)
	}
	if w.Events().Len() != 1 {
		t.Fatalf("expected leftover event to stay queued")
	}
}
