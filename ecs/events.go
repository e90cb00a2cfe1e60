package ecs

import "sync"

// EventArrived is emitted once each time an entity reaches the head of its
// destination queue.
const EventArrived = "arrived"

// maxDispatchRounds bounds observer chains that keep emitting new events.
const maxDispatchRounds = 8

// Event is a generic ECS event payload.
type Event struct {
	Type   string
	Entity Entity
	Data   any
}

// Arrived builds the arrival event for e.
func Arrived(e Entity) Event {
	return Event{Type: EventArrived, Entity: e}
}

// Observer reacts to a dispatched event. Observers run on the scheduler
// goroutine after the producing stage has finished.
type Observer func(w *World, evt Event)

// EventQueue is a FIFO queue with typed observers. Push is safe from
// concurrently running systems.
type EventQueue struct {
	mu        sync.Mutex
	items     []Event
	observers map[string][]Observer
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, evt)
	q.mu.Unlock()
}

// Subscribe registers fn for events of the given type. Observers are called
// in registration order.
func (q *EventQueue) Subscribe(eventType string, fn Observer) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.observers == nil {
		q.observers = make(map[string][]Observer)
	}
	q.observers[eventType] = append(q.observers[eventType], fn)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Dispatch drains pending events into their observers. Events pushed by an
// observer are delivered after the current batch, up to maxDispatchRounds;
// anything left stays queued for the next dispatch.
func (q *EventQueue) Dispatch(w *World) {
	if q == nil {
		return
	}
	for round := 0; round < maxDispatchRounds; round++ {
		batch := q.Drain()
		if len(batch) == 0 {
			return
		}
		for _, evt := range batch {
			for _, fn := range q.observersFor(evt.Type) {
				fn(w, evt)
			}
		}
	}
}

func (q *EventQueue) observersFor(eventType string) []Observer {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.observers[eventType]
}
