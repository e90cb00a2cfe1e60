package component

import "github.com/go-gl/mathgl/mgl64"

// Waypoint is a queued destination with an optional per-waypoint speed.
type Waypoint struct {
	Position mgl64.Vec3
	Speed    *float64
}

func WaypointAt(p mgl64.Vec3) Waypoint {
	return Waypoint{Position: p}
}

// WithSpeed returns a copy of w that overrides the mover's speed.
func (w Waypoint) WithSpeed(speed float64) Waypoint {
	w.Speed = &speed
	return w
}

// SpeedOr returns the override when present, fallback otherwise.
func (w Waypoint) SpeedOr(fallback float64) float64 {
	if w.Speed != nil {
		return *w.Speed
	}
	return fallback
}

// Clone returns a copy that shares no memory with w.
func (w Waypoint) Clone() Waypoint {
	if w.Speed != nil {
		s := *w.Speed
		w.Speed = &s
	}
	return w
}

// DestinationQueue is the ordered list of pending waypoints for one entity.
// A non-empty queue means the entity is travelling toward Front.
type DestinationQueue struct {
	items []Waypoint
}

func NewDestinationQueue(waypoints ...Waypoint) DestinationQueue {
	q := DestinationQueue{}
	q.Push(waypoints...)
	return q
}

func (q *DestinationQueue) Len() int {
	return len(q.items)
}

func (q *DestinationQueue) Empty() bool {
	return len(q.items) == 0
}

func (q *DestinationQueue) Front() (Waypoint, bool) {
	if len(q.items) == 0 {
		return Waypoint{}, false
	}
	return q.items[0], true
}

// Push appends waypoints to the back.
func (q *DestinationQueue) Push(waypoints ...Waypoint) {
	for _, wp := range waypoints {
		q.items = append(q.items, wp.Clone())
	}
}

// Replace discards every pending waypoint and queues waypoints instead.
func (q *DestinationQueue) Replace(waypoints ...Waypoint) {
	q.items = nil
	q.Push(waypoints...)
}

func (q *DestinationQueue) Clear() {
	q.items = nil
}

// Advance retires the front waypoint. With requeue set a clone of it is
// appended to the back before the front is popped, so a single-entry loop
// keeps its destination. It reports false on an empty queue.
func (q *DestinationQueue) Advance(requeue bool) bool {
	front, ok := q.Front()
	if !ok {
		return false
	}
	if requeue {
		q.items = append(q.items, front.Clone())
	}
	q.items[0] = Waypoint{}
	q.items = q.items[1:]
	return true
}

// Waypoints returns a copy of the pending waypoints, front first.
func (q *DestinationQueue) Waypoints() []Waypoint {
	out := make([]Waypoint, len(q.items))
	for i, wp := range q.items {
		out[i] = wp.Clone()
	}
	return out
}
