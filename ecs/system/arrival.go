package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/common"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// ArrivalDetector tests movers against the head of their queue and retires
// reached waypoints.
type ArrivalDetector struct {
	Mode SpatialMode
}

// Project drops the Z axis in 2D mode.
func (d ArrivalDetector) Project(v mgl64.Vec3) mgl64.Vec3 {
	if d.Mode == Spatial2D {
		return common.FlattenXY(v)
	}
	return v
}

// Distance is the gap between position and target under the detector's mode.
func (d ArrivalDetector) Distance(position, target mgl64.Vec3) float64 {
	return d.Project(target.Sub(position)).Len()
}

// Reached reports whether distance is within epsilon.
func Reached(distance, epsilon float64) bool {
	if epsilon < 0 {
		epsilon = 0
	}
	return distance <= epsilon
}

// ReachedPredictive also counts a waypoint as reached when the current
// closing speed would cover the remaining distance within dt seconds.
func ReachedPredictive(distance, epsilon, closingSpeed, dt float64) bool {
	if Reached(distance, epsilon) {
		return true
	}
	return closingSpeed > 0 && distance <= closingSpeed*dt
}

// Advance emits the arrival event for e, then requeues and pops the head.
// An empty queue is left untouched and reports false.
func (d ArrivalDetector) Advance(w *ecs.World, e ecs.Entity, q *component.DestinationQueue, requeue bool) bool {
	if q == nil || q.Empty() {
		return false
	}
	w.Events().Push(ecs.Arrived(e))
	return q.Advance(requeue)
}

// AdvanceIfArrived runs the distance test against the head of q, offset
// included, and advances the queue on arrival.
func (d ArrivalDetector) AdvanceIfArrived(w *ecs.World, e ecs.Entity, q *component.DestinationQueue, position, offset mgl64.Vec3, epsilon float64, requeue bool) bool {
	if q == nil {
		return false
	}
	wp, ok := q.Front()
	if !ok {
		return false
	}
	if !Reached(d.Distance(position, wp.Position.Add(offset)), epsilon) {
		return false
	}
	return d.Advance(w, e, q, requeue)
}
