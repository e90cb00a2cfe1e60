package component

import "github.com/go-gl/mathgl/mgl64"

// DefaultArrivalEpsilon is the arrival distance used when none is configured.
const DefaultArrivalEpsilon = 1e-4

// KinematicMovement moves an entity's transform straight toward the head of
// its queue. Speed is in world units per millisecond of tick time.
type KinematicMovement struct {
	Speed   float64
	Queue   DestinationQueue
	Repeat  bool
	Frozen  bool
	Epsilon float64

	// Driving is set while the mover owns its rigid body's velocity.
	Driving bool

	// Offset is added to every waypoint position.
	Offset mgl64.Vec3
}

func NewKinematicMovement(speed float64, waypoints ...Waypoint) KinematicMovement {
	return KinematicMovement{
		Speed:   speed,
		Queue:   NewDestinationQueue(waypoints...),
		Epsilon: DefaultArrivalEpsilon,
	}
}

func (m *KinematicMovement) Freeze() {
	m.Frozen = true
}

func (m *KinematicMovement) Go() {
	m.Frozen = false
}

// Target returns the effective destination, offset included.
func (m *KinematicMovement) Target() (mgl64.Vec3, bool) {
	wp, ok := m.Queue.Front()
	if !ok {
		return mgl64.Vec3{}, false
	}
	return wp.Position.Add(m.Offset), true
}

var KinematicMovementComponent = NewComponent[KinematicMovement]()
