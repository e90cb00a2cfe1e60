package component

const (
	DefaultAccelTime = 0.3
	DefaultBrakeTime = 0.03
)

// PhysicsMovement steers a rigid body toward the head of its queue by
// setting an external force. Speeds are world units per second, times are
// seconds.
type PhysicsMovement struct {
	Queue DestinationQueue

	// Loop requeues each reached waypoint at the back.
	Loop     bool
	Epsilon  float64
	MaxSpeed float64
	MinSpeed float64

	// AccelTime is how long thrust takes to bring closing speed up to
	// MaxSpeed. BrakeTime is how long lateral drift takes to cancel.
	AccelTime float64
	BrakeTime float64
}

func NewPhysicsMovement(minSpeed, maxSpeed float64, waypoints ...Waypoint) PhysicsMovement {
	return PhysicsMovement{
		Queue:     NewDestinationQueue(waypoints...),
		Epsilon:   DefaultArrivalEpsilon,
		MinSpeed:  minSpeed,
		MaxSpeed:  maxSpeed,
		AccelTime: DefaultAccelTime,
		BrakeTime: DefaultBrakeTime,
	}
}

var PhysicsMovementComponent = NewComponent[PhysicsMovement]()
