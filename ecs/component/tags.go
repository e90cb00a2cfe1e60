package component

// ClickCatcher marks a plane that mouse clicks can land on. The plane passes
// through the entity's position with its transform up vector as normal.
// Lower Priority catchers are tried first.
type ClickCatcher struct {
	Priority int
}

var ClickCatcherComponent = NewComponent[ClickCatcher]()

// MovementObject marks an entity steered by mouse clicks. With Chain set,
// clicks append to its queue instead of replacing it.
type MovementObject struct {
	Chain bool
}

var MovementObjectComponent = NewComponent[MovementObject]()

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// ArrivalScript runs a tengo script each time the entity reaches a waypoint.
type ArrivalScript struct {
	Path string
}

var ArrivalScriptComponent = NewComponent[ArrivalScript]()
