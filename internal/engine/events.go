package engine

// EventKind enumerates the transition events a tick can raise.
type EventKind uint8

const (
	EventNone      EventKind = iota
	EventFall                // Grounded -> Falling
	EventLand                // Falling -> Grounded
	EventWallGrab            // -> GrabWall
	EventClimb               // GrabWall -> ClimbWall
	EventClimbEnd            // ClimbWall -> Falling
	EventDragStart           // -> Dragged
	EventDragEnd             // Dragged -> Falling (throw)
	numEventKinds
)

var eventNames = [...]string{"none", "fall", "land", "wall_grab", "climb", "climb_end", "drag_start", "drag_end"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is the single transition event a tick may produce.
type Event struct {
	Kind EventKind
	Side WallSide // wall events only
}
