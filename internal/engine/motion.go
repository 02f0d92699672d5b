package engine

// MotionState is the physics state of a pet.
type MotionState uint8

const (
	Grounded MotionState = iota
	Falling
	GrabWall
	ClimbWall
	Dragged
)

var motionNames = [...]string{"Grounded", "Falling", "GrabWall", "ClimbWall", "Dragged"}

func (s MotionState) String() string {
	if int(s) < len(motionNames) {
		return motionNames[s]
	}
	return "Unknown"
}

// ParseMotionState is the inverse of String.
func ParseMotionState(s string) (MotionState, bool) {
	for i, name := range motionNames {
		if name == s {
			return MotionState(i), true
		}
	}
	return 0, false
}

// WallSide tells which wall a pet is touching.
type WallSide uint8

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

func (w WallSide) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}

// ParseWallSide is the inverse of String.
func ParseWallSide(s string) WallSide {
	switch s {
	case "left":
		return WallLeft
	case "right":
		return WallRight
	default:
		return WallNone
	}
}

// Motion is the consolidated per-pet state machine: the current state, the
// one remaining direction-lock duration and the timers that only matter in
// particular states.
type Motion struct {
	State        MotionState
	Lock         float64 // seconds during which facing may not change
	FlipCooldown float64 // seconds until another accepted flip
	GrabTimer    float64 // seconds spent in GrabWall
	ClimbTimer   float64 // seconds spent in ClimbWall
}

// legal lists every allowed transition. Anything else is a bug.
var legal = [...][5]bool{
	Grounded:  {Falling: true, GrabWall: true, Dragged: true},
	Falling:   {Grounded: true, GrabWall: true, Dragged: true},
	GrabWall:  {ClimbWall: true, Dragged: true},
	ClimbWall: {Falling: true, Dragged: true},
	Dragged:   {Falling: true},
}

// transition moves the machine to state to, resetting the timers of the
// state being entered. Dropping off a climb clears the direction lock. It
// panics with InvalidStateTransition on an illegal move.
func (m *Motion) transition(to MotionState) {
	if !legal[m.State][to] {
		panic(InvalidStateTransition{From: m.State, To: to})
	}
	if m.State == ClimbWall && to == Falling {
		m.Lock = 0
	}
	m.State = to
	switch to {
	case GrabWall:
		m.GrabTimer = 0
	case ClimbWall:
		m.ClimbTimer = 0
	case Falling, Dragged:
		m.GrabTimer, m.ClimbTimer = 0, 0
	}
}

// extendLock starts a direction lock of d seconds unless a longer one is
// already running.
func (m *Motion) extendLock(d float64) {
	if d > m.Lock {
		m.Lock = d
	}
}

// Locked reports whether a direction lock is active.
func (m *Motion) Locked() bool {
	return m.Lock > 0
}

func (m *Motion) tickTimers(dt float64) {
	m.Lock = decay(m.Lock, dt)
	m.FlipCooldown = decay(m.FlipCooldown, dt)
}

func decay(v, dt float64) float64 {
	v -= dt
	if v < timeEpsilon {
		return 0
	}
	return v
}

// timeEpsilon absorbs float drift when timers accumulate 1/30 s steps.
const timeEpsilon = 1e-9
