package graph

import "github.com/vovakirdan/tui-pets/internal/core"

// ActionKind classifies how an action produces poses.
type ActionKind uint8

const (
	KindStay     ActionKind = iota // poses without movement
	KindMove                       // poses whose velocity moves the pet
	KindAnimate                    // poses played once
	KindSequence                   // children played one after another
	KindSelect                     // first child whose conditions hold
)

var kindNames = [...]string{"stay", "move", "animate", "sequence", "select"}

func (k ActionKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseActionKind maps a pack keyword to an ActionKind.
func ParseActionKind(s string) (ActionKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return ActionKind(i), true
		}
	}
	return 0, false
}

// BorderTag names the surface a pose expects to be in contact with.
type BorderTag uint8

const (
	BorderNone BorderTag = iota
	BorderFloor
	BorderWall
	BorderCeiling
)

var borderNames = [...]string{"none", "floor", "wall", "ceiling"}

func (b BorderTag) String() string {
	if int(b) < len(borderNames) {
		return borderNames[b]
	}
	return "unknown"
}

// ParseBorderTag maps a pack keyword to a BorderTag. The empty string is
// BorderNone.
func ParseBorderTag(s string) (BorderTag, bool) {
	if s == "" {
		return BorderNone, true
	}
	for i, name := range borderNames {
		if name == s {
			return BorderTag(i), true
		}
	}
	return 0, false
}

// PoseFrame is one frame of an action.
type PoseFrame struct {
	Image    string
	Anchor   core.Vec2
	Velocity core.Vec2 // px per tick, negative X is the authored facing (left)
	Duration int       // ticks; zero-duration poses are never shown
	Border   BorderTag
	Sound    string
}

// ActionRef points at a child action, optionally guarded by conditions.
type ActionRef struct {
	Action     ActionID
	Conditions []Condition
}

// ActionDescriptor is a named animation unit shared by every pet of a pack.
type ActionDescriptor struct {
	ID       ActionID
	Name     string
	Kind     ActionKind
	Poses    []PoseFrame
	Children []ActionRef
	Loop     bool
	MaxTicks int // total ticks before a looping action completes; 0 = unbounded
	Sound    string

	inheritLoop bool // Select without an explicit loop flag follows its child
}

// defaultLoop returns whether actions of kind k loop unless told otherwise.
func defaultLoop(k ActionKind) bool {
	return k == KindStay || k == KindMove
}
