package graph

// Facing is the direction request a behavior makes when it is entered.
type Facing uint8

const (
	FacingKeep   Facing = iota // leave facing alone
	FacingFlip                 // ask to turn around
	FacingRandom               // ask for a random facing
)

var facingNames = [...]string{"keep", "flip", "random"}

func (f Facing) String() string {
	if int(f) < len(facingNames) {
		return facingNames[f]
	}
	return "unknown"
}

// ParseFacing maps a pack keyword to a Facing. The empty string is FacingKeep.
func ParseFacing(s string) (Facing, bool) {
	if s == "" {
		return FacingKeep, true
	}
	for i, name := range facingNames {
		if name == s {
			return Facing(i), true
		}
	}
	return 0, false
}

// NextBehavior is one weighted chaining edge.
type NextBehavior struct {
	Behavior BehaviorID
	Weight   int
}

// BehaviorDescriptor is a node of the behavior graph.
type BehaviorDescriptor struct {
	ID         BehaviorID
	Name       string
	Action     ActionID
	Frequency  int
	Hidden     bool // only entered through system events
	Resting    bool // energy regenerates while active
	Facing     Facing
	Conditions []Condition
	Next       []NextBehavior
}

// Eligible reports whether the behavior's own conditions hold in env.
// It does not look at the hidden flag.
func (b *BehaviorDescriptor) Eligible(env EnvSnapshot) bool {
	return AllHold(b.Conditions, env)
}
