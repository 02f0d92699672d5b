package graph

// CondKind enumerates the predicates a behavior or child action can require.
type CondKind uint8

const (
	CondOnGround CondKind = iota
	CondOnWall
	CondOnCeiling
	CondAirborne
	CondFlag
	CondEnergyAbove
	CondEnergyBelow
)

var condNames = [...]string{
	"on_ground", "on_wall", "on_ceiling", "airborne", "flag", "energy_above", "energy_below",
}

func (k CondKind) String() string {
	if int(k) < len(condNames) {
		return condNames[k]
	}
	return "unknown"
}

// ParseCondKind maps a pack keyword to a CondKind.
func ParseCondKind(s string) (CondKind, bool) {
	for i, name := range condNames {
		if name == s {
			return CondKind(i), true
		}
	}
	return 0, false
}

// Condition is a single predicate over an EnvSnapshot.
type Condition struct {
	Kind   CondKind
	Flag   FlagID  // CondFlag only
	Value  float64 // CondEnergyAbove / CondEnergyBelow only
	Negate bool
}

// EnvSnapshot is everything a condition may look at. The contact fields come
// from the pet's own physics; Flags come from the window-awareness layer and
// are opaque to the engine.
type EnvSnapshot struct {
	OnGround  bool
	OnWall    bool
	OnCeiling bool
	Energy    float64
	Flags     FlagSet
}

// Eval reports whether the condition holds in env.
func (c Condition) Eval(env EnvSnapshot) bool {
	var ok bool
	switch c.Kind {
	case CondOnGround:
		ok = env.OnGround
	case CondOnWall:
		ok = env.OnWall
	case CondOnCeiling:
		ok = env.OnCeiling
	case CondAirborne:
		ok = !env.OnGround && !env.OnWall && !env.OnCeiling
	case CondFlag:
		ok = env.Flags.Has(c.Flag)
	case CondEnergyAbove:
		ok = env.Energy > c.Value
	case CondEnergyBelow:
		ok = env.Energy < c.Value
	}
	if c.Negate {
		return !ok
	}
	return ok
}

// AllHold reports whether every condition holds. An empty list holds.
func AllHold(conds []Condition, env EnvSnapshot) bool {
	for _, c := range conds {
		if !c.Eval(env) {
			return false
		}
	}
	return true
}
