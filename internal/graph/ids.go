// Package graph holds the immutable action/behavior graph a sprite pack
// describes. Descriptors live in arenas indexed by small integer handles;
// names are resolved once when the graph is built and never on the tick path.
package graph

// ActionID is the interned handle of an ActionDescriptor.
type ActionID int32

// BehaviorID is the interned handle of a BehaviorDescriptor.
type BehaviorID int32

// FlagID is the interned handle of an opaque environment predicate key
// such as "near_window_edge".
type FlagID uint8

const (
	// NoAction marks the absence of an action.
	NoAction ActionID = -1
	// NoBehavior marks the absence of a behavior.
	NoBehavior BehaviorID = -1
)

// MaxFlags is the number of distinct flag keys a graph can intern.
const MaxFlags = 64

// FlagSet is a set of interned environment flags.
type FlagSet uint64

// Has reports whether id is in the set.
func (s FlagSet) Has(id FlagID) bool {
	return s&(1<<id) != 0
}

// With returns the set with id added.
func (s FlagSet) With(id FlagID) FlagSet {
	return s | 1<<id
}

// Without returns the set with id removed.
func (s FlagSet) Without(id FlagID) FlagSet {
	return s &^ (1 << id)
}
