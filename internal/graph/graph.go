package graph

// Graph is a validated, immutable action/behavior graph. It is safe to share
// by pointer between any number of pets and goroutines.
type Graph struct {
	actions   []ActionDescriptor
	behaviors []BehaviorDescriptor

	actionIdx   map[string]ActionID
	behaviorIdx map[string]BehaviorID
	flagNames   []string
	flagIdx     map[string]FlagID

	neutral BehaviorID
	spriteW float64
	spriteH float64
	pinch   PinchSet
}

// Action returns the descriptor for id. It panics on an out-of-range id,
// which can only come from a bug since ids are minted by the graph itself.
func (g *Graph) Action(id ActionID) *ActionDescriptor {
	return &g.actions[id]
}

// Behavior returns the descriptor for id.
func (g *Graph) Behavior(id BehaviorID) *BehaviorDescriptor {
	return &g.behaviors[id]
}

// Behaviors returns all behavior descriptors in declaration order.
// Callers must not modify the returned slice.
func (g *Graph) Behaviors() []BehaviorDescriptor {
	return g.behaviors
}

// NumActions returns the number of actions.
func (g *Graph) NumActions() int {
	return len(g.actions)
}

// NumBehaviors returns the number of behaviors.
func (g *Graph) NumBehaviors() int {
	return len(g.behaviors)
}

// ActionByName resolves an action name.
func (g *Graph) ActionByName(name string) (ActionID, bool) {
	id, ok := g.actionIdx[name]
	return id, ok
}

// BehaviorByName resolves a behavior name.
func (g *Graph) BehaviorByName(name string) (BehaviorID, bool) {
	id, ok := g.behaviorIdx[name]
	return id, ok
}

// FlagByName resolves a flag key.
func (g *Graph) FlagByName(name string) (FlagID, bool) {
	id, ok := g.flagIdx[name]
	return id, ok
}

// FlagNames returns the interned flag keys in id order.
func (g *Graph) FlagNames() []string {
	return g.flagNames
}

// Flags builds a FlagSet from keys. Unknown keys are ignored: no condition
// can refer to them.
func (g *Graph) Flags(names ...string) FlagSet {
	var s FlagSet
	for _, n := range names {
		if id, ok := g.flagIdx[n]; ok {
			s = s.With(id)
		}
	}
	return s
}

// Neutral returns the default behavior pets spawn with and fall back to.
func (g *Graph) Neutral() BehaviorID {
	return g.neutral
}

// SpriteSize returns the sprite width and height in pixels.
func (g *Graph) SpriteSize() (w, h float64) {
	return g.spriteW, g.spriteH
}

// Pinch returns the drag image set.
func (g *Graph) Pinch() PinchSet {
	return g.pinch
}

// Resolved is an action flattened into the poses a player will run.
type Resolved struct {
	Action   ActionID
	Kind     ActionKind
	Poses    []PoseFrame
	Loop     bool
	MaxTicks int
	Sound    string
}

// Resolve flattens action id against env: Sequence children are
// concatenated, a Select contributes its first child whose conditions hold,
// and Stay poses lose their velocity.
func (g *Graph) Resolve(id ActionID, env EnvSnapshot) Resolved {
	a := &g.actions[id]
	r := Resolved{
		Action:   id,
		Kind:     a.Kind,
		Loop:     a.Loop,
		MaxTicks: a.MaxTicks,
		Sound:    a.Sound,
	}
	if a.Kind == KindSelect && a.inheritLoop {
		if child := g.selectChild(a, env); child != NoAction {
			r.Loop = g.actions[child].Loop
			r.MaxTicks = g.actions[child].MaxTicks
		}
	}
	r.Poses = g.appendPoses(nil, id, env)
	return r
}

func (g *Graph) appendPoses(dst []PoseFrame, id ActionID, env EnvSnapshot) []PoseFrame {
	a := &g.actions[id]
	switch a.Kind {
	case KindStay:
		for _, p := range a.Poses {
			p.Velocity.X, p.Velocity.Y = 0, 0
			dst = append(dst, p)
		}
	case KindMove, KindAnimate:
		dst = append(dst, a.Poses...)
	case KindSequence:
		for _, c := range a.Children {
			if AllHold(c.Conditions, env) {
				dst = g.appendPoses(dst, c.Action, env)
			}
		}
	case KindSelect:
		if child := g.selectChild(a, env); child != NoAction {
			dst = g.appendPoses(dst, child, env)
		}
	}
	return dst
}

func (g *Graph) selectChild(a *ActionDescriptor, env EnvSnapshot) ActionID {
	for _, c := range a.Children {
		if AllHold(c.Conditions, env) {
			return c.Action
		}
	}
	return NoAction
}
