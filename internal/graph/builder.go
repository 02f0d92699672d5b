package graph

// ConditionSpec is a condition as written in a pack, before interning.
type ConditionSpec struct {
	Kind   string
	Flag   string
	Value  float64
	Negate bool
}

// ChildSpec references a child action by name.
type ChildSpec struct {
	Action     string
	Conditions []ConditionSpec
}

// ActionSpec describes an action by name.
type ActionSpec struct {
	Name     string
	Kind     string
	Poses    []PoseFrame
	Children []ChildSpec
	Loop     *bool // nil picks the kind's default
	MaxTicks int
	Sound    string
}

// NextSpec is a weighted chaining edge by name.
type NextSpec struct {
	Behavior string
	Weight   int
}

// BehaviorSpec describes a behavior by name.
type BehaviorSpec struct {
	Name       string
	Action     string
	Frequency  int
	Hidden     bool
	Resting    bool
	Facing     string
	Conditions []ConditionSpec
	Next       []NextSpec
}

// DefaultNeutral is the neutral behavior name used when none is set.
const DefaultNeutral = "Idle"

// Builder collects named specs and turns them into a Graph.
type Builder struct {
	actions   []ActionSpec
	behaviors []BehaviorSpec
	flags     []string
	neutral   string
	spriteW   float64
	spriteH   float64
	pinch     PinchSet
}

// NewBuilder returns a builder with a 128×128 sprite and "Idle" as neutral.
func NewBuilder() *Builder {
	return &Builder{
		neutral: DefaultNeutral,
		spriteW: 128,
		spriteH: 128,
	}
}

// DeclareFlag interns a flag key even if no condition mentions it.
func (b *Builder) DeclareFlag(name string) *Builder {
	b.flags = append(b.flags, name)
	return b
}

// AddAction appends an action spec.
func (b *Builder) AddAction(a ActionSpec) *Builder {
	b.actions = append(b.actions, a)
	return b
}

// AddBehavior appends a behavior spec.
func (b *Builder) AddBehavior(s BehaviorSpec) *Builder {
	b.behaviors = append(b.behaviors, s)
	return b
}

// SetNeutral names the neutral behavior.
func (b *Builder) SetNeutral(name string) *Builder {
	if name != "" {
		b.neutral = name
	}
	return b
}

// SetSpriteSize sets the sprite dimensions in pixels.
func (b *Builder) SetSpriteSize(w, h float64) *Builder {
	if w > 0 && h > 0 {
		b.spriteW, b.spriteH = w, h
	}
	return b
}

// SetPinch sets the drag image set.
func (b *Builder) SetPinch(p PinchSet) *Builder {
	b.pinch = p
	return b
}

// Build validates every reference and returns the graph, or a *ConfigError
// describing the first problem found.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		actions:     make([]ActionDescriptor, len(b.actions)),
		behaviors:   make([]BehaviorDescriptor, len(b.behaviors)),
		actionIdx:   make(map[string]ActionID, len(b.actions)),
		behaviorIdx: make(map[string]BehaviorID, len(b.behaviors)),
		flagIdx:     make(map[string]FlagID),
		spriteW:     b.spriteW,
		spriteH:     b.spriteH,
		pinch:       b.pinch,
	}

	for _, f := range b.flags {
		if _, err := g.internFlag(f); err != nil {
			return nil, err
		}
	}

	// Names first so children and behaviors can point forward.
	for i, a := range b.actions {
		if _, dup := g.actionIdx[a.Name]; dup {
			return nil, configErrorf(CodeDuplicateAction, "action %q declared twice", a.Name)
		}
		g.actionIdx[a.Name] = ActionID(i)
	}
	for i, s := range b.behaviors {
		if _, dup := g.behaviorIdx[s.Name]; dup {
			return nil, configErrorf(CodeDuplicateBehavior, "behavior %q declared twice", s.Name)
		}
		g.behaviorIdx[s.Name] = BehaviorID(i)
	}

	for i, a := range b.actions {
		desc, err := g.buildAction(ActionID(i), a)
		if err != nil {
			return nil, err
		}
		g.actions[i] = desc
	}
	if err := g.checkCycles(); err != nil {
		return nil, err
	}

	for i, s := range b.behaviors {
		desc, err := g.buildBehavior(BehaviorID(i), s)
		if err != nil {
			return nil, err
		}
		g.behaviors[i] = desc
	}

	neutral, ok := g.behaviorIdx[b.neutral]
	if !ok {
		return nil, configErrorf(CodeNoNeutral, "neutral behavior %q is not declared", b.neutral)
	}
	if g.behaviors[neutral].Hidden {
		return nil, configErrorf(CodeHiddenNeutral, "neutral behavior %q must not be hidden", b.neutral)
	}
	g.neutral = neutral

	return g, nil
}

func (g *Graph) buildAction(id ActionID, a ActionSpec) (ActionDescriptor, error) {
	kind, ok := ParseActionKind(a.Kind)
	if !ok {
		return ActionDescriptor{}, configErrorf(CodeBadKeyword, "action %q: unknown kind %q", a.Name, a.Kind)
	}

	desc := ActionDescriptor{
		ID:       id,
		Name:     a.Name,
		Kind:     kind,
		Poses:    append([]PoseFrame(nil), a.Poses...),
		MaxTicks: a.MaxTicks,
		Sound:    a.Sound,
	}
	if a.Loop != nil {
		desc.Loop = *a.Loop
	} else {
		desc.Loop = defaultLoop(kind)
		desc.inheritLoop = kind == KindSelect
	}
	if a.MaxTicks < 0 {
		return desc, configErrorf(CodeBadDuration, "action %q: max_ticks %d is negative", a.Name, a.MaxTicks)
	}

	switch kind {
	case KindSequence, KindSelect:
		if len(a.Children) == 0 {
			return desc, configErrorf(CodeBadChildren, "%s action %q has no children", kind, a.Name)
		}
		if len(a.Poses) > 0 {
			return desc, configErrorf(CodeBadChildren, "%s action %q must not declare poses", kind, a.Name)
		}
	default:
		if len(a.Poses) == 0 {
			return desc, configErrorf(CodeEmptyPoses, "action %q has no poses", a.Name)
		}
		if len(a.Children) > 0 {
			return desc, configErrorf(CodeBadChildren, "%s action %q must not declare children", kind, a.Name)
		}
	}

	for i, p := range a.Poses {
		if p.Duration < 0 {
			return desc, configErrorf(CodeBadDuration, "action %q pose %d: negative duration %d", a.Name, i, p.Duration)
		}
	}

	for _, c := range a.Children {
		child, ok := g.actionIdx[c.Action]
		if !ok {
			return desc, configErrorf(CodeDanglingAction, "action %q references unknown child %q", a.Name, c.Action)
		}
		conds, err := g.buildConditions(c.Conditions, "action "+a.Name)
		if err != nil {
			return desc, err
		}
		desc.Children = append(desc.Children, ActionRef{Action: child, Conditions: conds})
	}
	return desc, nil
}

func (g *Graph) buildBehavior(id BehaviorID, s BehaviorSpec) (BehaviorDescriptor, error) {
	desc := BehaviorDescriptor{
		ID:        id,
		Name:      s.Name,
		Frequency: s.Frequency,
		Hidden:    s.Hidden,
		Resting:   s.Resting,
	}

	action, ok := g.actionIdx[s.Action]
	if !ok {
		return desc, configErrorf(CodeDanglingAction, "behavior %q references unknown action %q", s.Name, s.Action)
	}
	desc.Action = action

	if s.Frequency < 0 {
		return desc, configErrorf(CodeNegativeWeight, "behavior %q: negative frequency %d", s.Name, s.Frequency)
	}

	facing, ok := ParseFacing(s.Facing)
	if !ok {
		return desc, configErrorf(CodeBadKeyword, "behavior %q: unknown facing %q", s.Name, s.Facing)
	}
	desc.Facing = facing

	conds, err := g.buildConditions(s.Conditions, "behavior "+s.Name)
	if err != nil {
		return desc, err
	}
	desc.Conditions = conds

	for _, n := range s.Next {
		target, ok := g.behaviorIdx[n.Behavior]
		if !ok {
			return desc, configErrorf(CodeDanglingBehavior, "behavior %q chains to unknown behavior %q", s.Name, n.Behavior)
		}
		if n.Weight < 0 {
			return desc, configErrorf(CodeNegativeWeight, "behavior %q: negative weight %d for %q", s.Name, n.Weight, n.Behavior)
		}
		desc.Next = append(desc.Next, NextBehavior{Behavior: target, Weight: n.Weight})
	}
	return desc, nil
}

func (g *Graph) buildConditions(specs []ConditionSpec, owner string) ([]Condition, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	conds := make([]Condition, 0, len(specs))
	for _, cs := range specs {
		kind, ok := ParseCondKind(cs.Kind)
		if !ok {
			return nil, configErrorf(CodeBadKeyword, "%s: unknown condition %q", owner, cs.Kind)
		}
		c := Condition{Kind: kind, Value: cs.Value, Negate: cs.Negate}
		if kind == CondFlag {
			if cs.Flag == "" {
				return nil, configErrorf(CodeBadKeyword, "%s: flag condition without a flag name", owner)
			}
			id, err := g.internFlag(cs.Flag)
			if err != nil {
				return nil, err
			}
			c.Flag = id
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func (g *Graph) internFlag(name string) (FlagID, error) {
	if id, ok := g.flagIdx[name]; ok {
		return id, nil
	}
	if len(g.flagNames) >= MaxFlags {
		return 0, configErrorf(CodeTooManyFlags, "more than %d distinct flags (at %q)", MaxFlags, name)
	}
	id := FlagID(len(g.flagNames))
	g.flagNames = append(g.flagNames, name)
	g.flagIdx[name] = id
	return id, nil
}

// checkCycles rejects Sequence/Select actions that contain themselves.
func (g *Graph) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(g.actions))

	var visit func(id ActionID) error
	visit = func(id ActionID) error {
		switch state[id] {
		case visiting:
			return configErrorf(CodeActionCycle, "action %q contains itself", g.actions[id].Name)
		case done:
			return nil
		}
		state[id] = visiting
		for _, c := range g.actions[id].Children {
			if err := visit(c.Action); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for i := range g.actions {
		if err := visit(ActionID(i)); err != nil {
			return err
		}
	}
	return nil
}
