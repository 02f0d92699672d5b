// Package spritepack reads sprite packs: YAML documents declaring a pet's
// actions, poses and behaviors. Documents are checked against an embedded
// JSON schema, then turned into an immutable graph.Graph.
package spritepack

import (
	"fmt"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

// Pose defaults applied when a document omits a field.
var (
	DefaultAnchor   = [2]float64{64, 128}
	DefaultVelocity = [2]float64{0, 0}
)

const DefaultDuration = 1

// Document is the YAML form of a pack.
type Document struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Neutral   string         `yaml:"neutral"`
	Sprite    SpriteDoc      `yaml:"sprite"`
	Flags     []string       `yaml:"flags"`
	Pinch     graph.PinchSet `yaml:"pinch"`
	Actions   []ActionDoc    `yaml:"actions"`
	Behaviors []BehaviorDoc  `yaml:"behaviors"`
}

// SpriteDoc is the sprite size in pixels.
type SpriteDoc struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ConditionDoc is one condition.
type ConditionDoc struct {
	Kind   string  `yaml:"kind"`
	Flag   string  `yaml:"flag"`
	Value  float64 `yaml:"value"`
	Negate bool    `yaml:"negate"`
}

// PoseDoc is one pose; nil fields take the defaults.
type PoseDoc struct {
	Image    string      `yaml:"image"`
	Anchor   *[2]float64 `yaml:"anchor"`
	Velocity *[2]float64 `yaml:"velocity"`
	Duration *int        `yaml:"duration"`
	Border   string      `yaml:"border"`
	Sound    string      `yaml:"sound"`
}

// ChildDoc references a child action.
type ChildDoc struct {
	Action     string         `yaml:"action"`
	Conditions []ConditionDoc `yaml:"conditions"`
}

// ActionDoc is one action.
type ActionDoc struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Loop     *bool      `yaml:"loop"`
	MaxTicks int        `yaml:"max_ticks"`
	Sound    string     `yaml:"sound"`
	Poses    []PoseDoc  `yaml:"poses"`
	Children []ChildDoc `yaml:"children"`
}

// NextDoc is a weighted follow-up behavior.
type NextDoc struct {
	Behavior string `yaml:"behavior"`
	Weight   int    `yaml:"weight"`
}

// BehaviorDoc is one behavior.
type BehaviorDoc struct {
	Name       string         `yaml:"name"`
	Action     string         `yaml:"action"`
	Frequency  int            `yaml:"frequency"`
	Hidden     bool           `yaml:"hidden"`
	Resting    bool           `yaml:"resting"`
	Facing     string         `yaml:"facing"`
	Conditions []ConditionDoc `yaml:"conditions"`
	Next       []NextDoc      `yaml:"next"`
}

// Pack is a parsed sprite pack.
type Pack struct {
	ID       string
	Title    string
	Doc      Document
	FilePath string // empty for built-in packs
}

// Graph validates the pack's references and builds its behavior graph.
// Problems are reported as *graph.ConfigError.
func (p *Pack) Graph() (*graph.Graph, error) {
	b := graph.NewBuilder().
		SetNeutral(p.Doc.Neutral).
		SetSpriteSize(p.Doc.Sprite.Width, p.Doc.Sprite.Height).
		SetPinch(p.Doc.Pinch)
	for _, f := range p.Doc.Flags {
		b.DeclareFlag(f)
	}
	for _, a := range p.Doc.Actions {
		spec := graph.ActionSpec{
			Name:     a.Name,
			Kind:     a.Kind,
			Loop:     a.Loop,
			MaxTicks: a.MaxTicks,
			Sound:    a.Sound,
		}
		for i, pd := range a.Poses {
			pose, err := pd.frame()
			if err != nil {
				return nil, &graph.ConfigError{
					Code:    graph.CodeBadKeyword,
					Message: fmt.Sprintf("action %q pose %d: %v", a.Name, i, err),
				}
			}
			spec.Poses = append(spec.Poses, pose)
		}
		for _, c := range a.Children {
			spec.Children = append(spec.Children, graph.ChildSpec{Action: c.Action, Conditions: conditions(c.Conditions)})
		}
		b.AddAction(spec)
	}
	for _, bd := range p.Doc.Behaviors {
		spec := graph.BehaviorSpec{
			Name:       bd.Name,
			Action:     bd.Action,
			Frequency:  bd.Frequency,
			Hidden:     bd.Hidden,
			Resting:    bd.Resting,
			Facing:     bd.Facing,
			Conditions: conditions(bd.Conditions),
		}
		for _, n := range bd.Next {
			spec.Next = append(spec.Next, graph.NextSpec{Behavior: n.Behavior, Weight: n.Weight})
		}
		b.AddBehavior(spec)
	}
	return b.Build()
}

func (pd PoseDoc) frame() (graph.PoseFrame, error) {
	anchor, velocity, duration := DefaultAnchor, DefaultVelocity, DefaultDuration
	if pd.Anchor != nil {
		anchor = *pd.Anchor
	}
	if pd.Velocity != nil {
		velocity = *pd.Velocity
	}
	if pd.Duration != nil {
		duration = *pd.Duration
	}
	border, ok := graph.ParseBorderTag(pd.Border)
	if !ok {
		return graph.PoseFrame{}, fmt.Errorf("unknown border %q", pd.Border)
	}
	return graph.PoseFrame{
		Image:    pd.Image,
		Anchor:   core.V(anchor[0], anchor[1]),
		Velocity: core.V(velocity[0], velocity[1]),
		Duration: duration,
		Border:   border,
		Sound:    pd.Sound,
	}, nil
}

func conditions(docs []ConditionDoc) []graph.ConditionSpec {
	if len(docs) == 0 {
		return nil
	}
	out := make([]graph.ConditionSpec, len(docs))
	for i, d := range docs {
		out[i] = graph.ConditionSpec{Kind: d.Kind, Flag: d.Flag, Value: d.Value, Negate: d.Negate}
	}
	return out
}
