package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

// Snapshot is the persistable form of a pet. Behaviors and actions are
// stored by name so a snapshot survives re-ordering of the pack.
type Snapshot struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	VX           float64 `json:"vx"`
	VY           float64 `json:"vy"`
	FacingRight  bool    `json:"facing_right"`
	Behavior     string  `json:"behavior"`
	Action       string  `json:"action"`
	Frame        int     `json:"frame"`
	Elapsed      int     `json:"elapsed"`
	Motion       string  `json:"motion"`
	Lock         float64 `json:"lock,omitempty"`
	FlipCooldown float64 `json:"flip_cooldown,omitempty"`
	GrabTimer    float64 `json:"grab_timer,omitempty"`
	ClimbTimer   float64 `json:"climb_timer,omitempty"`
	OnGround     bool    `json:"on_ground"`
	OnWall       bool    `json:"on_wall"`
	WallSide     string  `json:"wall_side"`
	OnCeiling    bool    `json:"on_ceiling"`
	Energy       float64 `json:"energy"`
	Happiness    float64 `json:"happiness"`
	StateTimer   float64 `json:"state_timer"`
	Tick         uint64  `json:"tick"`
	Stats        Stats   `json:"stats"`
}

// Snapshot captures p.
func (e *Engine) Snapshot(p *Pet) Snapshot {
	frame, elapsed := p.Frame()
	return Snapshot{
		ID:           p.ID,
		X:            p.Position.X,
		Y:            p.Position.Y,
		VX:           p.Velocity.X,
		VY:           p.Velocity.Y,
		FacingRight:  p.FacingRight,
		Behavior:     e.graph.Behavior(p.Behavior).Name,
		Action:       e.graph.Action(p.Action()).Name,
		Frame:        frame,
		Elapsed:      elapsed,
		Motion:       p.Motion.State.String(),
		Lock:         p.Motion.Lock,
		FlipCooldown: p.Motion.FlipCooldown,
		GrabTimer:    p.Motion.GrabTimer,
		ClimbTimer:   p.Motion.ClimbTimer,
		OnGround:     p.Contact.OnGround,
		OnWall:       p.Contact.OnWall,
		WallSide:     p.Contact.WallSide.String(),
		OnCeiling:    p.Contact.OnCeiling,
		Energy:       p.Energy,
		Happiness:    p.Happiness,
		StateTimer:   p.StateTimer,
		Tick:         p.Tick,
		Stats:        p.Stats,
	}
}

// Restore rebuilds a pet from s. A pet saved mid-drag comes back falling,
// and contact flags that contradict the motion state are repaired.
func (e *Engine) Restore(s Snapshot, rng *rand.Rand) (*Pet, error) {
	id, ok := e.graph.BehaviorByName(s.Behavior)
	if !ok {
		return nil, fmt.Errorf("engine: cannot restore pet %s: unknown behavior %q", s.ID, s.Behavior)
	}
	state, ok := ParseMotionState(s.Motion)
	if !ok {
		return nil, fmt.Errorf("engine: cannot restore pet %s: unknown motion state %q", s.ID, s.Motion)
	}

	b := e.params.Bounds
	p := &Pet{
		ID: s.ID,
		Position: core.Vec2{
			X: core.ClampF(s.X, b.Left, b.Right),
			Y: core.ClampF(s.Y, b.Ceiling, b.Floor),
		},
		Velocity:    core.Vec2{X: s.VX, Y: s.VY},
		FacingRight: s.FacingRight,
		Contact: Contact{
			OnGround:  s.OnGround,
			OnWall:    s.OnWall,
			WallSide:  ParseWallSide(s.WallSide),
			OnCeiling: s.OnCeiling,
		},
		Energy:    core.ClampF(s.Energy, 0, maxStat),
		Happiness: core.ClampF(s.Happiness, 0, maxStat),
		Motion: Motion{
			State:        state,
			Lock:         s.Lock,
			FlipCooldown: s.FlipCooldown,
			GrabTimer:    s.GrabTimer,
			ClimbTimer:   s.ClimbTimer,
		},
		Stats: s.Stats,
		Tick:  s.Tick,
	}

	onWallState := state == GrabWall || state == ClimbWall
	switch {
	case state == Dragged:
		p.Motion.State = Falling
		p.Velocity = core.Vec2{}
		p.Contact = Contact{}
	case onWallState && p.Contact.WallSide == WallNone:
		p.Motion.State = Falling
		p.Velocity = core.Vec2{}
		p.Contact = Contact{}
	case onWallState:
		p.Contact.OnWall = true
		p.Velocity = core.Vec2{}
	default:
		p.Contact.OnWall = false
		p.Contact.WallSide = WallNone
	}
	if p.Motion.State == Grounded {
		p.Position.Y = b.Floor
		p.Velocity = core.Vec2{}
		p.Contact.OnGround = true
	}

	facing := p.FacingRight
	stats := p.Stats
	e.enter(p, id, p.Env(0), rng)
	p.FacingRight = facing
	p.Stats = stats
	if p.Contact.OnWall {
		p.forceFacing(p.Contact.WallSide == WallRight)
	}
	if name := e.graph.Action(p.Action()).Name; name == s.Action {
		p.anim.restore(s.Frame, s.Elapsed)
	}
	p.StateTimer = s.StateTimer
	return p, nil
}

// behaviorName returns the name of id, or "" for NoBehavior.
func (e *Engine) behaviorName(id graph.BehaviorID) string {
	if id == graph.NoBehavior {
		return ""
	}
	return e.graph.Behavior(id).Name
}
