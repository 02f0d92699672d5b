package engine

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

const maxStat = 100

// TickInput carries everything a single Step consumes besides the pet.
type TickInput struct {
	DT   float64      // seconds; <= 0 means one tick at the configured rate
	Drag *DragCommand // nil leaves any drag as it is
	Kill bool
	// Flags are the user-settable flags conditions may test.
	Flags graph.FlagSet
	// Trigger requests a behavior by ID when Triggered is set. It is
	// honored only while the pet is on the ground.
	Trigger   graph.BehaviorID
	Triggered bool
}

// StepResult reports what one Step did.
type StepResult struct {
	Event     Event
	Completed bool             // the active action finished this tick
	Selected  bool             // a new behavior was entered this tick
	Behavior  graph.BehaviorID // behavior active after the tick
	Sound     string           // sound started this tick
	Killed    bool
	Warning   error // non-fatal selection problem, already logged
}

// Engine advances pets against one immutable behavior graph. It holds no
// per-pet state, but its selector does, so an Engine must be driven from a
// single goroutine.
type Engine struct {
	graph   *graph.Graph
	params  Params
	sel     *Selector
	logger  *log.Logger
	targets [numEventKinds]graph.BehaviorID
}

// New builds an engine. A nil logger discards warnings.
func New(g *graph.Graph, params Params, logger *log.Logger) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("engine: nil behavior graph")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		graph:  g,
		params: params,
		sel:    NewSelector(g),
		logger: logger,
	}
	names := map[EventKind]string{
		EventFall:      params.Events.Fall,
		EventLand:      params.Events.Land,
		EventWallGrab:  params.Events.WallGrab,
		EventClimb:     params.Events.Climb,
		EventClimbEnd:  params.Events.ClimbEnd,
		EventDragStart: params.Events.Drag,
		EventDragEnd:   params.Events.Throw,
	}
	for k := range e.targets {
		e.targets[k] = graph.NoBehavior
		if id, ok := g.BehaviorByName(names[EventKind(k)]); ok {
			e.targets[k] = id
		}
	}
	return e, nil
}

// Graph returns the behavior graph the engine runs.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Spawn creates a pet at pos (clamped to the bounds), falling, in the
// neutral behavior.
func (e *Engine) Spawn(id string, pos core.Vec2, facingRight bool, rng *rand.Rand) *Pet {
	b := e.params.Bounds
	p := &Pet{
		ID: id,
		Position: core.Vec2{
			X: core.ClampF(pos.X, b.Left, b.Right),
			Y: core.ClampF(pos.Y, b.Ceiling, b.Floor),
		},
		FacingRight: facingRight,
		Energy:      e.params.InitialEnergy,
		Happiness:   maxStat,
		Motion:      Motion{State: Falling},
	}
	e.enter(p, e.graph.Neutral(), p.Env(0), rng)
	p.Stats.Behaviors = 0
	return p
}

// Step advances p by one tick: timers, commands, energy, physics (or the
// drag override), animation and finally behavior selection.
func (e *Engine) Step(p *Pet, in TickInput, rng *rand.Rand) StepResult {
	dt := in.DT
	if dt <= 0 {
		dt = e.params.DT()
	}
	p.Motion.tickTimers(dt)
	p.StateTimer += dt
	p.Tick++

	if in.Kill {
		p.killed = true
		return StepResult{Killed: true, Behavior: p.Behavior}
	}

	var res StepResult
	ev := e.applyDrag(p, in.Drag, dt)
	if in.Triggered && p.Motion.State == Grounded && e.triggerable(in.Trigger) {
		e.enter(p, in.Trigger, p.Env(in.Flags), rng)
		p.Stats.SpecialActions++
		p.Stats.Interactions++
		res.Selected = true
	}

	e.updateEnergy(p, dt)

	if p.Motion.State != Dragged {
		if pe := e.physics(p, dt); pe.Kind != EventNone {
			ev = pe
		}
	}
	res.Event = ev

	res.Completed = p.anim.Advance()
	res.Sound = p.anim.StartedSound()

	env := p.Env(in.Flags)
	switch {
	case ev.Kind != EventNone && e.targets[ev.Kind] != graph.NoBehavior:
		e.enter(p, e.targets[ev.Kind], env, rng)
		res.Selected = true
	case ev.Kind != EventNone || res.Completed:
		if p.Motion.State == Grounded {
			res.Warning = e.selectNext(p, env, rng)
			res.Selected = true
		} else if res.Completed {
			p.anim.Restart()
		}
	}
	if res.Selected {
		if s := p.anim.StartedSound(); s != "" {
			res.Sound = s
		}
	}
	res.Behavior = p.Behavior

	e.checkInvariants(p)
	return res
}

func (e *Engine) triggerable(id graph.BehaviorID) bool {
	if id < 0 || int(id) >= e.graph.NumBehaviors() {
		return false
	}
	return !e.graph.Behavior(id).Hidden
}

func (e *Engine) selectNext(p *Pet, env graph.EnvSnapshot, rng *rand.Rand) error {
	id, err := e.sel.Select(p.Behavior, env, rng)
	if err != nil {
		e.logger.Warn("behavior selection fell back to neutral", "pet", p.ID, "err", err)
	}
	e.enter(p, id, env, rng)
	return err
}

// enter makes id the active behavior and starts its action. Looping
// actions on the ground get an autonomous interval drawn from the behavior
// frequency unless the action bounds itself.
func (e *Engine) enter(p *Pet, id graph.BehaviorID, env graph.EnvSnapshot, rng *rand.Rand) {
	b := e.graph.Behavior(id)
	p.Behavior = id
	p.StateTimer = 0

	res := e.graph.Resolve(b.Action, env)
	limit := 0
	switch {
	case res.Loop && res.MaxTicks > 0:
		limit = res.MaxTicks
	case res.Loop && p.Motion.State == Grounded:
		limit = e.intervalTicks(rng)
	}
	p.anim.Start(res, limit)

	switch b.Facing {
	case graph.FacingFlip:
		p.requestFacing(!p.FacingRight, e.params.FlipCooldown)
	case graph.FacingRandom:
		p.requestFacing(rng.Intn(2) == 1, e.params.FlipCooldown)
	}

	if !b.Hidden && res.Kind == graph.KindMove {
		p.Stats.WalksTaken++
	}
	p.Stats.Behaviors++
}

// intervalTicks draws how long an open-ended behavior runs: 60/frequency
// seconds scaled by a factor in [0.5, 2).
func (e *Engine) intervalTicks(rng *rand.Rand) int {
	base := 60.0 / float64(e.params.BehaviorFrequency)
	secs := base * (0.5 + 1.5*rng.Float64())
	n := int(math.Round(secs * float64(e.params.TickRate)))
	if n < 1 {
		n = 1
	}
	return n
}

// updateEnergy applies the per-second energy rate of the current state and
// decays happiness.
func (e *Engine) updateEnergy(p *Pet, dt float64) {
	pr := e.params
	var rate float64
	b := e.graph.Behavior(p.Behavior)
	switch {
	case p.Motion.State == ClimbWall:
		rate = -pr.ClimbDrain
	case b.Resting:
		rate = pr.RestGain
	case p.Behavior == e.graph.Neutral() && p.Motion.State == Grounded:
		rate = pr.IdleGain
	default:
		rate = -pr.EnergyDrift
	}
	p.Energy = core.ClampF(p.Energy+rate*dt, 0, maxStat)
	p.Happiness = core.ClampF(p.Happiness-pr.HappinessDecay*dt, 0, maxStat)
}

// checkInvariants panics when the pet is in a state no sequence of legal
// steps can produce.
func (e *Engine) checkInvariants(p *Pet) {
	fail := func(reason string) {
		panic(InvalidStateTransition{From: p.Motion.State, To: p.Motion.State, Reason: reason})
	}
	b := e.params.Bounds
	switch {
	case p.Behavior == graph.NoBehavior || p.anim.Action() == graph.NoAction:
		fail("no active behavior")
	case p.Contact.OnWall && p.Contact.WallSide == WallNone:
		fail("on a wall without a side")
	case p.Contact.OnWall && p.FacingRight != (p.Contact.WallSide == WallRight):
		fail("facing away from the wall it holds")
	case p.Motion.State == Dragged && (p.Velocity.X != 0 || p.Velocity.Y != 0):
		fail("moving while dragged")
	case p.Energy < 0 || p.Energy > maxStat:
		fail("energy out of range")
	case p.Position.X < b.Left-posEpsilon || p.Position.X > b.Right+posEpsilon,
		p.Position.Y < b.Ceiling-posEpsilon || p.Position.Y > b.Floor+posEpsilon:
		fail("outside the bounds")
	}
}
