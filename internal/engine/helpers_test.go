package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

func pose(img string, vx float64, dur int) graph.PoseFrame {
	return graph.PoseFrame{Image: img, Anchor: core.V(64, 128), Velocity: core.V(vx, 0), Duration: dur}
}

var onGround = []graph.ConditionSpec{{Kind: "on_ground"}}

// testGraph is a small pack with every event behavior present.
func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewBuilder().
		AddAction(graph.ActionSpec{Name: "Stand", Kind: "stay", Poses: []graph.PoseFrame{pose("shime1.png", 0, 10)}}).
		AddAction(graph.ActionSpec{Name: "Walk", Kind: "move", Poses: []graph.PoseFrame{pose("shime2.png", -2, 6), pose("shime3.png", -2, 6)}}).
		AddAction(graph.ActionSpec{Name: "Sit", Kind: "stay", Poses: []graph.PoseFrame{pose("shime11.png", 0, 10)}, MaxTicks: 60}).
		AddAction(graph.ActionSpec{Name: "Falling", Kind: "stay", Poses: []graph.PoseFrame{pose("shime4.png", 0, 1)}}).
		AddAction(graph.ActionSpec{Name: "Bouncing", Kind: "animate", Poses: []graph.PoseFrame{pose("shime18.png", 0, 4), pose("shime19.png", 0, 4)}}).
		AddAction(graph.ActionSpec{Name: "GrabWall", Kind: "stay", Poses: []graph.PoseFrame{pose("shime13.png", 0, 1)}}).
		AddAction(graph.ActionSpec{Name: "ClimbWall", Kind: "move", Poses: []graph.PoseFrame{pose("shime14.png", 0, 8), pose("shime12.png", 0, 8)}}).
		AddAction(graph.ActionSpec{Name: "Pinched", Kind: "stay", Poses: []graph.PoseFrame{pose("shime5.png", 0, 1)}}).
		AddBehavior(graph.BehaviorSpec{Name: "Idle", Action: "Stand", Frequency: 100, Conditions: onGround}).
		AddBehavior(graph.BehaviorSpec{Name: "Walk", Action: "Walk", Frequency: 100, Conditions: onGround}).
		AddBehavior(graph.BehaviorSpec{Name: "Sit", Action: "Sit", Frequency: 50, Resting: true, Conditions: onGround}).
		AddBehavior(graph.BehaviorSpec{Name: "Fall", Action: "Falling", Hidden: true}).
		AddBehavior(graph.BehaviorSpec{Name: "Land", Action: "Bouncing", Hidden: true, Next: []graph.NextSpec{{Behavior: "Idle", Weight: 1}}}).
		AddBehavior(graph.BehaviorSpec{Name: "GrabWall", Action: "GrabWall", Hidden: true}).
		AddBehavior(graph.BehaviorSpec{Name: "ClimbWall", Action: "ClimbWall", Hidden: true}).
		AddBehavior(graph.BehaviorSpec{Name: "Pinched", Action: "Pinched", Hidden: true}).
		AddBehavior(graph.BehaviorSpec{Name: "Thrown", Action: "Falling", Hidden: true}).
		SetPinch(graph.PinchSet{Center: "shime5a.png", FarLeft: "shime9.png", FarRight: "shime10.png"}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return g
}

func newTestEngine(t *testing.T, params Params) *Engine {
	t.Helper()
	e, err := New(testGraph(t), params, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// groundPet spawns a pet standing on the floor at x in behavior name.
func groundPet(t *testing.T, e *Engine, x float64, facingRight bool, name string, rng *rand.Rand) *Pet {
	t.Helper()
	p := e.Spawn("pet", core.V(x, e.params.Bounds.Floor), facingRight, rng)
	p.Motion.State = Grounded
	p.Contact = Contact{OnGround: true}
	id, ok := e.graph.BehaviorByName(name)
	if !ok {
		t.Fatalf("behavior %q not found", name)
	}
	e.enter(p, id, p.Env(0), rng)
	return p
}

func behaviorName(e *Engine, p *Pet) string {
	return e.graph.Behavior(p.Behavior).Name
}

func tick() TickInput {
	return TickInput{}
}
