package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pets/internal/core"
)

func TestFallLandsOnFloor(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(1))
	p := e.Spawn("pet", core.V(500, 500), false, rng)

	landed := false
	for i := 0; i < 30*20; i++ {
		res := e.Step(p, tick(), rng)
		if res.Event.Kind == EventLand {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("pet never landed")
	}
	if p.Position.Y != 900 {
		t.Errorf("Position.Y = %v, expected 900", p.Position.Y)
	}
	if p.Velocity.Y != 0 {
		t.Errorf("Velocity.Y = %v, expected 0", p.Velocity.Y)
	}
	if p.Motion.State != Grounded || !p.Contact.OnGround {
		t.Errorf("state = %s onGround=%v, expected Grounded on ground", p.Motion.State, p.Contact.OnGround)
	}
	if p.Stats.Bounces == 0 {
		t.Error("expected at least one bounce from a 400 px drop")
	}
	if behaviorName(e, p) != "Land" {
		t.Errorf("behavior = %s, expected Land", behaviorName(e, p))
	}
}

func TestWallGrabClimbAndDrop(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(2))
	p := groundPet(t, e, 1890, true, "Walk", rng)

	grabbed := false
	for i := 0; i < 10; i++ {
		res := e.Step(p, tick(), rng)
		if res.Event.Kind == EventWallGrab {
			grabbed = true
			if res.Event.Side != WallRight {
				t.Errorf("Event.Side = %s, expected right", res.Event.Side)
			}
			break
		}
	}
	if !grabbed {
		t.Fatalf("no wall grab, x = %v", p.Position.X)
	}
	if p.Position.X != 1900 {
		t.Errorf("Position.X = %v, expected 1900", p.Position.X)
	}
	if p.Motion.State != GrabWall || !p.Contact.OnWall || p.Contact.WallSide != WallRight || !p.FacingRight {
		t.Errorf("after grab: state=%s onWall=%v side=%s facingRight=%v", p.Motion.State, p.Contact.OnWall, p.Contact.WallSide, p.FacingRight)
	}
	if behaviorName(e, p) != "GrabWall" {
		t.Errorf("behavior = %s, expected GrabWall", behaviorName(e, p))
	}

	// Grab delay of 1.0 s at 30 Hz.
	ticks := 0
	for p.Motion.State == GrabWall && ticks < 100 {
		e.Step(p, tick(), rng)
		ticks++
	}
	if ticks != 30 {
		t.Errorf("GrabWall lasted %d ticks, expected 30", ticks)
	}
	if p.Motion.State != ClimbWall || behaviorName(e, p) != "ClimbWall" {
		t.Fatalf("state = %s behavior = %s, expected ClimbWall", p.Motion.State, behaviorName(e, p))
	}

	startY := p.Position.Y
	ticks = 0
	for p.Motion.State == ClimbWall && ticks < 1000 {
		e.Step(p, tick(), rng)
		ticks++
		if p.Motion.ClimbTimer > e.params.MaxClimb+1e-6 {
			t.Fatalf("ClimbTimer = %v exceeds max climb", p.Motion.ClimbTimer)
		}
	}
	if ticks != 300 {
		t.Errorf("ClimbWall lasted %d ticks, expected 300", ticks)
	}
	if p.Motion.State != Falling {
		t.Errorf("state = %s, expected Falling", p.Motion.State)
	}
	if p.Contact.OnWall {
		t.Error("pet still on wall after dropping off")
	}
	climbed := startY - p.Position.Y
	if math.Abs(climbed-280) > 1 {
		t.Errorf("climbed %v px, expected about 280", climbed)
	}
	if p.Stats.Climbs != 1 {
		t.Errorf("Stats.Climbs = %d, expected 1", p.Stats.Climbs)
	}
}

func TestClimbEndsNearCeiling(t *testing.T) {
	params := DefaultParams()
	params.ClimbSpeed = 400
	e := newTestEngine(t, params)
	rng := rand.New(rand.NewSource(3))
	p := groundPet(t, e, 10, false, "Walk", rng)

	for i := 0; i < 30*10 && p.Motion.State != Falling; i++ {
		e.Step(p, tick(), rng)
	}
	if p.Motion.State != Falling {
		t.Fatalf("state = %s, expected Falling", p.Motion.State)
	}
	top := params.Bounds.Ceiling + params.CeilingThreshold
	if p.Position.Y < top-1 {
		t.Errorf("Position.Y = %v, climbed above %v", p.Position.Y, top)
	}
	if p.Stats.Climbs != 1 {
		t.Errorf("Stats.Climbs = %d, expected 1", p.Stats.Climbs)
	}
}

// climbToEnd walks a pet into the left wall and steps it until the climb
// ends. It fails if energy ever rises while the pet is on the wall.
func climbToEnd(t *testing.T, e *Engine, rng *rand.Rand) (*Pet, StepResult) {
	t.Helper()
	p := groundPet(t, e, 10, false, "Walk", rng)
	last := p.Energy
	for i := 0; i < 30*20; i++ {
		climbing := p.Motion.State == ClimbWall
		res := e.Step(p, tick(), rng)
		if climbing && p.Energy > last {
			t.Fatalf("energy rose from %v to %v while climbing", last, p.Energy)
		}
		last = p.Energy
		if res.Event.Kind == EventClimbEnd {
			return p, res
		}
	}
	t.Fatalf("climb never ended: state=%s", p.Motion.State)
	return nil, StepResult{}
}

func TestClimbEnd(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(*Params)
		zeroEnergy bool
	}{
		{"fast climb reaches ceiling", func(p *Params) { p.ClimbSpeed = 3000 }, false},
		{"energy runs out", func(p *Params) { p.ClimbSpeed = 10; p.ClimbDrain = 200 }, true},
		{"time limit", func(p *Params) { p.ClimbSpeed = 10; p.MaxClimb = 2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			tt.edit(&params)
			e := newTestEngine(t, params)
			rng := rand.New(rand.NewSource(8))

			p, res := climbToEnd(t, e, rng)
			if p.Motion.State != Falling {
				t.Errorf("state = %s, expected Falling", p.Motion.State)
			}
			if res.Event.Side != WallLeft {
				t.Errorf("Event.Side = %s, expected left", res.Event.Side)
			}
			if p.Motion.Lock != 0 || p.Motion.Locked() {
				t.Errorf("Lock = %v, expected 0 after dropping off", p.Motion.Lock)
			}
			if p.Motion.ClimbTimer != 0 {
				t.Errorf("ClimbTimer = %v, expected reset", p.Motion.ClimbTimer)
			}
			if tt.zeroEnergy && p.Energy != 0 {
				t.Errorf("Energy = %v, expected 0", p.Energy)
			}
			if p.Energy < 0 {
				t.Errorf("Energy = %v, below 0", p.Energy)
			}
		})
	}
}

func TestCornerGrabKeepsLongerLock(t *testing.T) {
	tests := []struct {
		name       string
		cornerLock float64
		climbLock  float64
		expected   float64
	}{
		{"climb lock longer", 0.8, 2.0, 2.0},
		{"corner lock longer", 3.0, 2.0, 3.0},
		{"equal locks", 1.5, 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			params.CornerLock = tt.cornerLock
			params.ClimbLock = tt.climbLock
			e := newTestEngine(t, params)
			rng := rand.New(rand.NewSource(9))
			p := e.Spawn("pet", core.V(1899, 1), true, rng)
			p.Velocity = core.V(600, -600)

			res := e.Step(p, tick(), rng)
			if res.Event.Kind != EventWallGrab {
				t.Fatalf("Event = %s, expected wall_grab", res.Event.Kind)
			}
			if p.Motion.State != GrabWall {
				t.Fatalf("state = %s, expected GrabWall", p.Motion.State)
			}
			if p.Velocity.X != 0 {
				t.Errorf("Velocity.X = %v, expected 0 after a corner", p.Velocity.X)
			}
			if p.Motion.Lock != tt.expected {
				t.Errorf("Lock = %v, expected %v", p.Motion.Lock, tt.expected)
			}
		})
	}
}

func TestLowEnergyTurnsAtWall(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(4))
	p := groundPet(t, e, 4, false, "Walk", rng)
	p.Energy = 5

	e.Step(p, tick(), rng)
	res := e.Step(p, tick(), rng)
	if res.Event.Kind == EventWallGrab || p.Motion.State != Grounded {
		t.Fatalf("tired pet grabbed the wall: state=%s", p.Motion.State)
	}
	if p.Position.X != 0 {
		t.Errorf("Position.X = %v, expected 0", p.Position.X)
	}
	if !p.FacingRight {
		t.Error("pet should turn away from the left wall")
	}
	if !p.Motion.Locked() {
		t.Error("turning at a wall should start a direction lock")
	}
}

func TestDirectionLockFreezesFacing(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(5))
	p := groundPet(t, e, 500, false, "Idle", rng)

	p.Motion.extendLock(0.5)
	p.Motion.extendLock(0.2)
	if p.Motion.Lock != 0.5 {
		t.Errorf("Lock = %v, expected the longer 0.5", p.Motion.Lock)
	}

	for i := 0; i < 14; i++ {
		if p.requestFacing(true, e.params.FlipCooldown) {
			t.Fatalf("facing changed during lock at tick %d", i)
		}
		if p.FacingRight {
			t.Fatal("FacingRight changed during lock")
		}
		e.Step(p, tick(), rng)
	}
	for p.Motion.Locked() {
		e.Step(p, tick(), rng)
	}
	p.Motion.FlipCooldown = 0
	if !p.requestFacing(true, e.params.FlipCooldown) || !p.FacingRight {
		t.Error("facing change refused after lock expired")
	}
	if p.requestFacing(false, e.params.FlipCooldown) {
		t.Error("second flip accepted during cooldown")
	}
}

func TestDragClampsToWall(t *testing.T) {
	params := DefaultParams()
	params.Bounds.Left = 60
	e := newTestEngine(t, params)
	rng := rand.New(rand.NewSource(6))
	p := e.Spawn("pet", core.V(500, 500), true, rng)

	res := e.Step(p, TickInput{Drag: &DragCommand{Active: true, Target: core.V(50, 50)}}, rng)
	if res.Event.Kind != EventDragStart {
		t.Errorf("Event = %s, expected drag_start", res.Event.Kind)
	}
	if p.Position.X != 60 || p.Position.Y != 50 {
		t.Errorf("Position = %v, expected (60, 50)", p.Position)
	}
	if !p.Contact.OnWall || p.Contact.WallSide != WallLeft {
		t.Errorf("contact = %+v, expected on left wall", p.Contact)
	}
	if p.FacingRight {
		t.Error("FacingRight = true, expected facing the left wall")
	}
	if p.Motion.State != Dragged || p.Velocity != (core.Vec2{}) {
		t.Errorf("state = %s velocity = %v, expected Dragged at rest", p.Motion.State, p.Velocity)
	}
	if behaviorName(e, p) != "Pinched" {
		t.Errorf("behavior = %s, expected Pinched", behaviorName(e, p))
	}
	if p.Stats.TimesPetted != 1 {
		t.Errorf("Stats.TimesPetted = %d, expected 1", p.Stats.TimesPetted)
	}
}

func TestThrowVelocity(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(7))
	p := e.Spawn("pet", core.V(500, 500), false, rng)
	dt := 1.0 / 30

	e.Step(p, TickInput{DT: dt, Drag: &DragCommand{Active: true, Target: core.V(500, 500)}}, rng)
	e.Step(p, TickInput{DT: dt, Drag: &DragCommand{Active: true, Target: core.V(540, 500)}}, rng)
	if p.Drag.LastDelta.X != 40 {
		t.Fatalf("LastDelta.X = %v, expected 40", p.Drag.LastDelta.X)
	}

	res := e.Step(p, TickInput{DT: dt, Drag: &DragCommand{}}, rng)
	if res.Event.Kind != EventDragEnd {
		t.Errorf("Event = %s, expected drag_end", res.Event.Kind)
	}
	if p.Motion.State != Falling {
		t.Errorf("state = %s, expected Falling", p.Motion.State)
	}
	if math.Abs(p.Velocity.X-1200) > 1e-6 {
		t.Errorf("Velocity.X = %v, expected 1200", p.Velocity.X)
	}
	if behaviorName(e, p) != "Thrown" {
		t.Errorf("behavior = %s, expected Thrown", behaviorName(e, p))
	}
	if p.Stats.Throws != 1 {
		t.Errorf("Stats.Throws = %d, expected 1", p.Stats.Throws)
	}
}

func TestPinchImageFollowsPointer(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(8))
	p := e.Spawn("pet", core.V(500, 500), false, rng)

	e.Step(p, TickInput{Drag: &DragCommand{Active: true, Target: core.V(500, 500), GripX: 64}}, rng)
	if img := p.Image(e.graph); img != "shime5a.png" {
		t.Errorf("Image() centered = %q, expected shime5a.png", img)
	}
	e.Step(p, TickInput{Drag: &DragCommand{Active: true, Target: core.V(500, 500), GripX: 0}}, rng)
	if img := p.Image(e.graph); img != "shime9.png" {
		t.Errorf("Image() far left = %q, expected shime9.png", img)
	}
}

func TestEnergyRates(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(9))

	walker := groundPet(t, e, 500, false, "Walk", rng)
	walker.Energy = 50
	prev := walker.Energy
	for i := 0; i < 10; i++ {
		e.Step(walker, tick(), rng)
		if behaviorName(e, walker) != "Walk" {
			break
		}
		if walker.Energy >= prev {
			t.Fatalf("walking energy %v did not drop from %v", walker.Energy, prev)
		}
		prev = walker.Energy
	}

	sitter := groundPet(t, e, 500, false, "Sit", rng)
	sitter.Energy = 99.9
	for i := 0; i < 30; i++ {
		e.Step(sitter, tick(), rng)
		if sitter.Energy > 100 {
			t.Fatalf("Energy = %v exceeds 100", sitter.Energy)
		}
	}
	if sitter.Energy != 100 {
		t.Errorf("resting Energy = %v, expected clamped to 100", sitter.Energy)
	}
}

func TestKillStopsStep(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(10))
	p := e.Spawn("pet", core.V(500, 500), false, rng)
	y := p.Position.Y

	res := e.Step(p, TickInput{Kill: true}, rng)
	if !res.Killed || !p.Killed() {
		t.Error("kill not reported")
	}
	if p.Position.Y != y {
		t.Error("killed pet still moved")
	}
}

func TestTriggerOnlyOnGround(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	rng := rand.New(rand.NewSource(11))
	sit, _ := e.graph.BehaviorByName("Sit")

	air := e.Spawn("pet", core.V(500, 100), false, rng)
	e.Step(air, TickInput{Trigger: sit, Triggered: true}, rng)
	if air.Behavior == sit {
		t.Error("airborne pet accepted a trigger")
	}

	ground := groundPet(t, e, 500, false, "Idle", rng)
	res := e.Step(ground, TickInput{Trigger: sit, Triggered: true}, rng)
	if ground.Behavior != sit || !res.Selected {
		t.Errorf("behavior = %s, expected Sit", behaviorName(e, ground))
	}
	if ground.Stats.SpecialActions != 1 {
		t.Errorf("Stats.SpecialActions = %d, expected 1", ground.Stats.SpecialActions)
	}
}

func TestInvalidTransitionPanics(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(InvalidStateTransition); !ok {
			t.Errorf("recover() = %v, expected InvalidStateTransition", r)
		}
	}()
	m := Motion{State: Dragged}
	m.transition(GrabWall)
}
