package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pets/internal/graph"
)

func TestSelectStaysInEligibleSet(t *testing.T) {
	g := testGraph(t)
	s := NewSelector(g)
	rng := rand.New(rand.NewSource(7))

	ground := graph.EnvSnapshot{OnGround: true, Energy: 50}
	eligible := map[graph.BehaviorID]bool{}
	for _, id := range s.Eligible(ground) {
		eligible[id] = true
	}
	if len(eligible) != 3 {
		t.Fatalf("Eligible() = %d behaviors, expected 3 (Idle, Walk, Sit)", len(eligible))
	}

	seen := map[graph.BehaviorID]int{}
	for i := 0; i < 2000; i++ {
		id, err := s.Select(graph.NoBehavior, ground, rng)
		if err != nil {
			t.Fatalf("Select() error: %v", err)
		}
		if !eligible[id] {
			t.Fatalf("Select() = %s, not in eligible set", g.Behavior(id).Name)
		}
		if g.Behavior(id).Hidden {
			t.Fatalf("Select() = hidden behavior %s", g.Behavior(id).Name)
		}
		seen[id]++
	}
	for id := range eligible {
		if seen[id] == 0 {
			t.Errorf("behavior %s never selected", g.Behavior(id).Name)
		}
	}
}

func TestSelectWeightsRoughlyProportional(t *testing.T) {
	g := testGraph(t)
	s := NewSelector(g)
	rng := rand.New(rand.NewSource(99))
	env := graph.EnvSnapshot{OnGround: true}

	idle, _ := g.BehaviorByName("Idle")
	sit, _ := g.BehaviorByName("Sit")
	counts := map[graph.BehaviorID]int{}
	const n = 25000
	for i := 0; i < n; i++ {
		id, _ := s.Select(graph.NoBehavior, env, rng)
		counts[id]++
	}
	// Idle:Walk:Sit = 100:100:50
	ratio := float64(counts[idle]) / float64(counts[sit])
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("Idle/Sit ratio = %.2f, expected about 2", ratio)
	}
}

func TestSelectFollowsNextList(t *testing.T) {
	g := testGraph(t)
	s := NewSelector(g)
	rng := rand.New(rand.NewSource(1))

	land, _ := g.BehaviorByName("Land")
	idle, _ := g.BehaviorByName("Idle")
	for i := 0; i < 100; i++ {
		id, err := s.Select(land, graph.EnvSnapshot{OnGround: true}, rng)
		if err != nil {
			t.Fatalf("Select() error: %v", err)
		}
		if id != idle {
			t.Fatalf("Select(after Land) = %s, expected Idle", g.Behavior(id).Name)
		}
	}
}

func TestSelectNextFallsBackWhenTargetIneligible(t *testing.T) {
	g, err := graph.NewBuilder().
		AddAction(graph.ActionSpec{Name: "Stand", Kind: "stay", Poses: []graph.PoseFrame{pose("a.png", 0, 1)}}).
		AddBehavior(graph.BehaviorSpec{Name: "Idle", Action: "Stand", Frequency: 10}).
		AddBehavior(graph.BehaviorSpec{Name: "Hop", Action: "Stand", Frequency: 0,
			Next: []graph.NextSpec{{Behavior: "Perch", Weight: 5}, {Behavior: "Idle", Weight: 0}}}).
		AddBehavior(graph.BehaviorSpec{Name: "Perch", Action: "Stand", Frequency: 10,
			Conditions: []graph.ConditionSpec{{Kind: "on_wall"}}}).
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	s := NewSelector(g)
	rng := rand.New(rand.NewSource(3))
	hop, _ := g.BehaviorByName("Hop")
	idle, _ := g.BehaviorByName("Idle")

	for i := 0; i < 50; i++ {
		id, err := s.Select(hop, graph.EnvSnapshot{OnGround: true}, rng)
		if err != nil {
			t.Fatalf("Select() error: %v", err)
		}
		// Perch is ineligible and Idle's edge has zero weight, so frequency
		// weighting applies and Hop (frequency 0) can never be drawn.
		if id != idle {
			t.Fatalf("Select() = %s, expected Idle", g.Behavior(id).Name)
		}
	}
}

func TestSelectEmptyEligibleSet(t *testing.T) {
	g := testGraph(t)
	s := NewSelector(g)
	rng := rand.New(rand.NewSource(5))

	walk, _ := g.BehaviorByName("Walk")
	id, err := s.Select(walk, graph.EnvSnapshot{}, rng)
	if id != g.Neutral() {
		t.Errorf("Select() = %s, expected neutral", g.Behavior(id).Name)
	}
	var empty *EmptyEligibleSetError
	if !errors.As(err, &empty) {
		t.Fatalf("Select() error = %v, expected *EmptyEligibleSetError", err)
	}
	if empty.After != "Walk" {
		t.Errorf("After = %q, expected Walk", empty.After)
	}
}
