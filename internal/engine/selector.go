package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-pets/internal/graph"
)

type candidate struct {
	id     graph.BehaviorID
	weight int
}

// Selector picks the next behavior by cumulative-weight sampling. It keeps a
// scratch buffer, so one Selector must not be shared between goroutines.
type Selector struct {
	graph *graph.Graph
	buf   []candidate
}

// NewSelector creates a selector over g.
func NewSelector(g *graph.Graph) *Selector {
	return &Selector{
		graph: g,
		buf:   make([]candidate, 0, g.NumBehaviors()),
	}
}

// Eligible returns the non-hidden behaviors whose conditions hold in env,
// in declaration order.
func (s *Selector) Eligible(env graph.EnvSnapshot) []graph.BehaviorID {
	var out []graph.BehaviorID
	for i := range s.graph.Behaviors() {
		b := s.graph.Behavior(graph.BehaviorID(i))
		if !b.Hidden && b.Eligible(env) {
			out = append(out, b.ID)
		}
	}
	return out
}

// Select chooses what follows completed (which may be graph.NoBehavior).
// Chaining edges of completed are preferred when any eligible target has
// weight; otherwise every eligible behavior competes by frequency. When
// nothing can be drawn the neutral behavior is returned together with an
// *EmptyEligibleSetError.
func (s *Selector) Select(completed graph.BehaviorID, env graph.EnvSnapshot, rng *rand.Rand) (graph.BehaviorID, error) {
	if completed != graph.NoBehavior {
		if next := s.graph.Behavior(completed).Next; len(next) > 0 {
			s.buf = s.buf[:0]
			total := 0
			for _, n := range next {
				b := s.graph.Behavior(n.Behavior)
				if b.Hidden || n.Weight <= 0 || !b.Eligible(env) {
					continue
				}
				s.buf = append(s.buf, candidate{id: n.Behavior, weight: n.Weight})
				total += n.Weight
			}
			if total > 0 {
				return s.draw(total, rng), nil
			}
		}
	}

	s.buf = s.buf[:0]
	total := 0
	for i := range s.graph.Behaviors() {
		b := s.graph.Behavior(graph.BehaviorID(i))
		if b.Hidden || b.Frequency <= 0 || !b.Eligible(env) {
			continue
		}
		s.buf = append(s.buf, candidate{id: b.ID, weight: b.Frequency})
		total += b.Frequency
	}
	if total == 0 {
		after := ""
		if completed != graph.NoBehavior {
			after = s.graph.Behavior(completed).Name
		}
		return s.graph.Neutral(), &EmptyEligibleSetError{After: after}
	}
	return s.draw(total, rng), nil
}

// draw walks the candidates in order and returns the first whose running
// weight exceeds a uniform draw in [0, total).
func (s *Selector) draw(total int, rng *rand.Rand) graph.BehaviorID {
	d := rng.Intn(total)
	acc := 0
	for _, c := range s.buf {
		acc += c.weight
		if acc > d {
			return c.id
		}
	}
	return s.buf[len(s.buf)-1].id
}
