package engine

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

// WorldConfig configures a World.
type WorldConfig struct {
	Seed    int64
	MaxPets int              // 0 means unlimited
	Now     func() time.Time // clock used for pet IDs; defaults to time.Now
}

// Removal notifies that a pet left the world at the end of a tick.
type Removal struct {
	ID    string
	Tick  uint64
	Stats Stats
}

// PetStep pairs a pet with the result of its step.
type PetStep struct {
	ID     string
	Result StepResult
}

// Report is everything one World.Tick produced.
type Report struct {
	Tick    uint64
	Steps   []PetStep
	Removed []Removal
}

// Frame is the pull-side view of a pet after a tick.
type Frame struct {
	ID          string
	Image       string
	Anchor      core.Vec2
	FacingRight bool
	Sound       string
	Behavior    string
	Action      string
	Motion      MotionState
	Position    core.Vec2
	Energy      float64
	Happiness   float64
	OnWall      bool
	WallSide    WallSide
	Stats       Stats
}

type slot struct {
	pet     *Pet
	rng     *rand.Rand
	drag    *DragCommand
	release bool
	kill    bool
	trigger graph.BehaviorID
	pending bool
	flags   graph.FlagSet
	sound   string
}

// World owns a set of pets and steps them all once per Tick, in spawn
// order. Commands are queued and applied on the next tick. A World is not
// safe for concurrent use.
type World struct {
	engine  *Engine
	cfg     WorldConfig
	logger  *log.Logger
	entropy *ulid.MonotonicEntropy
	slots   []*slot
	index   map[string]*slot
	spawned uint64
	tick    uint64
}

// NewWorld creates an empty world driven by e.
func NewWorld(e *Engine, cfg WorldConfig, logger *log.Logger) *World {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		engine:  e,
		cfg:     cfg,
		logger:  logger,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(cfg.Seed)), 0),
		index:   make(map[string]*slot),
	}
}

// Engine returns the engine driving the world.
func (w *World) Engine() *Engine {
	return w.engine
}

// Len returns the number of live pets.
func (w *World) Len() int {
	return len(w.slots)
}

// TickCount returns the number of ticks run so far.
func (w *World) TickCount() uint64 {
	return w.tick
}

// IDs returns the live pet IDs in spawn order.
func (w *World) IDs() []string {
	ids := make([]string, len(w.slots))
	for i, s := range w.slots {
		ids[i] = s.pet.ID
	}
	return ids
}

// Pet returns the pet with the given ID. The pet must not be modified.
func (w *World) Pet(id string) (*Pet, bool) {
	s, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return s.pet, true
}

// nextRand derives the random source of the n-th pet from the world seed,
// so a pet's choices do not depend on how many other pets exist.
func (w *World) nextRand() *rand.Rand {
	w.spawned++
	seed := uint64(w.cfg.Seed) + w.spawned*0x9E3779B97F4A7C15
	return rand.New(rand.NewSource(int64(seed)))
}

func (w *World) newID() string {
	return ulid.MustNew(ulid.Timestamp(w.cfg.Now()), w.entropy).String()
}

func (w *World) add(p *Pet, rng *rand.Rand) {
	s := &slot{pet: p, rng: rng, trigger: graph.NoBehavior}
	w.slots = append(w.slots, s)
	w.index[p.ID] = s
}

// Spawn adds a new pet at pos and returns its ID.
func (w *World) Spawn(pos core.Vec2) (string, error) {
	if w.cfg.MaxPets > 0 && len(w.slots) >= w.cfg.MaxPets {
		return "", ErrWorldFull
	}
	rng := w.nextRand()
	p := w.engine.Spawn(w.newID(), pos, rng.Intn(2) == 1, rng)
	w.add(p, rng)
	w.logger.Debug("pet spawned", "pet", p.ID, "x", pos.X, "y", pos.Y)
	return p.ID, nil
}

// Restore adds pets from snapshots, keeping their IDs. Snapshots whose ID
// is already live are skipped.
func (w *World) Restore(snaps []Snapshot) error {
	for _, s := range snaps {
		if _, ok := w.index[s.ID]; ok {
			continue
		}
		if w.cfg.MaxPets > 0 && len(w.slots) >= w.cfg.MaxPets {
			return ErrWorldFull
		}
		rng := w.nextRand()
		p, err := w.engine.Restore(s, rng)
		if err != nil {
			return err
		}
		w.add(p, rng)
	}
	return nil
}

// Snapshots captures every live pet in spawn order.
func (w *World) Snapshots() []Snapshot {
	out := make([]Snapshot, len(w.slots))
	for i, s := range w.slots {
		out[i] = w.engine.Snapshot(s.pet)
	}
	return out
}

func (w *World) lookup(id string) (*slot, error) {
	s, ok := w.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPet, id)
	}
	return s, nil
}

// Drag grabs (or keeps holding) a pet and moves it toward target. gripX is
// the pointer's horizontal offset from target.
func (w *World) Drag(id string, target core.Vec2, gripX float64) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	s.drag = &DragCommand{Active: true, Target: target, GripX: gripX}
	s.release = false
	return nil
}

// Release lets go of a dragged pet, throwing it with the last drag motion.
func (w *World) Release(id string) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	s.drag = nil
	s.release = true
	return nil
}

// Kill removes the pet at the end of the next tick.
func (w *World) Kill(id string) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	s.kill = true
	return nil
}

// Trigger asks the pet to perform the named behavior on the next tick.
func (w *World) Trigger(id, behavior string) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	b, ok := w.engine.graph.BehaviorByName(behavior)
	if !ok || w.engine.graph.Behavior(b).Hidden {
		return fmt.Errorf("engine: behavior %q cannot be triggered", behavior)
	}
	s.trigger = b
	s.pending = true
	return nil
}

// SetFlags replaces the flags a pet's conditions see. Unknown names are
// ignored.
func (w *World) SetFlags(id string, names ...string) error {
	s, err := w.lookup(id)
	if err != nil {
		return err
	}
	s.flags = w.engine.graph.Flags(names...)
	return nil
}

// Tick steps every pet once with dt seconds (<= 0 for one configured
// tick) and removes killed pets afterwards.
func (w *World) Tick(dt float64) Report {
	w.tick++
	rep := Report{Tick: w.tick, Steps: make([]PetStep, 0, len(w.slots))}

	for _, s := range w.slots {
		in := TickInput{
			DT:        dt,
			Kill:      s.kill,
			Flags:     s.flags,
			Trigger:   s.trigger,
			Triggered: s.pending,
		}
		switch {
		case s.drag != nil:
			cmd := *s.drag
			in.Drag = &cmd
		case s.release:
			in.Drag = &DragCommand{}
			s.release = false
		}
		s.pending = false

		res := w.engine.Step(s.pet, in, s.rng)
		s.sound = res.Sound
		rep.Steps = append(rep.Steps, PetStep{ID: s.pet.ID, Result: res})
	}

	kept := w.slots[:0]
	for _, s := range w.slots {
		if s.pet.Killed() {
			delete(w.index, s.pet.ID)
			rep.Removed = append(rep.Removed, Removal{ID: s.pet.ID, Tick: w.tick, Stats: s.pet.Stats})
			w.logger.Debug("pet removed", "pet", s.pet.ID, "tick", w.tick)
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(w.slots); i++ {
		w.slots[i] = nil
	}
	w.slots = kept
	return rep
}

// Frames returns the drawable state of every live pet in spawn order.
func (w *World) Frames() []Frame {
	g := w.engine.graph
	out := make([]Frame, len(w.slots))
	for i, s := range w.slots {
		p := s.pet
		out[i] = Frame{
			ID:          p.ID,
			Image:       p.Image(g),
			Anchor:      p.Anchor(),
			FacingRight: p.FacingRight,
			Sound:       s.sound,
			Behavior:    w.engine.behaviorName(p.Behavior),
			Action:      g.Action(p.Action()).Name,
			Motion:      p.Motion.State,
			Position:    p.Position,
			Energy:      p.Energy,
			Happiness:   p.Happiness,
			OnWall:      p.Contact.OnWall,
			WallSide:    p.Contact.WallSide,
			Stats:       p.Stats,
		}
	}
	return out
}
