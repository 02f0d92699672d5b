package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/storage"
	"github.com/vovakirdan/tui-pets/internal/telemetry"
)

var (
	flagTicks      int
	flagPets       int
	flagTrace      string
	flagSimJournal bool
	flagSave       bool
	flagPokeEvery  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a world headless and print a summary",
	Long: `Run a pet world without a terminal view for a fixed number of ticks.

Pets are dropped from random heights. With --poke, a random pet is picked
up, carried and thrown every N ticks so drags and throws show up too.

Output:
  --trace FILE   one CSV row per pet per tick; .gz and .zst compress it
  --journal      record behavior changes in the database
  --save         store the final pets in the database

Examples:
  pets simulate --ticks 9000 --pets 4
  pets simulate --seed 42 --trace run.csv.zst
  pets simulate --poke 300 --journal --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3000, "Number of ticks to run")
	simulateCmd.Flags().IntVar(&flagPets, "pets", 3, "Number of pets to spawn")
	simulateCmd.Flags().StringVar(&flagTrace, "trace", "", "Write a per-tick CSV trace to this file")
	simulateCmd.Flags().BoolVar(&flagSimJournal, "journal", false, "Record behavior changes in the database")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Save the final pets in the database")
	simulateCmd.Flags().IntVar(&flagPokeEvery, "poke", 0, "Drag and throw a random pet every N ticks (0 = never)")
}

func runSimulate(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}
	e, err := s.newEngine()
	if err != nil {
		fail("%v", err)
	}
	if s.seed == 0 {
		s.seed = rand.Int63()
	}

	var store *storage.Store
	if flagSimJournal || flagSave {
		store, err = storage.Open(s.dbPath)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()
	}

	var trace *telemetry.TraceWriter
	if flagTrace != "" {
		trace, err = telemetry.CreateTrace(flagTrace)
		if err != nil {
			fail("%v", err)
		}
	}

	w := engine.NewWorld(e, engine.WorldConfig{Seed: s.seed, MaxPets: s.cfg.Simulation.MaxPets}, s.logger)
	rng := rand.New(rand.NewSource(s.seed))
	b := e.Params().Bounds
	for i := 0; i < flagPets; i++ {
		pos := core.V(b.Left+rng.Float64()*b.Width(), b.Ceiling+rng.Float64()*b.Height()/2)
		if _, err := w.Spawn(pos); err != nil {
			s.logger.Warn("spawn refused", "err", err)
			break
		}
	}

	collector := telemetry.NewCollector()
	poke := newPoker(rng, b)
	for i := 0; i < flagTicks; i++ {
		if flagPokeEvery > 0 {
			poke.step(w, i, flagPokeEvery)
		}
		rep := w.Tick(0)
		frames := w.Frames()
		collector.Observe(rep, frames)

		if err := trace.Write(telemetry.Rows(rep, frames)); err != nil {
			fail("%v", err)
		}
		if flagSimJournal {
			if err := store.AppendJournal(storage.Journal(s.pack, e.Graph(), rep)...); err != nil {
				fail("%v", err)
			}
		}
		for _, r := range rep.Removed {
			if store != nil {
				if err := store.RetirePet(s.pack, r); err != nil {
					s.logger.Warn("could not retire pet", "pet", r.ID, "err", err)
				}
			}
		}
	}

	if err := trace.Close(); err != nil {
		fail("%v", err)
	}
	if flagSave {
		for _, snap := range w.Snapshots() {
			if err := store.SavePet(s.pack, snap); err != nil {
				fail("%v", err)
			}
		}
	}

	fmt.Printf("pack %s  seed %d  pets %d\n\n", s.pack, s.seed, w.Len())
	collector.Summary().WriteText(os.Stdout)
	if flagTrace != "" {
		fmt.Printf("\ntrace written to %s\n", flagTrace)
	}
}

// poker scripts a drag: pick a pet, carry it for a second, throw it.
type poker struct {
	rng    *rand.Rand
	bounds core.Bounds
	id     string
	from   core.Vec2
	to     core.Vec2
	left   int
}

const pokeTicks = 30

func newPoker(rng *rand.Rand, b core.Bounds) *poker {
	return &poker{rng: rng, bounds: b}
}

func (p *poker) step(w *engine.World, tick, every int) {
	if p.id != "" {
		p.left--
		if p.left <= 0 {
			_ = w.Release(p.id)
			p.id = ""
			return
		}
		f := float64(pokeTicks-p.left) / pokeTicks
		target := p.from.Add(p.to.Sub(p.from).Scale(f))
		if err := w.Drag(p.id, target, 0); err != nil {
			p.id = ""
		}
		return
	}
	if tick == 0 || tick%every != 0 {
		return
	}
	ids := w.IDs()
	if len(ids) == 0 {
		return
	}
	p.id = ids[p.rng.Intn(len(ids))]
	pet, _ := w.Pet(p.id)
	p.from = pet.Position
	p.to = core.V(
		p.bounds.Left+p.rng.Float64()*p.bounds.Width(),
		p.bounds.Ceiling+p.rng.Float64()*p.bounds.Height()/2,
	)
	p.left = pokeTicks
	_ = w.Drag(p.id, p.from, 0)
}
