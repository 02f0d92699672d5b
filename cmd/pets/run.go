package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/platform/tui"
	"github.com/vovakirdan/tui-pets/internal/storage"
)

var (
	flagFresh     bool
	flagNoJournal bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch and play with pets",
	Long: `Open a terminal view of the desktop with pets living on it.

Controls:
  Mouse drag  - Pick up a pet; release to throw it
  N           - New pet
  X           - Dismiss the selected pet
  Tab         - Select next pet
  T           - Ask the selected pet for a special action
  S           - Save all pets
  P/Space     - Pause
  Q/Ctrl+C    - Quit

Saved pets of the pack are restored on start unless --fresh is given.

Examples:
  pets run
  pets run --pack shimeji --seed 7
  pets run --fresh --db ./pets.db`,
	Run: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Start with a new pet instead of restoring saved ones")
	runCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record behavior changes")
}

func runRun(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}
	closeLog := s.logToFile()
	defer closeLog()

	e, err := s.newEngine()
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(s.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open pets database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(e, tui.Options{
		Pack: s.pack,
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.cfg.Simulation.TickRate,
			Seed:     s.seed,
		},
		MaxPets: s.cfg.Simulation.MaxPets,
		Store:   store,
		Journal: s.cfg.Storage.Journal && !flagNoJournal,
		Restore: !flagFresh,
		Logger:  s.logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running viewer: %v", runErr)
	}
}
