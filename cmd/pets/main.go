// pets runs desktop-pet style simulations in the terminal.
//
// Usage:
//
//	pets run                 - Watch and play with pets in the terminal
//	pets simulate            - Run a world headless and print a summary
//	pets list                - List available sprite packs
//	pets validate <file>     - Check a sprite pack file
//	pets serve               - Start SSH server, one world per session
//	pets history             - Browse saved pets and the behavior journal
//
// Global flags:
//
//	--config <path>     - Simulation config YAML (default: search ~/.pets/configs, ./configs)
//	--pack <id>         - Sprite pack to run (default from config)
//	--packs-dir <dir>   - Extra directory of sprite pack files
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Database path (default from config: ~/.pets/pets.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pets/internal/config"
	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/spritepack"
)

var (
	// Global flags
	flagConfig   string
	flagPack     string
	flagPacksDir string
	flagSeed     int64
	flagDBPath   string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pets",
	Short: "TUI Pets - little creatures that live in your terminal",
	Long: `TUI Pets simulates desktop pets: they walk, sit, fall, bounce,
grab walls and climb them, and can be picked up and thrown with the mouse.

Available commands:
  run       - Watch and play with pets
  simulate  - Run a world headless, optionally writing a CSV trace
  list      - Show available sprite packs
  validate  - Check a sprite pack file
  serve     - Start SSH server for remote viewers
  history   - Browse saved pets and the behavior journal

Examples:
  pets run
  pets run --pack shimeji --seed 42
  pets simulate --ticks 9000 --pets 4 --trace run.csv.zst
  pets validate ./packs/mine.yaml
  pets serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", "", "Sprite pack ID (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagPacksDir, "packs-dir", "", "Directory of extra sprite packs")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to pets database (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup is what every command derives from the flags and the config file.
type setup struct {
	cfg    config.PetsConfig
	pack   string
	seed   int64
	dbPath string
	logger *log.Logger
}

// loadSetup loads the config and applies flag overrides.
func loadSetup() (setup, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return setup{}, err
	}

	s := setup{
		cfg:    cfg,
		pack:   cfg.Simulation.Pack,
		seed:   cfg.Simulation.Seed,
		dbPath: cfg.Storage.DBPath,
		logger: newLogger(),
	}
	if flagPack != "" {
		s.pack = flagPack
	}
	if flagPacksDir != "" {
		s.cfg.Simulation.PacksDir = flagPacksDir
	}
	if flagSeed != 0 {
		s.seed = flagSeed
	}
	if flagDBPath != "" {
		s.dbPath = flagDBPath
	}
	return s, nil
}

// newEngine builds a fresh engine for the selected pack.
func (s setup) newEngine() (*engine.Engine, error) {
	g, err := spritepack.Resolve(s.pack, config.ExpandHome(s.cfg.Simulation.PacksDir))
	if err != nil {
		return nil, fmt.Errorf("loading pack %q: %w", s.pack, err)
	}
	return engine.New(g, s.cfg.EngineParams(), s.logger)
}

// logToFile redirects logging to ~/.pets/pets.log so it does not draw
// over a full-screen view. It returns a func that closes the file.
func (s *setup) logToFile() func() {
	path := config.ExpandHome("~/.pets/pets.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() {}
	}
	s.logger = newLoggerTo(f)
	return func() { f.Close() }
}

func newLogger() *log.Logger {
	return newLoggerTo(os.Stderr)
}

func newLoggerTo(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pets",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
