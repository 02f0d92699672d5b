package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultPetsYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultPetsConfig() {
		t.Errorf("embedded defaults differ from DefaultPetsConfig():\n%+v\n%+v", cfg, DefaultPetsConfig())
	}
}

func TestEngineParamsValid(t *testing.T) {
	p := DefaultPetsConfig().EngineParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("EngineParams().Validate() = %v", err)
	}
	if p.Bounds.Right != 1900 || p.Bounds.Floor != 900 {
		t.Errorf("bounds = %+v, expected right 1900 floor 900", p.Bounds)
	}
	if p.GrabDelay != 1.0 || p.ClimbSpeed != 28 || p.MaxClimb != 10 {
		t.Errorf("climb params = %v/%v/%v, expected 1/28/10", p.GrabDelay, p.ClimbSpeed, p.MaxClimb)
	}
	if p.Events.WallGrab != "GrabWall" {
		t.Errorf("Events.WallGrab = %q, expected GrabWall", p.Events.WallGrab)
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.yaml")
	data := []byte("physics:\n  gravity: 500\nbehavior:\n  frequency: 80\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 500 {
		t.Errorf("Gravity = %v, expected 500", cfg.Physics.Gravity)
	}
	if cfg.Behavior.Frequency != 80 {
		t.Errorf("Frequency = %d, expected 80", cfg.Behavior.Frequency)
	}
	if cfg.Climb.Speed != 28 {
		t.Errorf("Climb.Speed = %v, expected default 28", cfg.Climb.Speed)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*PetsConfig)
		field string
	}{
		{"frequency too low", func(c *PetsConfig) { c.Behavior.Frequency = 5 }, "behavior.frequency"},
		{"frequency too high", func(c *PetsConfig) { c.Behavior.Frequency = 101 }, "behavior.frequency"},
		{"inverted walls", func(c *PetsConfig) { c.Bounds.Right = c.Bounds.Left }, "bounds.right"},
		{"bounce of one", func(c *PetsConfig) { c.Physics.Bounce = 1 }, "physics.bounce"},
		{"zero tick rate", func(c *PetsConfig) { c.Simulation.TickRate = 0 }, "simulation.tick_rate"},
		{"negative lock", func(c *PetsConfig) { c.Direction.CornerLock = -1 }, "direction.corner_lock"},
		{"climb without drain", func(c *PetsConfig) { c.Climb.EnergyDrain = 0 }, "climb.energy_drain"},
		{"rest without gain", func(c *PetsConfig) { c.Energy.RestGain = 0 }, "energy.rest_gain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPetsConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, expected %q", verr.Field, tt.field)
			}
		})
	}

	if err := DefaultPetsConfig().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.pets/pets.db"); got != filepath.Join(home, ".pets", "pets.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q, expected unchanged", got)
	}
}
