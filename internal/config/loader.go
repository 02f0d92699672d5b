package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError reports a configuration value outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Load loads the pets configuration. Keys missing from a file keep their
// default values.
// Search order: customPath -> ~/.pets/configs/pets.yaml -> ./configs/pets.yaml -> embedded default
func Load(customPath string) (PetsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PetsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return PetsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pets.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pets.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultPetsYAML)
	if err != nil {
		return DefaultPetsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (PetsConfig, error) {
	cfg := DefaultPetsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PetsConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PetsConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pets", "configs", filename)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks every value the simulation depends on.
func (c PetsConfig) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{c.Simulation.TickRate > 0 && c.Simulation.TickRate <= 240, "simulation.tick_rate", "must be in 1..240"},
		{c.Simulation.MaxPets >= 0, "simulation.max_pets", "must not be negative"},
		{c.Bounds.Right > c.Bounds.Left, "bounds.right", "must be greater than bounds.left"},
		{c.Bounds.Floor > c.Bounds.Ceiling, "bounds.floor", "must be greater than bounds.ceiling"},
		{c.Physics.Gravity >= 0, "physics.gravity", "must not be negative"},
		{c.Physics.AirResistance >= 0 && c.Physics.AirResistance < 1, "physics.air_resistance", "must be in [0, 1)"},
		{c.Physics.TerminalVelocity > 0, "physics.terminal_velocity", "must be positive"},
		{c.Physics.Bounce >= 0 && c.Physics.Bounce < 1, "physics.bounce", "must be in [0, 1)"},
		{c.Physics.MinBounceVelocity >= 0, "physics.min_bounce_velocity", "must not be negative"},
		{c.Physics.ThrowMultiplier >= 0, "physics.throw_multiplier", "must not be negative"},
		{c.Physics.DragEpsilon >= 0, "physics.drag_epsilon", "must not be negative"},
		{c.Climb.GrabDelay >= 0, "climb.grab_delay", "must not be negative"},
		{c.Climb.Speed > 0, "climb.speed", "must be positive"},
		{c.Climb.MaxDuration > 0, "climb.max_duration", "must be positive"},
		{c.Climb.CeilingThreshold >= 0, "climb.ceiling_threshold", "must not be negative"},
		{c.Climb.MinEnergy >= 0 && c.Climb.MinEnergy <= 100, "climb.min_energy", "must be in 0..100"},
		{c.Climb.EnergyDrain > 0, "climb.energy_drain", "must be positive"},
		{c.Direction.FlipCooldown >= 0, "direction.flip_cooldown", "must not be negative"},
		{c.Direction.CornerLock >= 0, "direction.corner_lock", "must not be negative"},
		{c.Direction.TurnLock >= 0, "direction.turn_lock", "must not be negative"},
		{c.Direction.ClimbLock >= 0, "direction.climb_lock", "must not be negative"},
		{c.Energy.Initial >= 0 && c.Energy.Initial <= 100, "energy.initial", "must be in 0..100"},
		{c.Energy.Drift >= 0, "energy.drift", "must not be negative"},
		{c.Energy.RestGain > 0, "energy.rest_gain", "must be positive"},
		{c.Energy.IdleGain >= 0, "energy.idle_gain", "must not be negative"},
		{c.Behavior.Frequency >= 10 && c.Behavior.Frequency <= 100, "behavior.frequency", "must be in 10..100"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return &ValidationError{Field: ch.field, Message: ch.message}
		}
	}
	return nil
}
