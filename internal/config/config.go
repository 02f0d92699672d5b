// Package config provides YAML-based configuration loading for the pets
// simulation: tick rate, desktop bounds, physics and climb tuning, energy
// rates and the behaviors system events map to.
package config

// PetsConfig contains all configuration for a pets world.
type PetsConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Bounds     BoundsConfig     `yaml:"bounds"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Climb      ClimbConfig      `yaml:"climb"`
	Direction  DirectionConfig  `yaml:"direction"`
	Energy     EnergyConfig     `yaml:"energy"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Events     EventsConfig     `yaml:"events"`
	Storage    StorageConfig    `yaml:"storage"`
}

// SimulationConfig controls the tick loop and the world.
type SimulationConfig struct {
	TickRate int    `yaml:"tick_rate"`
	Seed     int64  `yaml:"seed"` // 0 = seed from the clock
	MaxPets  int    `yaml:"max_pets"`
	Pack     string `yaml:"pack"`
	PacksDir string `yaml:"packs_dir"`
}

// BoundsConfig is the rectangle pet positions are confined to.
type BoundsConfig struct {
	Left    float64 `yaml:"left"`
	Right   float64 `yaml:"right"`
	Ceiling float64 `yaml:"ceiling"`
	Floor   float64 `yaml:"floor"`
}

// PhysicsConfig defines falling, bouncing and throwing.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	AirResistance     float64 `yaml:"air_resistance"`
	TerminalVelocity  float64 `yaml:"terminal_velocity"`
	Bounce            float64 `yaml:"bounce"`
	MinBounceVelocity float64 `yaml:"min_bounce_velocity"`
	ThrowMultiplier   float64 `yaml:"throw_multiplier"`
	DragEpsilon       float64 `yaml:"drag_epsilon"`
}

// ClimbConfig defines wall grabbing and climbing.
type ClimbConfig struct {
	GrabDelay        float64 `yaml:"grab_delay"`
	Speed            float64 `yaml:"speed"`
	MaxDuration      float64 `yaml:"max_duration"`
	CeilingThreshold float64 `yaml:"ceiling_threshold"`
	MinEnergy        float64 `yaml:"min_energy"`
	EnergyDrain      float64 `yaml:"energy_drain"`
}

// DirectionConfig holds the facing cooldown and lock durations, in seconds.
type DirectionConfig struct {
	FlipCooldown float64 `yaml:"flip_cooldown"`
	CornerLock   float64 `yaml:"corner_lock"`
	TurnLock     float64 `yaml:"turn_lock"`
	ClimbLock    float64 `yaml:"climb_lock"`
}

// EnergyConfig defines energy and happiness rates (per second).
type EnergyConfig struct {
	Initial        float64 `yaml:"initial"`
	Drift          float64 `yaml:"drift"`
	RestGain       float64 `yaml:"rest_gain"`
	IdleGain       float64 `yaml:"idle_gain"`
	HappinessDecay float64 `yaml:"happiness_decay"`
	GrabHappiness  float64 `yaml:"grab_happiness"`
}

// BehaviorConfig tunes autonomous behavior selection.
type BehaviorConfig struct {
	Frequency int `yaml:"frequency"` // 10..100
}

// EventsConfig names the behavior each system event enters.
type EventsConfig struct {
	Fall     string `yaml:"fall"`
	Land     string `yaml:"land"`
	WallGrab string `yaml:"wall_grab"`
	Climb    string `yaml:"climb"`
	ClimbEnd string `yaml:"climb_end"`
	Drag     string `yaml:"drag"`
	Throw    string `yaml:"throw"`
}

// StorageConfig locates the sqlite database.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	Journal bool   `yaml:"journal"` // record behavior changes
}
