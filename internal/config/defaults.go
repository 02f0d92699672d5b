package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
)

//go:embed defaults/pets.yaml
var defaultPetsYAML []byte

// DefaultPetsConfig returns the default configuration. It matches the
// embedded defaults/pets.yaml.
func DefaultPetsConfig() PetsConfig {
	p := engine.DefaultParams()
	return PetsConfig{
		Simulation: SimulationConfig{
			TickRate: p.TickRate,
			MaxPets:  16,
			Pack:     "shimeji",
			PacksDir: "~/.pets/packs",
		},
		Bounds: BoundsConfig{
			Left:    p.Bounds.Left,
			Right:   p.Bounds.Right,
			Ceiling: p.Bounds.Ceiling,
			Floor:   p.Bounds.Floor,
		},
		Physics: PhysicsConfig{
			Gravity:           p.Gravity,
			AirResistance:     p.AirResistance,
			TerminalVelocity:  p.TerminalVelocity,
			Bounce:            p.Bounce,
			MinBounceVelocity: p.MinBounceVelocity,
			ThrowMultiplier:   p.ThrowMultiplier,
			DragEpsilon:       p.DragEpsilon,
		},
		Climb: ClimbConfig{
			GrabDelay:        p.GrabDelay,
			Speed:            p.ClimbSpeed,
			MaxDuration:      p.MaxClimb,
			CeilingThreshold: p.CeilingThreshold,
			MinEnergy:        p.ClimbMinEnergy,
			EnergyDrain:      p.ClimbDrain,
		},
		Direction: DirectionConfig{
			FlipCooldown: p.FlipCooldown,
			CornerLock:   p.CornerLock,
			TurnLock:     p.TurnLock,
			ClimbLock:    p.ClimbLock,
		},
		Energy: EnergyConfig{
			Initial:        p.InitialEnergy,
			Drift:          p.EnergyDrift,
			RestGain:       p.RestGain,
			IdleGain:       p.IdleGain,
			HappinessDecay: p.HappinessDecay,
			GrabHappiness:  p.GrabHappiness,
		},
		Behavior: BehaviorConfig{Frequency: p.BehaviorFrequency},
		Events: EventsConfig{
			Fall:     p.Events.Fall,
			Land:     p.Events.Land,
			WallGrab: p.Events.WallGrab,
			Climb:    p.Events.Climb,
			ClimbEnd: p.Events.ClimbEnd,
			Drag:     p.Events.Drag,
			Throw:    p.Events.Throw,
		},
		Storage: StorageConfig{
			DBPath:  "~/.pets/pets.db",
			Journal: true,
		},
	}
}

// EngineParams converts the configuration into engine parameters.
func (c PetsConfig) EngineParams() engine.Params {
	return engine.Params{
		TickRate: c.Simulation.TickRate,
		Bounds: core.Bounds{
			Left:    c.Bounds.Left,
			Right:   c.Bounds.Right,
			Ceiling: c.Bounds.Ceiling,
			Floor:   c.Bounds.Floor,
		},

		Gravity:           c.Physics.Gravity,
		AirResistance:     c.Physics.AirResistance,
		TerminalVelocity:  c.Physics.TerminalVelocity,
		Bounce:            c.Physics.Bounce,
		MinBounceVelocity: c.Physics.MinBounceVelocity,
		ThrowMultiplier:   c.Physics.ThrowMultiplier,
		DragEpsilon:       c.Physics.DragEpsilon,

		GrabDelay:        c.Climb.GrabDelay,
		ClimbSpeed:       c.Climb.Speed,
		MaxClimb:         c.Climb.MaxDuration,
		CeilingThreshold: c.Climb.CeilingThreshold,
		ClimbMinEnergy:   c.Climb.MinEnergy,
		ClimbDrain:       c.Climb.EnergyDrain,

		FlipCooldown: c.Direction.FlipCooldown,
		CornerLock:   c.Direction.CornerLock,
		TurnLock:     c.Direction.TurnLock,
		ClimbLock:    c.Direction.ClimbLock,

		InitialEnergy:  c.Energy.Initial,
		EnergyDrift:    c.Energy.Drift,
		RestGain:       c.Energy.RestGain,
		IdleGain:       c.Energy.IdleGain,
		HappinessDecay: c.Energy.HappinessDecay,
		GrabHappiness:  c.Energy.GrabHappiness,

		BehaviorFrequency: c.Behavior.Frequency,

		Events: engine.EventNames{
			Fall:     c.Events.Fall,
			Land:     c.Events.Land,
			WallGrab: c.Events.WallGrab,
			Climb:    c.Events.Climb,
			ClimbEnd: c.Events.ClimbEnd,
			Drag:     c.Events.Drag,
			Throw:    c.Events.Throw,
		},
	}
}
