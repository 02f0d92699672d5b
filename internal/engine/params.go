// Package engine advances pets one fixed tick at a time: commands, physics
// (or a drag override), animation, then behavior selection. Everything here
// is synchronous and single-threaded; randomness comes from an explicit
// *rand.Rand so a seed reproduces a run exactly.
package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-pets/internal/core"
)

// EventNames maps system events to the behaviors they enter. An empty name,
// or one the pack does not declare, means "no dedicated behavior".
type EventNames struct {
	Fall     string
	Land     string
	WallGrab string
	Climb    string
	ClimbEnd string
	Drag     string
	Throw    string
}

// Params holds every tunable of the simulation. Times are in seconds,
// distances in pixels, speeds in pixels per second.
type Params struct {
	TickRate int
	Bounds   core.Bounds

	Gravity           float64
	AirResistance     float64 // fraction of velocity lost per second while falling
	TerminalVelocity  float64
	Bounce            float64 // restitution on floor and wall hits
	MinBounceVelocity float64
	ThrowMultiplier   float64
	DragEpsilon       float64

	GrabDelay        float64
	ClimbSpeed       float64
	MaxClimb         float64
	CeilingThreshold float64
	ClimbMinEnergy   float64
	ClimbDrain       float64

	FlipCooldown float64
	CornerLock   float64
	TurnLock     float64
	ClimbLock    float64

	InitialEnergy  float64
	EnergyDrift    float64
	RestGain       float64
	IdleGain       float64
	HappinessDecay float64
	GrabHappiness  float64

	BehaviorFrequency int // 10..100, higher means shorter autonomous intervals

	Events EventNames
}

// DefaultParams returns the stock tuning for a 1920×1080 desktop with a
// 128×128 sprite.
func DefaultParams() Params {
	return Params{
		TickRate: 30,
		Bounds:   core.Bounds{Left: 0, Right: 1900, Ceiling: 0, Floor: 900},

		Gravity:           980,
		AirResistance:     0,
		TerminalVelocity:  2000,
		Bounce:            0.3,
		MinBounceVelocity: 100,
		ThrowMultiplier:   1,
		DragEpsilon:       0.5,

		GrabDelay:        1.0,
		ClimbSpeed:       28,
		MaxClimb:         10,
		CeilingThreshold: 80,
		ClimbMinEnergy:   10,
		ClimbDrain:       5,

		FlipCooldown: 0.5,
		CornerLock:   0.8,
		TurnLock:     0.6,
		ClimbLock:    2.0,

		InitialEnergy:  100,
		EnergyDrift:    0.3,
		RestGain:       10,
		IdleGain:       0.5,
		HappinessDecay: 0.5,
		GrabHappiness:  10,

		BehaviorFrequency: 50,

		Events: EventNames{
			Fall:     "Fall",
			Land:     "Land",
			WallGrab: "GrabWall",
			Climb:    "ClimbWall",
			ClimbEnd: "Fall",
			Drag:     "Pinched",
			Throw:    "Thrown",
		},
	}
}

// Validate checks the parameters for values the engine cannot run with.
func (p Params) Validate() error {
	switch {
	case p.TickRate <= 0:
		return fmt.Errorf("engine: tick rate must be positive, got %d", p.TickRate)
	case p.Bounds.Right <= p.Bounds.Left:
		return fmt.Errorf("engine: right wall %.1f must be right of left wall %.1f", p.Bounds.Right, p.Bounds.Left)
	case p.Bounds.Floor <= p.Bounds.Ceiling:
		return fmt.Errorf("engine: floor %.1f must be below ceiling %.1f", p.Bounds.Floor, p.Bounds.Ceiling)
	case p.Gravity < 0, p.TerminalVelocity <= 0:
		return fmt.Errorf("engine: gravity and terminal velocity must be positive")
	case p.Bounce < 0 || p.Bounce >= 1:
		return fmt.Errorf("engine: bounce coefficient %.2f outside [0, 1)", p.Bounce)
	case p.GrabDelay < 0 || p.MaxClimb <= 0 || p.ClimbSpeed <= 0:
		return fmt.Errorf("engine: climb timings must be positive")
	case p.ClimbDrain <= 0:
		return fmt.Errorf("engine: climb drain %.2f must be positive", p.ClimbDrain)
	case p.RestGain <= 0:
		return fmt.Errorf("engine: rest gain %.2f must be positive", p.RestGain)
	case p.BehaviorFrequency < 10 || p.BehaviorFrequency > 100:
		return fmt.Errorf("engine: behavior frequency %d outside [10, 100]", p.BehaviorFrequency)
	}
	return nil
}

// DT returns the duration of one tick in seconds.
func (p Params) DT() float64 {
	return 1.0 / float64(p.TickRate)
}
