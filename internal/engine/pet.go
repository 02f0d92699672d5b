package engine

import (
	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

// Contact flags describe which boundaries a pet is touching.
type Contact struct {
	OnGround  bool
	OnWall    bool
	WallSide  WallSide
	OnCeiling bool
}

// DragState is the engine-side view of a drag interaction.
type DragState struct {
	Active    bool
	Target    core.Vec2 // last requested position
	LastDelta core.Vec2 // displacement applied on the last dragged tick
	PointerX  float64   // absolute pointer x, used to pick pinch images
}

// Stats are lifetime counters kept per pet.
type Stats struct {
	Interactions   int `json:"interactions"`
	TimesPetted    int `json:"times_petted"`
	WalksTaken     int `json:"walks_taken"`
	Climbs         int `json:"climbs"`
	Throws         int `json:"throws"`
	Bounces        int `json:"bounces"`
	SpecialActions int `json:"special_actions"`
	Behaviors      int `json:"behaviors"`
}

// Pet is the runtime state of one pet. It is owned by exactly one
// simulation slot and mutated only by Engine.Step.
type Pet struct {
	ID          string
	Position    core.Vec2
	Velocity    core.Vec2
	FacingRight bool
	Behavior    graph.BehaviorID
	Contact     Contact
	Energy      float64
	Happiness   float64
	StateTimer  float64 // seconds since the current behavior was entered
	Motion      Motion
	Drag        DragState
	Stats       Stats
	Tick        uint64

	anim   Player
	killed bool
}

// Action returns the active action.
func (p *Pet) Action() graph.ActionID {
	return p.anim.Action()
}

// Frame returns the active pose index and the ticks spent in it.
func (p *Pet) Frame() (index, elapsed int) {
	return p.anim.Frame(), p.anim.Elapsed()
}

// Anchor returns the anchor of the pose being shown.
func (p *Pet) Anchor() core.Vec2 {
	return p.anim.Anchor()
}

// Sound returns the sound started on the latest tick, if any.
func (p *Pet) Sound() string {
	return p.anim.StartedSound()
}

// Killed reports whether a kill command has been applied.
func (p *Pet) Killed() bool {
	return p.killed
}

// Env builds the snapshot conditions are evaluated against.
func (p *Pet) Env(flags graph.FlagSet) graph.EnvSnapshot {
	return graph.EnvSnapshot{
		OnGround:  p.Contact.OnGround,
		OnWall:    p.Contact.OnWall,
		OnCeiling: p.Contact.OnCeiling,
		Energy:    p.Energy,
		Flags:     flags,
	}
}

// Image returns the image to draw. While held, a configured pinch image
// picked from the pointer offset replaces the action's pose.
func (p *Pet) Image(g *graph.Graph) string {
	if p.Motion.State == Dragged {
		if pinch := g.Pinch(); !pinch.Empty() {
			w, _ := g.SpriteSize()
			if img := pinch.Image(p.Drag.PointerX - (p.Position.X + w/2)); img != "" {
				return img
			}
		}
	}
	return p.anim.Image()
}

// requestFacing asks for the given facing. It reports whether the pet now
// faces that way. A change is refused while a lock or the flip cooldown is
// running, or while the pet is pinned against a wall.
func (p *Pet) requestFacing(right bool, cooldown float64) bool {
	if p.FacingRight == right {
		return true
	}
	if p.Motion.Locked() || p.Motion.FlipCooldown > 0 || p.Contact.OnWall {
		return false
	}
	p.FacingRight = right
	p.Motion.FlipCooldown = cooldown
	return true
}

// forceFacing sets facing for a boundary constraint, ignoring the cooldown.
func (p *Pet) forceFacing(right bool) {
	p.FacingRight = right
}

// setWall marks the pet as touching side and turns it toward that wall.
func (p *Pet) setWall(side WallSide) {
	p.Contact.OnWall = side != WallNone
	p.Contact.WallSide = side
	if side != WallNone {
		p.forceFacing(side == WallRight)
	}
}
