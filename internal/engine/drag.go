package engine

import (
	"math"

	"github.com/vovakirdan/tui-pets/internal/core"
)

// DragCommand is the pointer state for one tick. Target is where the pet's
// position should be; GripX is the pointer's offset from that position and
// only feeds pinch image selection.
type DragCommand struct {
	Active bool
	Target core.Vec2
	GripX  float64
}

// applyDrag runs the drag override. A nil command leaves the pet alone.
func (e *Engine) applyDrag(p *Pet, cmd *DragCommand, dt float64) Event {
	if cmd == nil {
		return Event{}
	}
	pr := e.params

	if !cmd.Active {
		if p.Motion.State != Dragged {
			return Event{}
		}
		p.Motion.transition(Falling)
		p.Velocity = p.Drag.LastDelta.Scale(pr.ThrowMultiplier / dt)
		p.Velocity.Y = core.ClampF(p.Velocity.Y, -pr.TerminalVelocity, pr.TerminalVelocity)
		p.Drag = DragState{}
		p.Contact = Contact{}
		p.Stats.Throws++
		return Event{Kind: EventDragEnd}
	}

	ev := Event{}
	start := p.Motion.State != Dragged
	if start {
		p.Motion.transition(Dragged)
		p.Contact = Contact{}
		p.Stats.TimesPetted++
		p.Stats.Interactions++
		p.Happiness = math.Min(maxStat, p.Happiness+pr.GrabHappiness)
		ev = Event{Kind: EventDragStart}
	}
	p.Velocity = core.Vec2{}

	b := pr.Bounds
	prev := p.Position
	target := core.Vec2{
		X: core.ClampF(cmd.Target.X, b.Left, b.Right),
		Y: core.ClampF(cmd.Target.Y, b.Ceiling, b.Floor),
	}
	switch {
	case cmd.Target.X-target.X < -pr.DragEpsilon:
		p.setWall(WallLeft)
	case cmd.Target.X-target.X > pr.DragEpsilon:
		p.setWall(WallRight)
	default:
		p.setWall(WallNone)
	}
	p.Position = target
	p.Contact.OnGround = target.Y >= b.Floor
	p.Contact.OnCeiling = target.Y <= b.Ceiling

	if start {
		p.Drag.LastDelta = core.Vec2{}
	} else {
		p.Drag.LastDelta = p.Position.Sub(prev)
	}
	p.Drag.Active = true
	p.Drag.Target = cmd.Target
	p.Drag.PointerX = cmd.Target.X + cmd.GripX
	if ev.Kind == EventDragStart && p.Contact.OnWall {
		ev.Side = p.Contact.WallSide
	}
	return ev
}
