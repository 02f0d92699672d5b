package engine

import (
	"math"

	"github.com/vovakirdan/tui-pets/internal/core"
)

// posEpsilon is the slack allowed when comparing positions to bounds.
const posEpsilon = 1e-6

// physics advances p by one tick in its current motion state. Dragged pets
// are positioned by applyDrag and are left alone here.
func (e *Engine) physics(p *Pet, dt float64) Event {
	switch p.Motion.State {
	case Grounded:
		return e.walk(p, dt)
	case Falling:
		return e.fall(p, dt)
	case GrabWall:
		return e.grab(p, dt)
	case ClimbWall:
		return e.climb(p, dt)
	}
	return Event{}
}

// walk moves a grounded pet by its pose velocity. Reaching a wall while
// moving into it is a wall hit; leaving the floor starts a fall.
func (e *Engine) walk(p *Pet, dt float64) Event {
	b := e.params.Bounds
	v := p.anim.Velocity(p.FacingRight).Scale(float64(e.params.TickRate))
	move := v.Scale(dt)
	p.Velocity = core.Vec2{}
	p.Position = p.Position.Add(move)

	switch {
	case p.Position.X <= b.Left && move.X < 0:
		p.Position.X = b.Left
		return e.hitWall(p, WallLeft)
	case p.Position.X >= b.Right && move.X > 0:
		p.Position.X = b.Right
		return e.hitWall(p, WallRight)
	}
	p.Position.X = core.ClampF(p.Position.X, b.Left, b.Right)

	if p.Position.Y < b.Floor-posEpsilon {
		p.Position.Y = math.Max(p.Position.Y, b.Ceiling)
		p.Motion.transition(Falling)
		p.Contact.OnGround = false
		p.Velocity = v
		return Event{Kind: EventFall}
	}
	p.Position.Y = b.Floor
	p.Contact.OnGround = true
	return Event{}
}

// fall integrates gravity and resolves contacts. A wall and the floor (or
// ceiling) touched on the same tick is a corner: horizontal speed is
// dropped and a corner lock keeps the pet from flipping back and forth.
func (e *Engine) fall(p *Pet, dt float64) Event {
	pr := e.params
	b := pr.Bounds

	p.Velocity.Y += pr.Gravity * dt
	if pr.AirResistance > 0 {
		p.Velocity = p.Velocity.Scale(math.Max(0, 1-pr.AirResistance*dt))
	}
	p.Velocity.Y = core.ClampF(p.Velocity.Y, -pr.TerminalVelocity, pr.TerminalVelocity)

	anim := p.anim.Velocity(p.FacingRight).Scale(float64(pr.TickRate))
	move := p.Velocity.Add(anim).Scale(dt)
	p.Position = p.Position.Add(move)

	side := WallNone
	switch {
	case p.Position.X < b.Left || (p.Position.X <= b.Left && move.X < 0):
		side = WallLeft
		p.Position.X = b.Left
	case p.Position.X > b.Right || (p.Position.X >= b.Right && move.X > 0):
		side = WallRight
		p.Position.X = b.Right
	}

	floor := p.Position.Y > b.Floor || (p.Position.Y >= b.Floor && move.Y > 0)
	ceiling := p.Position.Y < b.Ceiling || (p.Position.Y <= b.Ceiling && move.Y < 0)
	if floor {
		p.Position.Y = b.Floor
	}
	p.Contact.OnCeiling = ceiling
	if ceiling {
		p.Position.Y = b.Ceiling
		if p.Velocity.Y < 0 {
			p.Velocity.Y = 0
		}
	}

	if side != WallNone && (floor || ceiling) {
		p.Motion.extendLock(pr.CornerLock)
		p.Velocity.X = 0
		if floor {
			return e.land(p)
		}
		return e.hitWall(p, side)
	}
	if side != WallNone {
		return e.hitWall(p, side)
	}
	if floor {
		if pr.Bounce > 0 && p.Velocity.Y > pr.MinBounceVelocity {
			p.Velocity.Y = -p.Velocity.Y * pr.Bounce
			p.Velocity.X *= pr.Bounce
			p.Stats.Bounces++
			return Event{}
		}
		return e.land(p)
	}
	return Event{}
}

func (e *Engine) land(p *Pet) Event {
	p.Motion.transition(Grounded)
	p.Velocity = core.Vec2{}
	p.Position.Y = e.params.Bounds.Floor
	p.Contact = Contact{OnGround: true}
	return Event{Kind: EventLand}
}

// hitWall either grabs the wall (when a climb is possible) or turns the pet
// around. The turn honors locks and the flip cooldown.
func (e *Engine) hitWall(p *Pet, side WallSide) Event {
	pr := e.params
	if e.canClimb(p) {
		p.setWall(side)
		p.Contact.OnGround = false
		p.Motion.transition(GrabWall)
		p.Motion.extendLock(pr.ClimbLock)
		p.Velocity = core.Vec2{}
		return Event{Kind: EventWallGrab, Side: side}
	}

	away := side == WallLeft
	before := p.FacingRight
	if p.requestFacing(away, pr.FlipCooldown) && before != p.FacingRight {
		p.Motion.extendLock(pr.TurnLock)
	}
	if p.Motion.State == Falling {
		p.Velocity.X = -p.Velocity.X * pr.Bounce
		if math.Abs(p.Velocity.X) < pr.DragEpsilon {
			p.Velocity.X = 0
		}
	}
	return Event{}
}

func (e *Engine) canClimb(p *Pet) bool {
	return e.targets[EventWallGrab] >= 0 && p.Energy >= e.params.ClimbMinEnergy
}

// grab holds the pet on the wall until the grab delay has passed.
func (e *Engine) grab(p *Pet, dt float64) Event {
	p.Velocity = core.Vec2{}
	p.Motion.GrabTimer += dt
	if p.Motion.GrabTimer >= e.params.GrabDelay-timeEpsilon {
		p.Motion.transition(ClimbWall)
		p.Stats.Climbs++
		return Event{Kind: EventClimb, Side: p.Contact.WallSide}
	}
	return Event{}
}

// climb moves the pet up the wall. The climb ends at the time limit, when
// energy runs out or near the ceiling, and the pet drops off.
func (e *Engine) climb(p *Pet, dt float64) Event {
	pr := e.params
	p.Velocity = core.Vec2{Y: -pr.ClimbSpeed}
	p.Position.Y += p.Velocity.Y * dt
	p.Motion.ClimbTimer += dt

	top := pr.Bounds.Ceiling + pr.CeilingThreshold
	reached := p.Position.Y <= top
	if reached {
		p.Position.Y = math.Min(top, pr.Bounds.Floor)
	}
	if !reached && p.Motion.ClimbTimer < pr.MaxClimb-timeEpsilon && p.Energy > 0 {
		return Event{}
	}

	side := p.Contact.WallSide
	p.Motion.transition(Falling)
	p.Velocity = core.Vec2{}
	p.Contact = Contact{}
	return Event{Kind: EventClimbEnd, Side: side}
}
