package engine

import (
	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

// Player runs the poses of one resolved action, one tick per call to
// Advance. It never blocks and never allocates after Start.
type Player struct {
	res     graph.Resolved
	frame   int
	elapsed int // ticks spent in the current pose
	played  int // ticks since Start
	limit   int // ticks before a looping action completes; 0 = never
	done    bool
	sound   string
}

// Start begins res from its first visible pose. limit bounds looping
// actions; it is ignored for actions that end on their own.
func (p *Player) Start(res graph.Resolved, limit int) {
	*p = Player{res: res, limit: limit}
	if !res.Loop {
		p.limit = 0
	}
	p.sound = res.Sound
	p.settle()
	if !p.done {
		if s := p.res.Poses[p.frame].Sound; s != "" {
			p.sound = s
		}
	}
}

// Restart plays the current action again from the top.
func (p *Player) Restart() {
	p.Start(p.res, p.limit)
}

// Advance moves one tick forward and reports whether the action has
// completed. A completed action holds its last visible pose.
func (p *Player) Advance() bool {
	p.sound = ""
	if p.done {
		return true
	}
	p.played++
	p.elapsed++
	if p.elapsed >= p.res.Poses[p.frame].Duration {
		p.elapsed = 0
		p.frame++
		p.settle()
		if !p.done {
			if s := p.res.Poses[p.frame].Sound; s != "" {
				p.sound = s
			}
		}
	}
	if !p.done && p.limit > 0 && p.played >= p.limit {
		p.done = true
	}
	return p.done
}

// settle skips zero-duration poses from the current frame on, wrapping a
// looping action once. Running off the end of a non-looping action, or
// finding nothing visible at all, completes it.
func (p *Player) settle() {
	n := len(p.res.Poses)
	wrapped := false
	for {
		for p.frame < n && p.res.Poses[p.frame].Duration == 0 {
			p.frame++
		}
		if p.frame < n {
			return
		}
		if !p.res.Loop || wrapped {
			p.done = true
			p.frame = p.lastVisible()
			return
		}
		p.frame = 0
		wrapped = true
	}
}

func (p *Player) lastVisible() int {
	for i := len(p.res.Poses) - 1; i >= 0; i-- {
		if p.res.Poses[i].Duration > 0 {
			return i
		}
	}
	return 0
}

// restore places the player at a saved position inside the current action.
func (p *Player) restore(frame, elapsed int) {
	if frame < 0 || frame >= len(p.res.Poses) || p.res.Poses[frame].Duration == 0 {
		return
	}
	p.frame = frame
	if elapsed >= 0 && elapsed < p.res.Poses[frame].Duration {
		p.elapsed = elapsed
	}
}

func (p *Player) pose() (graph.PoseFrame, bool) {
	if len(p.res.Poses) == 0 {
		return graph.PoseFrame{}, false
	}
	return p.res.Poses[p.frame], true
}

// Action returns the action being played.
func (p *Player) Action() graph.ActionID {
	return p.res.Action
}

// Kind returns the kind of the action being played.
func (p *Player) Kind() graph.ActionKind {
	return p.res.Kind
}

// Frame returns the index of the visible pose.
func (p *Player) Frame() int {
	return p.frame
}

// Elapsed returns the ticks spent in the visible pose.
func (p *Player) Elapsed() int {
	return p.elapsed
}

// Done reports whether the action has completed.
func (p *Player) Done() bool {
	return p.done
}

// Image returns the visible pose's image reference.
func (p *Player) Image() string {
	pose, _ := p.pose()
	return pose.Image
}

// Anchor returns the visible pose's anchor.
func (p *Player) Anchor() core.Vec2 {
	pose, _ := p.pose()
	return pose.Anchor
}

// Border returns the visible pose's border tag.
func (p *Player) Border() graph.BorderTag {
	pose, _ := p.pose()
	return pose.Border
}

// StartedSound returns the sound that started on the latest Start or
// Advance, or "".
func (p *Player) StartedSound() string {
	return p.sound
}

// Velocity returns the visible pose's velocity in px per tick, mirrored for
// a pet facing right. Poses are authored moving left.
func (p *Player) Velocity(facingRight bool) core.Vec2 {
	pose, ok := p.pose()
	if !ok {
		return core.Vec2{}
	}
	v := pose.Velocity
	if facingRight {
		v.X = -v.X
	}
	return v
}
