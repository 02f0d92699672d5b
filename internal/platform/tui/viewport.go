package tui

import (
	"math"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
)

// glyphWidth is how many cells a pet occupies on its row.
const glyphWidth = 7

// Viewport maps position-space bounds onto a grid of terminal cells. A
// pet at Bounds.Left is drawn from column 0, one at Bounds.Right ends in
// the last column, and the floor is the bottom row.
type Viewport struct {
	Bounds  core.Bounds
	Cols    int
	Rows    int
	SpriteW float64
}

// NewViewport creates a viewport for a cols×rows playfield.
func NewViewport(b core.Bounds, spriteW float64, cols, rows int) Viewport {
	return Viewport{
		Bounds:  b,
		Cols:    core.Max(cols, glyphWidth+1),
		Rows:    core.Max(rows, 2),
		SpriteW: spriteW,
	}
}

func (v Viewport) spanX() int { return v.Cols - glyphWidth }
func (v Viewport) spanY() int { return v.Rows - 1 }

// ToCell returns the cell where a pet at pos starts.
func (v Viewport) ToCell(pos core.Vec2) (int, int) {
	fx := (pos.X - v.Bounds.Left) / v.Bounds.Width()
	fy := (pos.Y - v.Bounds.Ceiling) / v.Bounds.Height()
	x := int(math.Round(fx * float64(v.spanX())))
	y := int(math.Round(fy * float64(v.spanY())))
	return core.Clamp(x, 0, v.spanX()), core.Clamp(y, 0, v.spanY())
}

// ToPosition returns the position of a pet whose glyph starts at cell
// (cx, cy). Cells outside the playfield map outside the bounds so a drag
// past the edge still registers as wall contact.
func (v Viewport) ToPosition(cx, cy int) core.Vec2 {
	return core.Vec2{
		X: v.Bounds.Left + float64(cx)/float64(v.spanX())*v.Bounds.Width(),
		Y: v.Bounds.Ceiling + float64(cy)/float64(v.spanY())*v.Bounds.Height(),
	}
}

// Grip is where a pointer took hold of a pet's glyph.
type Grip struct {
	ID    string
	Cells int     // column offset of the pointer inside the glyph
	GripX float64 // pointer offset from the sprite position in pixels
}

// HitTest finds the topmost pet under cell (cx, cy). Later frames are drawn
// over earlier ones, so they win.
func (v Viewport) HitTest(frames []engine.Frame, cx, cy int) (Grip, bool) {
	for i := len(frames) - 1; i >= 0; i-- {
		px, py := v.ToCell(frames[i].Position)
		if cy != py || cx < px || cx >= px+glyphWidth {
			continue
		}
		off := cx - px
		return Grip{
			ID:    frames[i].ID,
			Cells: off,
			GripX: (float64(off) + 0.5) / glyphWidth * v.SpriteW,
		}, true
	}
	return Grip{}, false
}

// DragTarget is the drag command target for a pointer at (cx, cy) holding g.
func (v Viewport) DragTarget(g Grip, cx, cy int) core.Vec2 {
	return v.ToPosition(cx-g.Cells, cy)
}
