package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// petColors cycles through pets in spawn order.
var petColors = []core.Color{
	core.ColorCyan, core.ColorMagenta, core.ColorYellow,
	core.ColorGreen, core.ColorOrange, core.ColorBlue,
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// petGlyph picks a glyphWidth-cell drawing for a frame.
func petGlyph(f engine.Frame) string {
	switch f.Motion {
	case engine.Dragged:
		return "~(o_o)~"
	case engine.Falling:
		return "\\(o_o)/"
	case engine.GrabWall, engine.ClimbWall:
		if f.WallSide == engine.WallLeft {
			return "|(o_o) "
		}
		return " (o_o)|"
	}
	if strings.HasPrefix(f.Action, "Sit") || f.Action == "Sprawl" {
		return " (-_-) "
	}
	if f.FacingRight {
		return " (o_o)>"
	}
	return "<(o_o) "
}

// drawWorld draws the floor and every pet onto the top rows of s.
// selected is the ID of the highlighted pet.
func drawWorld(s *core.Screen, v Viewport, frames []engine.Frame, selected string) {
	s.DrawHLine(0, v.Rows, v.Cols, '─', core.ColorGray)
	for i, f := range frames {
		x, y := v.ToCell(f.Position)
		color := petColors[i%len(petColors)]
		if f.ID == selected {
			s.DrawText(x+glyphWidth/2, y-1, "v", core.ColorWhite)
		}
		s.DrawText(x, y, petGlyph(f), color)
	}
}
