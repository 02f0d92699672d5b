package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: '▶', Color: ColorYellow})
	c := s.GetCell(5, 5)
	if c.Rune != '▶' || c.Color != ColorYellow {
		t.Errorf("GetCell(5, 5) = %+v, expected yellow ▶", c)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if got := s.GetCell(100, 100); got.Color != ColorDefault {
		t.Errorf("Out of bounds GetCell color = %v, expected default", got.Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawText(2, 1, "Idle·Walk", ColorCyan)

	if got := s.Row(1); !strings.HasPrefix(got, "  Idle·Walk") {
		t.Errorf("Row(1) = %q, expected prefix %q", got, "  Idle·Walk")
	}
	if c := s.GetCell(6, 1); c.Rune != '·' || c.Color != ColorCyan {
		t.Errorf("GetCell(6, 1) = %+v, expected cyan '·'", c)
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawHLine(0, 4, 5, '─', ColorGray)
	s.DrawVLine(0, 0, 4, '│', ColorGray)

	if got := s.Row(4); got != "─────" {
		t.Errorf("Row(4) = %q, expected floor line", got)
	}
	for y := 0; y < 4; y++ {
		if s.Get(0, y) != '│' {
			t.Errorf("Get(0, %d) = %q, expected wall", y, s.Get(0, y))
		}
	}
}

func TestScreenResizeAndString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Resize(4, 3)

	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("Resize() = %dx%d, expected 4x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("String() after resize = %q", got)
	}
	if got := s.Row(-1); got != "    " {
		t.Errorf("Row(-1) = %q, expected blank row", got)
	}
}
