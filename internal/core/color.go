package core

// Color represents a foreground color for a screen cell.
// The viewer maps each value to an ANSI 256-color style.
type Color uint8

// Predefined colors for pets, walls and status text.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
