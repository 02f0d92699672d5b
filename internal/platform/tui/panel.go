package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pets/internal/engine"
)

// panelWidth is the width of the pet table beside the playfield.
const panelWidth = 44

// minWidthForPanel is the terminal width below which the table is hidden.
const minWidthForPanel = 100

// newPetTable creates the side table listing live pets.
func newPetTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Pet", Width: 6},
		{Title: "Behavior", Width: 12},
		{Title: "Motion", Width: 9},
		{Title: "Enr", Width: 4},
		{Title: "Hap", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// shortID keeps the random tail of a ULID, which is what differs between
// pets spawned in the same millisecond.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

// petRows converts frames into table rows and returns the row of selected.
func petRows(frames []engine.Frame, selected string) ([]table.Row, int) {
	rows := make([]table.Row, len(frames))
	cursor := 0
	for i, f := range frames {
		rows[i] = table.Row{
			shortID(f.ID),
			f.Behavior,
			f.Motion.String(),
			fmt.Sprintf("%.0f", f.Energy),
			fmt.Sprintf("%.0f", f.Happiness),
		}
		if f.ID == selected {
			cursor = i
		}
	}
	return rows, cursor
}

// statsLine summarizes the counters of a pet for the status bar.
func statsLine(f engine.Frame) string {
	s := f.Stats
	return fmt.Sprintf("petted %d  walks %d  climbs %d  throws %d  bounces %d  specials %d",
		s.TimesPetted, s.WalksTaken, s.Climbs, s.Throws, s.Bounces, s.SpecialActions)
}
