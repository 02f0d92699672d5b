package storage

import (
	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/graph"
)

// Journal converts a tick report into journal entries: one per pet that
// entered a new behavior. The motion event that caused it, if any, is kept.
func Journal(pack string, g *graph.Graph, rep engine.Report) []JournalEntry {
	var entries []JournalEntry
	for _, st := range rep.Steps {
		if !st.Result.Selected {
			continue
		}
		e := JournalEntry{
			PetID:    st.ID,
			Pack:     pack,
			Tick:     rep.Tick,
			Behavior: g.Behavior(st.Result.Behavior).Name,
		}
		if st.Result.Event.Kind != engine.EventNone {
			e.Event = st.Result.Event.Kind.String()
		}
		entries = append(entries, e)
	}
	return entries
}
