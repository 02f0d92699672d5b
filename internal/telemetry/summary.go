package telemetry

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-pets/internal/engine"
)

// Collector accumulates per-tick samples for a run summary.
type Collector struct {
	ticks     uint64
	energy    []float64
	happiness []float64
	behaviors map[string]int
	events    map[string]int
	removed   int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		behaviors: make(map[string]int),
		events:    make(map[string]int),
	}
}

// Observe records one tick.
func (c *Collector) Observe(rep engine.Report, frames []engine.Frame) {
	c.ticks++
	for _, f := range frames {
		c.energy = append(c.energy, f.Energy)
		c.happiness = append(c.happiness, f.Happiness)
	}
	byID := make(map[string]string, len(frames))
	for _, f := range frames {
		byID[f.ID] = f.Behavior
	}
	for _, st := range rep.Steps {
		if st.Result.Event.Kind != engine.EventNone {
			c.events[st.Result.Event.Kind.String()]++
		}
		if st.Result.Selected {
			if name, ok := byID[st.ID]; ok {
				c.behaviors[name]++
			}
		}
	}
	c.removed += len(rep.Removed)
}

// Distribution describes a sample.
type Distribution struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	P50    float64
	P90    float64
	Max    float64
}

// Summary is the outcome of a run.
type Summary struct {
	Ticks     uint64
	Removed   int
	Energy    Distribution
	Happiness Distribution
	Behaviors map[string]int
	Events    map[string]int
}

// Summary computes statistics over everything observed so far.
func (c *Collector) Summary() Summary {
	return Summary{
		Ticks:     c.ticks,
		Removed:   c.removed,
		Energy:    describe(c.energy),
		Happiness: describe(c.happiness),
		Behaviors: copyCounts(c.behaviors),
		Events:    copyCounts(c.events),
	}
}

func describe(xs []float64) Distribution {
	if len(xs) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return Distribution{
		N:      len(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    sorted[0],
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WriteText prints s in a plain two-column layout.
func (s Summary) WriteText(w io.Writer) {
	fmt.Fprintf(w, "ticks      %d\n", s.Ticks)
	fmt.Fprintf(w, "removed    %d\n", s.Removed)
	writeDist(w, "energy", s.Energy)
	writeDist(w, "happiness", s.Happiness)

	fmt.Fprintln(w, "\nbehaviors entered")
	for _, k := range sortedKeys(s.Behaviors) {
		fmt.Fprintf(w, "  %-16s %d\n", k, s.Behaviors[k])
	}
	if len(s.Events) > 0 {
		fmt.Fprintln(w, "\nevents")
		for _, k := range sortedKeys(s.Events) {
			fmt.Fprintf(w, "  %-16s %d\n", k, s.Events[k])
		}
	}
}

func writeDist(w io.Writer, name string, d Distribution) {
	fmt.Fprintf(w, "%-10s mean %.1f  sd %.1f  min %.1f  p50 %.1f  p90 %.1f  max %.1f\n",
		name, d.Mean, d.StdDev, d.Min, d.P50, d.P90, d.Max)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
