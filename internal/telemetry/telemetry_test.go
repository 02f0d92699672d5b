package telemetry

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/spritepack"
)

func newTestWorld(t *testing.T) *engine.World {
	t.Helper()
	p, ok := spritepack.Builtin("shimeji")
	if !ok {
		t.Fatal("shimeji pack missing")
	}
	g, err := p.Graph()
	if err != nil {
		t.Fatalf("Graph() failed: %v", err)
	}
	e, err := engine.New(g, engine.DefaultParams(), nil)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	w := engine.NewWorld(e, engine.WorldConfig{Seed: 5}, nil)
	for _, x := range []float64{400, 1500} {
		if _, err := w.Spawn(core.V(x, 300)); err != nil {
			t.Fatalf("Spawn() failed: %v", err)
		}
	}
	return w
}

func TestTraceRoundTrip(t *testing.T) {
	for _, name := range []string{"trace.csv", "trace.csv.gz", "trace.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			tw, err := CreateTrace(path)
			if err != nil {
				t.Fatalf("CreateTrace() failed: %v", err)
			}
			w := newTestWorld(t)
			var written []TraceRow
			for i := 0; i < 60; i++ {
				rows := Rows(w.Tick(0), w.Frames())
				written = append(written, rows...)
				if err := tw.Write(rows); err != nil {
					t.Fatalf("Write() failed: %v", err)
				}
			}
			if err := tw.Close(); err != nil {
				t.Fatalf("Close() failed: %v", err)
			}

			got, err := ReadTrace(path)
			if err != nil {
				t.Fatalf("ReadTrace() failed: %v", err)
			}
			if len(got) != len(written) {
				t.Fatalf("ReadTrace() = %d rows, expected %d", len(got), len(written))
			}
			if got[0].Tick != 1 || got[len(got)-1].Tick != 60 {
				t.Errorf("ticks span %d..%d, expected 1..60", got[0].Tick, got[len(got)-1].Tick)
			}
			if got[0].Pet != written[0].Pet || got[0].Behavior != written[0].Behavior {
				t.Errorf("first row = %+v, expected %+v", got[0], written[0])
			}
		})
	}
}

func TestTraceHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf)
	if err := tw.Write(nil); err != nil {
		t.Fatalf("Write(nil) failed: %v", err)
	}
	rows := []TraceRow{{Tick: 1, Pet: "a", Behavior: "Idle"}}
	_ = tw.Write(rows)
	_ = tw.Write(rows)
	if err := tw.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected header + 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,pet,behavior") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(buf.String(), "tick,pet") != 1 {
		t.Error("header written more than once")
	}
}

func TestRowsCarryEvents(t *testing.T) {
	w := newTestWorld(t)
	var landed bool
	for i := 0; i < 300 && !landed; i++ {
		for _, r := range Rows(w.Tick(0), w.Frames()) {
			if r.Event == "land" {
				landed = true
				if r.Motion != "Grounded" {
					t.Errorf("land row motion = %s, expected Grounded", r.Motion)
				}
			}
		}
	}
	if !landed {
		t.Error("no land event traced within 300 ticks")
	}
}

func TestDescribe(t *testing.T) {
	d := describe([]float64{4, 1, 3, 2, 5})
	if d.N != 5 || d.Min != 1 || d.Max != 5 {
		t.Errorf("describe() = %+v", d)
	}
	if d.Mean != 3 {
		t.Errorf("Mean = %v, expected 3", d.Mean)
	}
	if math.Abs(d.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("StdDev = %v, expected %v", d.StdDev, math.Sqrt(2.5))
	}
	if d.P50 != 3 {
		t.Errorf("P50 = %v, expected 3", d.P50)
	}

	if one := describe([]float64{7}); one.StdDev != 0 || one.P90 != 7 {
		t.Errorf("describe(single) = %+v", one)
	}
	if empty := describe(nil); empty.N != 0 {
		t.Errorf("describe(nil) = %+v", empty)
	}
}

func TestCollectorSummary(t *testing.T) {
	w := newTestWorld(t)
	c := NewCollector()
	for i := 0; i < 300; i++ {
		c.Observe(w.Tick(0), w.Frames())
	}
	s := c.Summary()
	if s.Ticks != 300 {
		t.Errorf("Ticks = %d, expected 300", s.Ticks)
	}
	if s.Energy.N != 600 {
		t.Errorf("Energy.N = %d, expected 600", s.Energy.N)
	}
	if s.Energy.Min < 0 || s.Energy.Max > 100 {
		t.Errorf("energy outside [0,100]: %+v", s.Energy)
	}
	if s.Events["land"] < 2 {
		t.Errorf("Events = %v, expected both pets to land", s.Events)
	}

	var out bytes.Buffer
	s.WriteText(&out)
	if !strings.Contains(out.String(), "ticks      300") {
		t.Errorf("WriteText() missing tick count:\n%s", out.String())
	}
}
