// Package telemetry records per-tick traces of a world as CSV and
// summarizes a run.
package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-pets/internal/engine"
)

// TraceRow is one pet at the end of one tick.
type TraceRow struct {
	Tick      uint64  `csv:"tick"`
	Pet       string  `csv:"pet"`
	Behavior  string  `csv:"behavior"`
	Action    string  `csv:"action"`
	Motion    string  `csv:"motion"`
	Event     string  `csv:"event"`
	Image     string  `csv:"image"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	Facing    string  `csv:"facing"`
	Energy    float64 `csv:"energy"`
	Happiness float64 `csv:"happiness"`
	Wall      string  `csv:"wall"`
}

// Rows joins a tick report with the frames pulled after it.
func Rows(rep engine.Report, frames []engine.Frame) []TraceRow {
	events := make(map[string]engine.EventKind, len(rep.Steps))
	for _, st := range rep.Steps {
		events[st.ID] = st.Result.Event.Kind
	}

	rows := make([]TraceRow, 0, len(frames))
	for _, f := range frames {
		r := TraceRow{
			Tick:      rep.Tick,
			Pet:       f.ID,
			Behavior:  f.Behavior,
			Action:    f.Action,
			Motion:    f.Motion.String(),
			Image:     f.Image,
			X:         f.Position.X,
			Y:         f.Position.Y,
			Facing:    "left",
			Energy:    f.Energy,
			Happiness: f.Happiness,
		}
		if f.FacingRight {
			r.Facing = "right"
		}
		if k := events[f.ID]; k != engine.EventNone {
			r.Event = k.String()
		}
		if f.OnWall {
			r.Wall = f.WallSide.String()
		}
		rows = append(rows, r)
	}
	return rows
}

// TraceWriter appends trace rows to a CSV stream. The header is written
// with the first batch.
type TraceWriter struct {
	out           io.Writer
	buf           *bufio.Writer
	closers       []io.Closer
	headerWritten bool
}

// NewTraceWriter wraps w. Close flushes but does not close w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	buf := bufio.NewWriter(w)
	return &TraceWriter{out: buf, buf: buf}
}

// CreateTrace creates a trace file at path. A ".gz" suffix gzips the
// stream and ".zst" compresses it with zstd.
func CreateTrace(path string) (*TraceWriter, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot create trace: %w", err)
	}

	var sink io.WriteCloser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		sink = gzip.NewWriter(f)
	case ".zst":
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("telemetry: cannot create zstd encoder: %w", err)
		}
		sink = enc
	}

	tw := &TraceWriter{closers: []io.Closer{f}}
	if sink != nil {
		tw.buf = bufio.NewWriterSize(sink, 64*1024)
		tw.closers = append([]io.Closer{sink}, tw.closers...)
	} else {
		tw.buf = bufio.NewWriterSize(f, 64*1024)
	}
	tw.out = tw.buf
	return tw, nil
}

// Write appends rows. Writing no rows is a no-op and does not emit the header.
func (tw *TraceWriter) Write(rows []TraceRow) error {
	if tw == nil || len(rows) == 0 {
		return nil
	}
	if !tw.headerWritten {
		if err := gocsv.Marshal(rows, tw.out); err != nil {
			return fmt.Errorf("telemetry: writing trace: %w", err)
		}
		tw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, tw.out); err != nil {
		return fmt.Errorf("telemetry: writing trace: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes any compressor and file it owns.
func (tw *TraceWriter) Close() error {
	if tw == nil {
		return nil
	}
	err := tw.buf.Flush()
	for _, c := range tw.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	tw.closers = nil
	if err != nil {
		return fmt.Errorf("telemetry: closing trace: %w", err)
	}
	return nil
}

// ReadTrace decodes a trace produced by TraceWriter, undoing the
// compression implied by path.
func ReadTrace(path string) ([]TraceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot open trace: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("telemetry: cannot read gzip: %w", err)
		}
		defer zr.Close()
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("telemetry: cannot read zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var rows []TraceRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("telemetry: cannot decode trace: %w", err)
	}
	return rows, nil
}
