package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/storage"
)

const (
	journalBatch = 64 // entries buffered before a journal write
	nearCells    = 10 // pointer distance that raises the cursor_near flag
	cursorFlag   = "cursor_near"
)

// Options configures a viewer Model.
type Options struct {
	Pack    string
	Config  core.RuntimeConfig
	MaxPets int
	Store   *storage.Store // nil disables saving and the journal
	Journal bool           // record behavior changes in the store
	Restore bool           // load the pack's saved pets on start
	Logger  *log.Logger
}

// Model is the Bubble Tea model that runs and draws one pet world.
type Model struct {
	engine   *engine.Engine
	world    *engine.World
	opts     Options
	logger   *log.Logger
	rng      *rand.Rand
	screen   *core.Screen
	view     Viewport
	keys     KeyMap
	help     help.Model
	table    table.Model
	frames   []engine.Frame
	journal  []storage.JournalEntry
	selected string
	grip     *Grip
	pointer  [2]int
	hasPtr   bool
	status   string
	paused   bool
	quitting bool
	width    int
	height   int
}

// NewModel creates a viewer over a fresh world driven by e. Saved pets
// are restored when requested; an empty world gets one pet.
func NewModel(e *engine.Engine, opts Options) (Model, error) {
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = e.Params().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := engine.NewWorld(e, engine.WorldConfig{Seed: opts.Config.Seed, MaxPets: opts.MaxPets}, logger)
	m := Model{
		engine: e,
		world:  w,
		opts:   opts,
		logger: logger,
		rng:    rand.New(rand.NewSource(opts.Config.Seed)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}

	if opts.Restore && opts.Store != nil {
		records, err := opts.Store.LoadPets(opts.Pack)
		if err != nil {
			return Model{}, err
		}
		snaps := make([]engine.Snapshot, len(records))
		for i, r := range records {
			snaps[i] = r.Snapshot
		}
		if err := w.Restore(snaps); err != nil {
			return Model{}, fmt.Errorf("restoring saved pets: %w", err)
		}
		if len(snaps) > 0 {
			m.status = fmt.Sprintf("restored %d pets", len(snaps))
		}
	}
	if w.Len() == 0 {
		m.spawn()
	}
	if ids := w.IDs(); len(ids) > 0 {
		m.selected = ids[0]
	}

	m.resize(opts.Config.ScreenW, opts.Config.ScreenH)
	m.frames = w.Frames()
	return m, nil
}

// World exposes the world the model drives.
func (m Model) World() *engine.World {
	return m.world
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.flushJournal()
		m.quitting = true
		return m, tea.Quit
	case core.ActionSpawn:
		m.spawn()
	case core.ActionKill:
		if m.selected != "" {
			if err := m.world.Kill(m.selected); err != nil {
				m.status = err.Error()
			}
		}
	case core.ActionNext:
		m.cycle(1)
	case core.ActionPrev:
		m.cycle(-1)
	case core.ActionTrigger:
		m.trigger()
	case core.ActionSave:
		m.save()
	case core.ActionPause:
		m.paused = !m.paused
	case core.ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse turns left-button presses, motion and release into drag
// commands. The pointer position also feeds the cursor_near flag.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cx, cy := msg.X, msg.Y
	m.pointer = [2]int{cx, cy}
	m.hasPtr = cx < m.view.Cols && cy <= m.view.Rows

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		g, ok := m.view.HitTest(m.frames, cx, cy)
		if !ok {
			return m, nil
		}
		m.grip = &g
		m.selected = g.ID
		m.drag(cx, cy)

	case tea.MouseActionMotion:
		if m.grip != nil {
			m.drag(cx, cy)
		}

	case tea.MouseActionRelease:
		if m.grip != nil {
			if err := m.world.Release(m.grip.ID); err != nil {
				m.logger.Debug("release ignored", "pet", m.grip.ID, "err", err)
			}
			m.grip = nil
		}
	}
	return m, nil
}

func (m *Model) drag(cx, cy int) {
	target := m.view.DragTarget(*m.grip, cx, cy)
	if err := m.world.Drag(m.grip.ID, target, m.grip.GripX); err != nil {
		// The pet was removed while held.
		m.grip = nil
	}
}

// handleTick advances the world once unless paused.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.opts.Config.TickRate)
	}

	m.updateFlags()
	rep := m.world.Tick(0)
	m.frames = m.world.Frames()

	if m.opts.Store != nil && m.opts.Journal {
		m.journal = append(m.journal, storage.Journal(m.opts.Pack, m.engine.Graph(), rep)...)
		if len(m.journal) >= journalBatch {
			m.flushJournal()
		}
	}

	for _, r := range rep.Removed {
		if m.grip != nil && m.grip.ID == r.ID {
			m.grip = nil
		}
		if m.opts.Store != nil {
			if err := m.opts.Store.RetirePet(m.opts.Pack, r); err != nil {
				m.logger.Warn("could not retire pet", "pet", r.ID, "err", err)
			}
		}
		m.status = fmt.Sprintf("pet %s left after %d behaviors", shortID(r.ID), r.Stats.Behaviors)
	}
	if _, ok := m.world.Pet(m.selected); !ok {
		m.selected = ""
		if ids := m.world.IDs(); len(ids) > 0 {
			m.selected = ids[0]
		}
	}

	rows, cursor := petRows(m.frames, m.selected)
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)

	return m, tickCmd(m.opts.Config.TickRate)
}

// updateFlags raises cursor_near on pets close to the pointer.
func (m *Model) updateFlags() {
	for _, f := range m.frames {
		var flags []string
		if m.hasPtr {
			x, y := m.view.ToCell(f.Position)
			dx := m.pointer[0] - (x + glyphWidth/2)
			dy := m.pointer[1] - y
			if dx*dx+dy*dy <= nearCells*nearCells {
				flags = append(flags, cursorFlag)
			}
		}
		_ = m.world.SetFlags(f.ID, flags...)
	}
}

// spawn drops a new pet from the ceiling at a random column.
func (m *Model) spawn() {
	b := m.engine.Params().Bounds
	pos := core.V(b.Left+m.rng.Float64()*b.Width(), b.Ceiling)
	id, err := m.world.Spawn(pos)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.selected = id
	m.status = "spawned " + shortID(id)
}

// cycle moves the selection by delta through the live pets.
func (m *Model) cycle(delta int) {
	ids := m.world.IDs()
	if len(ids) == 0 {
		return
	}
	cur := 0
	for i, id := range ids {
		if id == m.selected {
			cur = i
		}
	}
	m.selected = ids[(cur+delta+len(ids))%len(ids)]
}

// trigger asks the selected pet for a random visible behavior.
func (m *Model) trigger() {
	if m.selected == "" {
		return
	}
	var names []string
	for _, b := range m.engine.Graph().Behaviors() {
		if !b.Hidden && b.ID != m.engine.Graph().Neutral() {
			names = append(names, b.Name)
		}
	}
	if len(names) == 0 {
		return
	}
	name := names[m.rng.Intn(len(names))]
	if err := m.world.Trigger(m.selected, name); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "asked for " + name
}

// save stores every live pet and flushes the journal.
func (m *Model) save() {
	if m.opts.Store == nil {
		m.status = "no database, nothing saved"
		return
	}
	snaps := m.world.Snapshots()
	for _, s := range snaps {
		if err := m.opts.Store.SavePet(m.opts.Pack, s); err != nil {
			m.status = err.Error()
			return
		}
	}
	m.flushJournal()
	m.status = fmt.Sprintf("saved %d pets", len(snaps))
}

func (m *Model) flushJournal() {
	if m.opts.Store == nil || len(m.journal) == 0 {
		return
	}
	if err := m.opts.Store.AppendJournal(m.journal...); err != nil {
		m.logger.Warn("could not write journal", "err", err)
	}
	m.journal = m.journal[:0]
}

// resize lays out the playfield, the floor row and two status rows.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := width
	if width >= minWidthForPanel {
		cols = width - panelWidth - 1
	}
	rows := height - 4
	m.view = NewViewport(m.engine.Params().Bounds, spriteWidth(m.engine), cols, rows)
	if m.screen == nil {
		m.screen = core.NewScreen(m.view.Cols, m.view.Rows+1)
	} else {
		m.screen.Resize(m.view.Cols, m.view.Rows+1)
	}
	m.table = newPetTable(rows - 2)
	m.help.Width = width
}

func spriteWidth(e *engine.Engine) float64 {
	w, _ := e.Graph().SpriteSize()
	return w
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	drawWorld(m.screen, m.view, m.frames, m.selected)
	field := RenderScreen(m.screen)

	if m.width >= minWidthForPanel {
		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(panelWidth - 2).
			Render(m.table.View())
		field = lipgloss.JoinHorizontal(lipgloss.Top, field, " ", panel)
	}

	var b strings.Builder
	b.WriteString(field)
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusBar() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	parts := []string{fmt.Sprintf("%s  pets %d  tick %d", m.opts.Pack, m.world.Len(), m.world.TickCount())}
	if m.paused {
		parts = append(parts, "PAUSED")
	}
	for _, f := range m.frames {
		if f.ID == m.selected {
			parts = append(parts, statsLine(f))
		}
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return style.Render(strings.Join(parts, "  |  "))
}

// Run starts the Bubble Tea program with a viewer over e.
func Run(e *engine.Engine, opts Options) error {
	model, err := NewModel(e, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		fm.flushJournal()
	}
	return nil
}
