package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pets/internal/storage"
)

// History layout constants
const (
	maxHistoryRows = 200
	tabCount       = 4
)

// historyTab is one of the views of the history browser.
type historyTab int

const (
	tabSaved historyTab = iota
	tabJournal
	tabCounts
	tabRetired
)

var tabTitles = [tabCount]string{"Saved pets", "Journal", "Behavior counts", "Retired"}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextTab, k.PrevTab, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing saved pets, the
// behavior journal and retired pets.
type HistoryModel struct {
	store    *storage.Store
	pack     string
	tab      historyTab
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	err      error
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history browser for pack.
func NewHistoryModel(store *storage.Store, pack string, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		pack:   pack,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// columns returns the table layout of the current tab.
func (m HistoryModel) columns() []table.Column {
	switch m.tab {
	case tabJournal:
		return []table.Column{
			{Title: "Pet", Width: 8}, {Title: "Tick", Width: 8},
			{Title: "Behavior", Width: 16}, {Title: "Event", Width: 12}, {Title: "When", Width: 14},
		}
	case tabCounts:
		return []table.Column{{Title: "Behavior", Width: 20}, {Title: "Entered", Width: 10}}
	case tabRetired:
		return []table.Column{
			{Title: "Pet", Width: 8}, {Title: "Tick", Width: 8}, {Title: "Petted", Width: 7},
			{Title: "Climbs", Width: 7}, {Title: "Throws", Width: 7}, {Title: "When", Width: 14},
		}
	default:
		return []table.Column{
			{Title: "Pet", Width: 8}, {Title: "Behavior", Width: 16},
			{Title: "Energy", Width: 7}, {Title: "Happy", Width: 7}, {Title: "Saved", Width: 14},
		}
	}
}

// load rebuilds the table for the current tab from the store.
func (m *HistoryModel) load() {
	rows, err := m.rows()
	m.err = err

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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
	t.SetRows(rows)
	m.table = t
}

func (m HistoryModel) rows() ([]table.Row, error) {
	if m.store == nil {
		return nil, nil
	}
	const when = "Jan 02 15:04"

	switch m.tab {
	case tabJournal:
		entries, err := m.store.RecentJournal("", maxHistoryRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, 0, len(entries))
		for _, e := range entries {
			if m.pack != "" && e.Pack != m.pack {
				continue
			}
			rows = append(rows, table.Row{
				shortID(e.PetID), fmt.Sprintf("%d", e.Tick), e.Behavior, e.Event, e.CreatedAt.Format(when),
			})
		}
		return rows, nil

	case tabCounts:
		counts, err := m.store.BehaviorCounts(m.pack)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if counts[names[i]] != counts[names[j]] {
				return counts[names[i]] > counts[names[j]]
			}
			return names[i] < names[j]
		})
		rows := make([]table.Row, len(names))
		for i, name := range names {
			rows[i] = table.Row{name, fmt.Sprintf("%d", counts[name])}
		}
		return rows, nil

	case tabRetired:
		retired, err := m.store.RetiredPets(maxHistoryRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, 0, len(retired))
		for _, r := range retired {
			if m.pack != "" && r.Pack != m.pack {
				continue
			}
			rows = append(rows, table.Row{
				shortID(r.PetID), fmt.Sprintf("%d", r.Tick), fmt.Sprintf("%d", r.Stats.TimesPetted),
				fmt.Sprintf("%d", r.Stats.Climbs), fmt.Sprintf("%d", r.Stats.Throws), r.CreatedAt.Format(when),
			})
		}
		return rows, nil

	default:
		pets, err := m.store.LoadPets(m.pack)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(pets))
		for i, p := range pets {
			rows[i] = table.Row{
				shortID(p.ID), p.Behavior, fmt.Sprintf("%.0f", p.Energy),
				fmt.Sprintf("%.0f", p.Happiness), p.UpdatedAt.Format(when),
			}
		}
		return rows, nil
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "PET HISTORY"
	if m.pack != "" {
		title = fmt.Sprintf("PET HISTORY - %s", m.pack)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, tabCount)
	for i, t := range tabTitles {
		if historyTab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(t)
		} else {
			tabs[i] = tabStyle.Render(t)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tableContent renders the table or an empty or error message.
func (m HistoryModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nRun some pets and save them with s.")
	}
	return m.table.View()
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, pack string, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(store, pack, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
