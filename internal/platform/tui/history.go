package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pathfind/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the strategy summary
	sidebarWidth       = 26
	maxRuns            = 200
	allMaps            = "all maps"
)

// HistorySource is the part of the run store the history view reads.
type HistorySource interface {
	RecentRuns(limit int) ([]storage.Run, error)
	RunsForMap(mapID string, limit int) ([]storage.Run, error)
	StrategyStats(mapID string) ([]storage.StrategyStats, error)
}

// HistoryColumns are the headings of the run history table.
var HistoryColumns = []string{"When", "Map", "Strategy", "Shape", "Status", "Moves", "Steps", "Visited"}

// RunRow formats a run as a row of the history table.
func RunRow(r storage.Run) []string {
	moves := "-"
	if r.Finished() {
		moves = fmt.Sprintf("%d", r.PathLen)
	}
	status := r.Status
	if r.Reason != "" && !r.Finished() {
		status = fmt.Sprintf("%s (%s)", r.Status, r.Reason)
	}
	return []string{
		r.CreatedAt.Local().Format("Jan 02 15:04"),
		r.MapID,
		r.Strategy,
		r.Shape,
		status,
		moves,
		fmt.Sprintf("%d", r.Steps),
		fmt.Sprintf("%d", r.Visited),
	}
}

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.PrevMap, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMap, k.PrevMap},
		{k.Back, k.Quit},
	}
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
		NextMap: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev map"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	source      HistorySource
	filters     []string // allMaps followed by every map with runs
	filter      int
	runs        []storage.Run
	stats       []storage.StrategyStats
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	standalone  bool
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history view. mapID preselects a map filter.
func NewHistoryModel(source HistorySource, mapID string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		filters:     []string{allMaps},
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.loadFilters()
	for i, f := range m.filters {
		if f == mapID {
			m.filter = i
		}
	}
	if mapID != "" && m.filters[m.filter] != mapID {
		m.filters = append(m.filters, mapID)
		m.filter = len(m.filters) - 1
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// loadFilters collects the maps that have runs, in order of first
// appearance in the recent history.
func (m *HistoryModel) loadFilters() {
	if m.source == nil {
		return
	}
	runs, err := m.source.RecentRuns(maxRuns)
	if err != nil {
		m.err = err
		return
	}
	seen := make(map[string]bool)
	for _, r := range runs {
		if !seen[r.MapID] {
			seen[r.MapID] = true
			m.filters = append(m.filters, r.MapID)
		}
	}
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	widths := []int{12, 14, 8, 9, 12, 5, 6, 7}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	used := 0
	for _, w := range widths {
		used += w + 2
	}
	if extra := tableWidth - used; extra > 0 {
		// Long failure reasons get the slack.
		widths[4] += min(extra, 30)
	}

	columns := make([]table.Column, len(HistoryColumns))
	for i, title := range HistoryColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
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

// loadRuns loads runs and stats for the current filter.
func (m *HistoryModel) loadRuns() {
	m.runs, m.stats = nil, nil
	if m.source != nil {
		mapID := m.mapID()
		var err error
		if mapID == "" {
			m.runs, err = m.source.RecentRuns(maxRuns)
		} else {
			m.runs, err = m.source.RunsForMap(mapID, maxRuns)
		}
		if err == nil {
			m.stats, err = m.source.StrategyStats(mapID)
		}
		m.err = err
	}
	m.updateTableRows()
}

// mapID returns the current filter as a store argument.
func (m HistoryModel) mapID() string {
	if f := m.filters[m.filter]; f != allMaps {
		return f
	}
	return ""
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row(RunRow(r))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextMap):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevMap):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m HistoryModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RUN HISTORY - %s", m.filters[m.filter])
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := boxStyle.Render(m.renderTableContent())
	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderStats())
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the per-strategy summary.
func (m HistoryModel) renderStats() string {
	var b strings.Builder
	b.WriteString("Strategies\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	if len(m.stats) == 0 {
		b.WriteString("no runs")
		return b.String()
	}
	for _, s := range m.stats {
		best := "-"
		if s.BestPath >= 0 {
			best = fmt.Sprintf("%d", s.BestPath)
		}
		b.WriteString(titleStyle.Render(s.Strategy))
		b.WriteString("\n")
		fmt.Fprintf(&b, " runs %d, found %d\n", s.Runs, s.Finished)
		fmt.Fprintf(&b, " best %s, avg steps %.0f\n", best, s.AvgSteps)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nWatch or solve a map to record one!")
	}
	return m.table.View()
}

// Runs returns the runs currently listed.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen on its own.
func RunHistory(source HistorySource, mapID string, width, height int) error {
	model := NewHistoryModel(source, mapID, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
