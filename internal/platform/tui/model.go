package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pathfind/internal/config"
	"github.com/vovakirdan/tui-pathfind/internal/core"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/runner"
	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for one visualizer session.
type Model struct {
	runner     *runner.Runner
	title      string
	screen     *core.Screen
	config     core.RuntimeConfig
	speed      config.Speed
	keyMapper  *KeyMapper
	help       help.Model
	paused     bool
	loop       int64
	tick       int
	message    string
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a visualizer for the runner. title names the map.
func NewModel(r *runner.Runner, title string, vis config.VisualizerConfig, cfg core.RuntimeConfig) Model {
	cfg.TickRate = vis.FPS
	cfg = cfg.Normalize()

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		runner:    r,
		title:     title,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		speed:     config.SpeedFrom(vis),
		keyMapper: NewKeyMapper(),
		help:      h,
		loop:      newLoop(),
	}
}

// Init starts the animation loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	m.apply(action)
	return m, nil
}

// apply performs a visualizer action.
func (m *Model) apply(action core.Action) {
	switch action {
	case core.ActionPause:
		m.paused = !m.paused
		m.message = ""

	case core.ActionStep:
		m.paused = true
		m.runner.Step()
		m.message = ""

	case core.ActionSave:
		m.runner.Save()
		m.message = fmt.Sprintf("saved at step %d", m.runner.Engine().Expanded())

	case core.ActionRestore:
		if m.runner.Restore() {
			m.message = fmt.Sprintf("restored to step %d", m.runner.Engine().Expanded())
		} else {
			m.message = "nothing saved yet"
		}

	case core.ActionRestart:
		m.runner.Restart()
		m.tick = 0
		m.message = "restarted"

	case core.ActionFaster:
		m.speed = m.speed.Faster()
		m.message = "speed " + m.speed.String()

	case core.ActionSlower:
		m.speed = m.speed.Slower()
		m.message = "speed " + m.speed.String()

	case core.ActionNextStrategy:
		m.nextStrategy()
	}
}

// nextStrategy switches to the next registered strategy that accepts the
// map, skipping those whose preconditions fail.
func (m *Model) nextStrategy() {
	current := m.runner.Strategy()
	id := current
	for range registry.IDs() {
		id = registry.Next(id)
		if id == current {
			break
		}
		if err := m.runner.SetStrategy(id); err != nil {
			continue
		}
		m.tick = 0
		m.message = "strategy " + id
		return
	}
	m.message = "no other strategy accepts this map"
}

// handleTick advances the search according to the current speed.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.runner.Done() {
		m.runner.StepN(m.speed.StepsAt(m.tick))
		m.tick++
	}
	return m, tickCmd(m.config.TickRate, m.loop)
}

// Status describes the search state for the status line.
func (m Model) Status() string {
	e := m.runner.Engine()
	st := e.State()

	var label string
	switch {
	case st.Status == search.Finished:
		label = fmt.Sprintf("FOUND %d moves", st.Moves())
	case st.Status == search.Failed:
		label = "NO PATH: " + st.Reason
	case m.runner.LimitReached():
		label = "ABORTED: " + runner.ErrStepLimit.Error()
	case m.paused:
		label = "PAUSED"
	default:
		label = "RUNNING"
	}

	parts := []string{
		label,
		fmt.Sprintf("step %d", e.Expanded()),
		fmt.Sprintf("frontier %d", len(e.Frontier())),
		fmt.Sprintf("visited %d", len(e.Visited())),
		"speed " + m.speed.String(),
	}
	if m.runner.HasSnapshot() {
		parts = append(parts, "[saved]")
	}
	return strings.Join(parts, "  ")
}

// focus returns the cell the viewport follows.
func (m Model) focus() world.Position {
	if p, ok := m.runner.Engine().Current(); ok {
		return p
	}
	if starts := m.runner.Graph().Grid().Starts(); len(starts) > 0 {
		return starts[0]
	}
	return world.P(0, 0)
}

// View renders the visualizer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keyMapper.Keys())
	footer := 1 + lipgloss.Height(helpView)
	gridH := max(1, m.config.ScreenH-footer-1)

	buf := m.runner.Project()
	m.screen.Resize(m.config.ScreenW, gridH)
	m.screen.Clear()

	area := m.screen.Bounds()
	if buf.W < area.W {
		area.X = (area.W - buf.W) / 2
		area.W = buf.W
	}
	buf.Draw(m.screen, area, buf.Origin(area, m.focus()))

	shape := m.runner.Graph().Shape().Kind
	header := fmt.Sprintf("%s  [%s, %s]", m.title, m.runner.Strategy(), shape)

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText(header, m.config.ScreenW)))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.Status()))
	if m.message != "" {
		b.WriteString("  ")
		b.WriteString(messageStyle.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpView))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Paused reports whether automatic stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// Run starts a standalone visualizer for the runner.
func Run(r *runner.Runner, title string, vis config.VisualizerConfig, cfg core.RuntimeConfig) error {
	model := NewModel(r, title, vis, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
