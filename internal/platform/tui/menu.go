package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfind/internal/core"
	"github.com/vovakirdan/tui-pathfind/internal/maps"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Selection is what the user picked in the menu.
type Selection struct {
	Map      maps.Map
	Strategy string
	Shape    world.ShapeKind
}

// MenuModel is the Bubble Tea model for the map and strategy picker.
type MenuModel struct {
	maps        []maps.Map
	shapes      []world.ShapeKind // per map, toggled with t
	strategies  []registry.StrategyInfo
	cursor      int
	strategy    int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *Selection
	openHistory bool
	notice      string
}

// NewMenuModel creates a menu over the given maps with strategy
// preselected.
func NewMenuModel(items []maps.Map, strategy string, cfg core.RuntimeConfig) MenuModel {
	shapes := make([]world.ShapeKind, len(items))
	for i, m := range items {
		shapes[i] = m.Shape
	}

	strategies := registry.List()
	current := 0
	for i, s := range strategies {
		if s.ID == strategy {
			current = i
		}
	}

	return MenuModel{
		maps:       items,
		shapes:     shapes,
		strategies: strategies,
		strategy:   current,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.maps)-1 {
			m.cursor++
		}

	case MenuActionPrevStrategy:
		if n := len(m.strategies); n > 0 {
			m.strategy = (m.strategy + n - 1) % n
		}

	case MenuActionNextStrategy:
		if n := len(m.strategies); n > 0 {
			m.strategy = (m.strategy + 1) % n
		}

	case MenuActionToggleShape:
		if len(m.maps) > 0 {
			if m.shapes[m.cursor] == world.KindTorus {
				m.shapes[m.cursor] = world.KindRectangle
			} else {
				m.shapes[m.cursor] = world.KindTorus
			}
		}

	case MenuActionSelect:
		if len(m.maps) > 0 && len(m.strategies) > 0 {
			m.selected = &Selection{
				Map:      m.maps[m.cursor],
				Strategy: m.strategies[m.strategy].ID,
				Shape:    m.shapes[m.cursor],
			}
			return m, tea.Quit
		}

	case MenuActionHistory:
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  P A T H F I N D  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a map", m.width))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(messageStyle.Render(centerText(m.notice, m.width)))
		b.WriteString("\n\n")
	}

	if len(m.maps) == 0 {
		b.WriteString(centerText("No maps found.", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.maps {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		stats := item.Stats()
		line := fmt.Sprintf("%s%-20s %3dx%-3d %-9s walls %3.0f%%",
			cursor, item.Title(), stats.Width, stats.Height, m.shapes[i], stats.WallRatio*100)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.strategies) > 0 {
		s := m.strategies[m.strategy]
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Strategy: < %s >", s.Title), m.width))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(centerText(s.Description, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Map  |  Left/Right: Strategy  |  T: Shape  |  Enter: Watch  |  Tab: History  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// WithNotice returns the menu showing a one-line message above the list.
func (m MenuModel) WithNotice(text string) MenuModel {
	m.notice = text
	return m
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
