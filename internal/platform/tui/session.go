package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pathfind/internal/config"
	"github.com/vovakirdan/tui-pathfind/internal/core"
	"github.com/vovakirdan/tui-pathfind/internal/maps"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/runner"
	"github.com/vovakirdan/tui-pathfind/internal/storage"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Session bundles what a menu-driven session needs. Store may be nil, in
// which case runs are not recorded and the history is empty.
type Session struct {
	Store    *storage.Store
	Loader   *maps.Loader
	Settings config.Config
	Logger   *log.Logger
}

// recorder returns the store as a runner.Recorder, or nil without one.
func (s Session) recorder() runner.Recorder {
	if s.Store == nil {
		return nil
	}
	return s.Store
}

// history returns the store as a HistorySource, or nil without one.
func (s Session) history() HistorySource {
	if s.Store == nil {
		return nil
	}
	return s.Store
}

// loadMaps lists the session's maps, logging on error. A configured shape
// replaces each map's own.
func (s Session) loadMaps() []maps.Map {
	if s.Loader == nil {
		return nil
	}
	items, err := s.Loader.LoadAll()
	if err != nil && s.Logger != nil {
		s.Logger.Warn("could not load maps", "dir", s.Loader.Root, "error", err)
	}
	if s.Settings.Search.Shape != "" {
		if kind, err := world.ParseShapeKind(s.Settings.Search.Shape); err == nil {
			for i := range items {
				items[i].Shape = kind
			}
		}
	}
	return items
}

// SessionModel manages the full session flow: menu -> visualizer or
// history -> menu.
type SessionModel struct {
	session  Session
	config   core.RuntimeConfig
	username string
	menu     MenuModel
	viz      *Model
	history  *HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(s Session, cfg core.RuntimeConfig, username string) SessionModel {
	if s.Logger == nil {
		s.Logger = log.Default()
	}
	cfg.TickRate = s.Settings.Visualizer.FPS
	cfg = cfg.Normalize()

	return SessionModel{
		session:  s,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(s.loadMaps(), s.Settings.Search.Strategy, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.viz != nil:
		return m.updateVisualizer(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		h := NewHistoryModel(m.session.history(), "", m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		return m, h.Init()
	}

	if sel := m.menu.Selected(); sel != nil {
		return m.startVisualizer(*sel)
	}

	return m, cmd
}

// startVisualizer builds a runner for the selection and switches to it.
func (m SessionModel) startVisualizer(sel Selection) (tea.Model, tea.Cmd) {
	settings := m.session.Settings
	r, err := runner.New(sel.Map.GraphWith(sel.Shape), runner.Options{
		MapID:    sel.Map.ID,
		Strategy: sel.Strategy,
		Engine:   registry.Options{Reopen: settings.Search.AStar.ReopenClosed},
		MaxSteps: settings.Search.MaxSteps,
		Logger:   m.session.Logger.With("user", m.username),
		Recorder: m.session.recorder(),
	})
	if err != nil {
		m.menu = m.newMenu().WithNotice(err.Error())
		return m, nil
	}

	viz := NewModel(r, sel.Map.Title(), settings.Visualizer, m.config)
	m.viz = &viz
	return m, viz.Init()
}

// updateVisualizer handles updates when a search is on screen.
func (m SessionModel) updateVisualizer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viz.Update(msg)
	if viz, ok := newModel.(Model); ok {
		m.viz = &viz
	}

	if m.viz.BackToMenu() {
		m.viz = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.viz.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateHistory handles updates when the history is on screen.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// newMenu builds a fresh menu, rescanning the maps directory.
func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.session.loadMaps(), m.session.Settings.Search.Strategy, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.viz != nil:
		return m.viz.View()
	case m.history != nil:
		return m.history.View()
	}
	return m.menu.View()
}

// RunSession runs a menu-driven session in the local terminal.
func RunSession(s Session, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(s, cfg, "local"),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
