package tui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pathfind/internal/config"
	"github.com/vovakirdan/tui-pathfind/internal/core"
	"github.com/vovakirdan/tui-pathfind/internal/maps"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/runner"
	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/storage"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func newVisualizer(t *testing.T, rows ...string) Model {
	t.Helper()
	g := world.MustFromRows(rows...)
	r, err := runner.New(search.NewGraph(g, world.ShapeFor(world.KindRectangle, g)), runner.Options{
		MapID:    "test",
		Strategy: "bfs",
		Engine:   registry.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("runner.New() failed: %v", err)
	}
	vis := config.VisualizerConfig{FPS: 20, StepsPerTick: 1}
	return NewModel(r, "Test", vis, core.RuntimeConfig{ScreenW: 40, ScreenH: 12})
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, TickMsg{Time: time.Now(), Loop: m.loop})
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	return m
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{keySpace, core.ActionPause, false},
		{keyRight, core.ActionStep, false},
		{runes("n"), core.ActionStep, false},
		{runes("s"), core.ActionSave, false},
		{runes("r"), core.ActionRestore, false},
		{runes("x"), core.ActionRestart, false},
		{runes("+"), core.ActionFaster, false},
		{runes("-"), core.ActionSlower, false},
		{keyTab, core.ActionNextStrategy, false},
		{keyEsc, core.ActionBack, false},
		{runes("b"), core.ActionBack, false},
		{keyEnter, core.ActionConfirm, false},
		{runes("q"), core.ActionQuit, true},
		{keyCtrlC, core.ActionQuit, true},
		{runes("z"), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestMenuKeys(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{runes("k"), MenuActionUp},
		{keyDown, MenuActionDown},
		{keyRight, MenuActionNextStrategy},
		{runes("h"), MenuActionPrevStrategy},
		{runes("t"), MenuActionToggleShape},
		{keyEnter, MenuActionSelect},
		{keyTab, MenuActionHistory},
		{keyEsc, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.action)
		}
	}
}

func TestVisualizerTicks(t *testing.T) {
	m := newVisualizer(t, "S..", "...", "..G")

	m = tick(t, m)
	if n := m.runner.Engine().Expanded(); n != 1 {
		t.Fatalf("after one tick expanded = %d, expected 1", n)
	}

	// A tick from another loop is ignored and not rescheduled.
	m, cmd := press(t, m, TickMsg{Time: time.Now(), Loop: m.loop + 1})
	if cmd != nil {
		t.Error("foreign tick should not be rescheduled")
	}
	if n := m.runner.Engine().Expanded(); n != 1 {
		t.Errorf("foreign tick advanced the search to %d", n)
	}

	for i := 0; i < 20; i++ {
		m = tick(t, m)
	}
	if !m.runner.State().Over() {
		t.Fatal("search should be over after enough ticks")
	}
	if !strings.HasPrefix(m.Status(), "FOUND 2 moves") {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestVisualizerPauseAndStep(t *testing.T) {
	m := newVisualizer(t, "S..", "...", "..G")

	m, _ = press(t, m, keySpace)
	if !m.Paused() {
		t.Fatal("space should pause")
	}
	m = tick(t, m)
	if n := m.runner.Engine().Expanded(); n != 0 {
		t.Errorf("paused tick expanded %d", n)
	}
	if !strings.HasPrefix(m.Status(), "PAUSED") {
		t.Errorf("Status() = %q", m.Status())
	}

	m, _ = press(t, m, runes("n"))
	m, _ = press(t, m, keyRight)
	if n := m.runner.Engine().Expanded(); n != 2 {
		t.Errorf("two single steps expanded %d", n)
	}

	m, _ = press(t, m, keySpace)
	if m.Paused() {
		t.Error("space should resume")
	}
}

func TestVisualizerStepPauses(t *testing.T) {
	m := newVisualizer(t, "S..", "...", "..G")
	m, _ = press(t, m, runes("n"))
	if !m.Paused() {
		t.Error("single step should leave the visualizer paused")
	}
}

func TestVisualizerSaveRestore(t *testing.T) {
	m := newVisualizer(t, "S....", ".....", "....G")

	m, _ = press(t, m, runes("r"))
	if m.message != "nothing saved yet" {
		t.Errorf("restore without snapshot: message = %q", m.message)
	}

	m, _ = press(t, m, runes("n"))
	m, _ = press(t, m, runes("n"))
	m, _ = press(t, m, runes("s"))
	if !strings.Contains(m.Status(), "[saved]") {
		t.Errorf("Status() should show the snapshot: %q", m.Status())
	}
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, runes("n"))
	}
	if n := m.runner.Engine().Expanded(); n != 5 {
		t.Fatalf("expanded = %d, expected 5", n)
	}

	m, _ = press(t, m, runes("r"))
	if n := m.runner.Engine().Expanded(); n != 2 {
		t.Errorf("after restore expanded = %d, expected 2", n)
	}

	m, _ = press(t, m, runes("x"))
	if n := m.runner.Engine().Expanded(); n != 0 {
		t.Errorf("after restart expanded = %d, expected 0", n)
	}
	if m.runner.HasSnapshot() {
		t.Error("restart should drop the snapshot")
	}
}

func TestVisualizerSpeed(t *testing.T) {
	m := newVisualizer(t, "S....", ".....", "....G")

	m, _ = press(t, m, runes("+"))
	if m.speed.String() != "2x" {
		t.Fatalf("speed = %s, expected 2x", m.speed)
	}
	m = tick(t, m)
	if n := m.runner.Engine().Expanded(); n != 2 {
		t.Errorf("2x tick expanded %d", n)
	}

	m, _ = press(t, m, runes("-"))
	m, _ = press(t, m, runes("-"))
	if m.speed.String() != "1/2" {
		t.Errorf("speed = %s, expected 1/2", m.speed)
	}
}

func TestVisualizerNextStrategy(t *testing.T) {
	m := newVisualizer(t, "S..", "...", "..G")

	m, _ = press(t, m, runes("n"))
	m, _ = press(t, m, keyTab)
	if got := m.runner.Strategy(); got != "greedy" {
		t.Errorf("strategy = %q, expected greedy", got)
	}
	if n := m.runner.Engine().Expanded(); n != 0 {
		t.Errorf("new strategy should start over, expanded = %d", n)
	}

	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, keyTab)
	if got := m.runner.Strategy(); got != "bfs" {
		t.Errorf("strategy = %q, expected bfs after a full cycle", got)
	}
}

func TestVisualizerNextStrategySkipsRejected(t *testing.T) {
	// Two goals: only BFS accepts the map.
	m := newVisualizer(t, "S.G", "..G")

	m, _ = press(t, m, keyTab)
	if got := m.runner.Strategy(); got != "bfs" {
		t.Errorf("strategy = %q, expected bfs", got)
	}
	if m.message != "no other strategy accepts this map" {
		t.Errorf("message = %q", m.message)
	}
}

func TestVisualizerFailedStatus(t *testing.T) {
	m := newVisualizer(t, "S#G")
	if _, err := m.runner.RunToEnd(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(m.Status(), "NO PATH") {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestVisualizerBackAndQuit(t *testing.T) {
	m := newVisualizer(t, "S.G")

	back, cmd := press(t, m, keyEsc)
	if !back.BackToMenu() {
		t.Error("esc should request the menu")
	}
	if cmd != nil {
		t.Error("back inside a session should not quit the program")
	}

	m.standalone = true
	if _, cmd := press(t, m, keyEsc); cmd == nil {
		t.Error("back in a standalone visualizer should quit")
	}

	quit, cmd := press(t, m, runes("q"))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestVisualizerView(t *testing.T) {
	m := newVisualizer(t, "S..", "...", "..G")

	view := m.View()
	if !strings.Contains(view, "Test  [bfs, rectangle]") {
		t.Errorf("View() should contain the header, got:\n%s", view)
	}
	if !strings.Contains(m.screen.String(), "S..") {
		t.Errorf("screen should show the grid, got:\n%s", m.screen.String())
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	m.View()
	if m.screen.Width() != 20 {
		t.Errorf("screen width = %d after resize", m.screen.Width())
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'c', core.ColorRed)
	s.DrawTextColored(0, 1, "xy", core.ColorGray)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines", len(lines))
	}
	for _, want := range []string{"ab", "c", "xy"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output missing %q: %q", want, out)
		}
	}
}

func testMaps() []maps.Map {
	return []maps.Map{
		{ID: "alpha", Name: "Alpha", Grid: world.MustFromRows("S.G")},
		{ID: "beta", Grid: world.MustFromRows("S..", "..G"), Shape: world.KindTorus},
	}
}

func pressMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(testMaps(), "astar", core.RuntimeConfig{ScreenW: 100, ScreenH: 30})

	m, _ = pressMenu(t, m, keyDown)
	m, _ = pressMenu(t, m, keyDown) // stays on the last map
	m, _ = pressMenu(t, m, keyRight)
	m, _ = pressMenu(t, m, runes("t"))
	m, cmd := pressMenu(t, m, keyEnter)
	if cmd == nil {
		t.Error("selection should end the menu")
	}

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil")
	}
	if sel.Map.ID != "beta" || sel.Strategy != "bfs" || sel.Shape != world.KindRectangle {
		t.Errorf("Selected() = %s, %s, %s", sel.Map.ID, sel.Strategy, sel.Shape)
	}
}

func TestMenuStrategyWraps(t *testing.T) {
	m := NewMenuModel(testMaps(), "astar", core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	m, _ = pressMenu(t, m, runes("h"))
	m, _ = pressMenu(t, m, keyEnter)
	if got := m.Selected().Strategy; got != "greedy" {
		t.Errorf("strategy = %q, expected greedy", got)
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(testMaps(), "bfs", core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	m = m.WithNotice("registry: greedy: multiple goals")

	view := m.View()
	for _, want := range []string{"Alpha", "beta", "torus", "Breadth-first", "multiple goals"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}

	m, _ = pressMenu(t, m, keyDown)
	if strings.Contains(m.View(), "multiple goals") {
		t.Error("notice should clear on the next key")
	}

	empty := NewMenuModel(nil, "bfs", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if !strings.Contains(empty.View(), "No maps found.") {
		t.Error("empty menu should say so")
	}
	if empty, _ = pressMenu(t, empty, keyEnter); empty.Selected() != nil {
		t.Error("empty menu should not select")
	}
}

// fakeHistory serves runs from memory.
type fakeHistory struct {
	runs    []storage.Run
	err     error
	queried []string
}

func (f *fakeHistory) RecentRuns(limit int) ([]storage.Run, error) {
	f.queried = append(f.queried, "")
	return f.runs, f.err
}

func (f *fakeHistory) RunsForMap(mapID string, limit int) ([]storage.Run, error) {
	f.queried = append(f.queried, mapID)
	var out []storage.Run
	for _, r := range f.runs {
		if r.MapID == mapID {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeHistory) StrategyStats(mapID string) ([]storage.StrategyStats, error) {
	return []storage.StrategyStats{{Strategy: "bfs", Runs: 1, Finished: 1, BestPath: 4}}, nil
}

func sampleRuns() []storage.Run {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []storage.Run{
		{MapID: "open", Strategy: "bfs", Shape: "rectangle", Status: "Finished", PathLen: 4, Steps: 20, Visited: 25, CreatedAt: at},
		{MapID: "walled", Strategy: "astar", Shape: "torus", Status: "Failed", Reason: "goal unreachable", PathLen: -1, Steps: 3, Visited: 3, CreatedAt: at},
		{MapID: "open", Strategy: "astar", Shape: "rectangle", Status: "Finished", PathLen: 4, Steps: 5, Visited: 9, CreatedAt: at},
	}
}

func TestRunRow(t *testing.T) {
	runs := sampleRuns()

	row := RunRow(runs[0])
	if len(row) != len(HistoryColumns) {
		t.Fatalf("row has %d cells, expected %d", len(row), len(HistoryColumns))
	}
	if row[1] != "open" || row[5] != "4" || row[6] != "20" || row[7] != "25" {
		t.Errorf("RunRow(finished) = %v", row)
	}

	row = RunRow(runs[1])
	if row[4] != "Failed (goal unreachable)" || row[5] != "-" {
		t.Errorf("RunRow(failed) = %v", row)
	}
}

func TestHistoryFilters(t *testing.T) {
	src := &fakeHistory{runs: sampleRuns()}
	m := NewHistoryModel(src, "", 120, 30)

	if got := strings.Join(m.filters, ","); got != "all maps,open,walled" {
		t.Fatalf("filters = %s", got)
	}
	if len(m.Runs()) != 3 {
		t.Errorf("all maps lists %d runs", len(m.Runs()))
	}

	next, _ := m.Update(keyTab)
	m = next.(HistoryModel)
	if len(m.Runs()) != 2 {
		t.Errorf("open lists %d runs", len(m.Runs()))
	}
	if last := src.queried[len(src.queried)-1]; last != "open" {
		t.Errorf("last query for %q", last)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.filters[m.filter] != "walled" {
		t.Errorf("filter = %s, expected wrap to walled", m.filters[m.filter])
	}

	view := m.View()
	if !strings.Contains(view, "RUN HISTORY - walled") {
		t.Errorf("view missing title:\n%s", view)
	}
}

func TestHistoryPreselectedMap(t *testing.T) {
	m := NewHistoryModel(&fakeHistory{runs: sampleRuns()}, "walled", 80, 24)
	if len(m.Runs()) != 1 || m.Runs()[0].MapID != "walled" {
		t.Errorf("Runs() = %+v", m.Runs())
	}

	unseen := NewHistoryModel(&fakeHistory{runs: sampleRuns()}, "spiral", 80, 24)
	if unseen.filters[unseen.filter] != "spiral" || len(unseen.Runs()) != 0 {
		t.Errorf("unknown map should be selectable with no runs")
	}
}

func TestHistoryEmptyAndErrors(t *testing.T) {
	m := NewHistoryModel(nil, "", 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty history should say so")
	}

	broken := NewHistoryModel(&fakeHistory{err: errors.New("disk on fire")}, "", 80, 24)
	if !strings.Contains(broken.View(), "disk on fire") {
		t.Error("history should show the store error")
	}
}

func TestHistoryBack(t *testing.T) {
	m := NewHistoryModel(nil, "", 80, 24)
	next, cmd := m.Update(keyEsc)
	h := next.(HistoryModel)
	if !h.IsGoingBack() || cmd != nil {
		t.Error("esc should go back without quitting")
	}

	m.standalone = true
	if _, cmd := m.Update(keyEsc); cmd == nil {
		t.Error("standalone history should quit on back")
	}
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(Session{
		Loader:   maps.NewLoader("../../maps/testdata"),
		Settings: config.DefaultConfig(),
		Logger:   log.New(io.Discard),
	}, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "tester")
}

func step(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionFlow(t *testing.T) {
	m := newTestSession(t)
	if len(m.menu.maps) == 0 {
		t.Fatal("session menu should list the testdata maps")
	}

	m, cmd := step(t, m, keyEnter)
	if m.viz == nil {
		t.Fatal("enter should open the visualizer")
	}
	if cmd == nil {
		t.Error("visualizer should start its tick loop")
	}
	if got := m.viz.runner.Strategy(); got != "astar" {
		t.Errorf("strategy = %q, expected the configured default", got)
	}

	m, _ = step(t, m, keyEsc)
	if m.viz != nil {
		t.Fatal("esc should return to the menu")
	}

	m, _ = step(t, m, keyTab)
	if m.history == nil {
		t.Fatal("tab should open the history")
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("session without a store should show an empty history")
	}

	m, _ = step(t, m, keyEsc)
	if m.history != nil {
		t.Fatal("esc should leave the history")
	}

	m, cmd = step(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q should quit the session")
	}
}

func TestSessionRejectedStrategy(t *testing.T) {
	m := newTestSession(t)
	m.menu = NewMenuModel([]maps.Map{
		{ID: "twins", Grid: world.MustFromRows("S.G", "..G")},
	}, "astar", m.config)

	m, _ = step(t, m, keyEnter)
	if m.viz != nil {
		t.Fatal("astar should reject a map with two goals")
	}
	if m.menu.notice == "" {
		t.Error("the menu should explain the rejection")
	}
}
