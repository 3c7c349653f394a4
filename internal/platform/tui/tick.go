// Package tui provides the Bubble Tea front end for the pathfinding
// visualizer: the animation loop, key bindings, the map picker, the run
// history table and the SSH server that hosts them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the animation by one frame. Loop identifies
// the animation loop that scheduled it.
type TickMsg struct {
	Time time.Time
	Loop int64
}

var loops atomic.Int64

// newLoop returns an identifier for a fresh animation loop. Ticks from a
// closed visualizer may still be in flight and must not drive a new one.
func newLoop() int64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int, loop int64) tea.Cmd {
	if fps < 1 {
		fps = 1
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
