package search

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// ErrGoalUnreachable is reported when the frontier runs dry before any goal
// node is reached.
var ErrGoalUnreachable = errors.New("goal unreachable")

// Status is the lifecycle stage of an engine.
type Status uint8

const (
	NotStarted Status = iota
	InProgress
	Finished
	Failed
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case InProgress:
		return "InProgress"
	case Finished:
		return "Finished"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// State is the outcome of an engine so far.
// Path is set only when Finished and runs from goal back to start.
// Reason is set only when Failed.
type State struct {
	Status Status
	Path   []world.Position
	Reason string
}

// Over reports whether the state is terminal.
func (s State) Over() bool {
	return s.Status == Finished || s.Status == Failed
}

// Err returns ErrGoalUnreachable for a failed search and nil otherwise.
func (s State) Err() error {
	if s.Status != Failed {
		return nil
	}
	if s.Reason == ErrGoalUnreachable.Error() {
		return ErrGoalUnreachable
	}
	return errors.New(s.Reason)
}

// Route returns the path in start-to-goal order.
func (s State) Route() []world.Position {
	return Reverse(s.Path)
}

// Moves returns the number of moves along the path, or -1 if there is none.
func (s State) Moves() int {
	if s.Status != Finished || len(s.Path) == 0 {
		return -1
	}
	return len(s.Path) - 1
}

// String returns a short description of the state.
func (s State) String() string {
	switch s.Status {
	case Finished:
		return fmt.Sprintf("Finished(%d moves)", s.Moves())
	case Failed:
		return fmt.Sprintf("Failed(%s)", s.Reason)
	default:
		return s.Status.String()
	}
}

// clone returns a copy that shares no memory with s.
func (s State) clone() State {
	if s.Path != nil {
		s.Path = append([]world.Position(nil), s.Path...)
	}
	return s
}

// finished builds a Finished state for path.
func finished(path []world.Position) State {
	return State{Status: Finished, Path: path}
}

// unreachable builds the Failed state for an exhausted frontier.
func unreachable() State {
	return State{Status: Failed, Reason: ErrGoalUnreachable.Error()}
}
