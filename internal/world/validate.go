package world

import "fmt"

// ValidationError contains details about a malformed grid.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation codes.
const (
	CodeBadSize       = "BAD_SIZE"
	CodeNoStart       = "NO_START"
	CodeNoGoal        = "NO_GOAL"
	CodeMultipleGoals = "MULTIPLE_GOALS"
)

// Validate checks the preconditions a search relies on:
//   - dimensions are positive and match the cell count
//   - at least one Start cell
//   - at least one Goal cell, and exactly one when singleGoal is set
//
// Engines assume these hold; drivers call Validate before building one.
func Validate(g *Grid, singleGoal bool) error {
	if g.W <= 0 || g.H <= 0 || len(g.Cells) != g.W*g.H {
		return ValidationError{
			Code:    CodeBadSize,
			Message: fmt.Sprintf("grid %dx%d has %d cells", g.W, g.H, len(g.Cells)),
		}
	}

	if g.Count(Start) == 0 {
		return ValidationError{
			Code:    CodeNoStart,
			Message: "grid has no start cell",
		}
	}

	goals := g.Count(Goal)
	if goals == 0 {
		return ValidationError{
			Code:    CodeNoGoal,
			Message: "grid has no goal cell",
		}
	}
	if singleGoal && goals > 1 {
		return ValidationError{
			Code:    CodeMultipleGoals,
			Message: fmt.Sprintf("grid has %d goal cells, strategy supports one", goals),
		}
	}

	return nil
}

// GridStats summarises a grid.
type GridStats struct {
	Width      int
	Height     int
	TotalCells int
	Walls      int
	Starts     int
	Goals      int
	WallRatio  float64
}

// ComputeGridStats analyzes a grid and returns statistics.
func ComputeGridStats(g *Grid) GridStats {
	total := g.W * g.H
	walls := g.Count(Impassable)
	stats := GridStats{
		Width:      g.W,
		Height:     g.H,
		TotalCells: total,
		Walls:      walls,
		Starts:     g.Count(Start),
		Goals:      g.Count(Goal),
	}
	if total > 0 {
		stats.WallRatio = float64(walls) / float64(total)
	}
	return stats
}
