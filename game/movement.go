package game

import (
	"github.com/beka-birhanu/penguin-maze/maze"
)

// Phase is the coarse state of a game: still playing or already solved.
type Phase int

const (
	Playing Phase = iota
	Solved
)

func (p Phase) String() string {
	if p == Solved {
		return "solved"
	}
	return "playing"
}

// State is the entrant's live movement state inside one maze.
type State struct {
	Position  maze.Position // Position is always an open cell.
	Facing    Direction     // Facing is the last attempted direction.
	MoveCount int           // MoveCount counts successful moves only.
	Solved    bool          // Solved is set once Position reaches the maze end and never cleared.
}

// Phase returns Solved once the goal has been reached.
func (s State) Phase() Phase {
	if s.Solved {
		return Solved
	}
	return Playing
}

// Reset returns the starting state for m.
func Reset(m *maze.Maze) State {
	return State{
		Position:  m.Start,
		Facing:    Down,
		MoveCount: 0,
		Solved:    false,
	}
}

// AttemptMove applies one directional intent to s and returns the resulting state.
// won is true only on the call that moves the entrant onto the goal.
//
// Unknown directions and any input after the maze is solved leave s untouched.
// Otherwise the entrant always turns to face d, and steps forward only when the
// target cell is inside the grid and open.
func AttemptMove(s State, m *maze.Maze, d Direction) (next State, won bool) {
	delta, ok := Directions[d]
	if !ok || s.Solved {
		return s, false
	}

	next = s
	next.Facing = d

	target := s.Position.Add(delta)
	if !m.IsOpen(target.X, target.Y) {
		return next, false
	}

	next.Position = target
	next.MoveCount++
	if target == m.End {
		next.Solved = true
		return next, true
	}

	return next, false
}
