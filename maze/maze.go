/*
Package maze provides tools for creating and inspecting rectangular perfect mazes.

A maze is a grid of `Wall` and `Open` cells laid out on a double-step lattice: cells
whose coordinates are both odd are intersections, and the cells between two
intersections are connectors that get opened to join them. Generation uses randomized
recursive backtracking, so the open cells always form a tree: every open cell is
reachable from the start and there is exactly one simple path between any two of them.

The entrant starts at (1,1) and the goal sits in the opposite corner at
(width-2, height-2). A maze is never mutated once generation returns.
*/
package maze

import (
	"strings"
)

// Maze is a generated grid together with its start and end cells.
type Maze struct {
	Grid   Grid     // Grid of cells, indexed [row][col].
	Start  Position // Start is always (1,1).
	End    Position // End is always (Width-2, Height-2).
	Size   int      // Size is the side length; generated mazes are square.
	Width  int      // Width of the maze (number of columns).
	Height int      // Height of the maze (number of rows).
}

// InBound reports whether (x, y) lies inside the grid.
func (m *Maze) InBound(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Cell returns the state at (x, y). Cells outside the grid read as Wall.
func (m *Maze) Cell(x, y int) CellState {
	if !m.InBound(x, y) {
		return Wall
	}
	return m.Grid[y][x]
}

// IsOpen reports whether (x, y) is inside the grid and walkable.
func (m *Maze) IsOpen(x, y int) bool {
	return m.Cell(x, y) == Open
}

// OpenCells returns the number of open cells in the grid.
func (m *Maze) OpenCells() int {
	n := 0
	for _, row := range m.Grid {
		for _, c := range row {
			if c == Open {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the maze so callers can hand it out without aliasing.
func (m *Maze) Clone() *Maze {
	c := *m
	c.Grid = m.Grid.clone()
	return &c
}

// Rows returns the grid as one string per row, using '#' for walls and ' ' for
// open cells. Start and end are not marked.
func (m *Maze) Rows() []string {
	rows := make([]string, m.Height)
	for y, row := range m.Grid {
		var sb strings.Builder
		sb.Grow(len(row))
		for _, c := range row {
			sb.WriteString(c.String())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String provides a textual representation of the maze with 'S' at the start and
// 'E' at the end.
func (m *Maze) String() string {
	var output strings.Builder

	for y, row := range m.Grid {
		for x, c := range row {
			switch {
			case x == m.Start.X && y == m.Start.Y:
				output.WriteByte('S')
			case x == m.End.X && y == m.End.Y:
				output.WriteByte('E')
			default:
				output.WriteString(c.String())
			}
		}
		output.WriteByte('\n')
	}

	return output.String()
}
