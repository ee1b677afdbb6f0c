package maze

import "fmt"

// CellState is the passability of a single grid cell.
type CellState uint8

const (
	// Wall blocks movement.
	Wall CellState = iota
	// Open can be walked on.
	Open
)

// String returns the ASCII glyph used when printing a grid.
func (c CellState) String() string {
	if c == Open {
		return " "
	}
	return "#"
}

// Grid is a row-major matrix of cell states, indexed [row][col].
type Grid [][]CellState

// Position is a cell coordinate. X is the column and Y the row, both 0-based.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// newGrid allocates a width x height grid with every cell set to Wall.
func newGrid(width, height int) Grid {
	grid := make(Grid, height)
	for row := range grid {
		grid[row] = make([]CellState, width)
		for col := range grid[row] {
			grid[row][col] = Wall
		}
	}
	return grid
}

// clone returns a deep copy of the grid.
func (g Grid) clone() Grid {
	c := make(Grid, len(g))
	for row := range g {
		c[row] = append([]CellState(nil), g[row]...)
	}
	return c
}
