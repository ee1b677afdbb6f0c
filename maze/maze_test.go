package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

// constSource always returns the same value, which makes the shuffle predictable.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func floodFill(m *Maze) int {
	visited := mapset.New[Position]()
	queue := []Position{m.Start}
	visited.Put(m.Start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range []Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := cur.Add(d)
			if m.IsOpen(n.X, n.Y) && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited.Size()
}

// openEdges counts pairs of horizontally or vertically adjacent open cells.
func openEdges(m *Maze) int {
	edges := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsOpen(x, y) {
				continue
			}
			if m.IsOpen(x+1, y) {
				edges++
			}
			if m.IsOpen(x, y+1) {
				edges++
			}
		}
	}
	return edges
}

func TestNew(t *testing.T) {
	sizes := []int{3, 5, 7, 9, 21, 37, 101}

	for _, size := range sizes {
		for seed := int64(1); seed <= 5; seed++ {
			m, err := New(size, size, &Options{Seed: seed})
			require.NoError(t, err)

			t.Run("border is wall", func(t *testing.T) {
				for i := 0; i < size; i++ {
					assert.Equal(t, Wall, m.Grid[0][i])
					assert.Equal(t, Wall, m.Grid[size-1][i])
					assert.Equal(t, Wall, m.Grid[i][0])
					assert.Equal(t, Wall, m.Grid[i][size-1])
				}
			})

			t.Run("start and end", func(t *testing.T) {
				assert.Equal(t, Position{X: 1, Y: 1}, m.Start)
				assert.Equal(t, Position{X: size - 2, Y: size - 2}, m.End)
				assert.True(t, m.IsOpen(m.Start.X, m.Start.Y))
				assert.True(t, m.IsOpen(m.End.X, m.End.Y))
				assert.Equal(t, size, m.Size)
			})

			t.Run("every open cell is reachable", func(t *testing.T) {
				assert.Equal(t, m.OpenCells(), floodFill(m))
			})

			t.Run("open cells form a tree", func(t *testing.T) {
				assert.Equal(t, m.OpenCells()-1, openEdges(m))
			})

			t.Run("every intersection is carved", func(t *testing.T) {
				for y := 1; y < size-1; y += 2 {
					for x := 1; x < size-1; x += 2 {
						assert.True(t, m.IsOpen(x, y), "intersection (%d,%d)", x, y)
					}
				}
			})
		}
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"even width", 8, 9},
		{"even height", 9, 8},
		{"too small", 1, 1},
		{"zero", 0, 0},
		{"negative", -3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.width, tt.height, &Options{Seed: 1})
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ErrInvalidDimension))
		})
	}
}

func TestNewRectangular(t *testing.T) {
	m, err := New(11, 7, &Options{Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, 11, m.Width)
	assert.Equal(t, 7, m.Height)
	assert.Len(t, m.Grid, 7)
	assert.Len(t, m.Grid[0], 11)
	assert.Equal(t, Position{X: 9, Y: 5}, m.End)
	assert.Equal(t, m.OpenCells(), floodFill(m))
	assert.Equal(t, m.OpenCells()-1, openEdges(m))
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a, err := New(25, 25, &Options{Seed: 7})
	require.NoError(t, err)
	b, err := New(25, 25, &Options{Seed: 7})
	require.NoError(t, err)
	c, err := New(25, 25, &Options{Seed: 8})
	require.NoError(t, err)

	assert.Equal(t, a.Grid, b.Grid)
	assert.NotEqual(t, a.Grid, c.Grid)
}

func TestGeneratorProducesDifferentMazes(t *testing.T) {
	g := NewGenerator(&Options{Seed: 3})

	first, err := g.Generate(21, 21)
	require.NoError(t, err)
	second, err := g.Generate(21, 21)
	require.NoError(t, err)

	assert.NotEqual(t, first.Grid, second.Grid)
}

func TestCarveOrderWithFixedSource(t *testing.T) {
	// A source stuck at zero shuffles every frame to right, down, left, up.
	m, err := New(7, 7, &Options{Source: constSource(0)})
	require.NoError(t, err)

	expected := []string{
		"#######",
		"#     #",
		"##### #",
		"#   # #",
		"# ### #",
		"#     #",
		"#######",
	}
	assert.Equal(t, expected, m.Rows())
	assert.Equal(t, "#######\n#S    #\n##### #\n#   # #\n# ### #\n#    E#\n#######\n", m.String())
}

func TestSmallestMaze(t *testing.T) {
	m, err := New(3, 3, &Options{Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, m.OpenCells())
	assert.Equal(t, m.Start, m.End)
}

func TestClone(t *testing.T) {
	m, err := New(9, 9, &Options{Seed: 1})
	require.NoError(t, err)

	c := m.Clone()
	c.Grid[1][1] = Wall

	assert.Equal(t, Open, m.Grid[1][1])
	assert.Equal(t, m.End, c.End)
}

func TestCell(t *testing.T) {
	m, err := New(7, 7, &Options{Source: constSource(0)})
	require.NoError(t, err)

	assert.Equal(t, Wall, m.Cell(-1, 0))
	assert.Equal(t, Wall, m.Cell(7, 3))
	assert.Equal(t, Open, m.Cell(2, 1))
	assert.False(t, m.IsOpen(0, 0))
	assert.True(t, m.InBound(6, 6))
	assert.False(t, m.InBound(6, 7))
}
