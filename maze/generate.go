package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	minDimension = 3 // Smallest side that still has an interior cell.
)

var (
	ErrInvalidDimension = errors.New("maze dimensions must be odd and at least 3")
)

// steps are the double-step vectors to neighbouring intersections, in the order
// up, right, down, left. Each carve shuffles its own copy.
var steps = [4]Position{
	{X: 0, Y: -2},
	{X: 2, Y: 0},
	{X: 0, Y: 2},
	{X: -2, Y: 0},
}

// RandomSource yields uniformly distributed numbers in [0,1).
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Options configures maze generation.
type Options struct {
	Seed   int64        // Seed for reproducible mazes (0 = time based).
	Source RandomSource // Source overrides Seed when set.
}

// Generator produces mazes from a single random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng RandomSource
}

// NewGenerator creates a maze generator with the given options.
func NewGenerator(opts *Options) *Generator {
	if opts == nil {
		opts = &Options{}
	}

	if opts.Source != nil {
		return &Generator{rng: opts.Source}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// New generates a width x height maze using a generator built from opts.
func New(width, height int, opts *Options) (*Maze, error) {
	return NewGenerator(opts).Generate(width, height)
}

// Generate carves a new perfect maze. Width and height must be odd and at least 3.
func (g *Generator) Generate(width, height int) (*Maze, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}

	grid := newGrid(width, height)
	g.carve(grid, width, height, Position{X: 1, Y: 1})

	end := Position{X: width - 2, Y: height - 2}
	grid[end.Y][end.X] = Open

	return &Maze{
		Grid:   grid,
		Start:  Position{X: 1, Y: 1},
		End:    end,
		Size:   width,
		Width:  width,
		Height: height,
	}, nil
}

func validateDimensions(width, height int) error {
	if min(width, height) < minDimension || width%2 == 0 || height%2 == 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	return nil
}

// frame is one pending carve: the intersection being carved, its shuffled
// directions and the index of the next direction to try.
type frame struct {
	pos  Position
	dirs [4]Position
	next int
}

// carve opens every reachable intersection starting from origin. It walks the
// lattice depth first with an explicit stack; a frame is popped once all four of
// its directions have been tried, which hands control back to its parent exactly
// like returning from a recursive call would.
func (g *Generator) carve(grid Grid, width, height int, origin Position) {
	grid[origin.Y][origin.X] = Open
	stack := []*frame{{pos: origin, dirs: g.shuffledSteps()}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++

		n := top.pos.Add(d)
		if n.X <= 0 || n.X >= width-1 || n.Y <= 0 || n.Y >= height-1 || grid[n.Y][n.X] != Wall {
			continue
		}

		grid[top.pos.Y+d.Y/2][top.pos.X+d.X/2] = Open
		grid[n.Y][n.X] = Open
		stack = append(stack, &frame{pos: n, dirs: g.shuffledSteps()})
	}
}

// shuffledSteps returns the four step vectors in a uniformly random order using
// an in-place Fisher-Yates shuffle.
func (g *Generator) shuffledSteps() [4]Position {
	dirs := steps
	for i := len(dirs) - 1; i > 0; i-- {
		j := int(g.rng.Float64() * float64(i+1))
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
