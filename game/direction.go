package game

import (
	"errors"
	"strings"

	"github.com/beka-birhanu/penguin-maze/maze"
)

// Direction is one of the four cardinal moves. It doubles as the entrant's facing.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

var (
	// Directions maps each direction to its single-step offset.
	Directions = map[Direction]maze.Position{
		Up:    {X: 0, Y: -1},
		Down:  {X: 0, Y: 1},
		Left:  {X: -1, Y: 0},
		Right: {X: 1, Y: 0},
	}

	ErrUnknownDirection = errors.New("unknown direction")
)

// keyAliases lets keyboard-style input name a direction.
var keyAliases = map[string]Direction{
	"w": Up,
	"s": Down,
	"a": Left,
	"d": Right,
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	_, ok := Directions[d]
	return ok
}

// ParseDirection converts user input such as "Up", "left" or "w" to a Direction.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d := Direction(s); d.Valid() {
		return d, nil
	}
	if d, ok := keyAliases[s]; ok {
		return d, nil
	}
	return "", ErrUnknownDirection
}
