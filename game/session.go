package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/penguin-maze/difficulty"
	"github.com/beka-birhanu/penguin-maze/maze"
)

// Messages shown to the player after session events.
const (
	WinMessage     = "You caught the fish!"
	EasierMessage  = "Here's an easier one!"
	EasiestMessage = "This is the easiest maze!"
	noMessage      = ""
)

var (
	ErrNilGenerator = errors.New("maze generator is required")
)

// MaxDimension is the largest width or height Regenerate accepts: the side of the
// hardest level's maze.
var MaxDimension = difficulty.SizeFor(difficulty.MaxLevel)

// SessionConfig holds the parameters for starting a session.
type SessionConfig struct {
	Level     int             // Level is clamped into the supported range.
	Generator *maze.Generator // Generator produces every maze of the session.
}

// Snapshot is an immutable copy of a session for rendering.
type Snapshot struct {
	Level   int
	Maze    *maze.Maze
	State   State
	Won     bool // Won is true only in the snapshot returned by the winning move.
	Message string
}

// Session owns one maze and the entrant's movement state in it. It orchestrates
// regeneration on difficulty changes, next level and give up.
// A Session is safe for concurrent use.
type Session struct {
	level     int
	maze      *maze.Maze
	state     State
	message   string
	generator *maze.Generator
	sync.RWMutex
}

// NewSession generates the first maze for cfg.Level and places the entrant at its start.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Generator == nil {
		return nil, ErrNilGenerator
	}

	s := &Session{generator: cfg.Generator}
	if err := s.regenerateLevel(difficulty.Clamp(cfg.Level)); err != nil {
		return nil, err
	}
	return s, nil
}

// Level returns the current difficulty level.
func (s *Session) Level() int {
	s.RLock()
	defer s.RUnlock()
	return s.level
}

// AttemptMove processes one direction intent and returns the resulting snapshot,
// taken under the same lock. Snapshot.Won reports whether this move won the game.
func (s *Session) AttemptMove(d Direction) Snapshot {
	s.Lock()
	defer s.Unlock()

	next, won := AttemptMove(s.state, s.maze, d)
	s.state = next
	if won {
		s.message = WinMessage
	}

	snap := s.snapshot()
	snap.Won = won
	return snap
}

// Regenerate replaces the maze with a new width x height one at the current level.
// Sides above MaxDimension are rejected with maze.ErrInvalidDimension. On error the
// session is left untouched.
func (s *Session) Regenerate(width, height int) error {
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: got %dx%d, largest is %dx%d", maze.ErrInvalidDimension, width, height, MaxDimension, MaxDimension)
	}

	s.Lock()
	defer s.Unlock()

	m, err := s.generator.Generate(width, height)
	if err != nil {
		return err
	}
	s.install(s.level, m)
	return nil
}

// ChangeDifficulty moves the level by delta, regenerates and returns the new level.
func (s *Session) ChangeDifficulty(delta int) (int, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.regenerateLevel(difficulty.Change(s.level, delta)); err != nil {
		return s.level, err
	}
	return s.level, nil
}

// NextLevel advances one level and regenerates.
func (s *Session) NextLevel() (int, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.regenerateLevel(difficulty.Advance(s.level)); err != nil {
		return s.level, err
	}
	return s.level, nil
}

// GiveUp retreats one level and regenerates.
func (s *Session) GiveUp() (int, error) {
	s.Lock()
	defer s.Unlock()

	message := EasierMessage
	if s.level <= difficulty.MinLevel {
		message = EasiestMessage
	}

	if err := s.regenerateLevel(difficulty.Retreat(s.level)); err != nil {
		return s.level, err
	}
	s.message = message
	return s.level, nil
}

// Snapshot returns a copy of the session that shares no memory with it.
func (s *Session) Snapshot() Snapshot {
	s.RLock()
	defer s.RUnlock()
	return s.snapshot()
}

// snapshot copies the session. Callers hold the lock.
func (s *Session) snapshot() Snapshot {

	return Snapshot{
		Level:   s.level,
		Maze:    s.maze.Clone(),
		State:   s.state,
		Message: s.message,
	}
}

// regenerateLevel builds a maze sized for level. Callers hold the lock.
func (s *Session) regenerateLevel(level int) error {
	size := difficulty.SizeFor(level)
	m, err := s.generator.Generate(size, size)
	if err != nil {
		return err
	}
	s.install(level, m)
	return nil
}

// install swaps in a new maze and resets the movement state.
func (s *Session) install(level int, m *maze.Maze) {
	s.level = level
	s.maze = m
	s.state = Reset(m)
	s.message = noMessage
}
