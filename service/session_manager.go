package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/beka-birhanu/penguin-maze/difficulty"
	"github.com/beka-birhanu/penguin-maze/game"
	"github.com/beka-birhanu/penguin-maze/maze"
	"github.com/beka-birhanu/penguin-maze/service/i"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("game session not found")
	ErrSessionForbidden = errors.New("game session belongs to another player")
)

// sessionEntry ties a game session to the player who owns it.
type sessionEntry struct {
	game     *game.Session
	playerID uuid.UUID
}

// GameSessionManager keeps one game session per player in memory and persists
// level changes through a LevelStore.
type GameSessionManager struct {
	levels          i.LevelStore
	newGenerator    func() *maze.Generator
	sessions        map[uuid.UUID]*sessionEntry
	playerToSession map[uuid.UUID]uuid.UUID
	logger          i.Logger
	sync.RWMutex
}

// Config holds the dependencies of a GameSessionManager.
type Config struct {
	LevelStore i.LevelStore
	// GeneratorFactory returns the maze generator for a new session. Each session
	// gets its own generator since generators are not safe for concurrent use.
	// Defaults to randomly seeded generators.
	GeneratorFactory func() *maze.Generator
	Logger           i.Logger
}

var _ i.GameSessionManager = &GameSessionManager{}

// NewGameSessionManager creates a session manager.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c == nil || c.LevelStore == nil || c.Logger == nil {
		return nil, errors.New("session manager requires a level store and a logger")
	}

	factory := c.GeneratorFactory
	if factory == nil {
		factory = func() *maze.Generator {
			return maze.NewGenerator(&maze.Options{Seed: rand.Int63()})
		}
	}

	return &GameSessionManager{
		levels:          c.LevelStore,
		newGenerator:    factory,
		sessions:        make(map[uuid.UUID]*sessionEntry),
		playerToSession: make(map[uuid.UUID]uuid.UUID),
		logger:          c.Logger,
	}, nil
}

// NewSession starts a game for playerID at their stored level. Any previous
// session of the player is dropped.
func (g *GameSessionManager) NewSession(ctx context.Context, playerID uuid.UUID) (uuid.UUID, game.Snapshot, error) {
	level, found, err := g.levels.Level(ctx, playerID)
	if err != nil {
		g.logger.Error(fmt.Sprintf("reading level for player %s: %s", playerID, err))
		return uuid.Nil, game.Snapshot{}, err
	}
	if !found {
		level = difficulty.DefaultLevel
	}

	gs, err := game.NewSession(game.SessionConfig{
		Level:     level,
		Generator: g.newGenerator(),
	})
	if err != nil {
		g.logger.Error(fmt.Sprintf("creating game session for player %s: %s", playerID, err))
		return uuid.Nil, game.Snapshot{}, err
	}

	sessionID := g.saveSession(playerID, gs)
	snapshot := gs.Snapshot()
	g.logger.Info(fmt.Sprintf("started session %s for player %s at level %d (%dx%d)", sessionID, playerID, snapshot.Level, snapshot.Maze.Width, snapshot.Maze.Height))
	return sessionID, snapshot, nil
}

// Snapshot returns the current state of the session.
func (g *GameSessionManager) Snapshot(playerID, sessionID uuid.UUID) (game.Snapshot, error) {
	gs, err := g.lookup(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return gs.Snapshot(), nil
}

// Move applies one direction intent to the session.
func (g *GameSessionManager) Move(playerID, sessionID uuid.UUID, d game.Direction) (game.Snapshot, error) {
	gs, err := g.lookup(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}

	snapshot := gs.AttemptMove(d)
	if snapshot.Won {
		g.logger.Info(fmt.Sprintf("player %s solved level %d in %d moves", playerID, snapshot.Level, snapshot.State.MoveCount))
	}
	return snapshot, nil
}

// ChangeDifficulty shifts the session's level by delta.
func (g *GameSessionManager) ChangeDifficulty(ctx context.Context, playerID, sessionID uuid.UUID, delta int) (game.Snapshot, error) {
	return g.relevel(ctx, playerID, sessionID, func(gs *game.Session) (int, error) {
		return gs.ChangeDifficulty(delta)
	})
}

// NextLevel advances the session one level.
func (g *GameSessionManager) NextLevel(ctx context.Context, playerID, sessionID uuid.UUID) (game.Snapshot, error) {
	return g.relevel(ctx, playerID, sessionID, (*game.Session).NextLevel)
}

// GiveUp retreats the session one level.
func (g *GameSessionManager) GiveUp(ctx context.Context, playerID, sessionID uuid.UUID) (game.Snapshot, error) {
	return g.relevel(ctx, playerID, sessionID, (*game.Session).GiveUp)
}

// Regenerate replaces the session's maze without changing its level.
func (g *GameSessionManager) Regenerate(playerID, sessionID uuid.UUID, width, height int) (game.Snapshot, error) {
	gs, err := g.lookup(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}

	if err := gs.Regenerate(width, height); err != nil {
		return game.Snapshot{}, err
	}
	return gs.Snapshot(), nil
}

// End drops the session.
func (g *GameSessionManager) End(playerID, sessionID uuid.UUID) error {
	if _, err := g.lookup(playerID, sessionID); err != nil {
		return err
	}

	g.clean(sessionID)
	g.logger.Info(fmt.Sprintf("ended session %s for player %s", sessionID, playerID))
	return nil
}

// relevel runs a level-changing session operation and persists the new level.
// A failed write is logged but does not fail the request; the game goes on with
// the new maze and the stored level catches up on the next change.
func (g *GameSessionManager) relevel(ctx context.Context, playerID, sessionID uuid.UUID, change func(*game.Session) (int, error)) (game.Snapshot, error) {
	gs, err := g.lookup(playerID, sessionID)
	if err != nil {
		return game.Snapshot{}, err
	}

	level, err := change(gs)
	if err != nil {
		g.logger.Error(fmt.Sprintf("regenerating session %s: %s", sessionID, err))
		return game.Snapshot{}, err
	}

	if err := g.levels.SaveLevel(ctx, playerID, level); err != nil {
		g.logger.Warning(fmt.Sprintf("persisting level %d for player %s: %s", level, playerID, err))
	}

	return gs.Snapshot(), nil
}

func (g *GameSessionManager) lookup(playerID, sessionID uuid.UUID) (*game.Session, error) {
	g.RLock()
	defer g.RUnlock()

	entry, ok := g.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if entry.playerID != playerID {
		g.logger.Warning(fmt.Sprintf("player %s tried to access session %s", playerID, sessionID))
		return nil, ErrSessionForbidden
	}
	return entry.game, nil
}

func (g *GameSessionManager) saveSession(playerID uuid.UUID, gs *game.Session) uuid.UUID {
	g.Lock()
	defer g.Unlock()

	if old, ok := g.playerToSession[playerID]; ok {
		delete(g.sessions, old)
	}

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	g.sessions[sessionID] = &sessionEntry{game: gs, playerID: playerID}
	g.playerToSession[playerID] = sessionID
	return sessionID
}

func (g *GameSessionManager) clean(sessionID uuid.UUID) {
	g.Lock()
	defer g.Unlock()

	if entry, ok := g.sessions[sessionID]; ok {
		if g.playerToSession[entry.playerID] == sessionID {
			delete(g.playerToSession, entry.playerID)
		}
		delete(g.sessions, sessionID)
	}
}

// ActiveSessions returns the number of sessions in memory.
func (g *GameSessionManager) ActiveSessions() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions)
}
