package i

import (
	"context"

	"github.com/beka-birhanu/penguin-maze/game"
	"github.com/google/uuid"
)

// GameSessionManager owns the active game sessions, one per player.
// Every method taking a session ID checks that it belongs to playerID.
type GameSessionManager interface {
	// NewSession starts a game at the player's persisted level and returns its ID.
	NewSession(ctx context.Context, playerID uuid.UUID) (uuid.UUID, game.Snapshot, error)

	// Snapshot returns the current state of a session.
	Snapshot(playerID, sessionID uuid.UUID) (game.Snapshot, error)

	// Move applies one direction intent. Snapshot.Won is set on the winning move.
	Move(playerID, sessionID uuid.UUID, d game.Direction) (game.Snapshot, error)

	// ChangeDifficulty shifts the level by delta, persists it and regenerates.
	ChangeDifficulty(ctx context.Context, playerID, sessionID uuid.UUID, delta int) (game.Snapshot, error)

	// NextLevel advances one level, persists it and regenerates.
	NextLevel(ctx context.Context, playerID, sessionID uuid.UUID) (game.Snapshot, error)

	// GiveUp retreats one level, persists it and regenerates.
	GiveUp(ctx context.Context, playerID, sessionID uuid.UUID) (game.Snapshot, error)

	// Regenerate replaces the maze with a width x height one at the same level.
	Regenerate(playerID, sessionID uuid.UUID, width, height int) (game.Snapshot, error)

	// End drops the session.
	End(playerID, sessionID uuid.UUID) error
}
