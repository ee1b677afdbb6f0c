package i

import (
	"context"

	"github.com/google/uuid"
)

// LevelStore persists each player's difficulty level between sessions.
type LevelStore interface {
	// Level returns the stored level. found is false when nothing was stored yet.
	Level(ctx context.Context, playerID uuid.UUID) (level int, found bool, err error)

	// SaveLevel stores level for the player.
	SaveLevel(ctx context.Context, playerID uuid.UUID, level int) error
}
