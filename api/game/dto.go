// Package gameapi exposes game sessions over HTTP and websockets.
package gameapi

import (
	"github.com/beka-birhanu/penguin-maze/game"
	"github.com/beka-birhanu/penguin-maze/maze"
	"github.com/google/uuid"
)

// MoveRequest carries one direction intent.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// DifficultyRequest shifts the level by Delta.
type DifficultyRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// RegenerateRequest asks for a new maze of the given dimensions at the current level.
type RegenerateRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// SnapshotResponse is the wire form of a game session.
type SnapshotResponse struct {
	SessionID string        `json:"session_id"`
	Level     int           `json:"level"`
	Size      int           `json:"size"`
	Grid      []string      `json:"grid"`
	Start     maze.Position `json:"start"`
	End       maze.Position `json:"end"`
	Position  maze.Position `json:"position"`
	Facing    string        `json:"facing"`
	Moves     int           `json:"moves"`
	Solved    bool          `json:"solved"`
	Won       bool          `json:"won"`
	Message   string        `json:"message,omitempty"`
}

// NewSnapshotResponse converts a session snapshot into its response form.
func NewSnapshotResponse(sessionID uuid.UUID, s game.Snapshot) *SnapshotResponse {
	return &SnapshotResponse{
		SessionID: sessionID.String(),
		Level:     s.Level,
		Size:      s.Maze.Size,
		Grid:      s.Maze.Rows(),
		Start:     s.Maze.Start,
		End:       s.Maze.End,
		Position:  s.State.Position,
		Facing:    string(s.State.Facing),
		Moves:     s.State.MoveCount,
		Solved:    s.State.Solved,
		Won:       s.Won,
		Message:   s.Message,
	}
}
