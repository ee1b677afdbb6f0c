package gameapi

import (
	"encoding/json"

	"github.com/beka-birhanu/penguin-maze/game"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxFrameSize bounds a client frame. A move frame is just {"direction":"up"}.
const maxFrameSize = 512

// wsError is sent back over the socket when a frame cannot be applied.
type wsError struct {
	Error string `json:"error"`
}

// play upgrades the request and applies every direction frame the client sends,
// answering each with the resulting snapshot. The first frame sent is the
// current snapshot.
func (c *Controller) play(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	snap, err := c.sessions.Snapshot(playerID, sessionID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	if err := conn.WriteJSON(NewSnapshotResponse(sessionID, snap)); err != nil {
		return
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var request MoveRequest
		if err := json.Unmarshal(frame, &request); err != nil {
			if err := conn.WriteJSON(wsError{Error: "malformed frame"}); err != nil {
				return
			}
			continue
		}

		d, err := game.ParseDirection(request.Direction)
		if err != nil {
			if err := conn.WriteJSON(wsError{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		snap, err := c.sessions.Move(playerID, sessionID, d)
		if err != nil {
			_ = conn.WriteJSON(wsError{Error: err.Error()})
			return
		}

		if err := conn.WriteJSON(NewSnapshotResponse(sessionID, snap)); err != nil {
			return
		}
	}
}
