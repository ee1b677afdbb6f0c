package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/penguin-maze/api/identity"
	"github.com/beka-birhanu/penguin-maze/game"
	"github.com/beka-birhanu/penguin-maze/maze"
	"github.com/beka-birhanu/penguin-maze/service"
	"github.com/beka-birhanu/penguin-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Controller handles HTTP requests for game sessions.
type Controller struct {
	sessions i.GameSessionManager
	upgrader websocket.Upgrader
}

// NewController creates a new game Controller.
func NewController(sessions i.GameSessionManager) *Controller {
	return &Controller{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers the game routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", c.newGame)
		games.GET("/:id", c.withSession(c.snapshot))
		games.DELETE("/:id", c.withSession(c.end))
		games.POST("/:id/moves", c.withSession(c.move))
		games.POST("/:id/difficulty", c.withSession(c.changeDifficulty))
		games.POST("/:id/next", c.withSession(c.nextLevel))
		games.POST("/:id/giveup", c.withSession(c.giveUp))
		games.POST("/:id/regenerate", c.withSession(c.regenerate))
		games.GET("/:id/ws", c.withSession(c.play))
	}
}

type sessionHandler func(ctx *gin.Context, playerID, sessionID uuid.UUID)

// withSession resolves the authenticated player and the session ID path parameter.
func (c *Controller) withSession(h sessionHandler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		playerID, ok := identity.PlayerID(ctx)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		sessionID, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
			return
		}

		h(ctx, playerID, sessionID)
	}
}

func (c *Controller) newGame(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	sessionID, snap, err := c.sessions.NewSession(ctx.Request.Context(), playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, NewSnapshotResponse(sessionID, snap))
}

func (c *Controller) snapshot(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	snap, err := c.sessions.Snapshot(playerID, sessionID)
	c.respond(ctx, sessionID, snap, err)
}

func (c *Controller) end(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	if err := c.sessions.End(playerID, sessionID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) move(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := game.ParseDirection(request.Direction)
	if err != nil {
		writeError(ctx, err)
		return
	}

	snap, err := c.sessions.Move(playerID, sessionID, d)
	c.respond(ctx, sessionID, snap, err)
}

func (c *Controller) changeDifficulty(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	var request DifficultyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := c.sessions.ChangeDifficulty(ctx.Request.Context(), playerID, sessionID, *request.Delta)
	c.respond(ctx, sessionID, snap, err)
}

func (c *Controller) nextLevel(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	snap, err := c.sessions.NextLevel(ctx.Request.Context(), playerID, sessionID)
	c.respond(ctx, sessionID, snap, err)
}

func (c *Controller) giveUp(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	snap, err := c.sessions.GiveUp(ctx.Request.Context(), playerID, sessionID)
	c.respond(ctx, sessionID, snap, err)
}

func (c *Controller) regenerate(ctx *gin.Context, playerID, sessionID uuid.UUID) {
	var request RegenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := c.sessions.Regenerate(playerID, sessionID, request.Width, request.Height)
	c.respond(ctx, sessionID, snap, err)
}

func (c *Controller) respond(ctx *gin.Context, sessionID uuid.UUID, snap game.Snapshot, err error) {
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewSnapshotResponse(sessionID, snap))
}

// writeError maps domain errors onto HTTP status codes.
func writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrUnknownDirection), errors.Is(err, maze.ErrInvalidDimension):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSessionForbidden):
		status = http.StatusForbidden
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
