package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/penguin-maze/domain"
	"github.com/beka-birhanu/penguin-maze/service/i"
	"github.com/google/uuid"
)

const defaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthConfig holds the dependencies of the auth service.
type AuthConfig struct {
	PlayerRepo i.PlayerRepo
	Tokenizer  i.Tokenizer
	Logger     i.Logger
	LevelStore i.LevelStore  // LevelStore, when set, supplies the level reported on sign in.
	TokenTTL   time.Duration // TokenTTL defaults to 24h.
	BcryptCost int           // BcryptCost is passed to domain.NewPlayer; zero uses its default.
}

// Auth registers players and issues tokens for them.
type Auth struct {
	playerRepo i.PlayerRepo
	tokenizer  i.Tokenizer
	logger     i.Logger
	levels     i.LevelStore
	tokenTTL   time.Duration
	bcryptCost int
}

var _ i.Authenticator = &Auth{}

// NewAuthService creates the auth service.
func NewAuthService(c AuthConfig) (*Auth, error) {
	if c.PlayerRepo == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, errors.New("auth service requires a player repo, a tokenizer and a logger")
	}

	ttl := c.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Auth{
		playerRepo: c.PlayerRepo,
		tokenizer:  c.Tokenizer,
		logger:     c.Logger,
		levels:     c.LevelStore,
		tokenTTL:   ttl,
		bcryptCost: c.BcryptCost,
	}, nil
}

// Register creates a player account at the default difficulty level.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	player, err := dmn.NewPlayer(dmn.PlayerConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
		BcryptCost:    a.bcryptCost,
	})
	if err != nil {
		return err
	}

	if err := a.playerRepo.Save(ctx, player); err != nil {
		a.logger.Error(fmt.Sprintf("saving player %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("registered player: %s", player.ID))
	return nil
}

// SignIn checks the credentials and returns the player with a fresh token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.Player, string, error) {
	player, err := a.playerRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !player.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	// Copy so the level refresh never writes through to a cached repo value.
	signedIn := *player
	player = &signedIn
	a.refreshLevel(ctx, player)

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   player.ID.String(),
		"username": player.Username,
	}, a.tokenTTL)
	if err != nil {
		a.logger.Error(fmt.Sprintf("generating token for %s: %s", player.ID, err))
		return nil, "", err
	}

	return player, token, nil
}

// refreshLevel replaces the player's stored level with the level store's copy,
// which is the one kept current while playing. A failed read keeps the stored level.
func (a *Auth) refreshLevel(ctx context.Context, player *dmn.Player) {
	if a.levels == nil {
		return
	}

	level, found, err := a.levels.Level(ctx, player.ID)
	if err != nil {
		a.logger.Warning(fmt.Sprintf("reading level for %s: %s", player.ID, err))
		return
	}
	if found {
		player.Level = level
	}
}
