package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beka-birhanu/penguin-maze/difficulty"
	dmn "github.com/beka-birhanu/penguin-maze/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*Auth, *memPlayerRepo, *stubTokenizer) {
	t.Helper()
	repo := newMemPlayerRepo()
	tokens := &stubTokenizer{}
	auth, err := NewAuthService(AuthConfig{
		PlayerRepo: repo,
		Tokenizer:  tokens,
		Logger:     &recordingLogger{},
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	return auth, repo, tokens
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	const password = "glacier-penguin-herring-42"

	t.Run("register then sign in", func(t *testing.T) {
		auth, repo, tokens := newTestAuth(t)

		require.NoError(t, auth.Register(ctx, "pingu", password))
		assert.Len(t, repo.players, 1)

		player, token, err := auth.SignIn(ctx, "pingu", password)
		require.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.Equal(t, "pingu", player.Username)
		assert.Equal(t, player.ID.String(), tokens.lastClaims["userID"])
		assert.Equal(t, time.Hour, tokens.lastTTL)
	})

	t.Run("wrong password", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		require.NoError(t, auth.Register(ctx, "pingu", password))

		_, _, err := auth.SignIn(ctx, "pingu", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)

		_, _, err := auth.SignIn(ctx, "nobody", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		auth, repo, _ := newTestAuth(t)

		assert.Error(t, auth.Register(ctx, "pingu", "123"))
		assert.Empty(t, repo.players)
	})

	t.Run("duplicate username", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		require.NoError(t, auth.Register(ctx, "pingu", password))

		err := auth.Register(ctx, "pingu", password)
		assert.ErrorIs(t, err, dmn.ErrUsernameTaken)
	})

	t.Run("sign in reports the level store's level", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)
		levels := newMemLevelStore()
		auth.levels = levels
		require.NoError(t, auth.Register(ctx, "pingu", password))

		player, _, err := auth.SignIn(ctx, "pingu", password)
		require.NoError(t, err)
		assert.Equal(t, difficulty.DefaultLevel, player.Level, "nothing stored yet")

		require.NoError(t, levels.SaveLevel(ctx, player.ID, 11))
		player, _, err = auth.SignIn(ctx, "pingu", password)
		require.NoError(t, err)
		assert.Equal(t, 11, player.Level)

		levels.readErr = errors.New("redis down")
		player, _, err = auth.SignIn(ctx, "pingu", password)
		require.NoError(t, err, "a failed level read does not block sign in")
		assert.Equal(t, difficulty.DefaultLevel, player.Level)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := NewAuthService(AuthConfig{})
		assert.Error(t, err)
	})
}
