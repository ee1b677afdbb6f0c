package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dmn "github.com/beka-birhanu/penguin-maze/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	registerErr error
	player      *dmn.Player
	signInErr   error
}

func (s *stubAuthenticator) Register(context.Context, string, string) error {
	return s.registerErr
}

func (s *stubAuthenticator) SignIn(context.Context, string, string) (*dmn.Player, string, error) {
	return s.player, "token", s.signInErr
}

func newIdentityEngine(auth *stubAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewIdentityServer(auth).RegisterPublic(r.Group("/v1"))
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"username taken", dmn.ErrUsernameTaken, http.StatusConflict},
		{"wrapped username taken", fmt.Errorf("saving: %w", dmn.ErrUsernameTaken), http.StatusConflict},
		{"short username", dmn.ErrUsernameTooShort, http.StatusBadRequest},
		{"long username", dmn.ErrUsernameTooLong, http.StatusBadRequest},
		{"bad characters", dmn.ErrInvalidUsernameChars, http.StatusBadRequest},
		{"weak password", dmn.ErrWeakPassword, http.StatusBadRequest},
		{"storage failure", fmt.Errorf("saving player: %w", errors.New("connection refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newIdentityEngine(&stubAuthenticator{registerErr: tt.err})
			w := postJSON(t, r, "/v1/auth/register", AuthRequest{Username: "pingu", Password: "pw"})
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		r := newIdentityEngine(&stubAuthenticator{})
		w := postJSON(t, r, "/v1/auth/register", map[string]string{"username": "pingu"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	player := &dmn.Player{ID: uuid.New(), Username: "pingu", Level: 9}

	t.Run("success", func(t *testing.T) {
		r := newIdentityEngine(&stubAuthenticator{player: player})
		w := postJSON(t, r, "/v1/auth/login", AuthRequest{Username: "pingu", Password: "pw"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, AuthResponse{ID: player.ID.String(), Username: "pingu", Level: 9, Token: "token"}, resp)
	})

	t.Run("bad credentials", func(t *testing.T) {
		r := newIdentityEngine(&stubAuthenticator{signInErr: errors.New("invalid username or password")})
		w := postJSON(t, r, "/v1/auth/login", AuthRequest{Username: "pingu", Password: "pw"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
