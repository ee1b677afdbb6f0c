package i

import (
	"context"

	dmn "github.com/beka-birhanu/penguin-maze/domain"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*dmn.Player, string, error)
}
