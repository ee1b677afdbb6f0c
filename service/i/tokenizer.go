package i

import (
	"time"
)

// Tokenizer issues and validates the bearer tokens guarding the game routes.
type Tokenizer interface {
	// Generate signs claims into a token that expires after ttl.
	Generate(claims map[string]interface{}, ttl time.Duration) (string, error)

	// Decode validates a token and returns its claims. Expired or tampered tokens are rejected.
	Decode(token string) (map[string]interface{}, error)
}
