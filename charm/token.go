// ABOUTME: Bearer token storage on top of the charm KV client
// ABOUTME: Stores the opaque token under a fixed key and reports absence as api.ErrNoToken

package charm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/harperreed/freightdesk/api"
)

// TokenKey is the fixed key holding the bearer token.
const TokenKey = "token"

// TokenStore reads and writes the bearer token.
type TokenStore struct {
	client *Client
}

// NewTokenStore wraps a client.
func NewTokenStore(c *Client) *TokenStore {
	return &TokenStore{client: c}
}

// Token returns the stored token or api.ErrNoToken.
func (s *TokenStore) Token() (string, error) {
	value, err := s.client.Get([]byte(TokenKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", api.ErrNoToken
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(value))
	if token == "" {
		return "", api.ErrNoToken
	}
	return token, nil
}

// SetToken stores a token, replacing any previous one.
func (s *TokenStore) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	if err := s.client.Set([]byte(TokenKey), []byte(token)); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an absent token is not an error.
func (s *TokenStore) Clear() error {
	err := s.client.Delete([]byte(TokenKey))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
