// ABOUTME: Tests for bearer token storage
// ABOUTME: Uses a badger-backed test client to verify set, read, and clear
package charm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/freightdesk/api"
)

func TestTokenStore_MissingToken(t *testing.T) {
	store := NewTokenStore(NewTestClient(t))

	_, err := store.Token()
	assert.ErrorIs(t, err, api.ErrNoToken)
}

func TestTokenStore_RoundTrip(t *testing.T) {
	c := NewTestClient(t)
	store := NewTokenStore(c)

	require.NoError(t, store.SetToken("  abc.def  "))
	tok, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	raw, err := c.Get([]byte(TokenKey))
	require.NoError(t, err)
	assert.Equal(t, "abc.def", string(raw))

	require.NoError(t, store.Clear())
	_, err = store.Token()
	assert.ErrorIs(t, err, api.ErrNoToken)

	assert.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestTokenStore_RejectsEmpty(t *testing.T) {
	store := NewTokenStore(NewTestClient(t))
	assert.Error(t, store.SetToken("   "))
}

func TestTokenStore_BlankValueIsMissing(t *testing.T) {
	c := NewTestClient(t)
	require.NoError(t, c.Set([]byte(TokenKey), []byte("  ")))

	_, err := NewTokenStore(c).Token()
	assert.ErrorIs(t, err, api.ErrNoToken)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultCharmHost, cfg.Host)
	assert.False(t, cfg.AutoSync)
}
