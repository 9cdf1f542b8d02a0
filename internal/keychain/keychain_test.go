package keychain

import (
	"fmt"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRing swaps the keyring opener for an in-memory map.
func stubRing(t *testing.T) *keyring.ArrayKeyring {
	t.Helper()

	ring := keyring.NewArrayKeyring(nil)
	original := open
	open = func() (keyring.Keyring, error) { return ring, nil }
	t.Cleanup(func() { open = original })
	return ring
}

func stubBrokenRing(t *testing.T) {
	t.Helper()

	original := open
	open = func() (keyring.Keyring, error) {
		return nil, fmt.Errorf("failed to open keyring: no backend available")
	}
	t.Cleanup(func() { open = original })
}

func TestSecretRoundTrip(t *testing.T) {
	stubRing(t)

	require.NoError(t, Set("work", "app-password"))

	secret, ok := Get("work")
	require.True(t, ok)
	assert.Equal(t, "app-password", secret)
	assert.True(t, Has("work"))

	cleared, err := Clear("work")
	require.NoError(t, err)
	assert.True(t, cleared)

	_, ok = Get("work")
	assert.False(t, ok)
}

func TestClearMissing(t *testing.T) {
	stubRing(t)

	cleared, err := Clear("nobody")
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestBrokenKeyring(t *testing.T) {
	stubBrokenRing(t)

	t.Run("get degrades to not stored", func(t *testing.T) {
		_, ok := Get("work")
		assert.False(t, ok)
		assert.False(t, Has("work"))
	})

	t.Run("set and clear surface the error", func(t *testing.T) {
		assert.Error(t, Set("work", "app-password"))

		_, err := Clear("work")
		assert.Error(t, err)
	})
}
