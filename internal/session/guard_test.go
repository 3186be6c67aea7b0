package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	s := NewMemStore()

	assert.ErrorIs(t, RequireAuth(s), ErrNotAuthenticated)

	require.NoError(t, s.SetToken("tok"))
	assert.NoError(t, RequireAuth(s))

	// Presence only: any non-empty token passes, expiry is the server's call.
	require.NoError(t, s.SetToken("expired-but-present"))
	assert.NoError(t, RequireAuth(s))
}

func TestRequireAnon(t *testing.T) {
	s := NewMemStore()

	assert.NoError(t, RequireAnon(s))

	require.NoError(t, s.SetToken("tok"))
	assert.ErrorIs(t, RequireAnon(s), ErrAlreadyAuthenticated)

	require.NoError(t, s.Clear())
	assert.NoError(t, RequireAnon(s))
}
