// ABOUTME: Tests for bearer token persistence

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AuthTokens(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	now := time.Now().UTC().Truncate(time.Second)

	first := &AuthToken{ID: "jti-1", UserID: user.ID, Token: "tok-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, s.SaveAuthToken(ctx, first))

	got, err := s.GetAuthToken(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, now.Add(time.Hour), got.ExpiresAt)

	// A second token replaces the first
	second := &AuthToken{ID: "jti-2", UserID: user.ID, Token: "tok-2", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, s.SaveAuthToken(ctx, second))

	_, err = s.GetAuthToken(ctx, "jti-1")
	assert.ErrorIs(t, err, ErrNotFound)

	byUser, err := s.GetAuthTokenByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jti-2", byUser.ID)

	require.NoError(t, s.DeleteAuthTokensByUser(ctx, user.ID))
	_, err = s.GetAuthTokenByUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine
	assert.NoError(t, s.DeleteAuthTokensByUser(ctx, user.ID))
}
