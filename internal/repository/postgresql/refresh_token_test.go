package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRotate(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewRefreshTokenRepository(testDB)
	userID := createTestUser(t, ctx, user.RoleUser)
	expiresAt := time.Now().Add(time.Hour).Unix()

	require.NoError(t, repo.Create(ctx, userID, "old-token", expiresAt))

	require.NoError(t, repo.Rotate(ctx, userID, "old-token", "new-token", expiresAt))

	revoked, err := repo.IsRevoked(ctx, "old-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "new-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRefreshTokenUnknownIsRevoked(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewRefreshTokenRepository(testDB)

	revoked, err := repo.IsRevoked(ctx, "never-issued")
	require.NoError(t, err)
	assert.True(t, revoked)
}
