//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)

	err := ctx.UserRepo.Create(context.Background(), user)
	require.NoError(t, err)

	fetched, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, fetched.Email)
	assert.Equal(t, user.GoogleID, fetched.GoogleID)
}

func TestUserSqliteRepository_Create_InvalidUser(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := &users.User{} // Invalid - missing required fields

	err := ctx.UserRepo.Create(context.Background(), user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestUserSqliteRepository_GetByGoogleID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	err := ctx.UserRepo.Create(context.Background(), user)
	require.NoError(t, err)

	fetched, err := ctx.UserRepo.GetByGoogleID(context.Background(), user.GoogleID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
}

func TestUserSqliteRepository_GetByGoogleID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.UserRepo.GetByGoogleID(context.Background(), "unknown-google-id")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestRefreshTokenSqliteRepository_CreateAndGetByHash(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	token := &users.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, ctx.RefreshTokenRepo.Create(context.Background(), token))

	fetched, err := ctx.RefreshTokenRepo.GetByHash(context.Background(), token.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, token.ID, fetched.ID)
	assert.True(t, fetched.IsValid())
}

func TestRefreshTokenSqliteRepository_GetByHash_Unknown(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.RefreshTokenRepo.GetByHash(context.Background(), "unknown-hash")
	assert.ErrorIs(t, err, users.ErrRefreshTokenInvalid)
}

func TestRefreshTokenSqliteRepository_RevokeByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	token := &users.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, ctx.RefreshTokenRepo.Create(context.Background(), token))

	require.NoError(t, ctx.RefreshTokenRepo.RevokeByID(context.Background(), token.ID))

	fetched, err := ctx.RefreshTokenRepo.GetByHash(context.Background(), token.TokenHash)
	require.NoError(t, err)
	assert.False(t, fetched.IsValid())

	// Revoking an unknown token reports an invalid token
	err = ctx.RefreshTokenRepo.RevokeByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, users.ErrRefreshTokenInvalid)
}
