//go:build integration
// +build integration

package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreateParams(name string) apikeys.CreateParams {
	return apikeys.CreateParams{
		Name:        name,
		Permissions: []string{apikeys.PermissionRead, apikeys.PermissionTransfer},
		Expiry:      apikeys.Expiry1M,
	}
}

func TestAPIKeyService_CreateAndValidate(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	issued, err := services.APIKeyService.Create(ctx, user.ID, testCreateParams("ci key"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(issued.PlainKey, apikeys.KeyPrefix))
	assert.Equal(t, issued.PlainKey[8:16], issued.Key.KeyPrefix)
	assert.NotContains(t, issued.Key.KeyHash, issued.PlainKey)

	resolved, err := services.APIKeyService.Validate(ctx, issued.PlainKey)
	require.NoError(t, err)
	assert.Equal(t, issued.Key.ID, resolved.ID)
	assert.Equal(t, user.ID, resolved.UserID)
}

func TestAPIKeyService_Validate_RejectsUnknownKey(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, err := services.APIKeyService.Validate(ctx, "sk_live_0123456789abcdef")
	assert.ErrorIs(t, err, apikeys.ErrAPIKeyInvalid)

	_, err = services.APIKeyService.Validate(ctx, "not-a-key")
	assert.ErrorIs(t, err, apikeys.ErrAPIKeyInvalid)
}

func TestAPIKeyService_Create_EnforcesActiveKeyLimit(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	for i := 0; i < apikeys.MaxActiveKeys; i++ {
		_, err := services.APIKeyService.Create(ctx, user.ID, testCreateParams(fmt.Sprintf("key %d", i)))
		require.NoError(t, err)
	}

	_, err := services.APIKeyService.Create(ctx, user.ID, testCreateParams("one too many"))
	assert.ErrorIs(t, err, apikeys.ErrTooManyActiveKeys)
}

func TestAPIKeyService_Revoke(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	issued, err := services.APIKeyService.Create(ctx, user.ID, testCreateParams("doomed key"))
	require.NoError(t, err)

	require.NoError(t, services.APIKeyService.Revoke(ctx, user.ID, issued.Key.ID))

	_, err = services.APIKeyService.Validate(ctx, issued.PlainKey)
	assert.ErrorIs(t, err, apikeys.ErrAPIKeyInvalid)

	// revoking again is a no-op
	assert.NoError(t, services.APIKeyService.Revoke(ctx, user.ID, issued.Key.ID))
}

func TestAPIKeyService_Revoke_UnknownKey(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	err := services.APIKeyService.Revoke(ctx, user.ID, uuid.NewString())
	assert.ErrorIs(t, err, apikeys.ErrAPIKeyNotFound)
}

func TestAPIKeyService_Rollover_RequiresExpiredKey(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	issued, err := services.APIKeyService.Create(ctx, user.ID, testCreateParams("fresh key"))
	require.NoError(t, err)

	_, err = services.APIKeyService.Rollover(ctx, user.ID, issued.Key.ID, apikeys.Expiry1M)
	assert.ErrorIs(t, err, apikeys.ErrAPIKeyNotExpired)

	_, err = services.APIKeyService.Rollover(ctx, user.ID, uuid.NewString(), apikeys.Expiry1M)
	assert.ErrorIs(t, err, apikeys.ErrAPIKeyNotFound)
}

func TestAPIKeyService_Rollover_ReplacesExpiredKey(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	expired := persistence.CreateTestAPIKey(t, user.ID, time.Now().UTC().Add(-time.Hour))
	expired.Name = "expired key"
	expired.Permissions = []string{apikeys.PermissionDeposit}
	require.NoError(t, services.DBContext.APIKeyRepo.Create(ctx, expired))

	issued, err := services.APIKeyService.Rollover(ctx, user.ID, expired.ID, apikeys.Expiry1Y)
	require.NoError(t, err)
	assert.NotEqual(t, expired.ID, issued.Key.ID)
	assert.Equal(t, expired.Name, issued.Key.Name)
	assert.Equal(t, expired.Permissions, issued.Key.Permissions)
	assert.True(t, issued.Key.ExpiresAt.After(time.Now().UTC().Add(360*24*time.Hour)))

	resolved, err := services.APIKeyService.Validate(ctx, issued.PlainKey)
	require.NoError(t, err)
	assert.Equal(t, issued.Key.ID, resolved.ID)
}

func TestAPIKeyService_List(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := persistence.CreateTestUser(t)
	require.NoError(t, services.DBContext.UserRepo.Create(ctx, user))

	for i := 0; i < 3; i++ {
		_, err := services.APIKeyService.Create(ctx, user.ID, testCreateParams(fmt.Sprintf("key %d", i)))
		require.NoError(t, err)
	}

	keys, err := services.APIKeyService.List(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	_, err = services.APIKeyService.List(ctx, user.ID, 0)
	assert.Error(t, err)

	_, err = services.APIKeyService.List(ctx, user.ID, 21)
	assert.Error(t, err)
}
