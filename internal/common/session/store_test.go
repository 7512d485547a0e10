// internal/common/session/store_test.go
package session

import (
	"context"
	"testing"
	"time"

	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStoreWithClient(client, time.Hour, logger.NewNoOpLogger()), mr
}

func testSession() models.Session {
	return models.Session{EmployeeID: 12, Name: "Ravi", Role: models.RoleSystemAdmin}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, _ := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "device-1", testSession()))

	loaded, err := store.Load(ctx, "device-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 12, loaded.EmployeeID)
	assert.Equal(t, "Ravi", loaded.Name)
	assert.Equal(t, models.RoleSystemAdmin, loaded.Role)
	assert.True(t, loaded.LoggedIn())
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store, _ := newMiniredisStore(t)

	loaded, err := store.Load(context.Background(), "unknown-device")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SessionsAreKeyedByDevice(t *testing.T) {
	store, _ := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "device-1", testSession()))

	other, err := store.Load(ctx, "device-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStore_SaveAppliesTTL(t *testing.T) {
	store, mr := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "device-1", testSession()))

	mr.FastForward(2 * time.Hour)

	loaded, err := store.Load(ctx, "device-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Clear(t *testing.T) {
	store, _ := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "device-1", testSession()))
	require.NoError(t, store.Clear(ctx, "device-1"))

	loaded, err := store.Load(ctx, "device-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadRedisFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("session:device-1").SetErr(assert.AnError)

	store := NewStoreWithClient(client, time.Hour, logger.NewNoOpLogger())

	_, err := store.Load(context.Background(), "device-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionLoadFailed, errors.AsStandardError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadCorruptPayload(t *testing.T) {
	store, mr := newMiniredisStore(t)
	require.NoError(t, mr.Set("session:device-1", "not json"))

	_, err := store.Load(context.Background(), "device-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionLoadFailed, errors.AsStandardError(err).Code)
}
