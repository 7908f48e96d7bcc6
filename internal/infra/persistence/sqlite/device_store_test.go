package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"baito/internal/domain/repository"
	"baito/internal/infra/persistence/model"
	"baito/internal/infra/secret"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "baito.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.KeyValueModel{}, &model.CachedEntityModel{}))

	return db
}

func newTestStore(t *testing.T) repository.DeviceStore {
	t.Helper()

	sealer, err := secret.NewBoxSealer(filepath.Join(t.TempDir(), "store.key"))
	require.NoError(t, err)

	return NewDeviceStore(openTestDB(t), sealer)
}

func TestDeviceStore_SetGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, repository.KeyAccessToken, "token-1"))

	value, err := store.Get(ctx, repository.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "token-1", value)
}

func TestDeviceStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, repository.KeyAccessToken, "token-1"))
	require.NoError(t, store.Set(ctx, repository.KeyAccessToken, "token-2"))

	value, err := store.Get(ctx, repository.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "token-2", value)
}

func TestDeviceStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-key")

	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestDeviceStore_ValuesAreSealedOnDisk(t *testing.T) {
	dir := t.TempDir()
	sealer, err := secret.NewBoxSealer(filepath.Join(dir, "store.key"))
	require.NoError(t, err)

	db := openTestDB(t)
	store := NewDeviceStore(db, sealer)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, repository.KeyAccessToken, "super-secret-token"))

	var kv model.KeyValueModel
	require.NoError(t, db.Where("key = ?", repository.KeyAccessToken).First(&kv).Error)
	assert.NotContains(t, string(kv.Value), "super-secret-token", "tokens must not hit disk in the clear")
}

func TestDeviceStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, repository.KeyUserEmail, "worker@example.com"))
	require.NoError(t, store.Delete(ctx, repository.KeyUserEmail, "never-existed"))
	require.NoError(t, store.Delete(ctx, repository.KeyUserEmail))

	_, err := store.Get(ctx, repository.KeyUserEmail)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestDeviceStore_ClearAuthRemovesAllSixKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range repository.AuthKeys {
		require.NoError(t, store.Set(ctx, key, "value-"+key))
	}
	require.NoError(t, store.Set(ctx, "unrelated", "survives"))

	require.NoError(t, store.ClearAuth(ctx))

	for _, key := range repository.AuthKeys {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, repository.ErrKeyNotFound, "key %s must be cleared", key)
	}

	value, err := store.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.Equal(t, "survives", value)
}

func TestEntityCache_PutGet(t *testing.T) {
	cache := NewEntityCache(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindJobOffer, 3, []byte(`{"id":3}`)))

	payload, err := cache.GetEntity(ctx, repository.CacheKindJobOffer, 3, time.Minute)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3}`, string(payload))
}

func TestEntityCache_MissOnUnknownAndWrongKind(t *testing.T) {
	cache := NewEntityCache(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindJobOffer, 3, []byte(`{}`)))

	_, err := cache.GetEntity(ctx, repository.CacheKindJobOffer, 4, time.Minute)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	_, err = cache.GetEntity(ctx, repository.CacheKindWorker, 3, time.Minute)
	assert.ErrorIs(t, err, repository.ErrCacheMiss, "kinds share ids but not entries")
}

func TestEntityCache_StaleEntryMisses(t *testing.T) {
	db := openTestDB(t)
	cache := NewEntityCache(db)
	ctx := context.Background()

	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindJobOffer, 3, []byte(`{}`)))

	// Age the entry past any reasonable TTL.
	require.NoError(t, db.Model(&model.CachedEntityModel{}).
		Where("kind = ? AND entity_id = ?", repository.CacheKindJobOffer, int64(3)).
		Update("fetched_at", time.Now().Add(-time.Hour)).Error)

	_, err := cache.GetEntity(ctx, repository.CacheKindJobOffer, 3, time.Minute)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	payload, err := cache.GetEntity(ctx, repository.CacheKindJobOffer, 3, 0)
	require.NoError(t, err, "zero maxAge disables the staleness check")
	assert.NotNil(t, payload)
}

func TestEntityCache_PutReplaces(t *testing.T) {
	cache := NewEntityCache(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindCompany, 8, []byte(`{"v":1}`)))
	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindCompany, 8, []byte(`{"v":2}`)))

	payload, err := cache.GetEntity(ctx, repository.CacheKindCompany, 8, time.Minute)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(payload))
}

func TestEntityCache_InvalidateAndPurge(t *testing.T) {
	db := openTestDB(t)
	cache := NewEntityCache(db)
	ctx := context.Background()

	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindJobOffer, 1, []byte(`{}`)))
	require.NoError(t, cache.PutEntity(ctx, repository.CacheKindJobOffer, 2, []byte(`{}`)))

	require.NoError(t, cache.InvalidateEntity(ctx, repository.CacheKindJobOffer, 1))
	require.NoError(t, cache.InvalidateEntity(ctx, repository.CacheKindJobOffer, 1), "double invalidate is fine")

	_, err := cache.GetEntity(ctx, repository.CacheKindJobOffer, 1, time.Minute)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	purged, err := cache.PurgeOlderThan(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
