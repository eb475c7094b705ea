package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/syedqalbe-create/VisionAR/pkg/errors"
)

func setupTestRedis(t *testing.T) (*PreferenceRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewPreferenceRepository(client), mr
}

func TestPreferenceRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("prefs:theme:user-1", `{"dark":true}`))

	got, err := repo.Get(context.Background(), "theme:user-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"dark":true}`, string(got))
}

func TestPreferenceRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "theme:nonexistent")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPreferenceRepository_Set_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	err := repo.Set(context.Background(), "cart:user-1", []byte(`[{"product_id":1,"quantity":2}]`))
	require.NoError(t, err)

	raw, err := mr.Get("prefs:cart:user-1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product_id":1,"quantity":2}]`, raw)

	// Preferences persist without expiry.
	assert.Zero(t, mr.TTL("prefs:cart:user-1"))
}

func TestPreferenceRepository_Set_Overwrite(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Set(context.Background(), "theme:user-1", []byte(`{"dark":false}`)))
	require.NoError(t, repo.Set(context.Background(), "theme:user-1", []byte(`{"dark":true}`)))

	raw, err := mr.Get("prefs:theme:user-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"dark":true}`, raw)
}

func TestPreferenceRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Set(context.Background(), "theme:user-1", []byte(`{"dark":true}`)))
	require.NoError(t, repo.Delete(context.Background(), "theme:user-1"))
	assert.False(t, mr.Exists("prefs:theme:user-1"))

	// Deleting an absent key is not an error.
	assert.NoError(t, repo.Delete(context.Background(), "theme:nonexistent"))
}
