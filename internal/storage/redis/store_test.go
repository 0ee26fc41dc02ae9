package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/storage/compliance"
)

func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewStore(context.Background(), "redis://"+s.Addr(), "")
	require.NoError(t, err)
	return store, s
}

func TestRedisStore_Compliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (lists.Repository, func()) {
		store, s := setupTestRedis(t)
		return store, func() {
			store.Close()
			s.Close()
		}
	})
}

func TestNewStore_BadURL(t *testing.T) {
	_, err := NewStore(context.Background(), "not-a-url://", "")
	assert.Error(t, err)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	ctx := context.Background()

	saved, err := store.Save(ctx, &domain.List{Title: "Mercado", Category: "General"})
	require.NoError(t, err)

	assert.True(t, s.Exists("listly:list:"+saved.ID))
	members, err := s.Members("listly:ids")
	require.NoError(t, err)
	assert.Equal(t, []string{saved.ID}, members)

	require.NoError(t, store.DeleteByID(ctx, saved.ID))
	assert.False(t, s.Exists("listly:list:"+saved.ID))
	assert.False(t, s.Exists("listly:ids"))
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()

	s.Close()

	_, err := store.FindAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
