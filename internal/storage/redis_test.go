package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/vault-world/internal/manual"
	"github.com/jwebster45206/vault-world/pkg/world"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := NewRedisStorage("redis://"+mr.Addr(), ttl, logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis storage: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
		mr.Close()
	})
	return s, mr
}

func sampleResult() *manual.Result {
	return &manual.Result{
		ID:        uuid.New(),
		Seed:      42,
		Game:      "Manual_TheVault_Chakraa",
		CreatedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		Players: []manual.PlayerResult{{
			Player:  1,
			Name:    "Goblin",
			Options: map[string]int{"amount_of_keys": 3, "amount_of_treasure_in_vault": 5},
			Regions: []*world.Region{{
				Name:      "The Vault",
				Player:    1,
				Locations: []*world.Location{{Name: "Treasure 1", Player: 1, Address: 21, Region: "The Vault"}},
			}},
			Pool:         []world.Item{{Name: "Vault Key", Player: 1, Classification: world.Progression}},
			Precollected: []world.Item{{Name: "Vault Key", Player: 1, Classification: world.Progression}},
			SlotData:     world.SlotData{"amount_of_keys": 3},
		}},
	}
}

// storages runs fn against every Storage implementation.
func storages(t *testing.T, fn func(t *testing.T, s Storage)) {
	t.Run("redis", func(t *testing.T) {
		s, _ := setupTestRedis(t, time.Hour)
		fn(t, s)
	})
	t.Run("mock", func(t *testing.T) {
		fn(t, NewMockStorage())
	})
}

func TestStorage_SaveLoadDelete(t *testing.T) {
	storages(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		require.NoError(t, s.Ping(ctx))

		res := sampleResult()
		require.NoError(t, s.SaveResult(ctx, res))

		loaded, err := s.LoadResult(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.ID, loaded.ID)
		assert.Equal(t, res.Seed, loaded.Seed)
		assert.True(t, res.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Players, 1)
		p := loaded.Players[0]
		assert.Equal(t, "Goblin", p.Name)
		assert.Equal(t, res.Players[0].Options, p.Options)
		assert.Equal(t, res.Players[0].Pool, p.Pool)
		assert.Equal(t, res.Players[0].Precollected, p.Precollected)
		assert.Equal(t, "Treasure 1", p.Locations()[0].Name)
		// JSON numbers decode as float64
		assert.Equal(t, float64(3), p.SlotData["amount_of_keys"])

		ids, err := s.ListResults(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{res.ID}, ids)

		require.NoError(t, s.DeleteResult(ctx, res.ID))
		_, err = s.LoadResult(ctx, res.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		ids, err = s.ListResults(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestStorage_LoadMissing(t *testing.T) {
	storages(t, func(t *testing.T, s Storage) {
		_, err := s.LoadResult(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisStorage_Expiry(t *testing.T) {
	s, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	res := sampleResult()
	require.NoError(t, s.SaveResult(ctx, res))
	assert.Equal(t, time.Minute, mr.TTL(resultKey(res.ID)))

	mr.FastForward(2 * time.Minute)

	_, err := s.LoadResult(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := s.ListResults(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	members, err := mr.Members(resultIndexKey)
	if err == nil {
		assert.Empty(t, members, "expired ids are dropped from the index")
	}
}

func TestRedisStorage_MalformedIndexEntry(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	res := sampleResult()
	require.NoError(t, s.SaveResult(ctx, res))
	_, err := mr.SAdd(resultIndexKey, "not-a-uuid")
	require.NoError(t, err)

	ids, err := s.ListResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{res.ID}, ids)
	members, err := mr.Members(resultIndexKey)
	require.NoError(t, err)
	assert.Equal(t, []string{res.ID.String()}, members)
	assert.Zero(t, mr.TTL(resultKey(res.ID)), "zero ttl keeps results forever")
}

func TestRedisStorage_PingFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	s, err := NewRedisStorage("redis://"+mr.Addr(), time.Hour, slog.Default())
	require.NoError(t, err)
	defer s.Close()
	mr.Close()

	assert.Error(t, s.Ping(context.Background()))
}

func TestNewRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage("://nope", time.Hour, slog.Default())
	assert.Error(t, err)
}

func TestMockStorage_PingError(t *testing.T) {
	m := NewMockStorage()
	boom := errors.New("boom")
	m.SetPingError(boom)
	assert.ErrorIs(t, m.Ping(context.Background()), boom)
}
