package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedThing struct {
	Name string `json:"name"`
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			calls++
			dest.Name = "from-db"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "from-db", first.Name)
	assert.True(t, mr.Exists("thing:1"))

	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "from-db", second.Name)
	assert.Equal(t, 1, calls)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("thing:1"))
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)

	var dest cachedThing
	err := Aside(context.Background(), "thing:2", &dest, time.Minute, func() error {
		return errors.New("db down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("thing:2"))
}

func TestAside_WithoutRedis(t *testing.T) {
	SetClient(nil)

	var dest cachedThing
	err := Aside(context.Background(), "thing:3", &dest, time.Minute, func() error {
		dest.Name = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", dest.Name)
}

func TestCounters(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()
	key := PortfolioViewsKey(7)

	assert.Equal(t, int64(0), Counter(ctx, key))
	n, err := Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, _ = Incr(ctx, key)
	assert.Equal(t, int64(2), Counter(ctx, key))
}

func TestBlacklist(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	assert.False(t, IsBlacklisted(ctx, "abc"))
	require.NoError(t, Blacklist(ctx, "abc", time.Hour))
	assert.True(t, IsBlacklisted(ctx, "abc"))

	mr.FastForward(2 * time.Hour)
	assert.False(t, IsBlacklisted(ctx, "abc"))
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(PublishedPostsKey, "[]"))
	InvalidatePublishedPosts(ctx)
	assert.False(t, mr.Exists(PublishedPostsKey))
}
