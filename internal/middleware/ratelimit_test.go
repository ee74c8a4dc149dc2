package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func limitedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/login", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func hit(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimitEnforced(t *testing.T) {
	assert.False(t, RateLimitEnforced("test"))
	assert.False(t, RateLimitEnforced("development"))
	assert.True(t, RateLimitEnforced("production"))
	assert.True(t, RateLimitEnforced("staging"))
	assert.True(t, RateLimitEnforced(""))
}

func TestCheckRateLimit(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "production", "login", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
	}
	allowed, err := CheckRateLimit(ctx, rdb, "production", "login", "ip:1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// The window starts at the first hit and is not extended by later ones.
	assert.Equal(t, time.Minute, mr.TTL("rl:login:ip:1"))

	allowed, err = CheckRateLimit(ctx, rdb, "production", "login", "ip:2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "other callers have their own budget")

	mr.FastForward(time.Minute + time.Second)
	allowed, err = CheckRateLimit(ctx, rdb, "production", "login", "ip:1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "budget resets after the window")
}

func TestCheckRateLimit_SkippedOutsideProduction(t *testing.T) {
	mr, rdb := newRedis(t)

	for _, env := range []string{"test", "development"} {
		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(context.Background(), rdb, env, "login", "ip:1", 1, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	}
	assert.False(t, mr.Exists("rl:login:ip:1"))

	allowed, err := CheckRateLimit(context.Background(), nil, "test", "login", "ip:1", 1, time.Minute)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimit_NoStore(t *testing.T) {
	allowed, err := CheckRateLimit(context.Background(), nil, "production", "login", "ip:1", 1, time.Minute)
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("enforces the limit from the given env", func(t *testing.T) {
		_, rdb := newRedis(t)
		app := limitedApp(RateLimit(rdb, "production", 1, time.Minute, "login"))

		assert.Equal(t, http.StatusOK, hit(t, app))
		for i := 0; i < 4; i++ {
			assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
		}
	})

	t.Run("window expiry lets the caller back in", func(t *testing.T) {
		mr, rdb := newRedis(t)
		app := limitedApp(RateLimit(rdb, "production", 1, 10*time.Minute, "login"))

		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
		mr.FastForward(10 * time.Minute)
		assert.Equal(t, http.StatusOK, hit(t, app))
	})

	t.Run("keys by user when authenticated", func(t *testing.T) {
		mr, rdb := newRedis(t)
		app := fiber.New()
		app.Post("/login", func(c *fiber.Ctx) error {
			c.Locals("userID", uint(7))
			return c.Next()
		}, RateLimit(rdb, "production", 1, time.Minute, "login"), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.True(t, mr.Exists("rl:login:user:7"))
	})

	t.Run("test env never counts", func(t *testing.T) {
		_, rdb := newRedis(t)
		app := limitedApp(RateLimit(rdb, "test", 1, time.Minute, "login"))

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, hit(t, app))
		}
	})

	t.Run("fails open when the store is down", func(t *testing.T) {
		mr, rdb := newRedis(t)
		app := limitedApp(RateLimit(rdb, "production", 1, time.Minute, "login"))
		mr.Close()

		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusOK, hit(t, app))
	})

	t.Run("fails open without a store", func(t *testing.T) {
		app := limitedApp(RateLimit(nil, "production", 1, time.Minute, "login"))
		assert.Equal(t, http.StatusOK, hit(t, app))
	})

	t.Run("fails closed when asked to", func(t *testing.T) {
		mr, rdb := newRedis(t)
		app := limitedApp(RateLimitWithPolicy(rdb, "production", 1, time.Minute, FailClosed, "register"))
		assert.Equal(t, http.StatusOK, hit(t, app))

		mr.Close()
		assert.Equal(t, http.StatusServiceUnavailable, hit(t, app))
	})
}
