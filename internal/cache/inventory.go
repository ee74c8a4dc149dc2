package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix           = "user:%d"
	PublishedPostsKey       = "posts:published"
	PortfolioViewsKeyPrefix = "portfolio_views:%d"
	TokenBlacklistPrefix    = "blacklist:%s"
)

const (
	UserTTL           = 5 * time.Minute
	PublishedPostsTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PortfolioViewsKey(userID uint) string {
	return fmt.Sprintf(PortfolioViewsKeyPrefix, userID)
}

func TokenBlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePublishedPosts(ctx context.Context) {
	Invalidate(ctx, PublishedPostsKey)
}

// Incr bumps a counter and returns its new value. Without Redis it returns 0.
func Incr(ctx context.Context, key string) (int64, error) {
	if client == nil {
		return 0, nil
	}
	return client.Incr(ctx, key).Result()
}

// Counter reads a counter written by Incr; a missing key or absent Redis reads as 0.
func Counter(ctx context.Context, key string) int64 {
	if client == nil {
		return 0
	}
	n, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return n
}

// Blacklist marks a token ID revoked until ttl elapses.
func Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || ttl <= 0 {
		return nil
	}
	return client.Set(ctx, TokenBlacklistKey(jti), "1", ttl).Err()
}

// IsBlacklisted reports whether the token ID was revoked. Redis failures read as not revoked.
func IsBlacklisted(ctx context.Context, jti string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, TokenBlacklistKey(jti)).Result()
	return err == nil && n > 0
}
