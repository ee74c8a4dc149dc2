// Package bootstrap prepares the database and Redis for the server and CLI commands.
package bootstrap

import (
	"fmt"
	"log"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally loads the demo content.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := SeedDemo(cfg, db, opts); err != nil {
		return nil, nil, err
	}
	return db, r, nil
}

// SeedDemo loads the demo manifest when requested. It is idempotent.
func SeedDemo(cfg *config.Config, db *gorm.DB, opts Options) error {
	if !opts.SeedDemo {
		return nil
	}
	if err := seed.DemoContent(db, cfg.SeedDemoPassword); err != nil {
		return fmt.Errorf("failed to seed demo content: %w", err)
	}
	log.Printf("demo content ensured (%d users, %d posts, %d projects)",
		len(seed.Demo.Users), len(seed.Demo.Posts), len(seed.Demo.Projects))
	return nil
}
