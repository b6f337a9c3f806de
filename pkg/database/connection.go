// Package database wires the Postgres and Redis connections shared by the
// repository and solver-caching layers.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/logbook-engine/internal/config"
)

// Connection holds the database and Redis connections for one process.
type Connection struct {
	DB          *sql.DB
	RedisClient *redis.Client
}

// NewConnection creates new database and Redis connections per cfg.
func NewConnection(cfg *config.Config) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxConnections)
	db.SetMaxIdleConns(cfg.DatabaseMaxIdle)
	db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Connection{DB: db, RedisClient: redisClient}, nil
}

// Close closes both connections, combining errors from each.
func (c *Connection) Close() error {
	var err error

	if c.DB != nil {
		if dbErr := c.DB.Close(); dbErr != nil {
			err = fmt.Errorf("failed to close database: %w", dbErr)
		}
	}

	if c.RedisClient != nil {
		if redisErr := c.RedisClient.Close(); redisErr != nil {
			if err != nil {
				err = fmt.Errorf("%v; failed to close Redis: %w", err, redisErr)
			} else {
				err = fmt.Errorf("failed to close Redis: %w", redisErr)
			}
		}
	}

	return err
}

// RunLockKey derives the pg_advisory_lock bigint key for one (storeId, date)
// run (§5: "one run = one (storeId, date) pair"). Using a single 64-bit
// advisory lock key (rather than the two-int32 form) keeps the call sites
// simple; collisions across distinct (store, date) pairs are astronomically
// unlikely for FNV-1a over a UUID+date string.
func RunLockKey(storeID uuid.UUID, date string) int64 {
	h := fnv.New64a()
	h.Write([]byte(storeID.String()))
	h.Write([]byte("|"))
	h.Write([]byte(date))
	return int64(h.Sum64())
}

// LockRun acquires the session-level advisory lock serializing runs for one
// (storeId, date) pair (§5). It must be released by the returned unlock
// function, typically via defer.
func (c *Connection) LockRun(ctx context.Context, storeID uuid.UUID, date string) (unlock func(context.Context) error, err error) {
	key := RunLockKey(storeID, date)
	if _, err := c.DB.ExecContext(ctx, "SELECT pg_advisory_lock($1)", key); err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	return func(unlockCtx context.Context) error {
		_, err := c.DB.ExecContext(unlockCtx, "SELECT pg_advisory_unlock($1)", key)
		if err != nil {
			return fmt.Errorf("failed to release run lock: %w", err)
		}
		return nil
	}, nil
}

// HealthCheck pings both the database and Redis.
func (c *Connection) HealthCheck(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if _, err := c.RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("Redis health check failed: %w", err)
	}
	return nil
}

// Stats reports connection-pool statistics for both backends, mirroring the
// shape exposed by the rest of this module's ambient stack.
func (c *Connection) Stats() map[string]interface{} {
	stats := make(map[string]interface{})

	if c.DB != nil {
		dbStats := c.DB.Stats()
		stats["database"] = map[string]interface{}{
			"max_open_connections": dbStats.MaxOpenConnections,
			"open_connections":     dbStats.OpenConnections,
			"in_use":               dbStats.InUse,
			"idle":                 dbStats.Idle,
			"wait_count":           dbStats.WaitCount,
			"wait_duration":        dbStats.WaitDuration.String(),
		}
	}

	if c.RedisClient != nil {
		poolStats := c.RedisClient.PoolStats()
		stats["redis"] = map[string]interface{}{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		}
	}

	return stats
}
