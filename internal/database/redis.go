package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:points"

// RedisClient wraps the Redis client used for the points leaderboard.
// A nil *RedisClient is valid: every method degrades to a no-op or miss so the
// service keeps working without a cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client from REDIS_ADDR and REDIS_PASSWORD.
// Returns nil when no address is configured.
func NewRedis() *RedisClient {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	return &RedisClient{Client: rdb}
}

// NewRedisAt connects to an explicit address, used by tests.
func NewRedisAt(addr string) *RedisClient {
	return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("redis not configured")
	}
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// SetPoints records a user's absolute points score on the leaderboard.
func (c *RedisClient) SetPoints(ctx context.Context, userID string, points float64) error {
	if c == nil {
		return nil
	}
	return c.Client.ZAdd(ctx, leaderboardKey, redis.Z{Score: points, Member: userID}).Err()
}

// AddPoints increments a user's leaderboard score and returns the new total.
func (c *RedisClient) AddPoints(ctx context.Context, userID string, delta float64) (float64, error) {
	if c == nil {
		return 0, nil
	}
	return c.Client.ZIncrBy(ctx, leaderboardKey, delta, userID).Result()
}

// LeaderboardEntry is one row of the cached leaderboard.
type LeaderboardEntry struct {
	UserID string
	Points float64
}

// TopUsers returns up to n leaderboard entries ordered by points, highest first.
func (c *RedisClient) TopUsers(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("redis not configured")
	}
	zs, err := c.Client.ZRevRangeWithScores(ctx, leaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{UserID: id, Points: z.Score})
	}
	return entries, nil
}
